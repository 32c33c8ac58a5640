package core

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Surface is the two possible surface languages a File Record and its
// emitted artifacts can be written in.
type Surface string

const (
	SurfaceTyped   Surface = "typed"   // .ts
	SurfaceUntyped Surface = "untyped" // .js
)

// SurfaceForExt returns the surface language implied by a filename
// extension, defaulting to untyped for anything that isn't .ts/.tsx.
func SurfaceForExt(ext string) Surface {
	switch ext {
	case ".ts", ".tsx":
		return SurfaceTyped
	default:
		return SurfaceUntyped
	}
}

// Classification is the Classifier's verdict for a File Record.
type Classification string

const (
	ClassModel             Classification = "model"
	ClassIntermediateModel Classification = "intermediate-model"
	ClassMixin             Classification = "mixin"
	ClassIgnored           Classification = "ignored"
)

// Record is a File Record: one per discovered, parsed file. Created once
// during indexing and never mutated afterward; the Classification and
// Summary fields are filled in by the Classifier but the Record struct
// itself is not copied, only referenced, by downstream components.
type Record struct {
	CanonicalPath string
	Surface       Surface
	Source        []byte
	Tree          *sitter.Tree
	DefaultExport string

	Classification Classification
	Summary        *Summary

	// IsAlias is true when this Record was discovered under a
	// configured alias source rather than a primary model/mixin
	// directory, per spec.md §4.4's generate-external-resources filter.
	IsAlias bool

	Warnings []error
}

// Ext returns the on-disk filename suffix implied by the record's surface,
// defaulting to .ts for typed records (.tsx is preserved separately by
// callers that need to distinguish JSX-flavored TS).
func (r *Record) Ext() string {
	if r.Surface == SurfaceTyped {
		return ".ts"
	}
	return ".js"
}

// RawRef is an as-yet-unresolved reference to another symbol: the
// Classifier records the identifier name and the import specifier it
// came from; the Resolver turns it into a Handle once the Source Index
// can confirm what the specifier points at.
type RawRef struct {
	Identifier string
	Specifier  string
	Origin     TraitOrigin
}

// Summary is the structural extraction the Classifier produces from a
// model, intermediate-model, or mixin File Record. Handle, TraitReferences
// and BaseHandles start unresolved (RawBases/RawTraitRefs) and are filled
// in by the Resolver; the Planner may append further transitive
// TraitReferences afterward.
type Summary struct {
	Handle Handle

	Fields    []FieldDescriptor
	Residuals []ResidualMember

	RawBases     []RawRef // extends-chain / createWithMixins bases, source order
	RawTraitRefs []RawRef // every mixin mention, including polymorphic/type-only

	TraitReferences []TraitReference // resolved, first-occurrence order
	BaseHandles     []Handle         // resolved mixin-of-mixin / extend-chain bases
	BaseClass       string           // "Model" or an intermediate-model identifier

	// IsIntermediateModelBase is true when this summary's handle is a
	// model base another model extends directly (used by the Planner to
	// order intermediate models ahead of their dependents).
	IsIntermediateModelBase bool

	Warnings []error
}

// AddTraitReference appends a Trait Reference, deduplicating by target
// handle while preserving first occurrence, per spec.md invariant 4.
func (s *Summary) AddTraitReference(ref TraitReference) {
	for _, existing := range s.TraitReferences {
		if existing.Target == ref.Target {
			return
		}
	}
	s.TraitReferences = append(s.TraitReferences, ref)
}

// FieldByName looks up a declared field, used to detect name clashes with
// residual members (spec.md Open Question 2).
func (s *Summary) FieldByName(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
