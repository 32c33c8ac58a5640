// Package resolve implements the Resolver (C3): it assigns every
// classified File Record its canonical Symbol Handle, turns the
// Classifier's raw identifier/specifier references into resolved Trait
// References and base Handles, and computes the inverse mapping from a
// Handle to the import specifier an emitted artifact should use, per
// spec.md §4.3.
package resolve

import (
	"path"
	"strings"

	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/index"
)

// Resolver resolves import specifiers against a built Source Index,
// consulting the configured alias patterns for specifiers that don't
// fall under a primary root.
type Resolver struct {
	idx *index.Index
	cfg *config.Config

	// modelAliases and mixinAliases are the two configured alias lists;
	// resolveAlias tries the model list first, then the mixin list, each
	// in declaration order. The list that matched does not decide the
	// resolved symbol's kind: that comes from the record's own Handle.
	modelAliases []config.AliasSource
	mixinAliases []config.AliasSource
}

// New constructs a Resolver over idx using cfg's alias configuration.
func New(idx *index.Index, cfg *config.Config) *Resolver {
	return &Resolver{
		idx:          idx,
		cfg:          cfg,
		modelAliases: cfg.AdditionalModelSources,
		mixinAliases: cfg.AdditionalMixinSources,
	}
}

// AssignHandles gives every classified record in records its canonical
// Handle, derived from the Source Index's import path for that record.
// Records the Source Index can't place under any root (shouldn't happen
// for records it produced itself) are left with an empty Handle and are
// skipped by the remaining passes.
func (r *Resolver) AssignHandles(records []*core.Record) {
	for _, rec := range records {
		if rec.Summary == nil {
			continue
		}
		importPath, ok := r.idx.ImportPathFor(rec)
		if !ok {
			continue
		}
		rec.Summary.Handle = core.Handle{Kind: kindOf(rec.Classification), CanonicalImportPath: importPath}
	}
}

// ResolveReferences turns every RawBases/RawTraitRefs entry on each
// record's Summary into a resolved Handle/TraitReference, consulting the
// importing record's directory for relative specifiers and the
// configured roots/aliases for absolute ones. A raw reference that can't
// be resolved to any File Record produces a *core.ResolutionWarning and
// is otherwise dropped, per spec.md §4.3/§7.
func (r *Resolver) ResolveReferences(records []*core.Record) []error {
	var warnings []error
	for _, rec := range records {
		if rec.Summary == nil {
			continue
		}
		for _, raw := range rec.Summary.RawBases {
			target, ok := r.resolve(rec, raw)
			if !ok {
				warnings = append(warnings, &core.ResolutionWarning{Specifier: raw.Specifier, ImportedBy: rec.CanonicalPath})
				continue
			}
			rec.Summary.BaseHandles = append(rec.Summary.BaseHandles, target)
		}
		for _, raw := range rec.Summary.RawTraitRefs {
			target, ok := r.resolve(rec, raw)
			if !ok {
				warnings = append(warnings, &core.ResolutionWarning{Specifier: raw.Specifier, ImportedBy: rec.CanonicalPath})
				continue
			}
			rec.Summary.AddTraitReference(core.TraitReference{Target: target, Origin: raw.Origin})
		}
	}
	return warnings
}

// resolve maps one RawRef, discovered while classifying fromRec, to the
// Handle of the File Record it names.
func (r *Resolver) resolve(fromRec *core.Record, raw core.RawRef) (core.Handle, bool) {
	if raw.Specifier == "" {
		return core.Handle{}, false
	}

	var rec *core.Record
	var ok bool
	if strings.HasPrefix(raw.Specifier, ".") {
		rec, _, ok = r.idx.ResolveRelative(raw.Specifier, path.Dir(fromRec.CanonicalPath))
	} else {
		rec, _, ok = r.idx.ResolveUnderRoot(raw.Specifier)
		if !ok {
			rec, ok = r.resolveAlias(raw.Specifier)
		}
	}
	if !ok || rec.Summary == nil {
		return core.Handle{}, false
	}
	return rec.Summary.Handle, true
}

// resolveAlias tries every configured alias pattern, in declaration
// order, for specifiers that don't fall under a primary root.
func (r *Resolver) resolveAlias(specifier string) (*core.Record, bool) {
	for _, aliases := range [][]config.AliasSource{r.modelAliases, r.mixinAliases} {
		candidate, _, matched := config.Resolve(aliases, specifier)
		if !matched {
			continue
		}
		for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
			if rec, ok := r.idx.Lookup(candidate + ext); ok {
				return rec, true
			}
		}
		if rec, ok := r.idx.Lookup(candidate); ok {
			return rec, true
		}
	}
	return nil, false
}

func kindOf(classification core.Classification) core.Kind {
	switch classification {
	case core.ClassIntermediateModel:
		return core.KindIntermediateModel
	case core.ClassMixin:
		return core.KindMixin
	default:
		return core.KindModel
	}
}

// ImportSpecifierFor computes the specifier an emitted artifact should
// use to import a symbol identified by kebabName, given its
// materialization decision, per spec.md §4.3's inverse mapping.
func ImportSpecifierFor(decision core.Decision, kebabName string, cfg *config.Config) string {
	switch decision {
	case core.DecisionTrait:
		return cfg.TraitsImport + "/" + kebabName + ".schema.types"
	case core.DecisionResource:
		return cfg.ResourcesImport + "/" + kebabName + ".schema.types"
	default:
		return cfg.ExtensionsImport + "/" + kebabName
	}
}

// TypeSymbolsPath derives the core-types path the `Type` brand symbol is
// imported from: legacySource with its last path segment stripped and
// "core-types/symbols" appended, per spec.md §4.3.
func TypeSymbolsPath(legacySource string) string {
	trimmed := strings.TrimSuffix(legacySource, "/")
	parent := path.Dir(trimmed)
	if parent == "." || parent == "/" {
		return "core-types/symbols"
	}
	return parent + "/core-types/symbols"
}
