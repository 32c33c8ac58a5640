package core

// Decision is the Planner's materialization verdict for a classified
// symbol.
type Decision string

const (
	DecisionResource Decision = "resource"
	DecisionTrait    Decision = "trait"
	DecisionSkip     Decision = "skip"
)

// Plan is an Artifact Plan: the Emitter's input unit for one processed
// symbol. It exists only for the duration of a single run.
type Plan struct {
	Origin        *Record
	Handle        Handle
	Fields        []FieldDescriptor
	TraitRefs     []TraitReference
	BaseHandles   []Handle
	Residuals     []ResidualMember
	MaterializeAs Decision
	EmitExtension bool

	// KebabName is the symbol's canonical-import-path basename, kebab
	// cased, computed once by the Planner and reused by the Emitter for
	// every artifact path and identifier it derives.
	KebabName string
	// PascalName is KebabName converted to PascalCase for the types
	// artifact's interface/class identifiers.
	PascalName string
}

// ShouldEmitExtension applies spec.md §3's invariant: if there are no
// residual members and no base requires an extension, emit-extension is
// false.
func ShouldEmitExtension(residuals []ResidualMember, baseRequiresExtension bool) bool {
	return len(residuals) > 0 || baseRequiresExtension
}
