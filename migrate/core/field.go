package core

// FieldKind is the relationship/attribute kind a field decorator declares.
type FieldKind string

const (
	FieldAttribute FieldKind = "attribute"
	FieldBelongsTo FieldKind = "belongsTo"
	FieldHasMany   FieldKind = "hasMany"
)

// recognized option keys, in the stable serialization order required by
// spec.md's idempotence invariant: async -> inverse -> polymorphic -> the
// rest, alphabetically.
const (
	OptionAsync       = "async"
	OptionInverse     = "inverse"
	OptionPolymorphic = "polymorphic"
)

// FieldOptions is the parsed object-literal argument of a field decorator.
// Async/Inverse/Polymorphic are recognized keys; Extra holds any other
// key verbatim (as source text) for opaque pass-through.
type FieldOptions struct {
	Async       *bool
	Inverse     string
	Polymorphic bool
	Extra       map[string]string
}

// IsEmpty reports whether no option was ever set, so the Emitter can omit
// the options object entirely.
func (o *FieldOptions) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.Async == nil && o.Inverse == "" && !o.Polymorphic && len(o.Extra) == 0
}

// OrderedExtraKeys returns the Extra map's keys sorted alphabetically, for
// deterministic emission.
func (o *FieldOptions) OrderedExtraKeys() []string {
	if o == nil || len(o.Extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		keys = append(keys, k)
	}
	// simple insertion sort keeps this dependency-free and matches the
	// small-N case (option maps rarely exceed a handful of keys)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// FieldDescriptor is the semantic content of one declared field.
type FieldDescriptor struct {
	Name     string
	Kind     FieldKind
	TypeName string // kebab-case string argument to the decorator
	Options  FieldOptions

	// Synthetic marks fields the Planner injects (e.g. the id field added
	// to intermediate-model traits) rather than ones found in source.
	Synthetic bool
}

// SyntheticIDField is the field descriptor added to every intermediate
// model materialized as a trait, per spec.md §4.4, so extension code
// referencing this.id still type-checks.
func SyntheticIDField() FieldDescriptor {
	return FieldDescriptor{
		Name:      "id",
		Kind:      FieldAttribute,
		TypeName:  "string",
		Synthetic: true,
	}
}
