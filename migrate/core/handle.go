// Package core holds the data types shared across the Source Index,
// Classifier, Resolver, Planner and Emitter: symbol handles, field
// descriptors, file records and artifact plans.
package core

// Kind identifies what a classified symbol is.
type Kind string

const (
	KindModel             Kind = "model"
	KindIntermediateModel Kind = "intermediate-model"
	KindMixin             Kind = "mixin"
)

// Handle is the stable identity of a classified symbol: the pair of its
// kind and the canonical import specifier that will resolve to its
// post-migration artifact. Two File Records can never share a Handle.
type Handle struct {
	Kind               Kind
	CanonicalImportPath string
}

// String renders a handle for logging and map keys.
func (h Handle) String() string {
	return string(h.Kind) + ":" + h.CanonicalImportPath
}

// Empty reports whether the handle was never resolved.
func (h Handle) Empty() bool {
	return h.CanonicalImportPath == ""
}
