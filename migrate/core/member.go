package core

// TraitOrigin records how a Trait Reference was discovered.
type TraitOrigin string

const (
	// TraitFromExtend means the mixin was named in Model.extend(...)/
	// Mixin.createWithMixins(...) or a base-mixin list.
	TraitFromExtend TraitOrigin = "extend"
	// TraitFromPolymorphic means the mixin was named only as the
	// type-name of a polymorphic belongsTo relationship.
	TraitFromPolymorphic TraitOrigin = "polymorphic"
	// TraitFromTransitive means the mixin was reached via another
	// mixin's own base-mixin reference (mixin-of-mixin chain).
	TraitFromTransitive TraitOrigin = "transitive"
	// TraitFromTypeOnly means the mixin identifier only appears in a
	// type-only position (e.g. an interface/type annotation) in a model
	// that does not also compose the mixin at runtime.
	TraitFromTypeOnly TraitOrigin = "type-only"
)

// TraitReference is the mention of a mixin by one of its consumers.
type TraitReference struct {
	Target Handle
	Origin TraitOrigin
}

// Location pinpoints a byte range in an original source file, used to
// relocate residual members verbatim.
type Location struct {
	Start int
	End   int
	Raw   string
}

// ResidualMember is a class-body or mixin-object-literal member that is
// not a recognized field decoration: getters, setters, methods, and
// decorated methods whose decorator is not attr/belongsTo/hasMany.
// LeadingTrivia captures any preceding comment/decorator text so it can
// be relocated together with the member.
type ResidualMember struct {
	Name          string
	LeadingTrivia string
	Location      Location
	ShadowsField  bool // true when Name collides with a FieldDescriptor.Name
}

// Content returns the verbatim source text to relocate, trivia included.
func (m ResidualMember) Content() string {
	if m.LeadingTrivia == "" {
		return m.Location.Raw
	}
	return m.LeadingTrivia + "\n" + m.Location.Raw
}
