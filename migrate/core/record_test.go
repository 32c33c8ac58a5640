package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/emberdata-migrate/migrate/core"
)

func TestSurfaceForExt(t *testing.T) {
	assert.Equal(t, core.SurfaceTyped, core.SurfaceForExt(".ts"))
	assert.Equal(t, core.SurfaceTyped, core.SurfaceForExt(".tsx"))
	assert.Equal(t, core.SurfaceUntyped, core.SurfaceForExt(".js"))
	assert.Equal(t, core.SurfaceUntyped, core.SurfaceForExt(".jsx"))
	assert.Equal(t, core.SurfaceUntyped, core.SurfaceForExt(""))
}

func TestRecordExt(t *testing.T) {
	typed := &core.Record{Surface: core.SurfaceTyped}
	assert.Equal(t, ".ts", typed.Ext())

	untyped := &core.Record{Surface: core.SurfaceUntyped}
	assert.Equal(t, ".js", untyped.Ext())
}

func TestHandleStringAndEmpty(t *testing.T) {
	var empty core.Handle
	assert.True(t, empty.Empty())

	h := core.Handle{Kind: core.KindModel, CanonicalImportPath: "app/models/user"}
	assert.False(t, h.Empty())
	assert.Equal(t, "model:app/models/user", h.String())
}

func TestSummaryAddTraitReferenceDedups(t *testing.T) {
	s := &core.Summary{}
	target := core.Handle{Kind: core.KindMixin, CanonicalImportPath: "app/mixins/trackable"}

	s.AddTraitReference(core.TraitReference{Target: target, Origin: core.TraitFromExtend})
	s.AddTraitReference(core.TraitReference{Target: target, Origin: core.TraitFromPolymorphic})

	assert.Len(t, s.TraitReferences, 1)
	assert.Equal(t, core.TraitFromExtend, s.TraitReferences[0].Origin, "first occurrence wins")
}

func TestSummaryFieldByName(t *testing.T) {
	s := &core.Summary{Fields: []core.FieldDescriptor{{Name: "title", Kind: core.FieldAttribute}}}

	f, ok := s.FieldByName("title")
	assert.True(t, ok)
	assert.Equal(t, core.FieldAttribute, f.Kind)

	_, ok = s.FieldByName("missing")
	assert.False(t, ok)
}

func TestResidualMemberContent(t *testing.T) {
	noTrivia := core.ResidualMember{Location: core.Location{Raw: "method() {}"}}
	assert.Equal(t, "method() {}", noTrivia.Content())

	withTrivia := core.ResidualMember{
		LeadingTrivia: "// a comment",
		Location:      core.Location{Raw: "method() {}"},
	}
	assert.Equal(t, "// a comment\nmethod() {}", withTrivia.Content())
}
