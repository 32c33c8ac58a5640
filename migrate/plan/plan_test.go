package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/plan"
)

func handle(kind core.Kind, path string) core.Handle {
	return core.Handle{Kind: kind, CanonicalImportPath: path}
}

func modelRecord(path string, traits ...core.Handle) *core.Record {
	var refs []core.TraitReference
	for _, h := range traits {
		refs = append(refs, core.TraitReference{Target: h, Origin: core.TraitFromExtend})
	}
	return &core.Record{
		CanonicalPath:  path,
		Classification: core.ClassModel,
		Summary: &core.Summary{
			Handle:          handle(core.KindModel, path),
			TraitReferences: refs,
		},
	}
}

func mixinRecord(path string, bases ...core.Handle) *core.Record {
	var refs []core.TraitReference
	for _, h := range bases {
		refs = append(refs, core.TraitReference{Target: h, Origin: core.TraitFromExtend})
	}
	return &core.Record{
		CanonicalPath:  path,
		Classification: core.ClassMixin,
		Summary: &core.Summary{
			Handle:          handle(core.KindMixin, path),
			BaseHandles:     bases,
			TraitReferences: refs,
		},
	}
}

func TestPlanMaterializesModelsAndConnectedMixinsOnly(t *testing.T) {
	trackable := handle(core.KindMixin, "app/mixins/trackable")
	orphan := handle(core.KindMixin, "app/mixins/orphan")

	records := []*core.Record{
		modelRecord("app/models/account", trackable),
		mixinRecord("app/mixins/trackable"),
		mixinRecord("app/mixins/orphan"),
	}

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"

	p := plan.New(cfg, nil)
	plans, warnings := p.Plan(context.Background(), records)
	assert.Empty(t, warnings)

	byKebab := make(map[string]*core.Plan)
	for _, pl := range plans {
		byKebab[pl.KebabName] = pl
	}

	require.Contains(t, byKebab, "account")
	assert.Equal(t, core.DecisionResource, byKebab["account"].MaterializeAs)

	require.Contains(t, byKebab, "trackable")
	assert.Equal(t, core.DecisionTrait, byKebab["trackable"].MaterializeAs)

	assert.NotContains(t, byKebab, "orphan", "unreferenced mixin must be skipped")
}

func TestPlanOrdersIntermediateModelsMixinsThenModels(t *testing.T) {
	base := handle(core.KindIntermediateModel, "app/models/base")
	trackable := handle(core.KindMixin, "app/mixins/trackable")

	intermediate := &core.Record{
		CanonicalPath:  "app/models/base",
		Classification: core.ClassIntermediateModel,
		Summary: &core.Summary{
			Handle:          base,
			TraitReferences: []core.TraitReference{{Target: trackable, Origin: core.TraitFromExtend}},
		},
	}
	records := []*core.Record{
		modelRecord("app/models/zeta"),
		mixinRecord("app/mixins/trackable"),
		intermediate,
		modelRecord("app/models/alpha"),
	}

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"

	p := plan.New(cfg, nil)
	plans, _ := p.Plan(context.Background(), records)

	var order []string
	for _, pl := range plans {
		order = append(order, pl.KebabName)
	}
	assert.Equal(t, []string{"base", "trackable", "alpha", "zeta"}, order)
}

func TestPlanIntermediateModelTraitGetsSyntheticIDField(t *testing.T) {
	base := handle(core.KindIntermediateModel, "app/models/base")
	intermediate := &core.Record{
		CanonicalPath:  "app/models/base",
		Classification: core.ClassIntermediateModel,
		Summary: &core.Summary{
			Handle: base,
			Fields: []core.FieldDescriptor{{Name: "createdAt", Kind: core.FieldAttribute, TypeName: "date"}},
		},
	}
	records := []*core.Record{intermediate}

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"

	p := plan.New(cfg, nil)
	plans, _ := p.Plan(context.Background(), records)
	require.Len(t, plans, 1)

	require.NotEmpty(t, plans[0].Fields)
	assert.Equal(t, "id", plans[0].Fields[0].Name)
	assert.True(t, plans[0].Fields[0].Synthetic)

	found := false
	for _, f := range plans[0].Fields {
		if f.Name == "id" && f.Synthetic {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPlanBreaksMixinCycleDeterministically(t *testing.T) {
	a := handle(core.KindMixin, "app/mixins/a")
	b := handle(core.KindMixin, "app/mixins/b")
	model := modelRecord("app/models/account", a)

	mixinA := mixinRecord("app/mixins/a", b)
	mixinB := mixinRecord("app/mixins/b", a)

	records := []*core.Record{model, mixinA, mixinB}

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"

	p := plan.New(cfg, nil)
	_, warnings := p.Plan(context.Background(), records)

	require.Len(t, warnings, 1)
	cycleWarn, ok := warnings[0].(*core.CycleWarning)
	require.True(t, ok)
	assert.Equal(t, "app/mixins/b->app/mixins/a", cycleWarn.DroppedEdge)
}

func TestPlanModelsOnlyFilterSuppressesMixins(t *testing.T) {
	trackable := handle(core.KindMixin, "app/mixins/trackable")
	records := []*core.Record{
		modelRecord("app/models/account", trackable),
		mixinRecord("app/mixins/trackable"),
	}

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"
	cfg.ModelsOnly = true

	p := plan.New(cfg, nil)
	plans, _ := p.Plan(context.Background(), records)

	require.Len(t, plans, 1)
	assert.Equal(t, "account", plans[0].KebabName)
}

func TestPlanGenerateExternalResourcesFalseSkipsAliasRecords(t *testing.T) {
	record := modelRecord("shared/models/account")
	record.IsAlias = true

	cfg := config.Default()
	cfg.ResourcesDir, cfg.TraitsDir, cfg.ExtensionsDir = "out/resources", "out/traits", "out/extensions"
	no := false
	cfg.GenerateExternalResources = &no

	p := plan.New(cfg, nil)
	plans, _ := p.Plan(context.Background(), []*core.Record{record})
	assert.Empty(t, plans)
}

func TestPlanSkipProcessedSkipsWhenEveryTargetExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resources"), 0755))
	record := modelRecord("app/models/account")
	record.Surface = core.SurfaceUntyped

	cfg := config.Default()
	cfg.ResourcesDir = filepath.Join(dir, "resources")
	cfg.TraitsDir = filepath.Join(dir, "traits")
	cfg.ExtensionsDir = filepath.Join(dir, "extensions")
	cfg.SkipProcessed = true

	require.NoError(t, os.WriteFile(filepath.Join(cfg.ResourcesDir, "account.schema.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ResourcesDir, "account.schema.types.ts"), []byte("x"), 0644))

	p := plan.New(cfg, afs.New())
	plans, _ := p.Plan(context.Background(), []*core.Record{record})
	assert.Empty(t, plans, "plan with every emission target already on disk should be skipped")
}
