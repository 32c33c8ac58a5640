// Package plan implements the Dependency Planner (C4): it determines
// mixin connectivity, orders every classified symbol into a deterministic
// processing schedule, decides how each symbol materializes, and applies
// the models-only/mixins-only/generate-external-resources/skip-processed
// filters from spec.md §4.4.
package plan

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"

	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// Planner produces the processing schedule from a set of resolved
// records, per spec.md §4.4.
type Planner struct {
	cfg *config.Config
	fs  afs.Service
}

// New constructs a Planner. fs is used only for the skip-processed
// existence check; a nil fs disables that filter even if configured.
func New(cfg *config.Config, fs afs.Service) *Planner {
	return &Planner{cfg: cfg, fs: fs}
}

// Plan builds the ordered []*core.Plan for records, applying connectivity,
// scheduling, materialization, and the configured filters. Returned
// errors are warnings (cycle breaks); Plan never aborts on them.
func (p *Planner) Plan(ctx context.Context, records []*core.Record) ([]*core.Plan, []error) {
	symbols := classifiedOnly(records)
	byHandle := indexByHandle(symbols)

	var warnings []error
	warnings = append(warnings, p.markPolymorphicReferences(symbols, byHandle)...)

	connected := connectivity(symbols, byHandle)

	cycleWarnings := breakCycles(symbols, byHandle)
	warnings = append(warnings, cycleWarnings...)

	schedule := scheduleOf(symbols, connected)

	plans := make([]*core.Plan, 0, len(schedule))
	planByHandle := make(map[core.Handle]*core.Plan, len(schedule))

	for _, rec := range schedule {
		decision := p.materialize(rec, connected)
		if decision == core.DecisionSkip {
			continue
		}
		if p.filtered(rec, decision) {
			continue
		}

		kn := core.KebabName(rec.Summary.Handle.CanonicalImportPath)
		plan := &core.Plan{
			Origin:        rec,
			Handle:        rec.Summary.Handle,
			Fields:        append([]core.FieldDescriptor(nil), rec.Summary.Fields...),
			TraitRefs:     rec.Summary.TraitReferences,
			BaseHandles:   rec.Summary.BaseHandles,
			Residuals:     rec.Summary.Residuals,
			MaterializeAs: decision,
			KebabName:     kn,
			PascalName:    core.PascalName(kn),
		}

		if rec.Classification == core.ClassIntermediateModel && decision == core.DecisionTrait {
			plan.Fields = append([]core.FieldDescriptor{core.SyntheticIDField()}, plan.Fields...)
		}

		plan.EmitExtension = core.ShouldEmitExtension(plan.Residuals, anyBaseRequiresExtension(plan.TraitRefs, plan.BaseHandles, planByHandle))

		if p.skipProcessed(ctx, plan) {
			continue
		}

		planByHandle[plan.Handle] = plan
		plans = append(plans, plan)
	}

	return plans, warnings
}

func classifiedOnly(records []*core.Record) []*core.Record {
	var out []*core.Record
	for _, rec := range records {
		if rec.Summary == nil || rec.Summary.Handle.Empty() {
			continue
		}
		switch rec.Classification {
		case core.ClassModel, core.ClassIntermediateModel, core.ClassMixin:
			out = append(out, rec)
		}
	}
	return out
}

func indexByHandle(records []*core.Record) map[core.Handle]*core.Record {
	m := make(map[core.Handle]*core.Record, len(records))
	for _, rec := range records {
		m[rec.Summary.Handle] = rec
	}
	return m
}

// markPolymorphicReferences adds a TraitFromPolymorphic Trait Reference
// from every record to any mixin whose kebab-derived canonical name
// matches a polymorphic belongsTo field's type-name, per spec.md §4.4's
// connectivity rule.
func (p *Planner) markPolymorphicReferences(records []*core.Record, byHandle map[core.Handle]*core.Record) []error {
	mixinsByName := make(map[string]core.Handle)
	for _, rec := range records {
		if rec.Classification != core.ClassMixin {
			continue
		}
		mixinsByName[core.KebabName(rec.Summary.Handle.CanonicalImportPath)] = rec.Summary.Handle
	}

	for _, rec := range records {
		for _, field := range rec.Summary.Fields {
			if field.Kind != core.FieldBelongsTo || !field.Options.Polymorphic {
				continue
			}
			target, ok := mixinsByName[field.TypeName]
			if !ok {
				continue
			}
			rec.Summary.AddTraitReference(core.TraitReference{Target: target, Origin: core.TraitFromPolymorphic})
		}
	}
	return nil
}

// connectivity computes the least fixed point of spec.md §4.4's
// connected-mixin rule: a mixin is connected if a model, an intermediate
// model, or another connected mixin holds a Trait Reference to it.
func connectivity(records []*core.Record, byHandle map[core.Handle]*core.Record) map[core.Handle]bool {
	connected := make(map[core.Handle]bool)

	changed := true
	for changed {
		changed = false
		for _, rec := range records {
			originConnected := rec.Classification != core.ClassMixin || connected[rec.Summary.Handle]
			if !originConnected {
				continue
			}
			for _, ref := range rec.Summary.TraitReferences {
				target, ok := byHandle[ref.Target]
				if !ok || target.Classification != core.ClassMixin {
					continue
				}
				if !connected[ref.Target] {
					connected[ref.Target] = true
					changed = true
				}
			}
		}
	}
	return connected
}

// breakCycles detects cycles among mixin→mixin base references and
// deterministically drops the lexicographically largest edge in each,
// per spec.md §4.4.
func breakCycles(records []*core.Record, byHandle map[core.Handle]*core.Record) []error {
	var warnings []error

	edgeKey := func(from, to core.Handle) string {
		return from.CanonicalImportPath + "->" + to.CanonicalImportPath
	}

	for {
		cycle := findMixinCycle(records, byHandle)
		if cycle == nil {
			return warnings
		}

		largest := ""
		var largestFrom *core.Record
		var largestTo core.Handle
		for i, h := range cycle {
			from := byHandle[h]
			to := cycle[(i+1)%len(cycle)]
			key := edgeKey(h, to)
			if key > largest {
				largest = key
				largestFrom = from
				largestTo = to
			}
		}

		largestFrom.Summary.BaseHandles = removeHandle(largestFrom.Summary.BaseHandles, largestTo)
		var droppedRefs []core.TraitReference
		for _, ref := range largestFrom.Summary.TraitReferences {
			if ref.Target == largestTo {
				continue
			}
			droppedRefs = append(droppedRefs, ref)
		}
		largestFrom.Summary.TraitReferences = droppedRefs

		names := make([]string, len(cycle))
		for i, h := range cycle {
			names[i] = h.CanonicalImportPath
		}
		warnings = append(warnings, &core.CycleWarning{Cycle: names, DroppedEdge: largest})
	}
}

func removeHandle(handles []core.Handle, target core.Handle) []core.Handle {
	out := handles[:0]
	for _, h := range handles {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}

// findMixinCycle does a DFS over mixin BaseHandles edges and returns the
// handle sequence of the first cycle found, or nil if the graph is
// acyclic.
func findMixinCycle(records []*core.Record, byHandle map[core.Handle]*core.Record) []core.Handle {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[core.Handle]int)
	var stack []core.Handle

	var visit func(h core.Handle) []core.Handle
	visit = func(h core.Handle) []core.Handle {
		color[h] = gray
		stack = append(stack, h)

		rec := byHandle[h]
		for _, base := range rec.Summary.BaseHandles {
			baseRec, ok := byHandle[base]
			if !ok || baseRec.Classification != core.ClassMixin {
				continue
			}
			switch color[base] {
			case white:
				if cyc := visit(base); cyc != nil {
					return cyc
				}
			case gray:
				for i, s := range stack {
					if s == base {
						return append(append([]core.Handle{}, stack[i:]...))
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[h] = black
		return nil
	}

	var names []core.Handle
	for _, rec := range records {
		if rec.Classification == core.ClassMixin {
			names = append(names, rec.Summary.Handle)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i].CanonicalImportPath < names[j].CanonicalImportPath })

	for _, h := range names {
		if color[h] == white {
			if cyc := visit(h); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// scheduleOf orders records into intermediate-models, then connected
// mixins, then regular models, alphabetical by canonical path within
// each layer, per spec.md §4.4.
func scheduleOf(records []*core.Record, connected map[core.Handle]bool) []*core.Record {
	var intermediates, mixins, models []*core.Record
	for _, rec := range records {
		switch rec.Classification {
		case core.ClassIntermediateModel:
			intermediates = append(intermediates, rec)
		case core.ClassMixin:
			if connected[rec.Summary.Handle] {
				mixins = append(mixins, rec)
			}
		default:
			models = append(models, rec)
		}
	}
	byPath := func(recs []*core.Record) {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].Summary.Handle.CanonicalImportPath < recs[j].Summary.Handle.CanonicalImportPath
		})
	}
	byPath(intermediates)
	byPath(mixins)
	byPath(models)

	out := make([]*core.Record, 0, len(intermediates)+len(mixins)+len(models))
	out = append(out, intermediates...)
	out = append(out, mixins...)
	out = append(out, models...)
	return out
}

// materialize applies spec.md §4.4's materialization decision.
func (p *Planner) materialize(rec *core.Record, connected map[core.Handle]bool) core.Decision {
	switch rec.Classification {
	case core.ClassIntermediateModel:
		return core.DecisionTrait
	case core.ClassMixin:
		if connected[rec.Summary.Handle] {
			return core.DecisionTrait
		}
		return core.DecisionSkip
	default:
		return core.DecisionResource
	}
}

// filtered applies the models-only/mixins-only/generate-external-resources
// filters.
func (p *Planner) filtered(rec *core.Record, decision core.Decision) bool {
	if p.cfg.ModelsOnly && rec.Classification == core.ClassMixin {
		return true
	}
	if p.cfg.MixinsOnly && rec.Classification != core.ClassMixin {
		return true
	}
	if !p.cfg.GenerateExternal() && rec.IsAlias {
		return true
	}
	return false
}

// skipProcessed reports whether every emission target for plan already
// exists on disk, per spec.md §4.4. Disabled when cfg.SkipProcessed is
// false or no afs.Service was supplied.
func (p *Planner) skipProcessed(ctx context.Context, plan *core.Plan) bool {
	if !p.cfg.SkipProcessed || p.fs == nil {
		return false
	}
	for _, target := range emissionTargets(p.cfg, plan) {
		exists, err := p.fs.Exists(ctx, target)
		if err != nil || !exists {
			return false
		}
	}
	return true
}

// emissionTargets lists the on-disk paths the Emitter would write for
// plan, used only by the skip-processed fast path.
func emissionTargets(cfg *config.Config, plan *core.Plan) []string {
	ext := plan.Origin.Ext()
	var dir string
	if plan.MaterializeAs == core.DecisionTrait {
		dir = cfg.ResolvedTraitsDir()
	} else {
		dir = cfg.ResolvedResourcesDir()
	}
	targets := []string{
		fmt.Sprintf("%s/%s.schema%s", dir, plan.KebabName, ext),
		fmt.Sprintf("%s/%s.schema.types.ts", dir, plan.KebabName),
	}
	if plan.EmitExtension {
		targets = append(targets, fmt.Sprintf("%s/%s%s", cfg.ResolvedExtensionsDir(), plan.KebabName, ext))
	}
	return targets
}

// anyBaseRequiresExtension reports whether any of refs/bases' already
// planned symbols themselves emit an extension, used to propagate
// spec.md §3's base-requires-extension invariant through the schedule.
func anyBaseRequiresExtension(refs []core.TraitReference, bases []core.Handle, planByHandle map[core.Handle]*core.Plan) bool {
	for _, ref := range refs {
		if p, ok := planByHandle[ref.Target]; ok && p.EmitExtension {
			return true
		}
	}
	for _, h := range bases {
		if p, ok := planByHandle[h]; ok && p.EmitExtension {
			return true
		}
	}
	return false
}
