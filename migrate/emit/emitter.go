package emit

import (
	"context"
	"fmt"

	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// Emitter is the Emitter (C5): it renders and writes the schema, types,
// and (when applicable) extension artifacts for every Artifact Plan, in
// schedule order, per spec.md §4.5.
type Emitter struct {
	cfg    *config.Config
	writer *Writer
}

// New constructs an Emitter.
func New(cfg *config.Config, writer *Writer) *Emitter {
	return &Emitter{cfg: cfg, writer: writer}
}

// Emit writes every plan's artifacts, checking ctx for cancellation
// between plans (never mid-plan, per spec.md §5). Returns the number of
// files actually written (excluding skip-processed/no-op matches).
func (e *Emitter) Emit(ctx context.Context, plans []*core.Plan) (int, error) {
	byKebab := make(map[string]*core.Plan, len(plans))
	for _, p := range plans {
		existing, ok := byKebab[p.KebabName]
		if ok && existing.MaterializeAs == core.DecisionTrait && p.MaterializeAs != core.DecisionTrait {
			// spec.md §4.3: when a relationship target name matches both a
			// resource and a trait, the trait wins — never let a later
			// resource plan displace an already-registered trait entry.
			continue
		}
		byKebab[p.KebabName] = p
	}

	written := 0
	for _, p := range plans {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		dir := e.dirFor(p)
		ext := p.Origin.Ext()

		batch := &Batch{}
		batch.Add(fmt.Sprintf("%s/%s.schema%s", dir, p.KebabName, ext), SchemaArtifact(p))
		batch.Add(fmt.Sprintf("%s/%s.schema.types.ts", dir, p.KebabName), TypesArtifact(p, byKebab, e.cfg))
		if p.EmitExtension {
			batch.Add(fmt.Sprintf("%s/%s%s", e.cfg.ResolvedExtensionsDir(), p.KebabName, ext), ExtensionArtifact(p))
		}

		n, err := e.writer.Flush(ctx, batch)
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

func (e *Emitter) dirFor(p *core.Plan) string {
	if p.MaterializeAs == core.DecisionTrait {
		return e.cfg.ResolvedTraitsDir()
	}
	return e.cfg.ResolvedResourcesDir()
}
