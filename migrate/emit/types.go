package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/resolve"
)

// TypesArtifact renders the always-.ts interface artifact for plan, per
// spec.md §4.5. byKebab resolves a field's type-name or a trait
// reference's kebab name to its own Plan when that symbol is itself
// being emitted this run (so TypesArtifact knows where to import it
// from); an unmatched type-name is treated as an external reference.
func TypesArtifact(plan *core.Plan, byKebab map[string]*core.Plan, cfg *config.Config) string {
	imports := newImportSet()

	traitNames := make([]string, 0, len(plan.TraitRefs))
	for _, ref := range plan.TraitRefs {
		kebab := core.KebabName(ref.Target.CanonicalImportPath)
		pascal := core.PascalName(kebab)
		traitNames = append(traitNames, pascal)
		imports.add(importSpecFor(kebab, byKebab, cfg), pascal)
	}

	extends := append([]string{}, traitNames...)
	if plan.EmitExtension {
		sig := plan.PascalName + "ExtensionSignature"
		extends = append(extends, sig)
		imports.add(cfg.ExtensionsImport+"/"+plan.KebabName, sig)
	}

	var body strings.Builder
	usesHasMany, usesAsyncHasMany := false, false
	for _, f := range plan.Fields {
		switch f.Kind {
		case core.FieldAttribute:
			fmt.Fprintf(&body, "  readonly %s: %s | null;\n", f.Name, TSType(f.TypeName, cfg))
		case core.FieldBelongsTo:
			target := targetType(f.TypeName, byKebab, cfg, imports)
			fmt.Fprintf(&body, "  readonly %s: %s | null;\n", f.Name, target)
		case core.FieldHasMany:
			target := targetType(f.TypeName, byKebab, cfg, imports)
			if isAsync(f) {
				usesAsyncHasMany = true
				fmt.Fprintf(&body, "  readonly %s: AsyncHasMany<%s>;\n", f.Name, target)
			} else {
				usesHasMany = true
				fmt.Fprintf(&body, "  readonly %s: HasMany<%s>;\n", f.Name, target)
			}
		}
	}

	if plan.MaterializeAs == core.DecisionResource {
		imports.add(resolve.TypeSymbolsPath(cfg.EmberDataImportSource), "Type")
		fmt.Fprintf(&body, "  readonly [Type]: %s;\n", quote(plan.KebabName))
	}

	if usesHasMany {
		imports.add(cfg.EmberDataImportSource, "HasMany")
	}
	if usesAsyncHasMany {
		imports.add(cfg.EmberDataImportSource, "AsyncHasMany")
	}

	var out strings.Builder
	out.WriteString(imports.render())
	if imports.len() > 0 {
		out.WriteString("\n")
	}
	fmt.Fprintf(&out, "export interface %s", plan.PascalName)
	if len(extends) > 0 {
		fmt.Fprintf(&out, " extends %s", strings.Join(extends, ", "))
	}
	out.WriteString(" {\n")
	out.WriteString(body.String())
	out.WriteString("}\n")
	return out.String()
}

func isAsync(f core.FieldDescriptor) bool {
	return f.Options.Async != nil && *f.Options.Async
}

// targetType resolves a belongsTo/hasMany field's type-name to the
// TypeScript identifier of its target, preferring a trait over a
// resource when both exist for the same kebab name (spec.md §4.3's
// tie-break rule), and recording the import it needs.
func targetType(typeName string, byKebab map[string]*core.Plan, cfg *config.Config, imports *importSet) string {
	if target, ok := byKebab[typeName]; ok {
		pascal := target.PascalName
		imports.add(importSpecFor(typeName, byKebab, cfg), pascal)
		return pascal
	}
	return TSType(typeName, cfg)
}

func importSpecFor(kebab string, byKebab map[string]*core.Plan, cfg *config.Config) string {
	target, ok := byKebab[kebab]
	decision := core.DecisionResource
	if ok {
		decision = target.MaterializeAs
	}
	return resolve.ImportSpecifierFor(decision, kebab, cfg)
}

// importSet accumulates named imports per module specifier, in
// first-seen specifier order, for stable (deterministic) rendering.
type importSet struct {
	order []string
	names map[string]map[string]bool
}

func newImportSet() *importSet {
	return &importSet{names: make(map[string]map[string]bool)}
}

func (s *importSet) add(specifier, name string) {
	if specifier == "" || name == "" {
		return
	}
	if _, ok := s.names[specifier]; !ok {
		s.names[specifier] = make(map[string]bool)
		s.order = append(s.order, specifier)
	}
	s.names[specifier][name] = true
}

func (s *importSet) len() int { return len(s.order) }

func (s *importSet) render() string {
	var b strings.Builder
	for _, specifier := range s.order {
		names := make([]string, 0, len(s.names[specifier]))
		for n := range s.names[specifier] {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "import { %s } from %s;\n", strings.Join(names, ", "), quote(specifier))
	}
	return b.String()
}
