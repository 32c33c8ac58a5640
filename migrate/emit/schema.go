package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/emberdata-migrate/migrate/core"
)

// SchemaArtifact renders the schema object-literal artifact for plan,
// per spec.md §4.5: a resource schema for DecisionResource, a trait
// schema for DecisionTrait. Field/trait ordering and option-key order
// are stable, satisfying the idempotence invariant.
func SchemaArtifact(plan *core.Plan) string {
	var b strings.Builder
	ident := camelName(plan.KebabName) + "Schema"

	fmt.Fprintf(&b, "export const %s = {\n", ident)
	if plan.MaterializeAs == core.DecisionResource {
		fmt.Fprintf(&b, "  type: %s,\n", quote(plan.KebabName))
		b.WriteString("  legacy: true,\n")
		b.WriteString("  identity: { kind: '@id', name: 'id' },\n")
	} else {
		fmt.Fprintf(&b, "  name: %s,\n", quote(plan.KebabName))
		b.WriteString("  mode: 'legacy',\n")
	}

	b.WriteString("  fields: [\n")
	for _, f := range plan.Fields {
		b.WriteString("    ")
		b.WriteString(fieldLiteral(f))
		b.WriteString(",\n")
	}
	b.WriteString("  ],\n")

	if traits := traitKebabNames(plan.TraitRefs); len(traits) > 0 {
		b.WriteString("  traits: [")
		for i, name := range traits {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(name))
		}
		b.WriteString("],\n")
	}

	if plan.MaterializeAs == core.DecisionResource && plan.EmitExtension {
		fmt.Fprintf(&b, "  objectExtensions: [%s],\n", quote(plan.PascalName+"Extension"))
	}

	b.WriteString("};\n")
	return b.String()
}

// traitKebabNames extracts the kebab-cased trait names in first-occurrence
// source order, deduplicated (TraitReferences is already deduplicated by
// Summary.AddTraitReference, so this only derives the display name).
func traitKebabNames(refs []core.TraitReference) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, core.KebabName(ref.Target.CanonicalImportPath))
	}
	return names
}

func fieldLiteral(f core.FieldDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{ name: %s, kind: %s, type: %s", quote(f.Name), quote(string(f.Kind)), quote(f.TypeName))
	if !f.Options.IsEmpty() {
		b.WriteString(", options: ")
		b.WriteString(optionsLiteral(f.Options))
	}
	b.WriteString(" }")
	return b.String()
}

// optionsLiteral serializes a FieldOptions object literal in the stable
// key order async -> inverse -> polymorphic -> Extra (alphabetical).
func optionsLiteral(o core.FieldOptions) string {
	var parts []string
	if o.Async != nil {
		parts = append(parts, fmt.Sprintf("async: %s", strconv.FormatBool(*o.Async)))
	}
	if o.Inverse != "" {
		parts = append(parts, fmt.Sprintf("inverse: %s", quote(o.Inverse)))
	}
	if o.Polymorphic {
		parts = append(parts, "polymorphic: true")
	}
	for _, key := range o.OrderedExtraKeys() {
		parts = append(parts, fmt.Sprintf("%s: %s", key, o.Extra[key]))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

// camelName lower-cases the first rune of a PascalCase/kebab-case name,
// used to derive the schema artifact's exported identifier.
func camelName(kebab string) string {
	pascal := core.PascalName(kebab)
	if pascal == "" {
		return pascal
	}
	r := []rune(pascal)
	r[0] = lower(r[0])
	return string(r)
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
