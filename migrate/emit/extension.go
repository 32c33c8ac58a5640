package emit

import (
	"fmt"
	"strings"

	"github.com/viant/emberdata-migrate/migrate/core"
)

// ExtensionArtifact renders the extension envelope for plan's residual
// members, per spec.md §4.5. Callers should only invoke this when
// plan.EmitExtension is true.
func ExtensionArtifact(plan *core.Plan) string {
	if plan.Origin.Surface == core.SurfaceTyped {
		return typedExtension(plan)
	}
	return untypedExtension(plan)
}

func typedExtension(plan *core.Plan) string {
	var b strings.Builder
	typesSpecifier := "./" + plan.KebabName + ".schema.types"
	fmt.Fprintf(&b, "import { %s } from %s;\n\n", plan.PascalName, quote(typesSpecifier))
	fmt.Fprintf(&b, "interface %sExtension extends %s {}\n\n", plan.PascalName, plan.PascalName)
	fmt.Fprintf(&b, "class %sExtension {\n", plan.PascalName)
	writeResiduals(&b, plan.Residuals)
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "export type %sExtensionSignature = typeof %sExtension;\n", plan.PascalName, plan.PascalName)
	return b.String()
}

func untypedExtension(plan *core.Plan) string {
	var b strings.Builder
	typesSpecifier := "./" + plan.KebabName + ".schema.types"
	fmt.Fprintf(&b, "/** @type {{ new(): import(%s).%s }} */\n", quote(typesSpecifier), plan.PascalName)
	b.WriteString("const Base = class {};\n\n")
	fmt.Fprintf(&b, "class %sExtension extends Base {\n", plan.PascalName)
	writeResiduals(&b, plan.Residuals)
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "/** @typedef {typeof %sExtension} %sExtensionSignature */\n", plan.PascalName, plan.PascalName)
	b.WriteString(fmt.Sprintf("module.exports.%sExtension = %sExtension;\n", plan.PascalName, plan.PascalName))
	return b.String()
}

// writeResiduals relocates every residual member verbatim (trivia
// included), indented one level into the extension class body. spec.md
// §4.5 requires the source range preserved minus indentation, so the
// block's common leading whitespace is stripped and replaced with the
// class body's indent — each line's *relative* indentation within the
// member is otherwise kept intact.
func writeResiduals(b *strings.Builder, residuals []core.ResidualMember) {
	for i, r := range residuals {
		if i > 0 {
			b.WriteString("\n")
		}
		lines := strings.Split(r.Content(), "\n")
		strip := commonLeadingWhitespace(lines)
		for idx, line := range lines {
			line = strings.TrimRight(line, " \t")
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString("  ")
			if idx == 0 {
				// The first line starts mid-statement (the member's own
				// leading whitespace was already excluded from its
				// source range), so it carries no indentation to strip.
				b.WriteString(strings.TrimLeft(line, " \t"))
			} else if len(line) >= strip {
				b.WriteString(line[strip:])
			} else {
				b.WriteString(strings.TrimLeft(line, " \t"))
			}
			b.WriteString("\n")
		}
	}
}

// commonLeadingWhitespace returns the length of the longest run of
// leading spaces/tabs shared by every non-blank line after the first.
func commonLeadingWhitespace(lines []string) int {
	common := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || n < common {
			common = n
		}
	}
	if common == -1 {
		return 0
	}
	return common
}
