package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/emit"
)

func residualPlan(surface core.Surface) *core.Plan {
	return &core.Plan{
		KebabName:  "account",
		PascalName: "Account",
		Origin:     &core.Record{Surface: surface},
		Residuals: []core.ResidualMember{
			{
				Name: "greet",
				Location: core.Location{
					Raw: "greet() {\n  return this.name;\n}",
				},
			},
		},
	}
}

func TestExtensionArtifactTyped(t *testing.T) {
	out := emit.ExtensionArtifact(residualPlan(core.SurfaceTyped))
	assert.Contains(t, out, "import { Account } from './account.schema.types';")
	assert.Contains(t, out, "interface AccountExtension extends Account {}")
	assert.Contains(t, out, "class AccountExtension {")
	assert.Contains(t, out, "greet() {")
	assert.Contains(t, out, "export type AccountExtensionSignature = typeof AccountExtension;")
}

func TestExtensionArtifactUntyped(t *testing.T) {
	out := emit.ExtensionArtifact(residualPlan(core.SurfaceUntyped))
	assert.Contains(t, out, "@type")
	assert.Contains(t, out, "class AccountExtension extends Base {")
	assert.Contains(t, out, "module.exports.AccountExtension = AccountExtension;")
}

func TestExtensionArtifactPreservesResidualContentVerbatim(t *testing.T) {
	out := emit.ExtensionArtifact(residualPlan(core.SurfaceTyped))
	assert.Contains(t, out, "return this.name;")
}

func TestExtensionArtifactPreservesNestedIndentation(t *testing.T) {
	// Modeled on a tree-sitter node's captured source range: every line
	// after the first keeps its original absolute column indentation
	// (here, a method nested two levels inside a 2-space-indented class
	// body), including the member's own closing brace at its base indent.
	plan := &core.Plan{
		KebabName:  "account",
		PascalName: "Account",
		Origin:     &core.Record{Surface: core.SurfaceTyped},
		Residuals: []core.ResidualMember{
			{
				Name: "describe",
				Location: core.Location{
					Raw: "describe() {\n    if (this.active) {\n      return this.name;\n    }\n    return null;\n  }",
				},
			},
		},
	}

	out := emit.ExtensionArtifact(plan)
	assert.Contains(t, out, "  describe() {\n")
	assert.Contains(t, out, "\n    if (this.active) {\n")
	assert.Contains(t, out, "\n      return this.name;\n")
	assert.Contains(t, out, "\n    }\n")
	assert.Contains(t, out, "\n    return null;\n")
	assert.Contains(t, out, "\n  }\n")
}
