package classify

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/emberdata-migrate/internal/tsast"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// classifyMixinExpression handles spec.md §4.2's Mixin rule:
// `Mixin.create(...)` or `Mixin.createWithMixins(baseMixin, ..., objLit)`
// where the file imports the legacy mixin constructor. Returns nil if
// exportNode isn't one of these shapes.
func (c *Classifier) classifyMixinExpression(exportNode *sitter.Node, src []byte, imports map[string]tsast.ImportBinding) *core.Summary {
	if exportNode.Type() != "call_expression" {
		return nil
	}
	fn := exportNode.ChildByFieldName("function")
	if fn == nil || fn.Type() != "member_expression" {
		return nil
	}
	object := fn.ChildByFieldName("object")
	property := fn.ChildByFieldName("property")
	if object == nil || property == nil {
		return nil
	}
	if object.Type() != "identifier" {
		return nil
	}
	if _, imported := imports[tsast.Text(object, src)]; !imported {
		// The legacy Mixin constructor must itself be an imported symbol,
		// per spec.md §4.2 ("the imports include the legacy mixin
		// constructor"). A locally-declared object with an unrelated
		// `.create`/`.createWithMixins` method is not a mixin.
		return nil
	}

	methodName := tsast.Text(property, src)
	argsNode := exportNode.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil
	}
	args := tsast.NamedChildren(argsNode)

	switch methodName {
	case "create":
		if len(args) == 0 {
			return nil
		}
		return c.summaryFromMixinBody(args[len(args)-1], src, imports, nil)
	case "createWithMixins":
		if len(args) == 0 {
			return nil
		}
		objLit := args[len(args)-1]
		var bases []core.RawRef
		for _, arg := range args[:len(args)-1] {
			if arg.Type() != "identifier" {
				continue
			}
			name := tsast.Text(arg, src)
			ref := core.RawRef{Identifier: name, Origin: core.TraitFromExtend}
			if binding, ok := imports[name]; ok {
				ref.Specifier = binding.Path
			}
			bases = append(bases, ref)
		}
		return c.summaryFromMixinBody(objLit, src, imports, bases)
	default:
		return nil
	}
}

// summaryFromMixinBody extracts field/residual members from a mixin's
// object literal, per spec.md §4.2: properties whose value is a call to
// attr/belongsTo/hasMany become Field Descriptors; everything else is a
// residual member.
func (c *Classifier) summaryFromMixinBody(objLit *sitter.Node, src []byte, imports map[string]tsast.ImportBinding, bases []core.RawRef) *core.Summary {
	if objLit == nil || objLit.Type() != "object" {
		return &core.Summary{RawBases: bases, RawTraitRefs: bases}
	}

	summary := &core.Summary{RawBases: bases, RawTraitRefs: bases}

	for _, prop := range tsast.NamedChildren(objLit) {
		classifyMixinProperty(summary, prop, objLit, src, imports)
	}
	return summary
}
