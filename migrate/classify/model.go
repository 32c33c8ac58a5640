package classify

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/emberdata-migrate/internal/tsast"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// classifyClassLike handles spec.md §4.2's Model rule: a class whose
// extends-clause references Model, Model.extend(...mixins), or a
// previously-declared intermediate-model identifier (directly or via
// .extend(...)). Returns nil if the extends clause matches none of these
// shapes, in which case the file is ClassIgnored.
func (c *Classifier) classifyClassLike(classNode *sitter.Node, src []byte, imports map[string]tsast.ImportBinding) *core.Summary {
	heritage := classNode.ChildByFieldName("heritage")
	if heritage == nil {
		// tree-sitter-typescript labels this "superclass" in some grammar
		// versions; fall back to scanning named children for the clause.
		heritage = tsast.FirstChildOfType(classNode, "class_heritage")
	}
	if heritage == nil {
		return nil
	}

	baseClassName, extendArgs, ok := parseHeritage(heritage, src)
	if !ok {
		return nil
	}
	if !c.isModelBase(baseClassName, imports) {
		return nil
	}

	summary := &core.Summary{BaseClass: baseClassName}

	for _, argName := range extendArgs {
		binding, isImport := imports[argName]
		ref := core.RawRef{Identifier: argName, Origin: core.TraitFromExtend}
		if isImport {
			ref.Specifier = binding.Path
		}
		summary.RawBases = append(summary.RawBases, ref)
		summary.RawTraitRefs = append(summary.RawTraitRefs, ref)
	}

	body := tsast.ClassBody(classNode)
	if body == nil {
		return summary
	}

	for _, member := range tsast.ClassMembers(body) {
		classifyMember(summary, member, body, src, imports)
	}

	recordTypeOnlyMixinUses(summary, classNode, src, imports)

	return summary
}

// isModelBase checks spec.md §4.2 rule (a)/(c): the extends-clause root
// must be an import of either the legacy Model symbol (from the
// configured ember-data import source) or a relatively-imported symbol
// that may resolve to a previously-declared intermediate model — never a
// locally-declared identifier or an unrelated package import (Component,
// Route, Serializer, ...), which the Resolver would never connect to an
// intermediate-model Record regardless.
func (c *Classifier) isModelBase(baseClassName string, imports map[string]tsast.ImportBinding) bool {
	binding, isImport := imports[baseClassName]
	if !isImport {
		return false
	}
	if binding.Path == c.cfg.EmberDataImportSource {
		return true
	}
	return strings.HasPrefix(binding.Path, ".")
}

// parseHeritage inspects a class_heritage/extends clause and returns the
// base class identifier (Model, or an intermediate-model identifier) and
// the ordered list of mixin identifiers passed to any .extend(...) call,
// per spec.md §4.2 options (a)/(b)/(c).
func parseHeritage(heritage *sitter.Node, src []byte) (baseClassName string, mixinArgs []string, ok bool) {
	// extends_clause -> value is either an identifier (Model, or an
	// intermediate-model symbol) or a call_expression chain of
	// `.extend(...)` calls rooted at one of those identifiers.
	value := firstExpressionChild(heritage)
	if value == nil {
		return "", nil, false
	}
	return walkExtendChain(value, src)
}

func firstExpressionChild(heritage *sitter.Node) *sitter.Node {
	children := tsast.NamedChildren(heritage)
	if len(children) == 0 {
		return nil
	}
	first := children[0]
	if first.Type() == "extends_clause" {
		// tree-sitter-typescript wraps the extended expression in an
		// extends_clause; the javascript grammar places it directly
		// under class_heritage.
		if value := first.ChildByFieldName("value"); value != nil {
			return value
		}
		return tsast.FirstChildOfType(first, "identifier", "call_expression")
	}
	return first
}

// walkExtendChain unwinds `X.extend(a, b).extend(c)` into the root
// identifier X and the concatenation of every .extend(...) call's
// identifier arguments, in source (left-to-right, i.e. call order).
func walkExtendChain(node *sitter.Node, src []byte) (string, []string, bool) {
	switch node.Type() {
	case "identifier":
		return tsast.Text(node, src), nil, true
	case "call_expression":
		fn := node.ChildByFieldName("function")
		if fn == nil {
			return "", nil, false
		}
		if fn.Type() != "member_expression" {
			return "", nil, false
		}
		object := fn.ChildByFieldName("object")
		property := fn.ChildByFieldName("property")
		if object == nil || property == nil || tsast.Text(property, src) != "extend" {
			return "", nil, false
		}
		base, priorArgs, ok := walkExtendChain(object, src)
		if !ok {
			return "", nil, false
		}
		var newArgs []string
		if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
			for _, arg := range tsast.NamedChildren(argsNode) {
				if arg.Type() == "identifier" {
					newArgs = append(newArgs, tsast.Text(arg, src))
				}
			}
		}
		return base, append(priorArgs, newArgs...), true
	default:
		return "", nil, false
	}
}

// recordTypeOnlyMixinUses implements spec.md §4.2's type-only mixin
// import rule: a mixin identifier imported with `import type` that never
// appears in the extends chain is still a Trait Reference, just with
// TraitFromTypeOnly origin, because the model's type signature composes
// it even though runtime composition happens elsewhere.
func recordTypeOnlyMixinUses(summary *core.Summary, classNode *sitter.Node, src []byte, imports map[string]tsast.ImportBinding) {
	used := make(map[string]bool)
	for _, ref := range summary.RawTraitRefs {
		used[ref.Identifier] = true
	}

	body := tsast.ClassBody(classNode)
	if body == nil {
		return
	}

	tsast.Walk(body, func(n *sitter.Node) bool {
		if n.Type() != "type_identifier" && n.Type() != "identifier" {
			return true
		}
		name := tsast.Text(n, src)
		binding, isImport := imports[name]
		if !isImport || !binding.TypeOnly || used[name] {
			return true
		}
		used[name] = true
		summary.RawTraitRefs = append(summary.RawTraitRefs, core.RawRef{
			Identifier: name,
			Specifier:  binding.Path,
			Origin:     core.TraitFromTypeOnly,
		})
		return true
	})
}
