package tsast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Decorator is a single `@name(args...)` annotation attached to a class
// member, modeled per spec.md's DESIGN NOTES as a pattern match over the
// syntax tree rather than evaluated language semantics: the identifier
// and each argument's literal AST form, nothing more.
type Decorator struct {
	Name      string
	Arguments []*sitter.Node
	Node      *sitter.Node
}

// MemberDecorators returns the decorators attached to a class member
// (field_definition / method_definition / public_field_definition).
// tree-sitter-typescript attaches decorator nodes as the member's own
// named children when legacy-decorator support is active, but some
// grammar versions instead emit them as preceding siblings within the
// class body; we check the member's own children first, then fall back
// to scanning the immediately preceding siblings in body.
func MemberDecorators(body, member *sitter.Node) []*sitter.Node {
	if owned := ChildrenOfType(member, "decorator"); len(owned) > 0 {
		return owned
	}
	if body == nil {
		return nil
	}
	children := NamedChildren(body)
	idx := -1
	for i, c := range children {
		if c == member {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return nil
	}
	var decorators []*sitter.Node
	for i := idx - 1; i >= 0 && children[i].Type() == "decorator"; i-- {
		decorators = append([]*sitter.Node{children[i]}, decorators...)
	}
	return decorators
}

// ParseDecorator extracts the callee identifier and call arguments of a
// `decorator` node whose inner expression is a call_expression (the only
// shape the legacy field decorators use: `@attr('string', {...})`).
func ParseDecorator(decoratorNode *sitter.Node, src []byte) *Decorator {
	call := FirstChildOfType(decoratorNode, "call_expression")
	if call == nil {
		// bare decorator with no call, e.g. `@computed`
		ident := FirstChildOfType(decoratorNode, "identifier")
		if ident == nil {
			return nil
		}
		return &Decorator{Name: Text(ident, src), Node: decoratorNode}
	}

	fn := call.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	name := Text(fn, src)

	var args []*sitter.Node
	if argsNode := call.ChildByFieldName("arguments"); argsNode != nil {
		args = NamedChildren(argsNode)
	}

	return &Decorator{Name: name, Arguments: args, Node: decoratorNode}
}

// ClassBody returns the `class_body` node of a class_declaration or the
// body of an object passed to Mixin.create(...), whichever applies.
func ClassBody(classNode *sitter.Node) *sitter.Node {
	return classNode.ChildByFieldName("body")
}

// ClassMembers returns every field_definition/method_definition/
// public_field_definition in a class body, in source order.
func ClassMembers(body *sitter.Node) []*sitter.Node {
	return ChildrenOfType(body,
		"field_definition",
		"public_field_definition",
		"method_definition",
		"method_signature",
	)
}

// MemberName returns a class member's declared name.
func MemberName(member *sitter.Node, src []byte) string {
	nameNode := member.ChildByFieldName("name")
	if nameNode == nil {
		// tree-sitter-javascript's field_definition labels its key
		// "property" rather than "name".
		nameNode = member.ChildByFieldName("property")
	}
	return Text(nameNode, src)
}
