package tsast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// NamedChildren returns a node's named children as a slice, the
// idiomatic replacement for the teacher's repeated
// `for j := uint32(0); j < n.NamedChildCount(); j++ { n.NamedChild(int(j)) }` loop.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}

// ChildrenOfType returns every direct named child whose Type() matches
// any of the given node types, in source order.
func ChildrenOfType(n *sitter.Node, types ...string) []*sitter.Node {
	var matched []*sitter.Node
	for _, child := range NamedChildren(n) {
		for _, t := range types {
			if child.Type() == t {
				matched = append(matched, child)
				break
			}
		}
	}
	return matched
}

// FirstChildOfType returns the first direct named child matching one of
// the given types, or nil.
func FirstChildOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, child := range NamedChildren(n) {
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

// Walk calls visit for n and every descendant, depth-first, stopping a
// given subtree's descent when visit returns false.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range NamedChildren(n) {
		Walk(child, visit)
	}
}

// Text returns a node's source text, or "" for a nil node.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// StringLiteralValue returns the unquoted value of a `string` node, or
// ("", false) if n is not a string literal.
func StringLiteralValue(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	raw := n.Content(src)
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1], true
	}
	return "", false
}
