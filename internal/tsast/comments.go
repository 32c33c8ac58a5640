package tsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// LeadingTrivia collects the comment and decorator node text that
// immediately precedes member within its parent body, so a relocated
// residual member keeps the annotations a reader would expect beside it.
// This is the tree-sitter analogue of inspector/golang's
// extractFieldDocumentation, which walks go/ast's Doc comment group;
// tree-sitter has no attached-comment concept, so we instead scan the
// body's named children for the run of `comment`/`decorator` nodes
// immediately before member.
func LeadingTrivia(body, member *sitter.Node, src []byte) string {
	children := NamedChildren(body)
	idx := -1
	for i, c := range children {
		if c == member {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ""
	}

	var trivia []string
	for i := idx - 1; i >= 0; i-- {
		t := children[i].Type()
		if t != "comment" && t != "decorator" {
			break
		}
		trivia = append([]string{Text(children[i], src)}, trivia...)
	}
	return strings.Join(trivia, "\n")
}
