// Package tsast adapts the teacher's inspector/jsx node-walking idiom
// (iterate NamedChild, switch on Type(), read ChildByFieldName) to the
// TypeScript/JavaScript decorator syntax the migration engine classifies.
// It owns parsing only; it has no opinion about models, mixins, or fields.
package tsast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language selects the tree-sitter grammar for a source file based on its
// extension, mirroring inspector/jsx.Inspector's single javascript.GetLanguage
// call but branching between the JS and TS grammars so TS-only syntax
// (type annotations on decorated members, `import type`) parses correctly.
func Language(ext string) *sitter.Language {
	switch ext {
	case ".ts", ".tsx":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses src with the grammar implied by ext and returns the
// resulting syntax tree. Parse failures are returned as plain errors; per
// spec.md §4.1 it is the caller's job to downgrade them to a dropped
// File Record rather than abort the run.
func Parse(ext string, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(Language(ext))

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if tree.RootNode() == nil {
		return nil, fmt.Errorf("failed to parse source: empty tree")
	}
	return tree, nil
}
