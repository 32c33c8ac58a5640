package tsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ImportBinding is one name bound by an import statement, adapted from
// inspector/jsx.parseImportDeclarations but additionally tracking whether
// the statement (or the specifier itself) was type-only, since spec.md
// §4.2 treats a type-only mixin import as its own kind of Trait Reference.
type ImportBinding struct {
	Name     string
	Path     string
	TypeOnly bool
}

// FindImportNodes returns every import_statement at the top level of the
// file, mirroring inspector/jsx.findImportNodes.
func FindImportNodes(root *sitter.Node) []*sitter.Node {
	return ChildrenOfType(root, "import_statement")
}

// ParseImportDeclaration extracts every binding introduced by one
// import_statement node, adapted from inspector/jsx.parseImportDeclarations:
// the source string literal is the path, and the clause (default
// identifier, named imports, or `import type { X }`) supplies the bound
// names.
func ParseImportDeclaration(importNode *sitter.Node, src []byte) []ImportBinding {
	var (
		bindings   []ImportBinding
		importPath string
		stmtIsType bool
	)

	for _, child := range NamedChildren(importNode) {
		if child.Type() == "string" {
			if v, ok := StringLiteralValue(child, src); ok {
				importPath = v
			}
		}
	}
	if importPath == "" {
		return nil
	}

	// `import type X from '...'` / `import type { X } from '...'`: the
	// keyword `type` appears as a non-named token right after `import`,
	// so we fall back to scanning the statement's raw text prefix.
	stmtText := Text(importNode, src)
	if strings.HasPrefix(strings.TrimSpace(stmtText), "import type") {
		stmtIsType = true
	}

	for _, child := range NamedChildren(importNode) {
		switch child.Type() {
		case "identifier":
			bindings = append(bindings, ImportBinding{Name: Text(child, src), Path: importPath, TypeOnly: stmtIsType})
		case "import_clause":
			bindings = append(bindings, parseImportClause(child, src, importPath, stmtIsType)...)
		}
	}

	return bindings
}

func parseImportClause(clause *sitter.Node, src []byte, importPath string, stmtIsType bool) []ImportBinding {
	var bindings []ImportBinding
	for _, child := range NamedChildren(clause) {
		switch child.Type() {
		case "identifier":
			bindings = append(bindings, ImportBinding{Name: Text(child, src), Path: importPath, TypeOnly: stmtIsType})
		case "named_imports":
			for _, specifier := range ChildrenOfType(child, "import_specifier") {
				bindings = append(bindings, parseImportSpecifier(specifier, src, importPath, stmtIsType)...)
			}
		}
	}
	return bindings
}

func parseImportSpecifier(specifier *sitter.Node, src []byte, importPath string, stmtIsType bool) []ImportBinding {
	specifierIsType := stmtIsType
	names := NamedChildren(specifier)
	for _, n := range names {
		if n.Type() == "identifier" && Text(n, src) == "type" {
			specifierIsType = true
		}
	}
	var bindings []ImportBinding
	for _, n := range names {
		if n.Type() == "identifier" && Text(n, src) != "type" {
			bindings = append(bindings, ImportBinding{Name: Text(n, src), Path: importPath, TypeOnly: specifierIsType})
		}
	}
	if len(bindings) == 0 {
		// bare `{ Name }` without nested identifier node shapes: fall
		// back to the specifier's own text.
		if txt := Text(specifier, src); txt != "" && txt != "type" {
			bindings = append(bindings, ImportBinding{Name: txt, Path: importPath, TypeOnly: stmtIsType})
		}
	}
	return bindings
}

// ImportMap flattens every import in a file into name -> path, the shape
// the Classifier and Resolver consume when deciding what a bare
// identifier refers to.
func ImportMap(root *sitter.Node, src []byte) map[string]ImportBinding {
	result := make(map[string]ImportBinding)
	for _, node := range FindImportNodes(root) {
		for _, binding := range ParseImportDeclaration(node, src) {
			result[binding.Name] = binding
		}
	}
	return result
}
