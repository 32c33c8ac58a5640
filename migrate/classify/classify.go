// Package classify implements the Classifier (C2): given a parsed File
// Record, decide whether it is a model, intermediate model, mixin, or
// ignored, and extract its structural summary (fields, residual members,
// base/mixin references).
package classify

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/emberdata-migrate/internal/tsast"
	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// Classifier walks a File Record's syntax tree and produces its
// Classification and Summary, per spec.md §4.2.
type Classifier struct {
	cfg *config.Config
}

// New constructs a Classifier for cfg.
func New(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify inspects rec and sets rec.Classification/rec.Summary.
// ownImportPath is the specifier other files would use to import rec,
// computed by the Source Index, used only to check membership in
// intermediate-model-paths (spec.md §4.2).
func (c *Classifier) Classify(rec *core.Record, ownImportPath string) {
	root := rec.Tree.RootNode()
	imports := tsast.ImportMap(root, rec.Source)

	exportNode, exportName := findDefaultExport(root, rec.Source)
	if exportNode == nil {
		rec.Classification = core.ClassIgnored
		return
	}
	rec.DefaultExport = exportName

	switch exportNode.Type() {
	case "class_declaration", "class":
		summary := c.classifyClassLike(exportNode, rec.Source, imports)
		if summary == nil {
			rec.Classification = core.ClassIgnored
			return
		}
		rec.Summary = summary
		if isIntermediateModelPath(c.cfg.IntermediateModelPaths, ownImportPath) {
			rec.Classification = core.ClassIntermediateModel
		} else {
			rec.Classification = core.ClassModel
		}
	default:
		if summary := c.classifyMixinExpression(exportNode, rec.Source, imports); summary != nil {
			rec.Summary = summary
			rec.Classification = core.ClassMixin
			return
		}
		rec.Classification = core.ClassIgnored
	}
}

// findDefaultExport locates `export default <expr>` at the top level and
// returns the exported node together with a best-effort name for it
// (spec.md's "declared default-export name").
func findDefaultExport(root *sitter.Node, src []byte) (*sitter.Node, string) {
	for _, child := range tsast.NamedChildren(root) {
		if child.Type() != "export_statement" {
			continue
		}
		if !hasDefaultKeyword(child, src) {
			continue
		}
		declNode := defaultExportValue(child)
		if declNode == nil {
			continue
		}
		name := exportedName(declNode, src)
		return declNode, name
	}
	return nil, ""
}

func hasDefaultKeyword(exportNode *sitter.Node, src []byte) bool {
	return strings.Contains(tsast.Text(exportNode, src), "export default")
}

// defaultExportValue returns the declaration/expression a default export
// wraps: the class_declaration itself, or the expression (call_expression,
// e.g. Mixin.create(...)).
func defaultExportValue(exportNode *sitter.Node) *sitter.Node {
	if decl := exportNode.ChildByFieldName("declaration"); decl != nil {
		return decl
	}
	if value := exportNode.ChildByFieldName("value"); value != nil {
		return value
	}
	// Fall back to the last named child, which tree-sitter-javascript
	// uses for `export default <expr>;` when no field name is assigned.
	children := tsast.NamedChildren(exportNode)
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

func exportedName(node *sitter.Node, src []byte) string {
	if node.Type() == "class_declaration" || node.Type() == "class" {
		if name := node.ChildByFieldName("name"); name != nil {
			return tsast.Text(name, src)
		}
	}
	return ""
}

func isIntermediateModelPath(paths []string, ownImportPath string) bool {
	for _, p := range paths {
		if p == ownImportPath {
			return true
		}
	}
	return false
}
