package classify

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/emberdata-migrate/internal/tsast"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// legacyFieldDecorators are the recognized field-decorator names from
// spec.md §4.2; they are matched by name rather than strict import-path
// equality (see DESIGN.md, "Classifier").
var legacyFieldDecorators = map[string]core.FieldKind{
	"attr":       core.FieldAttribute,
	"belongsTo":  core.FieldBelongsTo,
	"hasMany":    core.FieldHasMany,
}

// classifyMember inspects one class member and appends either a
// FieldDescriptor or a ResidualMember to summary, per spec.md §4.2.
func classifyMember(summary *core.Summary, member, body *sitter.Node, src []byte, imports map[string]tsast.ImportBinding) {
	decorators := tsast.MemberDecorators(body, member)
	trivia := tsast.LeadingTrivia(body, member, src)
	name := tsast.MemberName(member, src)

	for _, decoratorNode := range decorators {
		decorator := tsast.ParseDecorator(decoratorNode, src)
		if decorator == nil {
			continue
		}
		kind, recognized := legacyFieldDecorators[decorator.Name]
		if !recognized {
			continue
		}

		field, warn := fieldFromDecorator(name, kind, decorator, src)
		if warn != nil {
			// spec.md §4.2 error semantics: a non-string first argument
			// downgrades the member to a residual instead of a field.
			summary.Warnings = append(summary.Warnings, &core.FieldWarning{Member: name, Reason: warn.Error()})
			appendResidual(summary, name, trivia, member, src)
			return
		}
		summary.Fields = append(summary.Fields, field)
		return
	}

	appendResidual(summary, name, trivia, member, src)
}

// classifyMixinProperty is classifyMember's analogue for a mixin's object
// literal, per spec.md §4.2: properties whose right-hand side is a call
// to attr/belongsTo/hasMany become Field Descriptors; all others are
// residual members.
func classifyMixinProperty(summary *core.Summary, prop, objLit *sitter.Node, src []byte, imports map[string]tsast.ImportBinding) {
	if prop.Type() != "pair" && prop.Type() != "method_definition" && prop.Type() != "shorthand_property_identifier" {
		return
	}

	name := propertyName(prop, src)
	if name == "" {
		return
	}

	value := prop.ChildByFieldName("value")
	if value != nil && value.Type() == "call_expression" {
		fn := value.ChildByFieldName("function")
		if fn != nil && fn.Type() == "identifier" {
			if kind, recognized := legacyFieldDecorators[tsast.Text(fn, src)]; recognized {
				field, warn := fieldFromCall(name, kind, value, src)
				if warn == nil {
					summary.Fields = append(summary.Fields, field)
					return
				}
				summary.Warnings = append(summary.Warnings, &core.FieldWarning{Member: name, Reason: warn.Error()})
			}
		}
	}

	trivia := tsast.LeadingTrivia(objLit, prop, src)
	appendResidual(summary, name, trivia, prop, src)
}

func propertyName(prop *sitter.Node, src []byte) string {
	if key := prop.ChildByFieldName("key"); key != nil {
		return strings.Trim(tsast.Text(key, src), `'"`)
	}
	if prop.Type() == "shorthand_property_identifier" {
		return tsast.Text(prop, src)
	}
	if name := prop.ChildByFieldName("name"); name != nil {
		return tsast.Text(name, src)
	}
	return ""
}

func appendResidual(summary *core.Summary, name, trivia string, node *sitter.Node, src []byte) {
	_, shadows := summary.FieldByName(name)
	summary.Residuals = append(summary.Residuals, core.ResidualMember{
		Name:          name,
		LeadingTrivia: trivia,
		ShadowsField:  shadows,
		Location: core.Location{
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
			Raw:   tsast.Text(node, src),
		},
	})
}

// fieldFromDecorator builds a FieldDescriptor from `@attr('string', {...}) name;`.
func fieldFromDecorator(name string, kind core.FieldKind, decorator *tsast.Decorator, src []byte) (core.FieldDescriptor, error) {
	return fieldFromArgs(name, kind, decorator.Arguments, src)
}

// fieldFromCall builds a FieldDescriptor from a mixin property's
// `attr('string', {...})` call expression value.
func fieldFromCall(name string, kind core.FieldKind, call *sitter.Node, src []byte) (core.FieldDescriptor, error) {
	var args []*sitter.Node
	if argsNode := call.ChildByFieldName("arguments"); argsNode != nil {
		args = tsast.NamedChildren(argsNode)
	}
	return fieldFromArgs(name, kind, args, src)
}

func fieldFromArgs(name string, kind core.FieldKind, args []*sitter.Node, src []byte) (core.FieldDescriptor, error) {
	if len(args) == 0 {
		return core.FieldDescriptor{}, errNonStringTypeName
	}
	typeName, ok := tsast.StringLiteralValue(args[0], src)
	if !ok {
		return core.FieldDescriptor{}, errNonStringTypeName
	}

	field := core.FieldDescriptor{Name: name, Kind: kind, TypeName: typeName}
	if len(args) > 1 && args[1].Type() == "object" {
		field.Options = parseFieldOptions(args[1], src)
	}
	return field, nil
}

func parseFieldOptions(objLit *sitter.Node, src []byte) core.FieldOptions {
	var opts core.FieldOptions
	for _, prop := range tsast.NamedChildren(objLit) {
		key := propertyName(prop, src)
		value := prop.ChildByFieldName("value")
		if key == "" || value == nil {
			continue
		}
		switch key {
		case core.OptionAsync:
			b := tsast.Text(value, src) == "true"
			opts.Async = &b
		case core.OptionInverse:
			if v, ok := tsast.StringLiteralValue(value, src); ok {
				opts.Inverse = v
			}
		case core.OptionPolymorphic:
			opts.Polymorphic = tsast.Text(value, src) == "true"
		default:
			if opts.Extra == nil {
				opts.Extra = make(map[string]string)
			}
			opts.Extra[key] = tsast.Text(value, src)
		}
	}
	return opts
}
