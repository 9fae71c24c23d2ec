// Package jsprint is the reference Printer (pkg/synkind.Printer) paired
// with internal/jsparse: it serializes the Node tree back to source
// text, preserving leading comments, for the same grammar subset.
package jsprint

import (
	"fmt"
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Printer implements synkind.Printer.
type Printer struct{}

// New returns a Printer.
func New() Printer {
	return Printer{}
}

// Print serializes program back to source text.
func (Printer) Print(program *synkind.Node) (string, error) {
	if program == nil {
		return "", fmt.Errorf("cannot print a nil program")
	}

	var b strings.Builder

	for i, stmt := range program.Statements {
		if i > 0 {
			b.WriteString("\n")
		}

		printComments(&b, stmt.Comments)

		if err := printStatement(&b, stmt); err != nil {
			return "", err
		}

		b.WriteString("\n")
	}

	return b.String(), nil
}

// PrintExpression serializes a single expression node to source text,
// without the Program/statement wrapping Print requires.
func (Printer) PrintExpression(node *synkind.Node) (string, error) {
	return printExpression(node)
}

func printComments(b *strings.Builder, comments []synkind.Comment) {
	for _, c := range comments {
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
}

func printStatement(b *strings.Builder, stmt *synkind.Node) error {
	switch stmt.Kind {
	case synkind.KindImportDeclaration:
		printImport(b, stmt)
	case synkind.KindExportNamedDeclaration:
		b.WriteString("export ")

		return printStatement(b, stmt.Declaration)
	case synkind.KindExportDefaultDeclaration:
		b.WriteString("export default ")

		expr, err := printExpression(stmt.Declaration)
		if err != nil {
			return err
		}

		b.WriteString(expr)
		b.WriteString(";")
	case synkind.KindVariableDeclaration:
		return printVariableDeclaration(b, stmt)
	case synkind.KindExpressionStatement:
		expr, err := printExpression(stmt.Declaration)
		if err != nil {
			return err
		}

		b.WriteString(expr)
		b.WriteString(";")
	case synkind.KindOtherStatement:
		b.WriteString("return")

		if stmt.Declaration != nil {
			expr, err := printExpression(stmt.Declaration)
			if err != nil {
				return err
			}

			b.WriteString(" ")
			b.WriteString(expr)
		}

		b.WriteString(";")
	default:
		return fmt.Errorf("cannot print statement kind %s", stmt.Kind)
	}

	return nil
}

func printImport(b *strings.Builder, node *synkind.Node) {
	b.WriteString("import ")

	var named []string

	for i, spec := range node.Specifiers {
		if spec.Kind == synkind.KindImportDefaultSpecifier {
			b.WriteString(spec.Name)

			if i < len(node.Specifiers)-1 {
				b.WriteString(", ")
			}

			continue
		}

		if spec.Value != "" && spec.Value != spec.Name {
			named = append(named, spec.Name+" as "+spec.Value)
		} else {
			named = append(named, spec.Name)
		}
	}

	if len(named) > 0 {
		b.WriteString("{ " + strings.Join(named, ", ") + " }")
	}

	b.WriteString(" from \"" + node.Source + "\";")
}

func printVariableDeclaration(b *strings.Builder, node *synkind.Node) error {
	b.WriteString(node.DeclKind + " ")

	for i, decl := range node.Declarations {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(decl.Name)

		if decl.Init != nil {
			b.WriteString(" = ")

			expr, err := printExpression(decl.Init)
			if err != nil {
				return err
			}

			b.WriteString(expr)
		}
	}

	b.WriteString(";")

	return nil
}

func printExpression(node *synkind.Node) (string, error) {
	if node == nil {
		return "", fmt.Errorf("cannot print a nil expression")
	}

	switch node.Kind {
	case synkind.KindIdentifier:
		return node.Name, nil
	case synkind.KindUndefinedIdentifier:
		return "undefined", nil
	case synkind.KindStringLiteral:
		return "\"" + node.Value + "\"", nil
	case synkind.KindTemplateLiteral:
		return node.Value, nil
	case synkind.KindNumericLiteral:
		return node.Value, nil
	case synkind.KindBigIntLiteral:
		return node.Value, nil
	case synkind.KindBooleanLiteral:
		return node.Value, nil
	case synkind.KindNullLiteral:
		return "null", nil
	case synkind.KindRegExpLiteral:
		return "/" + node.Value + "/" + node.RegexFlags, nil
	case synkind.KindMemberExpression:
		return printMember(node)
	case synkind.KindCallExpression:
		return printCall(node)
	case synkind.KindObjectExpression:
		return printObject(node)
	case synkind.KindArrayExpression:
		return printArray(node)
	case synkind.KindSpreadElement:
		inner, err := printExpression(node.Argument)
		if err != nil {
			return "", err
		}

		return "..." + inner, nil
	case synkind.KindArrowFunctionExpression:
		return printArrow(node)
	case synkind.KindFunctionExpression:
		return printFunction(node)
	default:
		return "", fmt.Errorf("cannot print expression kind %s", node.Kind)
	}
}

func printMember(node *synkind.Node) (string, error) {
	obj, err := printExpression(node.Object)
	if err != nil {
		return "", err
	}

	if node.Computed {
		prop, err := printExpression(node.Property)
		if err != nil {
			return "", err
		}

		return obj + "[" + prop + "]", nil
	}

	return obj + "." + node.Property.Name, nil
}

func printCall(node *synkind.Node) (string, error) {
	callee, err := printExpression(node.Callee)
	if err != nil {
		return "", err
	}

	args := make([]string, len(node.Arguments))

	for i, a := range node.Arguments {
		s, err := printExpression(a)
		if err != nil {
			return "", err
		}

		args[i] = s
	}

	return callee + "(" + strings.Join(args, ", ") + ")", nil
}

func printObject(node *synkind.Node) (string, error) {
	parts := make([]string, len(node.Properties))

	for i, prop := range node.Properties {
		s, err := printProperty(prop)
		if err != nil {
			return "", err
		}

		parts[i] = s
	}

	if len(parts) == 0 {
		return "{}", nil
	}

	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func printProperty(prop *synkind.Node) (string, error) {
	if prop.Kind == synkind.KindSpreadElement {
		inner, err := printExpression(prop.Argument)
		if err != nil {
			return "", err
		}

		return "..." + inner, nil
	}

	key := prop.Key.Name
	if prop.KeyIsString {
		key = "\"" + prop.Key.Value + "\""
	}

	if prop.Shorthand {
		return key, nil
	}

	value, err := printExpression(prop.PropValue)
	if err != nil {
		return "", err
	}

	return key + ": " + value, nil
}

func printArray(node *synkind.Node) (string, error) {
	parts := make([]string, len(node.Elements))

	for i, el := range node.Elements {
		if el == nil {
			parts[i] = ""

			continue
		}

		s, err := printExpression(el)
		if err != nil {
			return "", err
		}

		parts[i] = s
	}

	return "[" + strings.Join(parts, ", ") + "]", nil
}

func printArrow(node *synkind.Node) (string, error) {
	params := paramList(node.Params)

	prefix := ""
	if node.Async {
		prefix = "async "
	}

	if node.ExpressionBody != nil {
		body, err := printExpression(node.ExpressionBody)
		if err != nil {
			return "", err
		}

		return prefix + params + " => " + body, nil
	}

	body, err := printBlock(node.BodyStatements)
	if err != nil {
		return "", err
	}

	return prefix + params + " => " + body, nil
}

func printFunction(node *synkind.Node) (string, error) {
	prefix := "function"
	if node.Async {
		prefix = "async " + prefix
	}

	if node.Generator {
		prefix += "*"
	}

	body, err := printBlock(node.BodyStatements)
	if err != nil {
		return "", err
	}

	return prefix + paramList(node.Params) + " " + body, nil
}

func paramList(params []*synkind.Node) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}

	return "(" + strings.Join(names, ", ") + ")"
}

func printBlock(stmts []*synkind.Node) (string, error) {
	var b strings.Builder

	b.WriteString("{ ")

	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString(" ")
		}

		if err := printStatement(&b, stmt); err != nil {
			return "", err
		}
	}

	b.WriteString(" }")

	return b.String(), nil
}
