// Package synkind defines the tagged syntax-tree node variant the
// validation core operates over, plus the Parser/Printer/SafeRegexOracle
// contracts the core's external collaborators satisfy. The core never
// decides how source text becomes a Node or how a Node becomes source
// text again — it only walks and edits the tree through this package's
// types.
package synkind

// Kind tags the variant a Node represents. The set is closed: any value
// not named below must be rejected by an exhaustive switch's default
// branch, never silently treated as a known shape.
type Kind string

// Node kinds. Mirrors the subset of the ECMAScript/TypeScript grammar
// the schema-construction DSL can legally use.
const (
	KindProgram                  Kind = "Program"
	KindIdentifier                Kind = "Identifier"
	KindMemberExpression         Kind = "MemberExpression"
	KindCallExpression           Kind = "CallExpression"
	KindObjectExpression         Kind = "ObjectExpression"
	KindProperty                 Kind = "Property"
	KindArrayExpression          Kind = "ArrayExpression"
	KindSpreadElement            Kind = "SpreadElement"
	KindArrowFunctionExpression  Kind = "ArrowFunctionExpression"
	KindFunctionExpression       Kind = "FunctionExpression"
	KindTemplateLiteral          Kind = "TemplateLiteral"
	KindStringLiteral            Kind = "StringLiteral"
	KindNumericLiteral           Kind = "NumericLiteral"
	KindBigIntLiteral            Kind = "BigIntLiteral"
	KindBooleanLiteral           Kind = "BooleanLiteral"
	KindNullLiteral              Kind = "NullLiteral"
	KindRegExpLiteral            Kind = "RegExpLiteral"
	KindUndefinedIdentifier      Kind = "UndefinedIdentifier"
	KindImportDeclaration        Kind = "ImportDeclaration"
	KindImportSpecifier          Kind = "ImportSpecifier"
	KindImportDefaultSpecifier   Kind = "ImportDefaultSpecifier"
	KindExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindVariableDeclaration      Kind = "VariableDeclaration"
	KindVariableDeclarator       Kind = "VariableDeclarator"
	KindExpressionStatement      Kind = "ExpressionStatement"
	KindOtherStatement           Kind = "OtherStatement"
	KindUnknown                  Kind = "Unknown"
)

// Position is a source location (1-based line, 0-based column), as produced by the
// Parser and attached to every Node except file-level diagnostics, which
// fall back to (1, 0).
type Position struct {
	Line   int
	Column int
}

// FileStart is the synthetic location used only for file-level issues
// that cannot be tied to a specific node (a failed parse, an overall
// timeout).
var FileStart = Position{Line: 1, Column: 0}

// Comment is source text the Printer must reproduce verbatim, attached
// to the statement it immediately precedes.
type Comment struct {
	Text  string
	Block bool
	Pos   Position
}
