package synkind

// Node is the tagged syntax-tree node variant. Every node carries its
// Kind plus whichever of the typed fields below its Kind defines;
// callers switch on Kind and read only the fields that kind documents,
// per the "no structural dispatch over node properties" rule.
type Node struct {
	Kind Kind
	Pos  Position

	// Leading comments attached to this node (statements and Program only).
	Comments []Comment

	// Identifier, ImportSpecifier imported name, ImportDefaultSpecifier
	// local name, VariableDeclarator's bound name. A string property key
	// is a StringLiteral Key node carrying the name in Value.
	Name string

	// StringLiteral value, RegExpLiteral pattern, NumericLiteral/BigIntLiteral
	// raw text, TemplateLiteral raw text, BooleanLiteral "true"/"false",
	// ImportSpecifier local (alias) name.
	Value string
	// RegExpLiteral flags (e.g. "gi"). Empty for every other kind.
	RegexFlags string

	// MemberExpression: Object.Property, Computed marks obj[prop] vs obj.prop.
	Object    *Node
	Property  *Node
	Computed  bool

	// CallExpression.
	Callee    *Node
	Arguments []*Node

	// ObjectExpression.
	Properties []*Node
	// Property: Key/PropValue, Shorthand, and Kind-of-property markers.
	Key          *Node
	PropValue    *Node
	Shorthand    bool
	IsMethod     bool
	IsGetter     bool
	IsSetter     bool
	KeyComputed  bool
	KeyIsString  bool

	// ArrayExpression / SpreadElement.
	Elements []*Node // a nil entry is an elision ("hole")
	Argument *Node   // SpreadElement's expression

	// ArrowFunctionExpression / FunctionExpression.
	Params        []*Node
	Async         bool
	Generator     bool
	ExpressionBody *Node   // set when the arrow body is a bare expression
	BodyStatements []*Node // set when the body is a block

	// VariableDeclaration / VariableDeclarator.
	DeclKind     string // "const" | "let" | "var"
	Declarations []*Node
	Init         *Node

	// ImportDeclaration.
	Source     string
	Specifiers []*Node

	// ExportNamedDeclaration / ExportDefaultDeclaration.
	Declaration *Node

	// Program.
	Statements []*Node

	// Raw is a slot for a node's original source text. The bundled
	// Parser never sets it and no component reads it; the dependency
	// analyzer renders subtrees through the Printer.
	Raw string
}

// Children returns this node's direct child nodes in source order, for
// the generic depth-first descents the governor counts and the
// validators walk. Nil elements (array elisions) are omitted.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}

	switch n.Kind { //nolint:exhaustive // Unknown/leaf kinds fall to default.
	case KindProgram:
		return n.Statements
	case KindExpressionStatement, KindOtherStatement:
		return compact(n.Declaration)
	case KindExportNamedDeclaration, KindExportDefaultDeclaration:
		return compact(n.Declaration)
	case KindVariableDeclaration:
		return n.Declarations
	case KindVariableDeclarator:
		return compact(n.Init)
	case KindImportDeclaration:
		return n.Specifiers
	case KindMemberExpression:
		return compact(n.Object, n.Property)
	case KindCallExpression:
		return append(compact(n.Callee), n.Arguments...)
	case KindObjectExpression:
		return n.Properties
	case KindProperty:
		return compact(n.Key, n.PropValue)
	case KindArrayExpression:
		return compactElements(n.Elements)
	case KindSpreadElement:
		return compact(n.Argument)
	case KindArrowFunctionExpression, KindFunctionExpression:
		if n.ExpressionBody != nil {
			return append(append([]*Node{}, n.Params...), n.ExpressionBody)
		}

		return append(append([]*Node{}, n.Params...), n.BodyStatements...)
	default:
		return nil
	}
}

func compact(nodes ...*Node) []*Node {
	out := make([]*Node, 0, len(nodes))

	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}

	return out
}

func compactElements(elements []*Node) []*Node {
	out := make([]*Node, 0, len(elements))

	for _, n := range elements {
		if n != nil {
			out = append(out, n)
		}
	}

	return out
}

// IsCallChainNode reports whether n is a CallExpression or MemberExpression,
// the only two kinds the chain grammar recurses through.
func (n *Node) IsCallChainNode() bool {
	return n != nil && (n.Kind == KindCallExpression || n.Kind == KindMemberExpression)
}
