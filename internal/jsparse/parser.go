package jsparse

import (
	"fmt"
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Parser implements synkind.Parser.
type Parser struct{}

// New returns a Parser.
func New() Parser {
	return Parser{}
}

// Parse tokenizes and parses source into a Program node.
func (Parser) Parse(source string) (*synkind.Node, error) {
	p := &parser{lex: newLexer(source)}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return p.parseProgram()
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

func (p *parser) at(kind tokenKind, text string) bool {
	return p.cur.kind == kind && p.cur.text == text
}

func (p *parser) atPunct(text string) bool  { return p.at(tokPunct, text) }
func (p *parser) atKeyword(text string) bool { return p.at(tokKeyword, text) }

func (p *parser) expectPunct(text string) error {
	if !p.atPunct(text) {
		return fmt.Errorf("expected %q at %d:%d, found %q", text, p.cur.pos.Line, p.cur.pos.Column, p.cur.text)
	}

	return p.advance()
}

func (p *parser) parseProgram() (*synkind.Node, error) {
	prog := &synkind.Node{Kind: synkind.KindProgram, Pos: synkind.FileStart}

	for p.cur.kind != tokEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

func (p *parser) parseStatement() (*synkind.Node, error) {
	lead := p.cur.lead
	pos := p.cur.pos

	switch {
	case p.atKeyword("import"):
		return p.parseImport(pos, lead)
	case p.atKeyword("export"):
		return p.parseExport(pos, lead)
	case p.atKeyword("const") || p.atKeyword("let") || p.atKeyword("var"):
		decl, err := p.parseVariableDeclaration(pos, lead)
		if err != nil {
			return nil, err
		}

		p.skipSemi()

		return decl, nil
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		p.skipSemi()

		return &synkind.Node{Kind: synkind.KindExpressionStatement, Pos: pos, Comments: lead, Declaration: expr}, nil
	}
}

func (p *parser) skipSemi() {
	if p.atPunct(";") {
		_ = p.advance()
	}
}

func (p *parser) parseImport(pos synkind.Position, lead []synkind.Comment) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume 'import'
		return nil, err
	}

	node := &synkind.Node{Kind: synkind.KindImportDeclaration, Pos: pos, Comments: lead}

	if p.cur.kind == tokIdent {
		node.Specifiers = append(node.Specifiers, &synkind.Node{
			Kind: synkind.KindImportDefaultSpecifier, Name: p.cur.text, Pos: p.cur.pos,
		})

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if p.atPunct("{") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		for !p.atPunct("}") {
			specPos := p.cur.pos
			imported := p.cur.text

			if err := p.advance(); err != nil {
				return nil, err
			}

			local := imported

			if p.atKeyword("as") || p.at(tokIdent, "as") {
				if err := p.advance(); err != nil {
					return nil, err
				}

				local = p.cur.text

				if err := p.advance(); err != nil {
					return nil, err
				}
			}

			node.Specifiers = append(node.Specifiers, &synkind.Node{
				Kind: synkind.KindImportSpecifier, Name: imported, Pos: specPos, Value: local,
			})

			if p.atPunct(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}

		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
	}

	if !p.atKeyword("from") && !p.at(tokIdent, "from") {
		return nil, fmt.Errorf("expected 'from' at %d:%d", p.cur.pos.Line, p.cur.pos.Column)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	node.Source = p.cur.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	p.skipSemi()

	return node, nil
}

func (p *parser) parseExport(pos synkind.Position, lead []synkind.Comment) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume 'export'
		return nil, err
	}

	if p.atKeyword("default") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		p.skipSemi()

		return &synkind.Node{Kind: synkind.KindExportDefaultDeclaration, Pos: pos, Comments: lead, Declaration: expr}, nil
	}

	decl, err := p.parseVariableDeclaration(p.cur.pos, nil)
	if err != nil {
		return nil, err
	}

	p.skipSemi()

	return &synkind.Node{Kind: synkind.KindExportNamedDeclaration, Pos: pos, Comments: lead, Declaration: decl}, nil
}

func (p *parser) parseVariableDeclaration(pos synkind.Position, lead []synkind.Comment) (*synkind.Node, error) {
	declKind := p.cur.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	node := &synkind.Node{Kind: synkind.KindVariableDeclaration, Pos: pos, Comments: lead, DeclKind: declKind}

	for {
		declPos := p.cur.pos
		name := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		declarator := &synkind.Node{Kind: synkind.KindVariableDeclarator, Pos: declPos, Name: name}

		if p.atPunct("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}

			init, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			declarator.Init = init
		}

		node.Declarations = append(node.Declarations, declarator)

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	return node, nil
}

// parseExpression parses a chain/call/member expression plus the
// handful of primary literal forms the grammar subset needs. There is
// no operator-precedence climbing here: the grammar this parser targets
// has no binary/unary arithmetic, only schema-construction chains and
// literals.
func (p *parser) parseExpression() (*synkind.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parsePostfix(expr)
}

func (p *parser) parsePostfix(expr *synkind.Node) (*synkind.Node, error) {
	for {
		switch {
		case p.atPunct("."):
			pos := p.cur.pos

			if err := p.advance(); err != nil {
				return nil, err
			}

			propPos := p.cur.pos
			propName := p.cur.text

			if err := p.advance(); err != nil {
				return nil, err
			}

			expr = &synkind.Node{
				Kind:     synkind.KindMemberExpression,
				Pos:      pos,
				Object:   expr,
				Property: &synkind.Node{Kind: synkind.KindIdentifier, Name: propName, Pos: propPos},
			}
		case p.atPunct("["):
			pos := p.cur.pos

			if err := p.advance(); err != nil {
				return nil, err
			}

			propExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}

			expr = &synkind.Node{
				Kind: synkind.KindMemberExpression, Pos: pos, Object: expr, Property: propExpr, Computed: true,
			}
		case p.atPunct("("):
			pos := p.cur.pos

			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}

			expr = &synkind.Node{Kind: synkind.KindCallExpression, Pos: pos, Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArguments() ([]*synkind.Node, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var args []*synkind.Node

	for !p.atPunct(")") {
		if p.atPunct("...") {
			pos := p.cur.pos

			if err := p.advance(); err != nil {
				return nil, err
			}

			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			args = append(args, &synkind.Node{Kind: synkind.KindSpreadElement, Pos: pos, Argument: inner})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *parser) parsePrimary() (*synkind.Node, error) {
	pos := p.cur.pos

	switch p.cur.kind {
	case tokString:
		val := p.cur.text

		return val2node(synkind.KindStringLiteral, val, pos), p.advance()
	case tokTemplate:
		val := p.cur.text

		return val2node(synkind.KindTemplateLiteral, val, pos), p.advance()
	case tokNumber:
		val := p.cur.text

		return val2node(synkind.KindNumericLiteral, val, pos), p.advance()
	case tokBigInt:
		val := p.cur.text

		return val2node(synkind.KindBigIntLiteral, val, pos), p.advance()
	case tokRegex:
		return p.parseRegex(pos)
	case tokKeyword:
		return p.parseKeywordPrimary(pos)
	case tokIdent:
		name := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.maybeArrow(pos, name)
	case tokPunct:
		return p.parsePunctPrimary(pos)
	default:
		return nil, fmt.Errorf("unexpected token %q at %d:%d", p.cur.text, pos.Line, pos.Column)
	}
}

func val2node(kind synkind.Kind, value string, pos synkind.Position) *synkind.Node {
	return &synkind.Node{Kind: kind, Value: value, Pos: pos}
}

func (p *parser) parseRegex(pos synkind.Position) (*synkind.Node, error) {
	text := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	lastSlash := strings.LastIndex(text, "/")
	pattern := text[1:lastSlash]
	flags := text[lastSlash+1:]

	return &synkind.Node{Kind: synkind.KindRegExpLiteral, Value: pattern, RegexFlags: flags, Pos: pos}, nil
}

func (p *parser) parseKeywordPrimary(pos synkind.Position) (*synkind.Node, error) {
	switch p.cur.text {
	case "true", "false":
		val := p.cur.text

		return val2node(synkind.KindBooleanLiteral, val, pos), p.advance()
	case "null":
		return val2node(synkind.KindNullLiteral, "", pos), p.advance()
	case "undefined":
		return &synkind.Node{Kind: synkind.KindUndefinedIdentifier, Pos: pos}, p.advance()
	case "async":
		if err := p.advance(); err != nil {
			return nil, err
		}

		var (
			fn  *synkind.Node
			err error
		)

		if p.atKeyword("function") {
			fn, err = p.parseFunctionOrArrow(pos)
		} else if p.atPunct("(") {
			fn, err = p.parseParenOrArrow(pos)
		} else {
			name := p.cur.text
			if err = p.advance(); err != nil {
				return nil, err
			}

			fn, err = p.maybeArrow(pos, name)
		}

		if err != nil {
			return nil, err
		}

		fn.Async = true

		return fn, nil
	case "function":
		return p.parseFunctionOrArrow(pos)
	default:
		name := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &synkind.Node{Kind: synkind.KindIdentifier, Name: name, Pos: pos}, nil
	}
}

func (p *parser) parsePunctPrimary(pos synkind.Position) (*synkind.Node, error) {
	switch p.cur.text {
	case "(":
		return p.parseParenOrArrow(pos)
	case "{":
		return p.parseObjectLiteral(pos)
	case "[":
		return p.parseArrayLiteral(pos)
	default:
		return nil, fmt.Errorf("unexpected token %q at %d:%d", p.cur.text, pos.Line, pos.Column)
	}
}

// maybeArrow handles `name => body`, the single-identifier-parameter
// arrow form; `(a, b) => body` is handled in parseParenOrArrow.
func (p *parser) maybeArrow(pos synkind.Position, name string) (*synkind.Node, error) {
	if p.atPunct("=>") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.finishArrow(pos, []*synkind.Node{{Kind: synkind.KindIdentifier, Name: name, Pos: pos}})
	}

	return &synkind.Node{Kind: synkind.KindIdentifier, Name: name, Pos: pos}, nil
}

func (p *parser) parseParenOrArrow(pos synkind.Position) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	var params []*synkind.Node

	for !p.atPunct(")") {
		paramPos := p.cur.pos
		paramName := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		params = append(params, &synkind.Node{Kind: synkind.KindIdentifier, Name: paramName, Pos: paramPos})

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	if p.atPunct("=>") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.finishArrow(pos, params)
	}

	// A parenthesized non-arrow expression: exactly one param slot holds it.
	if len(params) == 1 {
		return p.parsePostfix(params[0])
	}

	return nil, fmt.Errorf("expected '=>' after parenthesized parameter list at %d:%d", pos.Line, pos.Column)
}

func (p *parser) finishArrow(pos synkind.Position, params []*synkind.Node) (*synkind.Node, error) {
	node := &synkind.Node{Kind: synkind.KindArrowFunctionExpression, Pos: pos, Params: params}

	if p.atPunct("{") {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		node.BodyStatements = block

		return node, nil
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	node.ExpressionBody = body

	return node, nil
}

func (p *parser) parseFunctionOrArrow(pos synkind.Position) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume 'function'
		return nil, err
	}

	node := &synkind.Node{Kind: synkind.KindFunctionExpression, Pos: pos}

	if p.atPunct("*") {
		node.Generator = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.cur.kind == tokIdent { // optional function name, discarded (anonymous in this grammar's contexts)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	for !p.atPunct(")") {
		paramPos := p.cur.pos
		paramName := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		node.Params = append(node.Params, &synkind.Node{Kind: synkind.KindIdentifier, Name: paramName, Pos: paramPos})

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node.BodyStatements = block

	return node, nil
}

func (p *parser) parseBlock() ([]*synkind.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var stmts []*synkind.Node

	for !p.atPunct("}") {
		if p.atKeyword("return") {
			pos := p.cur.pos

			if err := p.advance(); err != nil {
				return nil, err
			}

			var expr *synkind.Node

			if !p.atPunct(";") && !p.atPunct("}") {
				e, err := p.parseExpression()
				if err != nil {
					return nil, err
				}

				expr = e
			}

			p.skipSemi()
			stmts = append(stmts, &synkind.Node{Kind: synkind.KindOtherStatement, Pos: pos, Declaration: expr})

			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, p.expectPunct("}")
}

func (p *parser) parseObjectLiteral(pos synkind.Position) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}

	node := &synkind.Node{Kind: synkind.KindObjectExpression, Pos: pos}

	for !p.atPunct("}") {
		if p.cur.kind == tokEOF {
			return nil, fmt.Errorf("unterminated object literal at %d:%d", pos.Line, pos.Column)
		}

		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}

		node.Properties = append(node.Properties, prop)

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	return node, p.expectPunct("}")
}

func (p *parser) parseProperty() (*synkind.Node, error) {
	pos := p.cur.pos

	if p.atPunct("...") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return &synkind.Node{Kind: synkind.KindSpreadElement, Pos: pos, Argument: arg}, nil
	}

	getter := p.at(tokIdent, "get")
	setter := p.at(tokIdent, "set")

	if getter || setter {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var key *synkind.Node

	var computed bool

	if p.atPunct("[") {
		computed = true

		if err := p.advance(); err != nil {
			return nil, err
		}

		k, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		key = k

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
	} else if p.cur.kind == tokString {
		key = val2node(synkind.KindStringLiteral, p.cur.text, p.cur.pos)

		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		key = &synkind.Node{Kind: synkind.KindIdentifier, Name: p.cur.text, Pos: p.cur.pos}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	prop := &synkind.Node{Kind: synkind.KindProperty, Pos: pos, Key: key, KeyComputed: computed, IsGetter: getter, IsSetter: setter}
	if key.Kind == synkind.KindStringLiteral {
		prop.KeyIsString = true
	}

	if p.atPunct("(") { // method shorthand: name(...) { ... }
		prop.IsMethod = true

		fn, err := p.parseFunctionOrArrowAfterParams(pos)
		if err != nil {
			return nil, err
		}

		prop.PropValue = fn

		return prop, nil
	}

	if !p.atPunct(":") {
		prop.Shorthand = true
		prop.PropValue = key

		return prop, nil
	}

	if err := p.advance(); err != nil { // consume ':'
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	prop.PropValue = value

	return prop, nil
}

// parseFunctionOrArrowAfterParams parses the `(...) { ... }` tail of a
// method shorthand property, reusing the function-body parsing logic.
func (p *parser) parseFunctionOrArrowAfterParams(pos synkind.Position) (*synkind.Node, error) {
	node := &synkind.Node{Kind: synkind.KindFunctionExpression, Pos: pos}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	for !p.atPunct(")") {
		paramPos := p.cur.pos
		paramName := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		node.Params = append(node.Params, &synkind.Node{Kind: synkind.KindIdentifier, Name: paramName, Pos: paramPos})

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node.BodyStatements = block

	return node, nil
}

func (p *parser) parseArrayLiteral(pos synkind.Position) (*synkind.Node, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}

	node := &synkind.Node{Kind: synkind.KindArrayExpression, Pos: pos}

	for !p.atPunct("]") {
		if p.atPunct(",") { // elision
			node.Elements = append(node.Elements, nil)

			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		if p.atPunct("...") {
			elPos := p.cur.pos

			if err := p.advance(); err != nil {
				return nil, err
			}

			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			node.Elements = append(node.Elements, &synkind.Node{Kind: synkind.KindSpreadElement, Pos: elPos, Argument: arg})
		} else {
			el, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			node.Elements = append(node.Elements, el)
		}

		if p.atPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	return node, p.expectPunct("]")
}
