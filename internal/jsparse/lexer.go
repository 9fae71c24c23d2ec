// Package jsparse is a minimal reference Parser (pkg/synkind.Parser)
// for the small grammar subset the core cares about: import/export/const
// declarations, member/call chains, object/array/arrow-function
// literals, string/number/boolean/null/regex literals, and comments. It
// is not a JavaScript/TypeScript engine — no example repo in the corpus
// ships one, and a real tree-sitter-based frontend cannot be verified
// without building, so this hand-rolled lexer is the stdlib-grounded
// stand-in documented in DESIGN.md.
package jsparse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokString
	tokTemplate
	tokNumber
	tokBigInt
	tokRegex
	tokPunct
)

type token struct {
	kind  tokenKind
	text  string
	pos   synkind.Position
	lead  []synkind.Comment
}

var keywords = map[string]bool{
	"import": true, "export": true, "default": true, "from": true, "const": true,
	"let": true, "var": true, "function": true, "async": true, "return": true,
	"true": true, "false": true, "null": true, "undefined": true,
}

type lexer struct {
	src        string
	pos        int
	line       int
	col        int
	prevPunct  string // not read; regex vs division is decided by lastWasVal
	lastWasVal bool
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 0}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++

	if b == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return b
}

func (l *lexer) skipWhitespaceAndComments() []synkind.Comment {
	var comments []synkind.Comment

	for l.pos < len(l.src) {
		c := l.peekByte()

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			start := synkind.Position{Line: l.line, Column: l.col}
			begin := l.pos

			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}

			comments = append(comments, synkind.Comment{Text: l.src[begin:l.pos], Block: false, Pos: start})
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			start := synkind.Position{Line: l.line, Column: l.col}
			begin := l.pos
			l.advance()
			l.advance()

			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/') {
				l.advance()
			}

			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}

			comments = append(comments, synkind.Comment{Text: l.src[begin:l.pos], Block: true, Pos: start})
		default:
			return comments
		}
	}

	return comments
}

// Next returns the next token. It tracks whether a preceding token ends
// an expression, to decide whether a leading '/' starts a regex literal
// or a division operator (irrelevant here since this grammar has no
// division, but kept for lexer hygiene).
func (l *lexer) Next() (token, error) {
	lead := l.skipWhitespaceAndComments()

	pos := synkind.Position{Line: l.line, Column: l.col}

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: pos, lead: lead}, nil
	}

	c := l.peekByte()

	switch {
	case c == '"' || c == '\'':
		return l.lexString(pos, lead)
	case c == '`':
		return l.lexTemplate(pos, lead)
	case c == '/' && !l.lastWasVal:
		return l.lexRegex(pos, lead)
	case isDigit(c):
		return l.lexNumber(pos, lead)
	case isIdentStart(rune(c)):
		return l.lexIdentOrKeyword(pos, lead)
	default:
		return l.lexPunct(pos, lead)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (l *lexer) lexString(pos synkind.Position, lead []synkind.Comment) (token, error) {
	quote := l.advance()

	var b strings.Builder

	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("unterminated string literal at %d:%d", pos.Line, pos.Column)
		}

		c := l.peekByte()
		if c == quote {
			l.advance()

			break
		}

		if c == '\\' {
			l.advance()

			if l.pos < len(l.src) {
				b.WriteByte(l.advance())
			}

			continue
		}

		b.WriteByte(l.advance())
	}

	l.lastWasVal = true

	return token{kind: tokString, text: b.String(), pos: pos, lead: lead}, nil
}

func (l *lexer) lexTemplate(pos synkind.Position, lead []synkind.Comment) (token, error) {
	begin := l.pos
	l.advance()

	depth := 0
	for l.pos < len(l.src) {
		c := l.peekByte()

		if c == '`' && depth == 0 {
			l.advance()

			break
		}

		if c == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			depth++
			l.advance()
			l.advance()

			continue
		}

		if c == '}' && depth > 0 {
			depth--
		}

		l.advance()
	}

	l.lastWasVal = true

	return token{kind: tokTemplate, text: l.src[begin:l.pos], pos: pos, lead: lead}, nil
}

func (l *lexer) lexRegex(pos synkind.Position, lead []synkind.Comment) (token, error) {
	begin := l.pos
	l.advance() // consume leading '/'

	inClass := false

	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("unterminated regex literal at %d:%d", pos.Line, pos.Column)
		}

		c := l.peekByte()

		if c == '\\' {
			l.advance()

			if l.pos < len(l.src) {
				l.advance()
			}

			continue
		}

		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.advance()

			break
		}

		l.advance()
	}

	for l.pos < len(l.src) && isIdentPart(rune(l.peekByte())) {
		l.advance()
	}

	l.lastWasVal = true

	return token{kind: tokRegex, text: l.src[begin:l.pos], pos: pos, lead: lead}, nil
}

func (l *lexer) lexNumber(pos synkind.Position, lead []synkind.Comment) (token, error) {
	begin := l.pos

	for l.pos < len(l.src) && (isDigit(l.peekByte()) || l.peekByte() == '.' || l.peekByte() == 'x' || l.peekByte() == 'X' ||
		(l.peekByte() >= 'a' && l.peekByte() <= 'f') || (l.peekByte() >= 'A' && l.peekByte() <= 'F')) {
		l.advance()
	}

	kind := tokNumber

	if l.pos < len(l.src) && l.peekByte() == 'n' {
		l.advance()

		kind = tokBigInt
	}

	l.lastWasVal = true

	return token{kind: kind, text: l.src[begin:l.pos], pos: pos, lead: lead}, nil
}

func (l *lexer) lexIdentOrKeyword(pos synkind.Position, lead []synkind.Comment) (token, error) {
	begin := l.pos

	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}

		l.pos += size
		l.col++
	}

	text := l.src[begin:l.pos]

	kind := tokIdent
	if keywords[text] {
		kind = tokKeyword
	}

	l.lastWasVal = kind == tokIdent || text == "true" || text == "false" || text == "null" || text == "undefined"

	return token{kind: kind, text: text, pos: pos, lead: lead}, nil
}

var multiCharPuncts = []string{"=>", "...", "===", "!==", "==", "!="}

func (l *lexer) lexPunct(pos synkind.Position, lead []synkind.Comment) (token, error) {
	for _, mc := range multiCharPuncts {
		if strings.HasPrefix(l.src[l.pos:], mc) {
			for range mc {
				l.advance()
			}

			l.lastWasVal = false

			return token{kind: tokPunct, text: mc, pos: pos, lead: lead}, nil
		}
	}

	c := l.advance()
	l.lastWasVal = c == ')' || c == ']' || c == '}'

	return token{kind: tokPunct, text: string(c), pos: pos, lead: lead}, nil
}
