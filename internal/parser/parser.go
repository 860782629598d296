// Package parser implements the reader: it turns a token stream from
// internal/lexer into the S-expression AST defined by internal/ast.
package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/lexer"
)

// Parser reads top-level S-expressions from a token stream.
type Parser struct {
	cur    *tokenCursor
	file   string
	errors []*ParserError
}

// New creates a Parser over already-lexed source text.
func New(file, source string) *Parser {
	return &Parser{cur: newTokenCursor(lexer.New(file, source)), file: file}
}

// Parse reads the entire input and returns every top-level form. It
// returns the first accumulated error, if any; Parser keeps scanning
// past a single bad form so multiple errors can be surfaced at once by
// inspecting Errors() afterward.
func Parse(file, source string) ([]ast.Node, error) {
	p := New(file, source)
	forms := p.ParseProgram()
	if len(p.errors) > 0 {
		return forms, p.errors[0]
	}
	return forms, nil
}

// Errors returns every parse error accumulated during ParseProgram.
func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) errorf(pos lexer.Position, code, format string, args ...any) {
	p.errors = append(p.errors, NewParserError(pos, fmt.Sprintf(format, args...), code))
}

// ParseProgram reads every top-level form until EOF.
func (p *Parser) ParseProgram() []ast.Node {
	var forms []ast.Node
	for !p.cur.Is(lexer.EOF) {
		form := p.parseForm()
		if form != nil {
			forms = append(forms, form)
		} else if !p.cur.Is(lexer.EOF) {
			// Avoid infinite loops on unrecoverable input.
			p.cur.Advance()
		}
	}
	return forms
}

func (p *Parser) parseForm() ast.Node {
	tok := p.cur.Current()
	switch tok.Type {
	case lexer.LPAREN:
		return p.parseList()
	case lexer.LBRACK:
		return p.parseVector()
	case lexer.LBRACE:
		return p.parseMapLiteral()
	case lexer.QUOTE:
		return p.parseQuoteForm("quote")
	case lexer.QUASIQUOTE:
		return p.parseQuoteForm("quasiquote")
	case lexer.UNQUOTE:
		return p.parseQuoteForm("unquote")
	case lexer.UNQUOTE_SPLICE:
		return p.parseQuoteForm("unquote-splice")
	case lexer.IDENT:
		p.cur.Advance()
		return &ast.Symbol{Name: tok.Literal, P: tok.Pos}
	case lexer.INT:
		return p.parseIntLiteral(tok)
	case lexer.FLOAT:
		p.cur.Advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Pos, ErrInvalidNumber, "invalid float literal %q", tok.Literal)
		}
		return &ast.Literal{Kind: ast.LiteralNumber, Value: v, P: tok.Pos}
	case lexer.STRING:
		p.cur.Advance()
		return &ast.Literal{Kind: ast.LiteralString, Value: tok.Literal, P: tok.Pos}
	case lexer.RPAREN, lexer.RBRACK, lexer.RBRACE:
		p.errorf(tok.Pos, ErrUnbalancedDelimiter, "unexpected %q with no matching opening delimiter", tok.Literal)
		p.cur.Advance()
		return nil
	case lexer.EOF:
		return nil
	default:
		p.errorf(tok.Pos, ErrUnexpectedToken, "unexpected token %s", tok.Type)
		p.cur.Advance()
		return nil
	}
}

// parseQuoteForm desugars a reader-macro prefix ('x, `x, ,x, ,@x) into
// the equivalent two-element list (quote x), per the source grammar.
func (p *Parser) parseQuoteForm(head string) ast.Node {
	pos := p.cur.Current().Pos
	p.cur.Advance()
	inner := p.parseForm()
	if inner == nil {
		p.errorf(pos, ErrUnexpectedEOF, "expected a form after %q", head)
		inner = &ast.Literal{Kind: ast.LiteralNull, P: pos}
	}
	return &ast.List{
		Items: []ast.Node{&ast.Symbol{Name: head, P: pos}, inner},
		P:     pos,
	}
}

func (p *Parser) parseIntLiteral(tok lexer.Token) ast.Node {
	p.cur.Advance()
	lit := tok.Literal
	if strings.HasSuffix(lit, "n") {
		digits := strings.TrimSuffix(lit, "n")
		if _, ok := new(big.Int).SetString(digits, 0); !ok {
			p.errorf(tok.Pos, ErrInvalidNumber, "invalid bigint literal %q", lit)
		}
		return &ast.Literal{Kind: ast.LiteralBigInt, Value: digits, P: tok.Pos}
	}

	base, digits, neg := 10, lit, false
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	switch {
	case strings.HasPrefix(digits, "$"):
		base, digits = 16, digits[1:]
	case strings.HasPrefix(digits, "#"):
		base, digits = 2, digits[1:]
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0o"), strings.HasPrefix(digits, "0O"):
		base, digits = 8, digits[2:]
	case strings.HasPrefix(digits, "0b"), strings.HasPrefix(digits, "0B"):
		base, digits = 2, digits[2:]
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		p.errorf(tok.Pos, ErrInvalidNumber, "invalid number literal %q", lit)
	}
	if neg {
		n = -n
	}
	return &ast.Literal{Kind: ast.LiteralNumber, Value: float64(n), P: tok.Pos}
}

func (p *Parser) parseList() ast.Node {
	open := p.cur.Current()
	p.cur.Advance()
	items := p.parseItemsUntil(lexer.RPAREN, open.Pos, ErrUnbalancedDelimiter)
	return &ast.List{Items: items, P: open.Pos}
}

func (p *Parser) parseVector() ast.Node {
	open := p.cur.Current()
	p.cur.Advance()
	items := p.parseItemsUntil(lexer.RBRACK, open.Pos, ErrUnbalancedDelimiter)
	return &ast.Vector{Items: items, P: open.Pos}
}

// parseMapLiteral desugars `{k1 v1 k2 v2}` directly into the call form
// `(hash-map k1 v1 k2 v2)`, so the AST keeps exactly four node kinds
// while map syntax stays reader-recognized and lexically distinct from
// both lists and vectors.
func (p *Parser) parseMapLiteral() ast.Node {
	open := p.cur.Current()
	p.cur.Advance()
	items := p.parseItemsUntil(lexer.RBRACE, open.Pos, ErrUnbalancedDelimiter)
	all := make([]ast.Node, 0, len(items)+1)
	all = append(all, &ast.Symbol{Name: "hash-map", P: open.Pos})
	all = append(all, items...)
	return &ast.List{Items: all, P: open.Pos}
}

func (p *Parser) parseItemsUntil(closing lexer.TokenType, openPos lexer.Position, code string) []ast.Node {
	var items []ast.Node
	for {
		if p.cur.Is(lexer.EOF) {
			p.errorf(openPos, code, "unbalanced delimiter: opened at %d:%d, never closed", openPos.Line, openPos.Column)
			return items
		}
		if p.cur.Is(closing) {
			p.cur.Advance()
			return items
		}
		form := p.parseForm()
		if form != nil {
			items = append(items, form)
		}
	}
}
