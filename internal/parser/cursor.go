package parser

import "github.com/lisc-lang/lisc/internal/lexer"

// tokenCursor buffers tokens from a Lexer to provide arbitrary lookahead
// without re-lexing. It grows its buffer lazily, the way the teacher's
// TokenCursor does, but is mutated in place here since the reader's
// grammar never needs to branch-and-rewind across more than the handful
// of tokens already buffered for Peek.
type tokenCursor struct {
	lex    *lexer.Lexer
	tokens []lexer.Token
	index  int
}

func newTokenCursor(l *lexer.Lexer) *tokenCursor {
	c := &tokenCursor{lex: l, tokens: make([]lexer.Token, 0, 32)}
	c.tokens = append(c.tokens, l.NextToken())
	return c
}

// Current returns the token at the cursor's position.
func (c *tokenCursor) Current() lexer.Token { return c.tokens[c.index] }

// Peek returns the token n positions ahead of the current one.
func (c *tokenCursor) Peek(n int) lexer.Token {
	target := c.index + n
	for target >= len(c.tokens) && c.tokens[len(c.tokens)-1].Type != lexer.EOF {
		c.tokens = append(c.tokens, c.lex.NextToken())
	}
	if target >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[target]
}

// Advance moves the cursor to the next token and returns it.
func (c *tokenCursor) Advance() lexer.Token {
	if c.Current().Type != lexer.EOF {
		c.index++
		c.Peek(0)
	}
	return c.Current()
}

// Is reports whether the current token has the given type.
func (c *tokenCursor) Is(t lexer.TokenType) bool { return c.Current().Type == t }
