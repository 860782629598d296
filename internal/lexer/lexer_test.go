package lexer

import "testing"

func collect(src string) []Token {
	l := New("test.lisc", src)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestNextTokenDelimitersAndSymbols(t *testing.T) {
	toks := collect(`(fn add [a b] (+ a b))`)

	want := []TokenType{
		LPAREN, IDENT, IDENT, LBRACK, IDENT, IDENT, RBRACK,
		LPAREN, IDENT, IDENT, IDENT, RPAREN, RPAREN, EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s (%q)", i, toks[i].Type, tt, toks[i].Literal)
		}
	}
}

func TestNextTokenQuoteForms(t *testing.T) {
	toks := collect("'x `(a ,b ,@c)")
	want := []TokenType{QUOTE, IDENT, QUASIQUOTE, LPAREN, IDENT, UNQUOTE, IDENT, UNQUOTE_SPLICE, IDENT, RPAREN, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	cases := []struct {
		src  string
		typ  TokenType
		lit  string
	}{
		{"123", INT, "123"},
		{"-5", INT, "-5"},
		{"1.5", FLOAT, "1.5"},
		{"1.5e10", FLOAT, "1.5e10"},
		{"$ff", INT, "$ff"},
		{"0x2a", INT, "0x2a"},
		{"0b1010", INT, "0b1010"},
		{"#1010", INT, "#1010"},
	}
	for _, c := range cases {
		toks := collect(c.src)
		if toks[0].Type != c.typ || toks[0].Literal != c.lit {
			t.Errorf("%q: got (%s, %q), want (%s, %q)", c.src, toks[0].Type, toks[0].Literal, c.typ, c.lit)
		}
	}
}

func TestNextTokenStringEscapesAndInterpolation(t *testing.T) {
	toks := collect(`"hello\nworld ${1 + 2}"`)
	if toks[0].Type != STRING {
		t.Fatalf("got %s, want STRING", toks[0].Type)
	}
	want := "hello\nworld ${1 + 2}"
	if toks[0].Literal != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New("test.lisc", `"unterminated`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
}

func TestNextTokenLineComments(t *testing.T) {
	toks := collect("; a comment\n(foo) ; trailing")
	want := []TokenType{LPAREN, IDENT, RPAREN, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
}

func TestNewStripsBOMAndShebang(t *testing.T) {
	src := "﻿#!/usr/bin/env lisc\n(foo)"
	toks := collect(src)
	if toks[0].Type != LPAREN {
		t.Fatalf("expected LPAREN first, got %s", toks[0].Type)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("f.lisc", "(foo\n  bar)")
	tok := l.NextToken() // (
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Errorf("( at %d:%d, want 1:1", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken() // foo
	if tok.Pos.Line != 1 || tok.Pos.Column != 2 {
		t.Errorf("foo at %d:%d, want 1:2", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken() // bar
	if tok.Pos.Line != 2 {
		t.Errorf("bar line = %d, want 2", tok.Pos.Line)
	}
}
