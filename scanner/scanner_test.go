package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gomix-lang/golox/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScan_Punctuation(t *testing.T) {
	toks, errs := New("(){},.-+;*/").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.EOF,
	}, types(toks))
}

func TestScan_OneOrTwoCharOperators(t *testing.T) {
	toks, errs := New("! != = == > >= < <= **").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.StarStar, token.EOF,
	}, types(toks))
}

func TestScan_NumberLiteral(t *testing.T) {
	toks, errs := New("123.45").Scan()
	assert.Empty(t, errs)
	if assert.Len(t, toks, 2) {
		assert.Equal(t, token.Number, toks[0].Type)
		assert.Equal(t, 123.45, toks[0].Literal)
	}
}

func TestScan_StringLiteral(t *testing.T) {
	toks, errs := New(`"hello world"`).Scan()
	assert.Empty(t, errs)
	if assert.Len(t, toks, 2) {
		assert.Equal(t, token.String, toks[0].Type)
		assert.Equal(t, "hello world", toks[0].Literal)
	}
}

func TestScan_UnterminatedString(t *testing.T) {
	_, errs := New(`"unterminated`).Scan()
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Message, "Unterminated string")
	}
}

func TestScan_Keywords(t *testing.T) {
	toks, errs := New("class super this var while").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{
		token.Class, token.Super, token.This, token.Var, token.While, token.EOF,
	}, types(toks))
}

func TestScan_Identifier(t *testing.T) {
	toks, errs := New("orchid").Scan()
	assert.Empty(t, errs)
	if assert.Len(t, toks, 2) {
		assert.Equal(t, token.Identifier, toks[0].Type)
		assert.Equal(t, "orchid", toks[0].Lexeme)
	}
}

func TestScan_LineComment(t *testing.T) {
	toks, errs := New("1 // a trailing comment\n2").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{token.Number, token.Number, token.EOF}, types(toks))
}

func TestScan_BlockComment_Lax(t *testing.T) {
	toks, errs := New("1 /* /* nested */ 2").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{token.Number, token.Number, token.EOF}, types(toks))
}

func TestScan_BlockComment_StrictCountsNesting(t *testing.T) {
	// In strict mode the inner "/*" demands its own closer, so the first
	// "*/" only closes the inner comment and "2" is still inside it.
	toks, errs := NewWithCommentMode("1 /* /* nested */ 2 */ 3", NestedCommentsStrict).Scan()
	assert.Empty(t, errs)
	assert.Equal(t, []token.Type{token.Number, token.Number, token.EOF}, types(toks))
}

func TestScan_UnexpectedCharacter(t *testing.T) {
	_, errs := New("@").Scan()
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Message, "Unexpected character")
	}
}

func TestScan_LineNumbers(t *testing.T) {
	toks, errs := New("1\n2\n\n3").Scan()
	assert.Empty(t, errs)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 4, toks[2].Line)
}
