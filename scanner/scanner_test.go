package scanner

import (
	"testing"

	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestScanLiterals(t *testing.T) {
	toks, err := Scan("12 24. 54.678 (true) ( (null ))")
	require.NoError(t, err)

	want := []token.Token{
		{Kind: token.Int, Value: "12", Loc: token.NewLoc(0, 1)},
		{Kind: token.Real, Value: "24.", Loc: token.NewLoc(3, 5)},
		{Kind: token.Real, Value: "54.678", Loc: token.NewLoc(7, 12)},
		{Kind: token.OpenParen, Value: "(", Loc: token.NewLoc(14, 14)},
		{Kind: token.True, Value: "true", Loc: token.NewLoc(15, 18)},
		{Kind: token.CloseParen, Value: ")", Loc: token.NewLoc(19, 19)},
		{Kind: token.OpenParen, Value: "(", Loc: token.NewLoc(21, 21)},
		{Kind: token.OpenParen, Value: "(", Loc: token.NewLoc(23, 23)},
		{Kind: token.Null, Value: "null", Loc: token.NewLoc(24, 27)},
		{Kind: token.CloseParen, Value: ")", Loc: token.NewLoc(29, 29)},
		{Kind: token.CloseParen, Value: ")", Loc: token.NewLoc(30, 30)},
		{Kind: token.Eof, Loc: token.NewLoc(31, 31)},
	}
	assert.Equal(t, want, toks)
}

func TestScanOperators(t *testing.T) {
	toks, err := Scan("+ - * / ! != = == < <= > >=")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.Eof,
	}, kinds(toks))
	assert.Equal(t, "!=", toks[5].Value)
	assert.Equal(t, token.NewLoc(10, 11), toks[5].Loc)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Scan("struct fn var const for if while print return _x1 foo")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Struct, token.Fn, token.Var, token.Const, token.For,
		token.If, token.While, token.Print, token.Return,
		token.Identifier, token.Identifier, token.Eof,
	}, kinds(toks))
	assert.Equal(t, "_x1", toks[9].Value)
}

func TestScanNewLinesAndComments(t *testing.T) {
	toks, err := Scan("a // trailing\r\n\tb\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Identifier, token.NewLine, token.Identifier, token.NewLine, token.Eof,
	}, kinds(toks))
	assert.Equal(t, token.NewLoc(14, 14), toks[1].Loc)
	assert.Equal(t, token.NewLoc(18, 18), toks[4].Loc)
}

func TestScanDivisionIsNotComment(t *testing.T) {
	toks, err := Scan("4 / 2")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Int, token.Slash, token.Int, token.Eof}, kinds(toks))
}

func TestScanEmpty(t *testing.T) {
	toks, err := Scan("")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Token{Kind: token.Eof, Loc: token.NewLoc(0, 0)}, toks[0])
}

func TestScanErrors(t *testing.T) {
	toks, err := Scan("1 $ 2 @")
	require.Error(t, err)
	assert.Nil(t, toks)

	list, ok := diag.AsList(err)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, diag.KindLexer, list[0].Kind)
	assert.Equal(t, "Unexpected character '$'", list[0].Message)
	assert.Equal(t, token.NewLoc(2, 2), list[0].Loc)
	assert.Equal(t, token.NewLoc(6, 6), list[1].Loc)
}

func TestCursor(t *testing.T) {
	s := New("ab")
	assert.Equal(t, -1, s.Pos())
	b, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b)

	b, ok = s.Next()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b)
	assert.True(t, s.LookingAt("ab"))

	s.Next()
	_, ok = s.Peek()
	assert.False(t, ok)
	_, ok = s.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, s.Pos())
}
