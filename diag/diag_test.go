package diag

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rubiojr/rev/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticError(t *testing.T) {
	d := Parser(token.NewLoc(3, 5), "Unknown token to parse: '%s'", ")")
	assert.Equal(t, KindParser, d.Kind)
	assert.Equal(t, "parser error [3,5]: Unknown token to parse: ')'", d.Error())
	assert.False(t, d.Internal())
	assert.True(t, Internal(token.Loc{}, "boom").Internal())
}

func TestListErr(t *testing.T) {
	var empty List
	assert.NoError(t, empty.Err())
	assert.Equal(t, "no errors", empty.Error())

	l := List{
		Parser(token.NewLoc(0, 1), "first"),
		Resolver(token.NewLoc(4, 4), "second"),
	}
	require.Error(t, l.Err())
	assert.Equal(t, "parser error [0,1]: first (and 1 more errors)", l.Error())
	assert.Equal(t, []string{"first", "second"}, l.Messages())
	assert.False(t, l.HasInternal())
	assert.Equal(t, "parser error [0,1]: first\nresolver error [4,4]: second\n", l.Detail())
}

func TestAsList(t *testing.T) {
	l := List{Lexer(token.NewLoc(1, 1), "Unexpected character '$'")}
	wrapped := fmt.Errorf("main.rev: %w", error(l))

	got, ok := AsList(wrapped)
	require.True(t, ok)
	assert.Equal(t, l, got)

	single, ok := AsList(Internal(token.Loc{}, "Token access out of bound"))
	require.True(t, ok)
	require.Len(t, single, 1)
	assert.True(t, single.HasInternal())

	_, ok = AsList(errors.New("plain"))
	assert.False(t, ok)
}

func TestSourcePosition(t *testing.T) {
	src := NewSource("t.rev", "x\n1 + )\n")
	pos := src.Position(6)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 5, pos.Column)
	assert.Equal(t, "t.rev:2:5", pos.String())

	// clamped past the end
	assert.Equal(t, 2, src.Position(100).Line)

	empty := NewSource("e.rev", "")
	assert.Equal(t, "e.rev:1:1", empty.Position(0).String())
}

func TestRender(t *testing.T) {
	src := NewSource("t.rev", "x\n1 + )\n")
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.Render(&buf, src, Parser(token.NewLoc(6, 6), "Unknown token to parse: ')'")))

	want := "error: Unknown token to parse: ')'\n" +
		" --> t.rev:2:5\n" +
		"  |\n" +
		"2 | 1 + )\n" +
		"  |     ^\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderSpanUnderline(t *testing.T) {
	src := NewSource("", "foo + bar")
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.Render(&buf, src, Resolver(token.NewLoc(6, 8), "Undeclared variable 'bar'")))
	assert.Contains(t, buf.String(), "1 | foo + bar\n  |       ^^^\n")
	assert.Contains(t, buf.String(), " --> 1:7\n")
}

func TestRenderInternalLabel(t *testing.T) {
	src := NewSource("t.rev", "1")
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.Render(&buf, src, Internal(token.NewLoc(1, 1), "Token access out of bound")))
	assert.Contains(t, buf.String(), "internal error: Token access out of bound\n")
}

func TestRenderError(t *testing.T) {
	src := NewSource("t.rev", "1 +\n)\n")
	l := List{
		Parser(token.NewLoc(0, 3), "Unexpected end of line"),
		Parser(token.NewLoc(4, 4), "Unknown token to parse: ')'"),
	}
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.RenderError(&buf, src, l))
	out := buf.String()
	assert.Contains(t, out, "error: Unexpected end of line\n")
	assert.Contains(t, out, "\n\nerror: Unknown token to parse: ')'\n")

	buf.Reset()
	require.NoError(t, r.RenderError(&buf, src, errors.New("reading t.rev: no such file")))
	assert.Equal(t, "error: reading t.rev: no such file\n", buf.String())
}

func TestRenderColor(t *testing.T) {
	src := NewSource("t.rev", "1 + )")
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.Render(&buf, src, Parser(token.NewLoc(4, 4), "Unknown token to parse: ')'")))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Unknown token to parse: ')'")
}
