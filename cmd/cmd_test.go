package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	argv := []string{"rev"}
	if len(args) == 0 || args[0] != "--color" {
		argv = append(argv, "--color", "never")
	}
	err := a.command("test").Run(context.Background(), append(argv, args...))
	return stdout.String(), stderr.String(), err
}

func TestTokensCommand(t *testing.T) {
	out, _, err := run(t, "tokens", "-e", "1+x\n")
	require.NoError(t, err)
	assert.Equal(t, "Int '1' [0,0]\nPlus '+' [1,1]\nIdentifier 'x' [2,2]\nNewLine '\\n' [3,3]\nEof '<eof>' [4,4]\n", out)
}

func TestParseCommand(t *testing.T) {
	out, _, err := run(t, "parse", "-e", "1 + 2 * 3\n-x")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 (* 2 3))\n(- x)\n", out)

	path := filepath.Join(t.TempDir(), "main.rev")
	require.NoError(t, os.WriteFile(path, []byte("(a) == 2.\n"), 0o644))
	out, _, err = run(t, "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "(== (group a) 2.0)\n", out)
}

func TestParseCommandErrors(t *testing.T) {
	out, _, err := run(t, "parse", "-e", "1 + )\n(2")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "error: Unknown token to parse: ')'\n --> <expr>:1:1\n")
	assert.Contains(t, out, "1 | 1 + )\n  | ^^^^^\n")
	assert.Contains(t, out, "error: Expected token type 'CloseParen', found: Eof\n --> <expr>:2:1\n")

	_, _, err = run(t, "parse")
	assert.ErrorContains(t, err, "usage: rev parse")

	_, _, err = run(t, "parse", filepath.Join(t.TempDir(), "nope.rev"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckCommand(t *testing.T) {
	out, _, err := run(t, "check", "-e", "b + a\nb * true\nc")
	require.NoError(t, err)
	assert.Equal(t, "b = 0\na = 1\nc = 2\n", out)
}

func TestCheckCommandWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rev.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  globals: [pi]\n  strict: true\n"), 0o644))

	out, _, err := run(t, "--config", path, "check", "-e", "pi * 2")
	require.NoError(t, err)
	assert.Equal(t, "pi = 0\n", out)

	out, _, err = run(t, "--config", path, "check", "-e", "pi * r")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "error: Undeclared variable 'r'\n")

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "rev.ini"), "check", "-e", "1")
	assert.Error(t, err)
}

func TestColorFlag(t *testing.T) {
	_, _, err := run(t, "--color", "purple", "parse", "-e", "1")
	assert.ErrorContains(t, err, "output.color")

	out, _, err := run(t, "--color", "always", "parse", "-e", ")")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "\x1b[")
}

func TestTraceFlag(t *testing.T) {
	_, stderr, err := run(t, "--trace", "parse", "-e", "(1)")
	require.NoError(t, err)
	assert.Contains(t, stderr, "grouping end")

	_, stderr, err = run(t, "parse", "-e", "(1)")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestTestCommand(t *testing.T) {
	out, _, err := run(t, "test", "-j", "2", "../testdata/golden")
	require.NoError(t, err)
	assert.Contains(t, out, "ok ../testdata/golden/precedence.rev\n")
	assert.Contains(t, out, "4 tests, 4 ok, 0 ko")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.rev"), []byte("1 + 2 // expect: (+ 2 1)\n"), 0o644))
	out, _, err = run(t, "test", dir)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "ko "+filepath.Join(dir, "bad.rev"))
	assert.Contains(t, out, `expected exprs: ["(+ 2 1)"]`)
	assert.Contains(t, out, "1 tests, 0 ok, 1 ko")

	_, _, err = run(t, "test", t.TempDir())
	assert.ErrorContains(t, err, "no .rev test files found")
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", &buf))
	assert.False(t, useColor("auto", &buf))
}
