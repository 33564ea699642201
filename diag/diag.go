// Package diag holds the error records produced by the scanner, the parser
// and the resolver, and renders them against the source they refer to.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rubiojr/rev/token"
)

// Kind tells who produced a diagnostic. KindInternal marks a broken
// invariant inside the front end rather than a fault in the user's source.
type Kind uint8

const (
	KindParser Kind = iota
	KindInternal
	KindLexer
	KindResolver
)

func (k Kind) String() string {
	switch k {
	case KindParser:
		return "parser"
	case KindInternal:
		return "internal"
	case KindLexer:
		return "lexer"
	case KindResolver:
		return "resolver"
	default:
		return "unknown"
	}
}

// Diagnostic is a single error with the source range it applies to.
type Diagnostic struct {
	Kind    Kind
	Message string
	Loc     token.Loc
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s error %s: %s", d.Kind, d.Loc, d.Message)
}

// Internal reports whether d signals a defect in the front end.
func (d *Diagnostic) Internal() bool { return d.Kind == KindInternal }

func newf(kind Kind, loc token.Loc, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Loc: loc}
}

// Parser returns a syntax error.
func Parser(loc token.Loc, format string, args ...any) *Diagnostic {
	return newf(KindParser, loc, format, args...)
}

// Internal returns an internal error.
func Internal(loc token.Loc, format string, args ...any) *Diagnostic {
	return newf(KindInternal, loc, format, args...)
}

// Lexer returns a lexical error.
func Lexer(loc token.Loc, format string, args ...any) *Diagnostic {
	return newf(KindLexer, loc, format, args...)
}

// Resolver returns a name resolution error.
func Resolver(loc token.Loc, format string, args ...any) *Diagnostic {
	return newf(KindResolver, loc, format, args...)
}

// List is an ordered collection of diagnostics. A non-empty List is an error.
type List []*Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil when l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Messages returns the message text of every diagnostic in order.
func (l List) Messages() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Message
	}
	return out
}

// HasInternal reports whether any diagnostic is an internal error.
func (l List) HasInternal() bool {
	for _, d := range l {
		if d.Internal() {
			return true
		}
	}
	return false
}

// Detail returns every diagnostic on its own line.
func (l List) Detail() string {
	var b strings.Builder
	for _, d := range l {
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

// AsList extracts the diagnostics carried by err. A lone *Diagnostic is
// returned as a one element list.
func AsList(err error) (List, bool) {
	var l List
	if errors.As(err, &l) {
		return l, true
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return List{d}, true
	}
	return nil, false
}
