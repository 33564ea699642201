package parser

import (
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/token"
)

// at returns the token under the cursor. The Eof sentinel keeps it in
// bounds as long as callers check eof() before eating.
func (p *Parser) at() token.Token {
	return p.tokens[p.current]
}

// prev returns the last consumed token.
func (p *Parser) prev() token.Token {
	return p.tokens[p.current-1]
}

// eat consumes the token under the cursor. Eating the Eof sentinel is a
// parser bug, not a user error.
func (p *Parser) eat() (token.Token, *diag.Diagnostic) {
	if p.eof() {
		return token.Token{}, diag.Internal(p.at().Loc, "Token access out of bound")
	}
	p.current++
	return p.prev(), nil
}

// expect consumes the next token and checks its kind. A newline or Eof in
// its place is left unconsumed so the next unit starts intact.
func (p *Parser) expect(kind token.Kind) *diag.Diagnostic {
	if p.isAny(token.Eof, token.NewLine) && kind != p.at().Kind {
		return p.fail(false, "Expected token type '%s', found: %s", kind, p.at().Kind)
	}
	tk, d := p.eat()
	if d != nil {
		return d
	}
	if tk.Kind != kind {
		return p.fail(true, "Expected token type '%s', found: %s", kind, tk.Kind)
	}
	return nil
}

func (p *Parser) isAt(kind token.Kind) bool {
	return p.at().Kind == kind
}

func (p *Parser) isAny(kinds ...token.Kind) bool {
	k := p.at().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p *Parser) eof() bool {
	return p.isAt(token.Eof)
}

// span returns the range from start to the end of the last consumed token.
func (p *Parser) span(start int) token.Loc {
	end := start
	if p.current > 0 {
		end = max(end, p.prev().Loc.End)
	}
	return token.NewLoc(start, end)
}

// fail builds a syntax error covering the current unit. With sync set the
// parser first enters panic mode; failures that already left the cursor on
// a safe boundary pass false.
func (p *Parser) fail(sync bool, format string, args ...any) *diag.Diagnostic {
	if sync {
		p.synchronize()
	}
	return diag.Parser(p.span(p.unitStart), format, args...)
}

// synchronize discards tokens until a newline, a statement keyword or the
// end of the stream. The anchor itself is not consumed.
func (p *Parser) synchronize() {
	skipped := 0
	for !p.eof() && !token.IsSyncAnchor(p.at().Kind) {
		p.current++
		skipped++
	}
	p.logger.Debug("synchronize", "skipped", skipped, "anchor", p.at().Kind.String())
}
