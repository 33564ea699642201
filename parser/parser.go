// Package parser builds expression trees from a token stream.
//
// The grammar is a precedence cascade, loosest binding first:
//
//	expr       = equality
//	equality   = comparison (("==" | "!=") comparison)*
//	comparison = term (("<" | "<=" | ">" | ">=") term)*
//	term       = factor (("+" | "-") factor)*
//	factor     = unary (("*" | "/") unary)*
//	unary      = ("!" | "-") primary | primary
//	primary    = INT | REAL | IDENT | "true" | "false" | "null" | "(" expr ")"
//
// Top-level units are separated by newlines. A malformed unit produces one
// diagnostic; the parser then discards tokens up to the next newline or
// statement keyword and carries on, so a single run reports every broken
// unit.
package parser

import (
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/rubiojr/rev/ast"
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/token"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger receiving debug records about groupings and
// error recovery. Logging never changes parse results.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxErrors stops parsing once n diagnostics were collected. Zero means
// no limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = max(n, 0) }
}

// Parser holds the state of one parse. The token slice is only read.
type Parser struct {
	tokens    []token.Token
	current   int
	unitStart int
	logger    *slog.Logger
	maxErrors int
}

// New returns a parser over tokens. The stream must end with token.Eof.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseTokens is a shorthand for New(tokens, opts...).Parse().
func ParseTokens(tokens []token.Token, opts ...Option) ([]ast.Expr, error) {
	return New(tokens, opts...).Parse()
}

// Parse returns one expression per top-level unit. If any unit failed the
// expressions are dropped and the error is a diag.List holding every
// diagnostic in source order.
func (p *Parser) Parse() ([]ast.Expr, error) {
	p.current = 0
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Kind != token.Eof {
		return nil, diag.List{diag.Internal(token.Loc{}, "Token stream is not terminated by Eof")}
	}

	var (
		nodes []ast.Expr
		errs  diag.List
	)
	for !p.eof() {
		// newlines only separate units
		for !p.eof() && p.isAt(token.NewLine) {
			p.current++
		}
		if p.eof() {
			break
		}

		p.unitStart = p.at().Loc.Start
		expr, d := p.parseExpr()
		if d == nil {
			nodes = append(nodes, expr)
			continue
		}
		errs = append(errs, d)
		if d.Internal() || (p.maxErrors > 0 && len(errs) >= p.maxErrors) {
			break
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return nodes, nil
}

func (p *Parser) parseExpr() (ast.Expr, *diag.Diagnostic) {
	return p.parseEquality()
}

// binary parses a left-associative tier: operand (op operand)*.
func (p *Parser) binary(operand func() (ast.Expr, *diag.Diagnostic), ops ...token.Kind) (ast.Expr, *diag.Diagnostic) {
	start := p.at().Loc.Start
	expr, d := operand()
	if d != nil {
		return nil, d
	}

	for p.isAny(ops...) {
		op, d := p.eat()
		if d != nil {
			return nil, d
		}
		right, d := operand()
		if d != nil {
			return nil, d
		}
		expr = &ast.Binary{
			Left:     expr,
			Operator: op.Value,
			Right:    right,
			Loc:      p.span(start),
		}
	}

	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expr, *diag.Diagnostic) {
	return p.binary(p.parseComparison, token.EqualEqual, token.BangEqual)
}

func (p *Parser) parseComparison() (ast.Expr, *diag.Diagnostic) {
	return p.binary(p.parseTerm, token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}

func (p *Parser) parseTerm() (ast.Expr, *diag.Diagnostic) {
	return p.binary(p.parseFactor, token.Minus, token.Plus)
}

func (p *Parser) parseFactor() (ast.Expr, *diag.Diagnostic) {
	return p.binary(p.parseUnary, token.Star, token.Slash)
}

func (p *Parser) parseUnary() (ast.Expr, *diag.Diagnostic) {
	if !p.isAny(token.Bang, token.Minus) {
		return p.parsePrimary()
	}

	start := p.at().Loc.Start
	op, d := p.eat()
	if d != nil {
		return nil, d
	}
	right, d := p.parsePrimary()
	if d != nil {
		return nil, d
	}
	return &ast.Unary{Operator: op.Value, Right: right, Loc: p.span(start)}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *diag.Diagnostic) {
	if p.eof() {
		return nil, p.fail(false, "Unexpected end of input")
	}
	tk, d := p.eat()
	if d != nil {
		return nil, d
	}

	switch tk.Kind {
	case token.Identifier, token.True, token.False, token.Null:
		return &ast.Identifier{Name: tk.Value, Loc: tk.Loc}, nil
	case token.Int:
		return p.parseIntLiteral(tk)
	case token.Real:
		return p.parseRealLiteral(tk)
	case token.OpenParen:
		return p.parseGrouping(tk.Loc.Start)
	case token.NewLine:
		// the cursor already sits on the next line
		return nil, p.fail(false, "Unexpected end of line")
	default:
		return nil, p.fail(true, "Unknown token to parse: '%s'", tk)
	}
}

func (p *Parser) parseIntLiteral(tk token.Token) (ast.Expr, *diag.Diagnostic) {
	value, err := strconv.ParseInt(tk.Value, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return nil, p.fail(true, "Integer literal out of range: '%s'", tk.Value)
	}
	if err != nil {
		return nil, diag.Internal(tk.Loc, "Error parsing int from string '%s'", tk.Value)
	}
	return &ast.IntLiteral{Value: value, Loc: tk.Loc}, nil
}

func (p *Parser) parseRealLiteral(tk token.Token) (ast.Expr, *diag.Diagnostic) {
	value, err := strconv.ParseFloat(tk.Value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, diag.Internal(tk.Loc, "Error parsing real from string '%s'", tk.Value)
	}
	return &ast.RealLiteral{Value: value, Loc: tk.Loc}, nil
}

func (p *Parser) parseGrouping(start int) (ast.Expr, *diag.Diagnostic) {
	expr, d := p.parseExpr()
	if d != nil {
		return nil, d
	}
	p.logger.Debug("grouping end", "at", p.at().Kind.String(), "offset", p.at().Loc.Start)
	if d := p.expect(token.CloseParen); d != nil {
		return nil, d
	}
	return &ast.Grouping{Expr: expr, Loc: p.span(start)}, nil
}
