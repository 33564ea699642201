package ast

import "github.com/rubiojr/rev/token"

// Node is the interface for all AST nodes.
type Node interface {
	node()
	Span() token.Loc
}

// Expr is the interface for expression nodes. The set of implementations
// is closed: Binary, Unary, Grouping, Identifier, IntLiteral, RealLiteral.
type Expr interface {
	Node
	expr()
}

// Program is the root node: one expression per top-level unit, in source
// order.
type Program struct {
	Exprs      []Expr
	SourceFile string // display path of the source file
	Source     string // source text the spans refer to
}

func (p *Program) node() {}

// Span covers every top-level expression. An empty program has a zero span.
func (p *Program) Span() token.Loc {
	if len(p.Exprs) == 0 {
		return token.Loc{}
	}
	return p.Exprs[0].Span().Merge(p.Exprs[len(p.Exprs)-1].Span())
}

// Binary represents left op right for ==, !=, <, <=, >, >=, +, -, * and /.
type Binary struct {
	Left     Expr
	Operator string
	Right    Expr
	Loc      token.Loc
}

func (b *Binary) node()           {}
func (b *Binary) expr()           {}
func (b *Binary) Span() token.Loc { return b.Loc }

// Unary represents a prefix ! or -.
type Unary struct {
	Operator string
	Right    Expr
	Loc      token.Loc
}

func (u *Unary) node()           {}
func (u *Unary) expr()           {}
func (u *Unary) Span() token.Loc { return u.Loc }

// Grouping is a parenthesized expression. Its span includes both parens.
type Grouping struct {
	Expr Expr
	Loc  token.Loc
}

func (g *Grouping) node()           {}
func (g *Grouping) expr()           {}
func (g *Grouping) Span() token.Loc { return g.Loc }

// Identifier is a name reference. The keyword literals true, false and
// null are also Identifiers; later stages give those names their meaning.
type Identifier struct {
	Name string
	Loc  token.Loc
}

func (i *Identifier) node()           {}
func (i *Identifier) expr()           {}
func (i *Identifier) Span() token.Loc { return i.Loc }

// IntLiteral is a 64-bit signed integer literal.
type IntLiteral struct {
	Value int64
	Loc   token.Loc
}

func (i *IntLiteral) node()           {}
func (i *IntLiteral) expr()           {}
func (i *IntLiteral) Span() token.Loc { return i.Loc }

// RealLiteral is a 64-bit floating point literal.
type RealLiteral struct {
	Value float64
	Loc   token.Loc
}

func (r *RealLiteral) node()           {}
func (r *RealLiteral) expr()           {}
func (r *RealLiteral) Span() token.Loc { return r.Loc }

// IsKeywordLiteral reports whether name is one of the folded literals.
func IsKeywordLiteral(name string) bool {
	return name == "true" || name == "false" || name == "null"
}
