package ast

import (
	"strconv"
	"strings"
)

// Sexpr renders e as an S-expression, e.g. (+ 1 (* 2 3)). Groupings print
// as (group x) so that the tree shape is visible.
func Sexpr(e Expr) string {
	var b strings.Builder
	writeSexpr(&b, e)
	return b.String()
}

func writeSexpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Binary:
		b.WriteString("(" + n.Operator + " ")
		writeSexpr(b, n.Left)
		b.WriteByte(' ')
		writeSexpr(b, n.Right)
		b.WriteByte(')')
	case *Unary:
		b.WriteString("(" + n.Operator + " ")
		writeSexpr(b, n.Right)
		b.WriteByte(')')
	case *Grouping:
		b.WriteString("(group ")
		writeSexpr(b, n.Expr)
		b.WriteByte(')')
	case *Identifier:
		b.WriteString(n.Name)
	case *IntLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *RealLiteral:
		b.WriteString(FormatReal(n.Value))
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString("<?>")
	}
}

// FormatReal prints v in its shortest form, keeping a trailing ".0" on
// integral values so reals never read as ints.
func FormatReal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnI") {
		s += ".0"
	}
	return s
}

// Dump renders every top-level expression of prog on its own line.
func Dump(prog *Program) string {
	var b strings.Builder
	for _, e := range prog.Exprs {
		b.WriteString(Sexpr(e))
		b.WriteByte('\n')
	}
	return b.String()
}
