package ast

// Inspect traverses e in pre-order, left to right, calling fn on every
// expression. Children of a node are skipped when fn returns false.
func Inspect(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Inspect(c, fn)
	}
}

// InspectAll runs Inspect over each expression in order.
func InspectAll(exprs []Expr, fn func(Expr) bool) {
	for _, e := range exprs {
		Inspect(e, fn)
	}
}

// Children returns the direct sub-expressions of e.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Binary:
		return []Expr{n.Left, n.Right}
	case *Unary:
		return []Expr{n.Right}
	case *Grouping:
		return []Expr{n.Expr}
	}
	return nil
}

// Identifiers returns every Identifier under exprs in traversal order,
// keyword literals included.
func Identifiers(exprs []Expr) []*Identifier {
	var out []*Identifier
	InspectAll(exprs, func(e Expr) bool {
		if id, ok := e.(*Identifier); ok {
			out = append(out, id)
		}
		return true
	})
	return out
}
