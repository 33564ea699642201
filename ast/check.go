package ast

import (
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/token"
)

// Check validates an AST without modifying it.
type Check interface {
	Name() string
	Check(prog *Program) error
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(prog *Program) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return err
		}
	}
	return nil
}

// spanCheck implements Check and reports malformed node spans.
type spanCheck struct {
	limit int
}

// SpanCheck returns a Check that verifies every span is well formed, lies
// within [0, limit] and contains the spans of its children. limit is
// normally the offset of the Eof token. A violation is an internal error.
func SpanCheck(limit int) Check {
	return &spanCheck{limit: limit}
}

func (sc *spanCheck) Name() string { return "spans" }

func (sc *spanCheck) Check(prog *Program) error {
	var errs diag.List
	bounds := token.NewLoc(0, sc.limit)
	InspectAll(prog.Exprs, func(e Expr) bool {
		loc := e.Span()
		if !loc.Valid() {
			errs = append(errs, diag.Internal(loc, "Malformed span %s on %s", loc, Sexpr(e)))
			return true
		}
		if !bounds.Contains(loc) {
			errs = append(errs, diag.Internal(loc, "Span %s outside source bounds %s", loc, bounds))
		}
		for _, c := range Children(e) {
			if !loc.Contains(c.Span()) {
				errs = append(errs, diag.Internal(c.Span(), "Span %s not inside parent span %s", c.Span(), loc))
			}
		}
		return true
	})
	return errs.Err()
}
