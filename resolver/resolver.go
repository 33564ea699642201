// Package resolver assigns every distinct identifier of a parsed program a
// stable slot index that later stages use in place of the name.
package resolver

import (
	"io"
	"log/slog"

	"github.com/rubiojr/rev/ast"
	"github.com/rubiojr/rev/diag"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithGlobals predeclares names. They receive the first slots, in order.
func WithGlobals(names ...string) Option {
	return func(r *Resolver) { r.globals = append(r.globals, names...) }
}

// WithStrict makes every reference to a name that is not a global a
// resolution error.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithMaxSlots caps the number of slots. Zero means no limit.
func WithMaxSlots(n int) Option {
	return func(r *Resolver) { r.maxSlots = max(n, 0) }
}

// WithLogger sets the logger receiving a debug record per new slot.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver maps identifier names to slots. It keeps no state between
// calls to Resolve.
type Resolver struct {
	globals  []string
	strict   bool
	maxSlots int
	logger   *slog.Logger
}

// New returns a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks exprs left to right and gives each distinct name the next
// free slot. The keyword literals true, false and null never get a slot.
// On failure the error is a diag.List of resolver diagnostics.
func (r *Resolver) Resolve(exprs []ast.Expr) (map[string]int, error) {
	slots := make(map[string]int)
	var errs diag.List

	for _, name := range r.globals {
		if _, ok := slots[name]; ok || ast.IsKeywordLiteral(name) {
			continue
		}
		slots[name] = len(slots)
	}
	declared := len(slots)

	reported := make(map[string]bool)
	for _, id := range ast.Identifiers(exprs) {
		if ast.IsKeywordLiteral(id.Name) {
			continue
		}
		if _, ok := slots[id.Name]; ok {
			continue
		}
		if r.strict {
			if !reported[id.Name] {
				reported[id.Name] = true
				errs = append(errs, diag.Resolver(id.Loc, "Undeclared variable '%s'", id.Name))
			}
			continue
		}
		if r.maxSlots > 0 && len(slots) >= r.maxSlots {
			if !reported[id.Name] {
				reported[id.Name] = true
				errs = append(errs, diag.Resolver(id.Loc, "Too many variables, limit is %d", r.maxSlots))
			}
			continue
		}
		slots[id.Name] = len(slots)
		r.logger.Debug("slot", "name", id.Name, "slot", slots[id.Name], "loc", id.Loc.String())
	}

	if len(errs) > 0 {
		return nil, errs
	}
	r.logger.Debug("resolved", "globals", declared, "slots", len(slots))
	return slots, nil
}
