// Package frontend runs the rev front end: scan, parse, check and resolve.
package frontend

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rubiojr/rev/ast"
	"github.com/rubiojr/rev/config"
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/parser"
	"github.com/rubiojr/rev/resolver"
	"github.com/rubiojr/rev/scanner"
	"github.com/rubiojr/rev/token"
)

// Resolver maps the identifiers of a parsed program to slots.
type Resolver interface {
	Resolve(exprs []ast.Expr) (map[string]int, error)
}

// Stages of the pipeline, as reported by Error.
const (
	StageScan    = "scan"
	StageParse   = "parse"
	StageCheck   = "check"
	StageResolve = "resolve"
)

// Error is a failed pipeline stage together with the source its
// diagnostics refer to.
type Error struct {
	Stage  string
	Source *diag.Source
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source.Name, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Unit is the result of a successful compile.
type Unit struct {
	Program *ast.Program
	Tokens  []token.Token
	Slots   map[string]int
}

// Compiler drives the pipeline. The zero value scans, parses and resolves
// with default settings.
type Compiler struct {
	Resolver      Resolver       // nil selects resolver.New()
	Checks        ast.CheckChain // run between parse and resolve
	VerifySpans   bool           // prepend ast.SpanCheck to Checks
	ParserOptions []parser.Option
	Logger        *slog.Logger
}

// FromConfig builds a Compiler from a loaded configuration.
func FromConfig(cfg *config.Config, logger *slog.Logger) *Compiler {
	return &Compiler{
		Resolver: resolver.New(
			resolver.WithGlobals(cfg.Resolver.Globals...),
			resolver.WithStrict(cfg.Resolver.Strict),
			resolver.WithMaxSlots(cfg.Resolver.MaxSlots),
			resolver.WithLogger(logger),
		),
		VerifySpans: cfg.Parser.VerifySpans,
		ParserOptions: []parser.Option{
			parser.WithMaxErrors(cfg.Parser.MaxErrors),
			parser.WithLogger(logger),
		},
		Logger: logger,
	}
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CompileFile reads a rev source file and runs the full pipeline.
func (c *Compiler) CompileFile(filename string) (*Unit, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return c.CompileSource(string(src), filename)
}

// Tokens scans source. The name is used for error messages.
func (c *Compiler) Tokens(source, name string) ([]token.Token, error) {
	toks, err := scanner.Scan(source)
	if err != nil {
		return nil, &Error{Stage: StageScan, Source: diag.NewSource(name, source), Err: err}
	}
	return toks, nil
}

// Parse scans and parses source into a Program, then runs the checks.
func (c *Compiler) Parse(source, name string) (*ast.Program, []token.Token, error) {
	toks, err := c.Tokens(source, name)
	if err != nil {
		return nil, nil, err
	}

	exprs, err := parser.ParseTokens(toks, c.ParserOptions...)
	if err != nil {
		return nil, nil, &Error{Stage: StageParse, Source: diag.NewSource(name, source), Err: err}
	}
	prog := &ast.Program{Exprs: exprs, SourceFile: name, Source: source}

	checks := c.Checks
	if c.VerifySpans {
		limit := toks[len(toks)-1].Loc.Start
		checks = append(ast.CheckChain{ast.SpanCheck(limit)}, checks...)
	}
	if err := checks.Run(prog); err != nil {
		return nil, nil, &Error{Stage: StageCheck, Source: diag.NewSource(name, source), Err: err}
	}
	return prog, toks, nil
}

// CompileSource runs the full pipeline over source. Each stage only runs
// when the previous one produced no errors.
func (c *Compiler) CompileSource(source, name string) (*Unit, error) {
	log := c.logger().With("file", name)

	prog, toks, err := c.Parse(source, name)
	if err != nil {
		c.logFailure(log, err)
		return nil, err
	}
	log.Debug("parsed", "tokens", len(toks), "exprs", len(prog.Exprs), "span", prog.Span().String())

	res := c.Resolver
	if res == nil {
		res = resolver.New(resolver.WithLogger(c.Logger))
	}
	slots, err := res.Resolve(prog.Exprs)
	if err != nil {
		err = &Error{Stage: StageResolve, Source: diag.NewSource(name, source), Err: err}
		c.logFailure(log, err)
		return nil, err
	}
	log.Debug("resolved", "slots", len(slots))

	return &Unit{Program: prog, Tokens: toks, Slots: slots}, nil
}

func (c *Compiler) logFailure(log *slog.Logger, err error) {
	list, ok := diag.AsList(err)
	if !ok {
		log.Debug("front end failed", "err", err)
		return
	}
	log.Debug("front end failed", "diagnostics", len(list), "detail", list.Detail())
}
