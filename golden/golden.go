// Package golden runs rev source files that carry their expected outcome in
// comments:
//
//	1 + 2 * 3       // expect: (+ 1 (* 2 3))
//	1 + )           // error: Unknown token to parse: ')'
//
// A file passes when the front end reports exactly the expected error
// messages, in order, and the top-level expressions print as the expected
// S-expressions. A file with errors produces no expressions.
package golden

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rubiojr/rev/ast"
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/frontend"
)

// Ext is the extension of files picked up from directories.
const Ext = ".rev"

const (
	errorMarker  = "// error:"
	expectMarker = "// expect:"
)

// Case is a parsed golden file.
type Case struct {
	Path    string
	Source  string
	Errors  []string
	Expects []string
}

// Result is the outcome of running one Case.
type Result struct {
	Path   string
	OK     bool
	Want   *Case
	Errors []string // messages produced by the front end
	Exprs  []string // S-expressions produced by the front end
	Err    error    // set when the file could not be run at all
}

// ParseCase extracts the directives from src.
func ParseCase(path, src string) *Case {
	c := &Case{Path: path, Source: src}
	for _, line := range strings.Split(src, "\n") {
		if i := strings.Index(line, errorMarker); i >= 0 {
			c.Errors = append(c.Errors, strings.TrimSpace(line[i+len(errorMarker):]))
		} else if i := strings.Index(line, expectMarker); i >= 0 {
			c.Expects = append(c.Expects, strings.TrimSpace(line[i+len(expectMarker):]))
		}
	}
	return c
}

// LoadCase reads and parses a golden file.
func LoadCase(path string) (*Case, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCase(path, string(src)), nil
}

// Collect expands targets into a file list. Directories contribute their
// *.rev entries, sorted by name; files are taken as given.
func Collect(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", target, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), Ext) {
				files = append(files, filepath.Join(target, e.Name()))
			}
		}
	}
	return files, nil
}

// Runner runs golden files through a front end.
type Runner struct {
	Compiler *frontend.Compiler
}

// RunCase runs a single case.
func (r *Runner) RunCase(c *Case) Result {
	res := Result{Path: c.Path, Want: c}

	comp := r.Compiler
	if comp == nil {
		comp = &frontend.Compiler{}
	}
	unit, err := comp.CompileSource(c.Source, c.Path)
	if err != nil {
		list, ok := diag.AsList(err)
		if !ok {
			res.Err = err
			return res
		}
		res.Errors = list.Messages()
	} else {
		for _, e := range unit.Program.Exprs {
			res.Exprs = append(res.Exprs, ast.Sexpr(e))
		}
	}

	res.OK = slices.Equal(res.Errors, c.Errors) && slices.Equal(res.Exprs, c.Expects)
	return res
}

// Run runs files on up to jobs goroutines. Results come back in the order
// of files. Files not started before ctx is done carry ctx.Err().
func (r *Runner) Run(ctx context.Context, files []string, jobs int) ([]Result, error) {
	jobs = max(jobs, 1)
	results := make([]Result, len(files))

	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				if err := ctx.Err(); err != nil {
					results[i] = Result{Path: files[i], Err: err}
					continue
				}
				c, err := LoadCase(files[i])
				if err != nil {
					results[i] = Result{Path: files[i], Err: err}
					continue
				}
				results[i] = r.RunCase(c)
			}
		}()
	}
	wg.Wait()

	return results, ctx.Err()
}

// Summary counts passing and failing results.
func Summary(results []Result) (ok, ko int) {
	for _, res := range results {
		if res.OK {
			ok++
		} else {
			ko++
		}
	}
	return ok, ko
}
