package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/rubiojr/rev/ast"
	"github.com/rubiojr/rev/config"
	"github.com/rubiojr/rev/diag"
	"github.com/rubiojr/rev/frontend"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// errReported is returned once diagnostics have already been written, so
// Execute only sets the exit status.
var errReported = errors.New("errors reported")

// Execute runs the rev CLI with the given version string.
func Execute(version string) {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	cmd := a.command(version)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer
}

func (a *app) command(version string) *cli.Command {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "expr",
			Aliases: []string{"e"},
			Usage:   "Use `SOURCE` instead of reading a file",
		},
	}

	return &cli.Command{
		Name:                   "rev",
		Usage:                  "Expression front end: scan, parse and resolve rev sources",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 a.stdout,
		ErrWriter:              a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file (default: rev.toml, rev.yaml or rev.yml in the working directory)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colour diagnostics: auto, always or never",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Log parser and resolver activity to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a file",
				ArgsUsage: "<file.rev>",
				Flags:     sourceFlags,
				Action:    a.tokensAction,
			},
			{
				Name:      "parse",
				Usage:     "Print the expression trees of a file",
				ArgsUsage: "<file.rev>",
				Flags:     sourceFlags,
				Action:    a.parseAction,
			},
			{
				Name:      "check",
				Usage:     "Run the full front end and print the slot table",
				ArgsUsage: "<file.rev>",
				Flags:     sourceFlags,
				Action:    a.checkAction,
			},
			{
				Name:      "test",
				Usage:     "Run golden .rev files",
				ArgsUsage: "[file.rev | directory]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Parallel test files",
						Value:   1,
					},
				},
				Action: a.testAction,
			},
		},
	}
}

// session is the per-invocation state shared by the actions.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	color  bool
}

func (a *app) session(cmd *cli.Command) (*session, error) {
	path := cmd.String("config")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		path = config.Discover(wd)
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if mode := cmd.String("color"); mode != "" {
		cfg.Output.Color = mode
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	s := &session{cfg: cfg, color: useColor(cfg.Output.Color, a.stdout)}
	if cmd.Bool("trace") || cfg.Parser.Trace {
		s.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s, nil
}

func (s *session) compiler() *frontend.Compiler {
	return frontend.FromConfig(s.cfg, s.logger)
}

// useColor resolves a colour mode against the output writer. Auto only
// colours terminals and honours NO_COLOR.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readSource returns the source named on the command line, or the inline
// -e expression.
func readSource(cmd *cli.Command) (src, name string, err error) {
	if expr := cmd.String("expr"); expr != "" {
		return expr, "<expr>", nil
	}
	if cmd.NArg() != 1 {
		return "", "", fmt.Errorf("usage: rev %s <file.rev>", cmd.Name)
	}
	name = cmd.Args().First()
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), name, nil
}

// report renders a front end failure. Errors without a source are returned
// unchanged.
func (a *app) report(s *session, err error) error {
	var fe *frontend.Error
	if !errors.As(err, &fe) {
		return err
	}
	r := diag.NewRenderer(a.stdout, s.color)
	if werr := r.RenderError(a.stdout, fe.Source, fe.Err); werr != nil {
		return werr
	}
	return errReported
}

func (a *app) tokensAction(ctx context.Context, cmd *cli.Command) error {
	s, err := a.session(cmd)
	if err != nil {
		return err
	}
	src, name, err := readSource(cmd)
	if err != nil {
		return err
	}

	toks, err := s.compiler().Tokens(src, name)
	if err != nil {
		return a.report(s, err)
	}
	for _, tk := range toks {
		fmt.Fprintf(a.stdout, "%s '%s' %s\n", tk.Kind, tk, tk.Loc)
	}
	return nil
}

func (a *app) parseAction(ctx context.Context, cmd *cli.Command) error {
	s, err := a.session(cmd)
	if err != nil {
		return err
	}
	src, name, err := readSource(cmd)
	if err != nil {
		return err
	}

	prog, _, err := s.compiler().Parse(src, name)
	if err != nil {
		return a.report(s, err)
	}
	fmt.Fprint(a.stdout, ast.Dump(prog))
	return nil
}

func (a *app) checkAction(ctx context.Context, cmd *cli.Command) error {
	s, err := a.session(cmd)
	if err != nil {
		return err
	}
	src, name, err := readSource(cmd)
	if err != nil {
		return err
	}

	unit, err := s.compiler().CompileSource(src, name)
	if err != nil {
		return a.report(s, err)
	}

	names := make([]string, 0, len(unit.Slots))
	for n := range unit.Slots {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return unit.Slots[names[i]] < unit.Slots[names[j]] })
	for _, n := range names {
		fmt.Fprintf(a.stdout, "%s = %d\n", n, unit.Slots[n])
	}
	return nil
}
