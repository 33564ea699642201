package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rubiojr/rev/golden"
	"github.com/urfave/cli/v3"
)

func (a *app) testAction(ctx context.Context, cmd *cli.Command) error {
	s, err := a.session(cmd)
	if err != nil {
		return err
	}

	targets := cmd.Args().Slice()
	if len(targets) == 0 {
		targets = []string{"."}
	}
	files, err := golden.Collect(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s test files found", golden.Ext)
	}

	runner := &golden.Runner{Compiler: s.compiler()}
	results, err := runner.Run(ctx, files, cmd.Int("jobs"))
	if err != nil {
		return err
	}

	lr := lipgloss.NewRenderer(a.stdout)
	if s.color {
		lr.SetColorProfile(termenv.ANSI)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	okStyle := lr.NewStyle().Foreground(lipgloss.Color("2"))
	koStyle := lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	for _, res := range results {
		if res.OK {
			fmt.Fprintf(a.stdout, "%s %s\n", okStyle.Render("ok"), res.Path)
			continue
		}
		fmt.Fprintf(a.stdout, "%s %s\n", koStyle.Render("ko"), res.Path)
		switch {
		case res.Err != nil:
			fmt.Fprintf(a.stdout, "    %v\n", res.Err)
		default:
			if !slices.Equal(res.Errors, res.Want.Errors) {
				fmt.Fprintf(a.stdout, "    expected errors: %q\n    got:             %q\n", res.Want.Errors, res.Errors)
			}
			if !slices.Equal(res.Exprs, res.Want.Expects) {
				fmt.Fprintf(a.stdout, "    expected exprs: %q\n    got:            %q\n", res.Want.Expects, res.Exprs)
			}
		}
	}

	ok, ko := golden.Summary(results)
	summary := fmt.Sprintf("%d tests, %d ok, %d ko", len(results), ok, ko)
	if ko > 0 {
		fmt.Fprintf(a.stdout, "\n%s\n", koStyle.Render(summary))
		return errReported
	}
	fmt.Fprintf(a.stdout, "\n%s\n", okStyle.Render(summary))
	return nil
}
