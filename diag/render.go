package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	mtoken "modernc.org/token"
)

// Source is a named piece of source text with a line table.
type Source struct {
	Name string
	Text string
	file *mtoken.File
}

// NewSource indexes the line starts of text.
func NewSource(name, text string) *Source {
	f := mtoken.NewFile(name, len(text))
	f.SetLinesForContent([]byte(text))
	return &Source{Name: name, Text: text, file: f}
}

// Position maps a byte offset to a file:line:column position. Offsets
// outside the text are clamped.
func (s *Source) Position(offset int) mtoken.Position {
	offset = min(max(offset, 0), len(s.Text))
	pos := s.file.Position(s.file.Pos(offset))
	if !pos.IsValid() {
		// empty text has no line table
		pos.Line, pos.Column = 1, 1
	}
	return pos
}

// line returns the text of the line holding offset and the offset of its
// first byte.
func (s *Source) line(offset int) (string, int) {
	offset = min(max(offset, 0), len(s.Text))
	if offset == len(s.Text) && offset > 0 && s.Text[offset-1] == '\n' {
		offset--
	}
	start := strings.LastIndexByte(s.Text[:offset], '\n') + 1
	end := strings.IndexByte(s.Text[start:], '\n')
	if end < 0 {
		return s.Text[start:], start
	}
	return s.Text[start : start+end], start
}

// Renderer writes diagnostics as annotated source snippets:
//
//	error: Unknown token to parse: ')'
//	  --> main.rev:2:5
//	   |
//	 2 | 1 + )
//	   |     ^
type Renderer struct {
	color  bool
	label  lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
}

// NewRenderer returns a renderer for w. When color is false the output is
// plain text.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := &Renderer{color: color}
	if color {
		lr := lipgloss.NewRenderer(w)
		lr.SetColorProfile(termenv.ANSI)
		r.label = lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		r.gutter = lr.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
		r.caret = lr.NewStyle().Foreground(lipgloss.Color("1"))
	}
	return r
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes one diagnostic.
func (r *Renderer) Render(w io.Writer, src *Source, d *Diagnostic) error {
	label := "error"
	if d.Internal() {
		label = "internal error"
	}
	pos := src.Position(d.Loc.Start)
	text, lineStart := src.line(d.Loc.Start)
	num := strconv.Itoa(pos.Line)
	pad := strings.Repeat(" ", len(num))

	col := min(max(d.Loc.Start-lineStart, 0), len(text))
	width := 1
	if d.Loc.End > d.Loc.Start {
		width = min(d.Loc.End, lineStart+len(text)-1) - d.Loc.Start + 1
		width = max(width, 1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", r.paint(r.label, label), d.Message)
	fmt.Fprintf(&b, "%s%s %s\n", pad, r.paint(r.gutter, "-->"), pos)
	fmt.Fprintf(&b, "%s %s\n", pad, r.paint(r.gutter, "|"))
	fmt.Fprintf(&b, "%s %s %s\n", r.paint(r.gutter, num), r.paint(r.gutter, "|"), text)
	fmt.Fprintf(&b, "%s %s %s%s\n", pad, r.paint(r.gutter, "|"),
		strings.Repeat(" ", col), r.paint(r.caret, strings.Repeat("^", width)))
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError writes every diagnostic carried by err, separated by blank
// lines. Errors that carry no diagnostics are written as a single line.
func (r *Renderer) RenderError(w io.Writer, src *Source, err error) error {
	list, ok := AsList(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %v\n", r.paint(r.label, "error"), err)
		return werr
	}
	for i, d := range list {
		if i > 0 {
			if _, werr := io.WriteString(w, "\n"); werr != nil {
				return werr
			}
		}
		if werr := r.Render(w, src, d); werr != nil {
			return werr
		}
	}
	return nil
}
