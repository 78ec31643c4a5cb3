package notation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Options control a typesetting pass.
type Options struct {
	// DisplayMode renders the matrix as a centered block.
	DisplayMode bool
	// ThrowOnError returns a *RenderError on bad input instead of showing
	// the source in the error color.
	ThrowOnError bool
}

// Surface is where typeset output lands.
type Surface interface {
	Width() int
	SetContent(s string)
}

// Typesetter renders notation onto a surface.
type Typesetter interface {
	Render(notation string, surface Surface, opts Options) error
}

// RenderError is a typesetting failure.
type RenderError struct {
	Notation string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render notation: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// TextSurface is a fixed-width in-memory surface.
type TextSurface struct {
	W       int
	Content string
}

// Width returns the surface width; 0 means unbounded.
func (s *TextSurface) Width() int { return s.W }

// SetContent replaces the surface content.
func (s *TextSurface) SetContent(c string) { s.Content = c }

var sourceErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cc0000"))

// Terminal typesets bmatrix notation with bracket glyphs and right-aligned
// columns.
type Terminal struct{}

// Render implements Typesetter.
func (Terminal) Render(notation string, surface Surface, opts Options) error {
	if strings.TrimSpace(notation) == "" {
		surface.SetContent("")
		return nil
	}
	rows, err := Parse(notation)
	if err != nil {
		if opts.ThrowOnError {
			return &RenderError{Notation: notation, Err: err}
		}
		surface.SetContent(sourceErrorStyle.Render(notation))
		return nil
	}

	lines := layout(rows)
	if opts.DisplayMode {
		lines = center(lines, surface.Width())
	}
	surface.SetContent(strings.Join(lines, "\n"))
	return nil
}

// layout draws rows between brackets. A single row uses square brackets,
// taller matrices use the bracket extension glyphs.
func layout(rows [][]string) []string {
	if len(rows) == 0 {
		return []string{"[ ]"}
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for j, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.Repeat(" ", widths[j]-runewidth.StringWidth(cell)) + cell
		}
		left, right := brackets(i, len(rows))
		lines[i] = left + " " + strings.Join(cells, "  ") + " " + right
	}
	return lines
}

func brackets(i, n int) (string, string) {
	switch {
	case n == 1:
		return "[", "]"
	case i == 0:
		return "⎡", "⎤"
	case i == n-1:
		return "⎣", "⎦"
	default:
		return "⎢", "⎥"
	}
}

func center(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		pad := (width - runewidth.StringWidth(l)) / 2
		if pad < 0 {
			pad = 0
		}
		out[i] = strings.Repeat(" ", pad) + l
	}
	return out
}
