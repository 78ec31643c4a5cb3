// Package editor holds the state of the matrix input form: slot, name,
// dimensions and the cell grid, with the rules for sanitizing, navigating
// and collecting it. It has no knowledge of how the form is drawn.
package editor

import (
	"strings"
	"unicode"

	"matrixdesk/internal/api"
	"matrixdesk/internal/matrix"
)

// Key is a navigation key delivered to a cell.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyTab
)

// Pos addresses a cell.
type Pos struct {
	Row int
	Col int
}

// Cell is one editable unit of the grid. Text always matches ^-?[0-9]*$.
type Cell struct {
	Row  int
	Col  int
	Text string
}

// State is the input form. One State lives for as long as the input screen
// is mounted.
type State struct {
	slot  int
	name  string
	rows  int
	cols  int
	cells [][]Cell
	focus Pos
}

// NewState returns a form on slot 1 with its auto name and a 3x3 grid.
func NewState() *State {
	s := &State{slot: 1, name: matrix.AutoName(1)}
	s.SetDimensions(3, 3)
	return s
}

// Slot returns the selected input slot number.
func (s *State) Slot() int { return s.slot }

// SetSlot selects an input slot. An auto-generated name follows the slot;
// a name the user typed is kept.
func (s *State) SetSlot(slot int) {
	if slot < 1 || slot > len(matrix.InputSlots) {
		return
	}
	s.slot = slot
	if matrix.IsAutoName(s.name) {
		s.name = matrix.AutoName(slot)
	}
}

// Name returns the name as typed.
func (s *State) Name() string { return s.name }

// SetName stores the name as typed.
func (s *State) SetName(name string) { s.name = name }

// AutoName replaces the name with the generated one for the current slot.
func (s *State) AutoName() string {
	s.name = matrix.AutoName(s.slot)
	return s.name
}

// Rows returns the grid height.
func (s *State) Rows() int { return s.rows }

// Cols returns the grid width.
func (s *State) Cols() int { return s.cols }

// Focus returns the focused cell.
func (s *State) Focus() Pos { return s.focus }

// SetFocus moves focus to p if p is inside the grid.
func (s *State) SetFocus(p Pos) bool {
	if !s.inGrid(p.Row, p.Col) {
		return false
	}
	s.focus = p
	return true
}

// SetDimensions clamps rows and cols and rebuilds the grid from scratch.
// Previously entered values are discarded.
func (s *State) SetDimensions(rows, cols int) {
	s.rows = matrix.Bounds.Clamp(rows)
	s.cols = matrix.Bounds.Clamp(cols)
	s.cells = make([][]Cell, s.rows)
	for r := range s.cells {
		s.cells[r] = make([]Cell, s.cols)
		for c := range s.cells[r] {
			s.cells[r][c] = Cell{Row: r, Col: c}
		}
	}
	s.focus = Pos{}
}

// SetDimensionText parses the two dimension fields and rebuilds the grid.
// Unparseable text becomes 1. It returns the clamped values so the fields
// can be rewritten with them.
func (s *State) SetDimensionText(rowsText, colsText string) (int, int) {
	s.SetDimensions(matrix.Bounds.ParseDimension(rowsText), matrix.Bounds.ParseDimension(colsText))
	return s.rows, s.cols
}

// Cell returns the cell at (row, col).
func (s *State) Cell(row, col int) (Cell, bool) {
	if !s.inGrid(row, col) {
		return Cell{}, false
	}
	return s.cells[row][col], true
}

// Text returns the raw text of (row, col), "" when out of range.
func (s *State) Text(row, col int) string {
	c, _ := s.Cell(row, col)
	return c.Text
}

// Input sanitizes text, stores it in (row, col) and returns what was stored.
func (s *State) Input(row, col int, text string) string {
	if !s.inGrid(row, col) {
		return ""
	}
	clean := Sanitize(text)
	s.cells[row][col].Text = clean
	return clean
}

// Sanitize keeps a single leading minus sign and every digit, dropping
// everything else.
func Sanitize(text string) string {
	negative := strings.HasPrefix(text, "-")
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Navigate applies the grid's key policy to the cell at (row, col). It
// returns the new focus and true when the key moved focus, or false when
// the key is a no-op at this position or is not a navigation key.
//
//	Enter      down one row, no wrap
//	Tab        right, wrapping to the next row's first cell
//	Shift+Tab  left, wrapping to the previous row's last cell
func (s *State) Navigate(row, col int, key Key, shift bool) (Pos, bool) {
	var next Pos
	switch {
	case key == KeyEnter:
		next = Pos{Row: row + 1, Col: col}
	case key == KeyTab && !shift:
		next = Pos{Row: row, Col: col + 1}
		if next.Col >= s.cols {
			next = Pos{Row: row + 1, Col: 0}
		}
	case key == KeyTab && shift:
		next = Pos{Row: row, Col: col - 1}
		if next.Col < 0 {
			next = Pos{Row: row - 1, Col: s.cols - 1}
		}
	default:
		return Pos{}, false
	}
	if !s.SetFocus(next) {
		return Pos{}, false
	}
	return next, true
}

// Collect assembles the grid into integers. Blank and non-numeric cells
// count as 0; a cell holding only "-" stops collection with a
// *LoneSignError.
func (s *State) Collect() ([][]int, error) {
	out := make([][]int, s.rows)
	for r := 0; r < s.rows; r++ {
		out[r] = make([]int, s.cols)
		for c := 0; c < s.cols; c++ {
			text := strings.TrimSpace(s.cells[r][c].Text)
			if text == "-" {
				return nil, &LoneSignError{Row: r, Col: c}
			}
			v, ok := matrix.LeadingInt(text)
			if !ok {
				v = 0
			}
			out[r][c] = v
		}
	}
	return out, nil
}

// Validate checks the name and the slot before any cell is read.
func (s *State) Validate() error {
	if err := ValidateName(s.name); err != nil {
		return err
	}
	if s.slot == 0 {
		return ErrNoSlot
	}
	return nil
}

// Request builds the payload for data collected from this form.
func (s *State) Request(data [][]int) api.SubmitRequest {
	return api.SubmitRequest{
		ID:   s.slot,
		Name: strings.TrimSpace(s.name),
		Rows: s.rows,
		Cols: s.cols,
		Data: data,
	}
}

// Prepare validates, collects the grid and returns the payload to send.
// Nothing is sent from here.
func (s *State) Prepare() (api.SubmitRequest, error) {
	if err := s.Validate(); err != nil {
		return api.SubmitRequest{}, err
	}
	data, err := s.Collect()
	if err != nil {
		return api.SubmitRequest{}, err
	}
	return s.Request(data), nil
}

// ValidateName trims name and checks that it is present and ASCII only.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, r := range name {
		if r > unicode.MaxASCII {
			return ErrNonASCIIName
		}
	}
	return nil
}

func (s *State) inGrid(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}
