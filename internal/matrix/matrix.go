// Package matrix holds the matrix record shared by the input and display
// screens, the dimension bounds applied to both, and the slot identifiers a
// record can live in.
package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Every message is prefixed with "matrix: " so callers can match with
// errors.Is after wrapping.
var (
	// ErrBadShape is returned when rows or cols fall outside Bounds.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch is returned when data does not match rows x cols.
	ErrDimensionMismatch = errors.New("matrix: data does not match dimensions")

	// ErrUnknownSlot is returned for an id outside DisplaySlots.
	ErrUnknownSlot = errors.New("matrix: unknown slot id")
)

// DimensionBounds is the inclusive range allowed for rows and cols.
type DimensionBounds struct {
	Min int
	Max int
}

// Bounds applies uniformly to rows and cols.
var Bounds = DimensionBounds{Min: 1, Max: 32}

// Clamp pulls v into [b.Min, b.Max].
func (b DimensionBounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Contains reports whether v is within the bounds.
func (b DimensionBounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// ParseDimension parses a dimension field the way a number input is read:
// leading integer digits are taken, anything unparseable becomes b.Min, and
// the result is clamped.
func (b DimensionBounds) ParseDimension(text string) int {
	v, ok := LeadingInt(text)
	if !ok {
		return b.Min
	}
	return b.Clamp(v)
}

// LeadingInt parses the optional sign and leading decimal digits of text
// after trimming whitespace. Anything after the digits is ignored, so
// "3.7" yields 3 and "12abc" yields 12. ok is false when no digit is
// present. Values outside the int range saturate.
func LeadingInt(text string) (int, bool) {
	s := strings.TrimSpace(text)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// ParseInt returns the saturated value alongside ErrRange.
	v, _ := strconv.ParseInt(sign+s[:end], 10, strconv.IntSize)
	return int(v), true
}

// Record is one stored matrix. Records are treated as immutable once built.
type Record struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Rows int     `json:"rows" yaml:"rows"`
	Cols int     `json:"cols" yaml:"cols"`
	Data [][]int `json:"data" yaml:"data"`
}

// NewRecord builds a record from data, deriving rows and cols from it.
func NewRecord(id, name string, data [][]int) (Record, error) {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	r := Record{ID: id, Name: name, Rows: rows, Cols: cols, Data: data}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks the bounds and that data is exactly Rows x Cols.
func (r Record) Validate() error {
	if !Bounds.Contains(r.Rows) || !Bounds.Contains(r.Cols) {
		return fmt.Errorf("%w: %dx%d", ErrBadShape, r.Rows, r.Cols)
	}
	if len(r.Data) != r.Rows {
		return fmt.Errorf("%w: %d rows, want %d", ErrDimensionMismatch, len(r.Data), r.Rows)
	}
	for i, row := range r.Data {
		if len(row) != r.Cols {
			return fmt.Errorf("%w: row %d has %d cols, want %d", ErrDimensionMismatch, i+1, len(row), r.Cols)
		}
	}
	return nil
}

// Dimension returns the "R × C" label shown above a rendered matrix.
func (r Record) Dimension() string {
	return fmt.Sprintf("%d × %d", r.Rows, r.Cols)
}
