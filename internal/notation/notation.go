// Package notation turns matrices into bracketed-matrix notation and
// typesets that notation for display.
package notation

import (
	"errors"
	"strconv"
	"strings"
)

const (
	beginMatrix = `\begin{bmatrix}`
	endMatrix   = `\end{bmatrix}`
	cellSep     = " & "
	rowBreak    = ` \\`
)

var (
	// ErrNotMatrix is returned when notation is not a bmatrix environment.
	ErrNotMatrix = errors.New("notation: not a bmatrix environment")

	// ErrRagged is returned when rows have different cell counts.
	ErrRagged = errors.New("notation: rows have different lengths")
)

// ToNotation renders m as a bmatrix. Cells are joined with " & ", rows are
// separated by a row break, and the last row has none. A nil or empty
// matrix yields "".
func ToNotation(m [][]int) string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(beginMatrix)
	b.WriteByte('\n')
	for i, row := range m {
		for j, v := range row {
			if j > 0 {
				b.WriteString(cellSep)
			}
			b.WriteString(strconv.Itoa(v))
		}
		if i < len(m)-1 {
			b.WriteString(rowBreak)
		}
		b.WriteByte('\n')
	}
	b.WriteString(endMatrix)
	return b.String()
}

// Parse splits bmatrix notation back into its cell text, row by row.
func Parse(notation string) ([][]string, error) {
	s := strings.TrimSpace(notation)
	if !strings.HasPrefix(s, beginMatrix) || !strings.HasSuffix(s, endMatrix) {
		return nil, ErrNotMatrix
	}
	body := strings.TrimSpace(s[len(beginMatrix) : len(s)-len(endMatrix)])
	if body == "" {
		return nil, nil
	}

	var rows [][]string
	for _, line := range strings.Split(body, `\\`) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := strings.Split(line, "&")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if len(rows) > 0 && len(cells) != len(rows[0]) {
			return nil, ErrRagged
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
