package editor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName is returned when the matrix name is blank after trimming.
	ErrEmptyName = errors.New("editor: enter a matrix name or generate one")

	// ErrNonASCIIName is returned when the name holds a non-ASCII rune.
	ErrNonASCIIName = errors.New("editor: matrix name may only contain ASCII characters")

	// ErrNoSlot is returned when no input slot is selected.
	ErrNoSlot = errors.New("editor: select a matrix slot")
)

// LoneSignError reports a cell holding only a minus sign. Row and Col are
// zero-based; the message is one-based.
type LoneSignError struct {
	Row int
	Col int
}

func (e *LoneSignError) Error() string {
	return fmt.Sprintf("cell (%d, %d) contains only a minus sign, enter a complete number", e.Row+1, e.Col+1)
}

// Message returns err as a user-facing sentence, without the package prefix.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), "editor: ")
}
