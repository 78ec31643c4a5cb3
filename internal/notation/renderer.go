package notation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"matrixdesk/internal/matrix"
	"matrixdesk/internal/store"
)

// RenderFailedText replaces the body when typesetting fails.
const RenderFailedText = "rendering failed"

// Lookup resolves a slot id to a record.
type Lookup interface {
	Get(ctx context.Context, id string) (matrix.Record, error)
}

// View is what the display screen shows for a selection.
type View struct {
	// Empty selects the placeholder panel instead of the matrix panel.
	Empty     bool
	ID        string
	Name      string
	Dimension string
	Notation  string
	Body      string
	// Err is a lookup failure other than a miss. The view is still empty.
	Err error
}

// Renderer turns a selected slot into a View.
type Renderer struct {
	lookup Lookup
	ts     Typesetter
	width  atomic.Int64
}

// NewRenderer renders records from lookup with ts.
func NewRenderer(lookup Lookup, ts Typesetter) *Renderer {
	if ts == nil {
		ts = Terminal{}
	}
	return &Renderer{lookup: lookup, ts: ts}
}

// SetWidth sets the width matrices are centered in. It may be called while
// a render is running.
func (r *Renderer) SetWidth(w int) {
	r.width.Store(int64(w))
}

// Select renders id, or the empty state for an empty selection.
func (r *Renderer) Select(ctx context.Context, id string) View {
	if id == "" {
		return View{Empty: true}
	}
	return r.Render(ctx, id)
}

// Render looks id up and typesets it. A miss yields the empty state.
func (r *Renderer) Render(ctx context.Context, id string) View {
	rec, err := r.lookup.Get(ctx, id)
	if err != nil {
		v := View{Empty: true, ID: id}
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[display] lookup %s: %v", id, err)
			v.Err = err
		}
		return v
	}

	v := View{
		ID:        id,
		Name:      rec.Name,
		Dimension: rec.Dimension(),
		Notation:  ToNotation(rec.Data),
	}
	v.Body = r.typeset(v.Notation)
	return v
}

// Preview typesets notation that did not come from a slot, such as an
// exported file. The dimension label is derived from the notation.
func (r *Renderer) Preview(title, n string) View {
	v := View{ID: title, Name: title, Notation: n}
	if rows, err := Parse(n); err == nil && len(rows) > 0 {
		v.Dimension = fmt.Sprintf("%d × %d", len(rows), len(rows[0]))
	}
	v.Body = r.typeset(n)
	return v
}

// typeset runs the typesetter with error-tolerant display options. Errors
// and panics from the typesetter never leave this function.
func (r *Renderer) typeset(n string) (body string) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[display] typesetter panic: %v", p)
			body = RenderFailedText
		}
	}()

	surface := &TextSurface{W: int(r.width.Load())}
	if err := r.ts.Render(n, surface, Options{DisplayMode: true, ThrowOnError: false}); err != nil {
		log.Printf("[display] %v", fmt.Errorf("typeset: %w", err))
		return RenderFailedText
	}
	return surface.Content
}
