package notation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"matrixdesk/internal/matrix"
	"matrixdesk/internal/store"
)

func TestToNotation(t *testing.T) {
	got := ToNotation([][]int{{1, 2}, {3, 4}})
	require.Equal(t, "\\begin{bmatrix}\n1 & 2 \\\\\n3 & 4\n\\end{bmatrix}", got)
	require.Equal(t, 1, strings.Count(got, `\\`))
	require.False(t, strings.Contains(got, "4 \\\\"), "no row break after the last row")
}

func TestToNotationEmpty(t *testing.T) {
	require.Equal(t, "", ToNotation(nil))
	require.Equal(t, "", ToNotation([][]int{}))
}

func TestToNotationSingleAndNegative(t *testing.T) {
	require.Equal(t, "\\begin{bmatrix}\n-5\n\\end{bmatrix}", ToNotation([][]int{{-5}}))
	require.Equal(t, "\\begin{bmatrix}\n100 & -200 & 0\n\\end{bmatrix}", ToNotation([][]int{{100, -200, 0}}))
}

func TestParseRoundTrip(t *testing.T) {
	rows, err := Parse(ToNotation([][]int{{1, 22}, {-3, 4}, {5, 6}}))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "22"}, {"-3", "4"}, {"5", "6"}}, rows)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(`x^2`)
	require.ErrorIs(t, err, ErrNotMatrix)

	_, err = Parse("\\begin{bmatrix}\n1 & 2 \\\\\n3\n\\end{bmatrix}")
	require.ErrorIs(t, err, ErrRagged)

	rows, err := Parse(`\begin{bmatrix}\end{bmatrix}`)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestTerminalLayout(t *testing.T) {
	s := &TextSurface{}
	err := Terminal{}.Render(ToNotation([][]int{{1, -20}, {300, 4}, {5, 6}}), s, Options{})
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"⎡   1  -20 ⎤",
		"⎢ 300    4 ⎥",
		"⎣   5    6 ⎦",
	}, "\n"), s.Content)
}

func TestTerminalSingleRow(t *testing.T) {
	s := &TextSurface{}
	require.NoError(t, Terminal{}.Render(ToNotation([][]int{{7, 8}}), s, Options{}))
	require.Equal(t, "[ 7  8 ]", s.Content)
}

func TestTerminalDisplayModeCenters(t *testing.T) {
	s := &TextSurface{W: 20}
	require.NoError(t, Terminal{}.Render(ToNotation([][]int{{7, 8}}), s, Options{DisplayMode: true}))
	require.Equal(t, "      [ 7  8 ]", s.Content)
}

func TestTerminalErrorHandling(t *testing.T) {
	s := &TextSurface{}
	err := Terminal{}.Render(`\frac{1}{2}`, s, Options{ThrowOnError: true})
	var re *RenderError
	require.ErrorAs(t, err, &re)
	require.ErrorIs(t, err, ErrNotMatrix)

	s = &TextSurface{}
	require.NoError(t, Terminal{}.Render(`\frac{1}{2}`, s, Options{ThrowOnError: false}))
	require.Contains(t, s.Content, `\frac{1}{2}`)
}

func TestTerminalEmpty(t *testing.T) {
	s := &TextSurface{Content: "stale"}
	require.NoError(t, Terminal{}.Render("", s, Options{DisplayMode: true}))
	require.Equal(t, "", s.Content)
}

// ---------------------------------------------------------------------------
// Renderer
// ---------------------------------------------------------------------------

type failingLookup struct{ err error }

func (f failingLookup) Get(context.Context, string) (matrix.Record, error) {
	return matrix.Record{}, f.err
}

type brokenTypesetter struct{ panic bool }

func (b brokenTypesetter) Render(string, Surface, Options) error {
	if b.panic {
		panic("typesetter exploded")
	}
	return errors.New("no fonts")
}

type recordingTypesetter struct {
	opts     Options
	notation string
}

func (r *recordingTypesetter) Render(n string, s Surface, o Options) error {
	r.opts = o
	r.notation = n
	s.SetContent("ok")
	return nil
}

func TestRendererRendersRecord(t *testing.T) {
	r := NewRenderer(store.NewFixture(), nil)
	v := r.Select(context.Background(), "6")
	require.False(t, v.Empty)
	require.Equal(t, "Matrix_F", v.Name)
	require.Equal(t, "2 × 2", v.Dimension)
	require.Equal(t, ToNotation([][]int{{100, 200}, {300, 400}}), v.Notation)
	require.Contains(t, v.Body, "300")
	require.NoError(t, v.Err)
}

func TestRendererUsesDisplayOptions(t *testing.T) {
	ts := &recordingTypesetter{}
	v := NewRenderer(store.NewFixture(), ts).Render(context.Background(), "ans")
	require.Equal(t, Options{DisplayMode: true, ThrowOnError: false}, ts.opts)
	require.Equal(t, v.Notation, ts.notation)
	require.Equal(t, "ok", v.Body)
}

func TestRendererEmptySelection(t *testing.T) {
	r := NewRenderer(failingLookup{err: errors.New("must not be called")}, nil)
	v := r.Select(context.Background(), "")
	require.True(t, v.Empty)
	require.NoError(t, v.Err)
}

func TestRendererMissIsEmptyState(t *testing.T) {
	v := NewRenderer(store.NewFixture(), nil).Select(context.Background(), "9")
	require.True(t, v.Empty)
	require.NoError(t, v.Err)
}

func TestRendererLookupErrorIsEmptyState(t *testing.T) {
	v := NewRenderer(failingLookup{err: errors.New("connection refused")}, nil).Render(context.Background(), "1")
	require.True(t, v.Empty)
	require.EqualError(t, v.Err, "connection refused")
}

func TestRendererContainsTypesetterFailures(t *testing.T) {
	for _, ts := range []Typesetter{brokenTypesetter{}, brokenTypesetter{panic: true}} {
		v := NewRenderer(store.NewFixture(), ts).Render(context.Background(), "1")
		require.False(t, v.Empty)
		require.Equal(t, "Matrix_A", v.Name)
		require.Equal(t, RenderFailedText, v.Body)
	}
}

func TestRendererPreview(t *testing.T) {
	r := NewRenderer(store.NewFixture(), nil)
	v := r.Preview("identity.tex", ToNotation([][]int{{1, 0}, {0, 1}}))
	require.False(t, v.Empty)
	require.Equal(t, "identity.tex", v.Name)
	require.Equal(t, "2 × 2", v.Dimension)
	require.Contains(t, v.Body, "⎡ 1  0 ⎤")

	v = r.Preview("broken.tex", `\frac{1}{2}`)
	require.Empty(t, v.Dimension)
	require.Contains(t, v.Body, `\frac{1}{2}`)
}

func TestRendererCentersInWidth(t *testing.T) {
	r := NewRenderer(store.NewFixture(), nil)
	r.SetWidth(40)
	v := r.Render(context.Background(), "1")
	for _, line := range strings.Split(v.Body, "\n") {
		require.True(t, strings.HasPrefix(line, "  "), line)
	}
}
