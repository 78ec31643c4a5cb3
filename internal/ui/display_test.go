package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"matrixdesk/internal/config"
	"matrixdesk/internal/matrix"
	"matrixdesk/internal/notation"
	"matrixdesk/internal/store"
)

type brokenLookup struct{}

func (brokenLookup) Get(context.Context, string) (matrix.Record, error) {
	return matrix.Record{}, errors.New("database is locked")
}

func newTestDisplay(t *testing.T, lookup notation.Lookup) (DisplayModel, *config.Exports) {
	t.Helper()
	ex := config.NewExports(filepath.Join(t.TempDir(), "exports"))
	m := NewDisplayModel(notation.NewRenderer(lookup, nil), ex)
	m.SetSize(100, 30)
	return m, ex
}

// settle feeds cmd's messages back into m until nothing is left.
func settle(m DisplayModel, cmd tea.Cmd) (DisplayModel, []tea.Msg) {
	var seen []tea.Msg
	for cmd != nil {
		msg := cmd()
		seen = append(seen, msg)
		m, cmd = m.Update(msg)
	}
	return m, seen
}

func TestDisplayStartsEmpty(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	require.True(t, m.Current().Empty)
	require.Contains(t, m.View(), "No matrix to show")
}

func TestDisplaySelectSlot(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, cmd := m.Update(runes("j"))
	require.Nil(t, cmd)
	m, cmd = m.Update(key(tea.KeyEnter))
	m, _ = settle(m, cmd)

	v := m.Current()
	require.False(t, v.Empty)
	require.Equal(t, "1", v.ID)
	require.Equal(t, "Matrix_A", v.Name)
	require.Contains(t, m.View(), "4 × 4")
}

func TestDisplayDigitShortcut(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, cmd := m.Update(runes("6"))
	m, _ = settle(m, cmd)
	require.Equal(t, "Matrix_F", m.Current().Name)
	require.Contains(t, m.View(), "400")
}

func TestDisplayMissIsEmptyState(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixtureFrom(nil))
	m, cmd := m.Show(matrix.AnswerSlot)
	m, seen := settle(m, cmd)
	require.True(t, m.Current().Empty)
	for _, msg := range seen {
		_, isAlert := msg.(AlertMsg)
		require.False(t, isAlert)
	}
}

func TestDisplayLookupErrorAlerts(t *testing.T) {
	m, _ := newTestDisplay(t, brokenLookup{})
	m, cmd := m.Show("2")
	m, seen := settle(m, cmd)
	require.True(t, m.Current().Empty)
	a := alertOf(t, seen)
	require.Equal(t, MsgError, a.Type)
	require.Equal(t, "Could not load slot 2: database is locked", a.Text)
}

func TestDisplayDropsOutOfOrderLoads(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, first := m.Show("1")
	m, second := m.Show("2")

	m, cmd := m.Update(second())
	require.Nil(t, cmd)
	m, cmd = m.Update(first())
	require.Nil(t, cmd)

	require.Equal(t, "2", m.sidebar.Selected())
	require.Equal(t, "2", m.Current().ID)
	require.Equal(t, "Matrix_B", m.Current().Name)
}

func TestDisplayPreviewBeatsPendingLoad(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, pending := m.Show("3")
	m, _ = m.Update(ExportLoadedMsg{Name: "id.tex", Content: notation.ToNotation([][]int{{1}})})
	m, _ = m.Update(pending())
	require.Equal(t, "id.tex", m.Current().Name)
}

func TestDisplaySourceToggle(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, cmd := m.Show("3")
	m, _ = settle(m, cmd)

	m, _ = m.Update(runes("s"))
	require.True(t, m.ShowingSource())
	require.Contains(t, m.View(), "bmatrix")

	m, _ = m.Update(runes("s"))
	require.False(t, m.ShowingSource())
}

func TestDisplayCopy(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := m.Update(runes("y"))
	require.Equal(t, "Nothing to copy", alertOf(t, runBatch(cmd)).Text)

	m, cmd = m.Show("6")
	m, _ = settle(m, cmd)
	_, cmd = m.Update(runes("y"))
	a := alertOf(t, runBatch(cmd))
	require.Equal(t, MsgSuccess, a.Type)
	require.Equal(t, notation.ToNotation([][]int{{100, 200}, {300, 400}}), copied)

	m.copy = func(string) error { return errors.New("no clipboard utility") }
	_, cmd = m.Update(runes("y"))
	require.Equal(t, "Copy failed: no clipboard utility", alertOf(t, runBatch(cmd)).Text)
}

func TestDisplayExportRoundTrip(t *testing.T) {
	m, ex := newTestDisplay(t, store.NewFixture())
	m, cmd := m.Show("5")
	m, _ = settle(m, cmd)

	m, _ = m.Update(key(tea.KeyCtrlO))
	require.True(t, m.ModalOpen())
	require.Contains(t, m.View(), "No exports yet")

	m, _ = m.Update(runes("s"))
	require.Equal(t, "Matrix_E", m.exports.input.Value())
	m, cmd = m.Update(key(tea.KeyEnter))
	m, seen := settle(m, cmd)
	require.Equal(t, "Exported Matrix_E.tex", alertOf(t, seen).Text)

	names, err := ex.List()
	require.NoError(t, err)
	require.Equal(t, []string{"Matrix_E.tex"}, names)

	// Preview the export.
	m, cmd = m.Update(key(tea.KeyEnter))
	m, _ = settle(m, cmd)
	require.False(t, m.ModalOpen())
	require.Equal(t, "Matrix_E.tex", m.Current().Name)
	require.Equal(t, "3 × 3", m.Current().Dimension)

	// Delete it again.
	m, _ = m.Update(key(tea.KeyCtrlO))
	m, _ = m.Update(runes("d"))
	m, _ = m.Update(runes("y"))
	names, err = ex.List()
	require.NoError(t, err)
	require.Empty(t, names)

	m, cmd = m.Update(key(tea.KeyEsc))
	require.False(t, m.ModalOpen())
	require.Equal(t, ExportModalClosedMsg{}, cmd())
}

func TestDisplayExportNeedsNotation(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	m, _ = m.Update(key(tea.KeyCtrlO))
	m, _ = m.Update(runes("s"))
	require.Equal(t, exportsModalList, m.exports.mode)
	require.Contains(t, m.View(), "Nothing to export")
}

func TestDisplayEscGoesHome(t *testing.T) {
	m, _ := newTestDisplay(t, store.NewFixture())
	_, cmd := m.Update(key(tea.KeyEsc))
	require.Equal(t, NavigateHomeMsg{From: ScreenDisplay}, cmd())
}
