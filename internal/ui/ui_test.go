package ui

import (
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"matrixdesk/internal/matrix"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestHighlightNotationKeepsText(t *testing.T) {
	src := "\\begin{bmatrix}\n1 & -2 \\\\\n3 & 4\n\\end{bmatrix}"
	require.Equal(t, src, ansiRe.ReplaceAllString(HighlightNotation(src), ""))
	require.Equal(t, "  ", HighlightNotation("  "))
}

func TestStatusBarExpiry(t *testing.T) {
	s := NewStatusBarModel()
	s.SetWidth(80)
	s.SetMessage("saved", MsgSuccess)
	s.messageTime = time.Now().Add(-2 * messageTTL)
	s.ClearExpiredMessage()
	msg, _ := s.Message()
	require.Empty(t, msg)

	s.SetMessage("no answer", MsgWarning)
	s.messageTime = time.Now().Add(-2 * messageTTL)
	s.ClearExpiredMessage()
	msg, typ := s.Message()
	require.Equal(t, "no answer", msg)
	require.Equal(t, MsgWarning, typ)
}

func TestStatusBarView(t *testing.T) {
	s := NewStatusBarModel()
	s.SetWidth(60)
	s.SetHints("Esc Home")
	require.Contains(t, s.View(), "Esc Home")

	s.SetMessage("Network error: connection refused", MsgError)
	view := s.View()
	require.Contains(t, view, "Network error")
	require.NotContains(t, view, "Esc Home")
}

func TestAlertCmd(t *testing.T) {
	require.Equal(t, AlertMsg{Text: "hi", Type: MsgInfo}, Alert("hi", MsgInfo)())
}

func TestSidebarSelect(t *testing.T) {
	m := NewSidebarModel(matrix.DisplaySlots)
	m.SetSize(24, 20)

	_, cmd := m.Update(key(tea.KeyEnter))
	require.Nil(t, cmd, "unfocused sidebar ignores keys")

	m.SetFocused(true)
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	m, cmd = m.Update(key(tea.KeyEnter))
	require.Equal(t, SlotSelectedMsg{ID: "2"}, cmd())
	require.Equal(t, "2", m.Selected())

	m, cmd = m.Update(runes("a"))
	require.Equal(t, SlotSelectedMsg{ID: matrix.AnswerSlot}, cmd())

	m, cmd = m.Update(runes("9"))
	require.Nil(t, cmd)
	require.Contains(t, m.View(), "Matrix_G")
}

func TestHomeMenu(t *testing.T) {
	m := NewHomeModel()
	_, cmd := m.Update(key(tea.KeyEnter))
	require.Equal(t, OpenScreenMsg{Screen: ScreenInput}, cmd())

	m, _ = m.Update(key(tea.KeyRight))
	_, cmd = m.Update(key(tea.KeyEnter))
	require.Equal(t, OpenScreenMsg{Screen: ScreenDisplay}, cmd())

	_, cmd = m.Update(runes("i"))
	require.Equal(t, OpenScreenMsg{Screen: ScreenInput}, cmd())

	require.Contains(t, m.View(), "Matrix display")
}
