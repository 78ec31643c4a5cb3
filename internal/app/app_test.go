package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"matrixdesk/internal/api"
	"matrixdesk/internal/config"
	"matrixdesk/internal/notation"
	"matrixdesk/internal/store"
	"matrixdesk/internal/ui"
)

type okSubmitter struct{}

func (okSubmitter) Submit(context.Context, api.SubmitRequest) (api.Response, error) {
	return api.Response{Success: true}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{
		Submitter:     okSubmitter{},
		Renderer:      notation.NewRenderer(store.NewFixture(), nil),
		Exports:       config.NewExports(filepath.Join(t.TempDir(), "exports")),
		SubmitTimeout: time.Second,
		FadeDelay:     time.Millisecond,
		Info:          "test",
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestScreenRouting(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, ui.ScreenHome, m.Screen())
	require.Contains(t, m.View(), "matrixdesk")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m, _ = update(t, m, cmd())
	require.Equal(t, ui.ScreenDisplay, m.Screen())
	require.Contains(t, m.View(), "Slots")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, cmd())
	require.Equal(t, ui.ScreenHome, m.Screen())

	m, _ = update(t, m, ui.OpenScreenMsg{Screen: ui.ScreenInput})
	require.Equal(t, ui.ScreenInput, m.Screen())
	require.Contains(t, m.View(), "Matrix input")
}

func TestAlertReachesStatusBar(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, ui.AlertMsg{Text: "Submit failed: slot locked", Type: ui.MsgError})
	text, typ := m.statusbar.Message()
	require.Equal(t, "Submit failed: slot locked", text)
	require.Equal(t, ui.MsgError, typ)
	require.Contains(t, m.View(), "slot locked")
}

// drain feeds cmd's messages, and the commands they produce, back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	m, cmd = update(t, m, msg)
	return drain(t, m, cmd)
}

// submitOnInput submits the default form and returns the service answer
// without delivering it.
func submitOnInput(t *testing.T, m Model) (Model, tea.Msg) {
	t.Helper()
	m, _ = update(t, m, ui.OpenScreenMsg{Screen: ui.ScreenInput})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	return m, batch[0]()
}

func TestSubmitSuccessReturnsHome(t *testing.T) {
	m, result := submitOnInput(t, newTestModel(t))

	// The answer arrives through the root model.
	m, cmd := update(t, m, result)
	m = drain(t, m, cmd)
	require.Equal(t, ui.ScreenHome, m.Screen())
	text, typ := m.statusbar.Message()
	require.Equal(t, "Matrix saved", text)
	require.Equal(t, ui.MsgSuccess, typ)
}

func TestLateSuccessKeepsOtherScreen(t *testing.T) {
	m, result := submitOnInput(t, newTestModel(t))
	m, _ = update(t, m, ui.OpenScreenMsg{Screen: ui.ScreenDisplay})

	m, cmd := update(t, m, result)
	m = drain(t, m, cmd)
	require.Equal(t, ui.ScreenDisplay, m.Screen())
	text, _ := m.statusbar.Message()
	require.Equal(t, "Matrix saved", text)
}

func TestHomeRequestFromHiddenScreenIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, ui.OpenScreenMsg{Screen: ui.ScreenDisplay})
	m, _ = update(t, m, ui.NavigateHomeMsg{From: ui.ScreenInput})
	require.Equal(t, ui.ScreenDisplay, m.Screen())
	m, _ = update(t, m, ui.NavigateHomeMsg{From: ui.ScreenDisplay})
	require.Equal(t, ui.ScreenHome, m.Screen())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, tea.QuitMsg{}, cmd())
}
