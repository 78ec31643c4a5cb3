package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// MessageType represents the type of status message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgSuccess
	MsgWarning
	MsgError
)

// AlertMsg asks the status bar to show a message.
type AlertMsg struct {
	Text string
	Type MessageType
}

// Alert returns a command that raises an AlertMsg.
func Alert(text string, t MessageType) tea.Cmd {
	return func() tea.Msg {
		return AlertMsg{Text: text, Type: t}
	}
}

// messageTTL is how long info and success messages stay up. Warnings and
// errors stay until replaced.
const messageTTL = 3 * time.Second

// StatusBarModel is the context-aware status bar at the bottom.
type StatusBarModel struct {
	message     string
	messageType MessageType
	messageTime time.Time
	hints       string
	right       string
	width       int
}

// NewStatusBarModel creates a new status bar.
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

// SetWidth sets the status bar width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a status message.
func (m *StatusBarModel) SetMessage(msg string, t MessageType) {
	m.message = msg
	m.messageType = t
	m.messageTime = time.Now()
}

// Message returns the message on display and its type.
func (m StatusBarModel) Message() (string, MessageType) {
	return m.message, m.messageType
}

// SetHints sets the keybinding hints for the active screen.
func (m *StatusBarModel) SetHints(h string) {
	m.hints = h
}

// SetRight sets the text on the right side of the bar.
func (m *StatusBarModel) SetRight(s string) {
	m.right = s
}

// ClearExpiredMessage clears info and success messages after messageTTL.
func (m *StatusBarModel) ClearExpiredMessage() {
	if m.messageType > MsgSuccess {
		return
	}
	if m.message != "" && time.Since(m.messageTime) > messageTTL {
		m.message = ""
	}
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	w := m.width
	if w < 20 {
		w = 20
	}

	left := m.hints
	if m.message != "" {
		var msgStyle lipgloss.Style
		switch m.messageType {
		case MsgError:
			msgStyle = StatusErrorStyle
		case MsgWarning:
			msgStyle = StatusWarningStyle
		case MsgSuccess:
			msgStyle = StatusSuccessStyle
		default:
			msgStyle = StatusBarStyle
		}
		room := w - lipgloss.Width(m.right) - 6
		if room < 10 {
			room = 10
		}
		left = msgStyle.Render(truncate.StringWithTail(m.message, uint(room), "…"))
	}

	gap := w - lipgloss.Width(left) - lipgloss.Width(m.right) - 2
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + m.right
	return StatusBarStyle.Width(w).Render(line)
}
