// Package app is the root Bubble Tea model: it owns the screens and routes
// messages between them.
package app

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixdesk/internal/config"
	"matrixdesk/internal/notation"
	"matrixdesk/internal/ui"
)

// tickMsg is sent to clear expired status messages.
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Options wire the screens to their collaborators.
type Options struct {
	Submitter     ui.Submitter
	Renderer      *notation.Renderer
	Exports       *config.Exports
	SubmitTimeout time.Duration
	FadeDelay     time.Duration
	// Info is shown in the top bar, typically the endpoint and store.
	Info string
}

// Model is the root Bubble Tea model.
type Model struct {
	screen    ui.Screen
	home      ui.HomeModel
	input     ui.InputModel
	display   ui.DisplayModel
	statusbar ui.StatusBarModel
	info      string
	width     int
	height    int
}

// NewModel creates the root app model on the home screen.
func NewModel(opts Options) Model {
	return Model{
		screen:    ui.ScreenHome,
		home:      ui.NewHomeModel(),
		input:     ui.NewInputModel(opts.Submitter, opts.SubmitTimeout, opts.FadeDelay),
		display:   ui.NewDisplayModel(opts.Renderer, opts.Exports),
		statusbar: ui.NewStatusBarModel(),
		info:      opts.Info,
	}
}

// Screen returns the active screen.
func (m Model) Screen() ui.Screen {
	return m.screen
}

// Init starts the app.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tickMsg:
		m.statusbar.ClearExpiredMessage()
		return m, tickCmd()

	case ui.AlertMsg:
		m.statusbar.SetMessage(msg.Text, msg.Type)
		return m, nil

	case ui.NavigateHomeMsg:
		if msg.From != m.screen {
			log.Printf("[app] ignoring home request from screen %d on screen %d", msg.From, m.screen)
			return m, nil
		}
		m.screen = ui.ScreenHome
		return m, nil

	case ui.OpenScreenMsg:
		m.screen = msg.Screen
		if msg.Screen == ui.ScreenInput {
			m.input.Reset()
			return m, m.input.Init()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.screen {
		case ui.ScreenInput:
			m.input, cmd = m.input.Update(msg)
		case ui.ScreenDisplay:
			m.display, cmd = m.display.Update(msg)
		default:
			m.home, cmd = m.home.Update(msg)
		}
		return m, cmd
	}

	// Everything else goes to both screens: a submission may finish after
	// the input screen was left, and a lookup after the display was.
	var inputCmd, displayCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.display, displayCmd = m.display.Update(msg)
	return m, tea.Batch(inputCmd, displayCmd)
}

// View renders the full layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	topBar := ui.TopBarStyle.Width(m.width).Render(fmt.Sprintf(" matrixdesk  %s ", m.info))

	var body, hints string
	switch m.screen {
	case ui.ScreenInput:
		body, hints = m.input.View(), m.input.Hints()
	case ui.ScreenDisplay:
		body, hints = m.display.View(), m.display.Hints()
	default:
		body, hints = m.home.View(), m.home.Hints()
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	m.statusbar.SetHints(hints)
	return lipgloss.JoinVertical(lipgloss.Left, topBar, body, m.statusbar.View())
}

func (m Model) bodyHeight() int {
	return max(6, m.height-2)
}

func (m *Model) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.bodyHeight()
	m.home.SetSize(m.width, h)
	m.input.SetSize(m.width, h)
	m.display.SetSize(m.width, h)
	m.statusbar.SetWidth(m.width)
}
