package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"matrixdesk/internal/config"
	"matrixdesk/internal/matrix"
	"matrixdesk/internal/notation"
)

const sidebarWidth = 24

// viewLoadedMsg carries the result of the load numbered seq.
type viewLoadedMsg struct {
	seq  int
	view notation.View
}

// DisplayModel shows one stored matrix typeset, next to the slot list.
type DisplayModel struct {
	renderer   *notation.Renderer
	sidebar    SidebarModel
	exports    ExportsModalModel
	view       notation.View
	loading    bool
	loadSeq    int
	showSource bool
	copy       func(string) error
	width      int
	height     int
}

// NewDisplayModel renders slots with r and saves exports to ex.
func NewDisplayModel(r *notation.Renderer, ex *config.Exports) DisplayModel {
	sb := NewSidebarModel(matrix.DisplaySlots)
	sb.SetFocused(true)
	return DisplayModel{
		renderer: r,
		sidebar:  sb,
		exports:  NewExportsModalModel(ex),
		view:     notation.View{Empty: true},
		copy:     clipboard.WriteAll,
	}
}

// SetSize sets the screen dimensions.
func (m *DisplayModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.sidebar.SetSize(sidebarWidth, h)
	m.exports.SetSize(w, h)
	m.renderer.SetWidth(max(0, w-sidebarWidth-4))
}

// Current returns the view on display.
func (m DisplayModel) Current() notation.View {
	return m.view
}

// ShowingSource reports whether the notation source is shown instead of
// the typeset matrix.
func (m DisplayModel) ShowingSource() bool {
	return m.showSource
}

// ModalOpen reports whether the export modal has the keyboard.
func (m DisplayModel) ModalOpen() bool {
	return m.exports.Visible()
}

// Hints returns the keybinding hints for the display screen.
func (m DisplayModel) Hints() string {
	if m.exports.Visible() {
		return "Enter Preview | s Save | d Delete | Esc Close"
	}
	return "j/k Move | Enter Show | s Source | y Copy | Ctrl+O Exports | r Reload | Esc Home"
}

// Init satisfies tea.Model.
func (m DisplayModel) Init() tea.Cmd {
	return nil
}

// Show selects id as if it were chosen in the sidebar.
func (m DisplayModel) Show(id string) (DisplayModel, tea.Cmd) {
	m.sidebar, _ = m.sidebar.chooseID(id)
	return m.load(id)
}

func (m DisplayModel) load(id string) (DisplayModel, tea.Cmd) {
	m.loading = true
	m.loadSeq++
	seq, r := m.loadSeq, m.renderer
	return m, func() tea.Msg {
		return viewLoadedMsg{seq: seq, view: r.Select(context.Background(), id)}
	}
}

// Update handles key events and lookups.
func (m DisplayModel) Update(msg tea.Msg) (DisplayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SlotSelectedMsg:
		return m.load(msg.ID)
	case viewLoadedMsg:
		// Only the most recent load may replace the view.
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.view = msg.view
		if msg.view.Err != nil {
			return m, Alert(fmt.Sprintf("Could not load slot %s: %v", msg.view.ID, msg.view.Err), MsgError)
		}
		return m, nil
	case ExportLoadedMsg:
		m.loadSeq++
		m.loading = false
		m.view = m.renderer.Preview(msg.Name, strings.TrimSpace(msg.Content))
		return m, nil
	case ExportSavedMsg:
		return m, Alert("Exported "+msg.Name, MsgSuccess)
	case tea.KeyMsg:
		if m.exports.Visible() {
			var cmd tea.Cmd
			m.exports, cmd = m.exports.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.exports.Visible() {
		var cmd tea.Cmd
		m.exports, cmd = m.exports.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DisplayModel) handleKey(msg tea.KeyMsg) (DisplayModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateHomeMsg{From: ScreenDisplay} }
	case "s":
		m.showSource = !m.showSource
		return m, nil
	case "y":
		if m.view.Empty || m.view.Notation == "" {
			return m, Alert("Nothing to copy", MsgInfo)
		}
		text, copyFn := m.view.Notation, m.copy
		return m, func() tea.Msg {
			if err := copyFn(text); err != nil {
				return AlertMsg{Text: "Copy failed: " + err.Error(), Type: MsgError}
			}
			return AlertMsg{Text: "Notation copied to clipboard", Type: MsgSuccess}
		}
	case "r":
		if id := m.sidebar.Selected(); id != "" {
			return m.load(id)
		}
		return m, nil
	case "ctrl+o":
		var n, suggested string
		if !m.view.Empty {
			n = m.view.Notation
			suggested = exportName(m.view.Name)
		}
		m.exports.Open(n, suggested)
		return m, nil
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return m, cmd
}

// exportName turns a matrix name into a file name.
func exportName(name string) string {
	name = strings.TrimSuffix(name, config.ExportExt)
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}

// View renders the display screen.
func (m DisplayModel) View() string {
	if m.exports.Visible() {
		return m.exports.View()
	}

	panelW := max(20, m.width-sidebarWidth)
	panelH := max(3, m.height)
	innerW := panelW - 2
	innerH := panelH - 2

	var body string
	switch {
	case m.loading && m.view.Empty:
		body = DimText.Render("Loading…")
	case m.view.Empty:
		body = m.emptyState(innerW)
	default:
		body = m.matrixPanel(innerW)
	}

	panel := UnfocusedBorder.
		Width(innerW).
		Height(innerH).
		Render(body)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), panel)
}

func (m DisplayModel) emptyState(w int) string {
	text := "No matrix to show. Pick a slot on the left, or enter one from the input screen first."
	msg := DimText.Render(wordwrap.String(text, max(10, w-4)))
	return lipgloss.Place(w, max(3, m.height-2), lipgloss.Center, lipgloss.Center, msg)
}

func (m DisplayModel) matrixPanel(w int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.view.Name))
	if m.view.Dimension != "" {
		b.WriteString("  ")
		b.WriteString(SubHeaderStyle.Render(m.view.Dimension))
	}
	b.WriteString("\n")
	b.WriteString(DimText.Render(strings.Repeat("─", max(1, w))))
	b.WriteString("\n\n")

	if m.showSource {
		b.WriteString(HighlightNotation(m.view.Notation))
	} else if m.view.Body == notation.RenderFailedText {
		b.WriteString(ErrorText.Render(m.view.Body))
	} else {
		b.WriteString(m.view.Body)
	}
	return b.String()
}
