package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixdesk/internal/config"
)

// ExportLoadedMsg carries an export chosen for preview.
type ExportLoadedMsg struct {
	Name    string
	Content string
}

// ExportSavedMsg is sent after notation was written to an export.
type ExportSavedMsg struct {
	Name string
}

// ExportModalClosedMsg is sent when the modal is dismissed.
type ExportModalClosedMsg struct{}

type exportsModalMode int

const (
	exportsModalList exportsModalMode = iota
	exportsModalSaveAs
)

// ExportsModalModel lists, saves and deletes notation exports.
type ExportsModalModel struct {
	exports       *config.Exports
	visible       bool
	mode          exportsModalMode
	names         []string
	cursor        int
	input         textinput.Model
	notation      string
	suggested     string
	err           string
	width         int
	height        int
	confirmDelete bool
}

// NewExportsModalModel manages the exports in ex.
func NewExportsModalModel(ex *config.Exports) ExportsModalModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "name"
	ti.CharLimit = 64
	ti.Width = 30
	return ExportsModalModel{exports: ex, input: ti}
}

// Open shows the modal. notation is what "save as" writes; suggested is
// the default file name.
func (m *ExportsModalModel) Open(notation, suggested string) {
	m.visible = true
	m.mode = exportsModalList
	m.cursor = 0
	m.notation = notation
	m.suggested = suggested
	m.err = ""
	m.confirmDelete = false
	m.refresh()
}

// Close hides the modal.
func (m *ExportsModalModel) Close() {
	m.visible = false
	m.err = ""
	m.confirmDelete = false
	m.input.Blur()
}

// Visible reports whether the modal is open.
func (m ExportsModalModel) Visible() bool {
	return m.visible
}

// SetSize sets the area the modal is centered in.
func (m *ExportsModalModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *ExportsModalModel) refresh() {
	names, err := m.exports.List()
	if err != nil {
		m.err = err.Error()
	}
	m.names = names
	if m.cursor >= len(m.names) {
		m.cursor = max(0, len(m.names)-1)
	}
}

// Update handles key events while the modal is open.
func (m ExportsModalModel) Update(msg tea.Msg) (ExportsModalModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == exportsModalSaveAs {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if (key.String() == "y" || key.String() == "Y") && m.cursor < len(m.names) {
			if err := m.exports.Delete(m.names[m.cursor]); err != nil {
				m.err = err.Error()
			}
			m.refresh()
		}
		return m, nil
	}

	if m.mode == exportsModalSaveAs {
		return m.updateSaveAs(key)
	}
	return m.updateList(key)
}

func (m ExportsModalModel) updateList(msg tea.KeyMsg) (ExportsModalModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.Close()
		return m, func() tea.Msg { return ExportModalClosedMsg{} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.names) {
			name := m.names[m.cursor]
			content, err := m.exports.Load(name)
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.Close()
			return m, func() tea.Msg {
				return ExportLoadedMsg{Name: name, Content: content}
			}
		}
	case "s":
		if m.notation == "" {
			m.err = "Nothing to export"
			return m, nil
		}
		m.mode = exportsModalSaveAs
		m.input.SetValue(m.suggested)
		m.err = ""
		return m, m.input.Focus()
	case "d", "x":
		if m.cursor < len(m.names) {
			m.confirmDelete = true
		}
	}
	return m, nil
}

func (m ExportsModalModel) updateSaveAs(msg tea.KeyMsg) (ExportsModalModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = exportsModalList
		m.input.Blur()
		m.err = ""
		return m, nil
	case "enter":
		name, err := m.exports.Save(m.input.Value(), m.notation)
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.mode = exportsModalList
		m.input.Blur()
		m.err = ""
		m.refresh()
		return m, func() tea.Msg { return ExportSavedMsg{Name: name} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the modal centered in its area.
func (m ExportsModalModel) View() string {
	if !m.visible {
		return ""
	}

	modalW := 50
	if m.width > 0 && modalW > m.width-4 {
		modalW = m.width - 4
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Exports"))
	b.WriteString("\n")
	b.WriteString(DimText.Render("  " + m.exports.Dir()))
	b.WriteString("\n")

	switch {
	case m.confirmDelete && m.cursor < len(m.names):
		b.WriteString("\n")
		b.WriteString(ErrorText.Render(fmt.Sprintf("  Delete %s?", m.names[m.cursor])))
		b.WriteString("\n")
		b.WriteString(DimText.Render("  y confirm | any key cancel"))
		b.WriteString("\n")
	case m.mode == exportsModalSaveAs:
		b.WriteString("\n")
		b.WriteString(AccentText.Render("  Save notation as"))
		b.WriteString("\n  ")
		b.WriteString(m.input.View())
		b.WriteString(DimText.Render(config.ExportExt))
		b.WriteString("\n")
		if m.err != "" {
			b.WriteString(ErrorText.Render("  " + m.err))
			b.WriteString("\n")
		}
		b.WriteString(DimText.Render("  Enter save | Esc back"))
		b.WriteString("\n")
	default:
		b.WriteString(DimText.Render("  Enter preview | s save as | d delete | Esc close"))
		b.WriteString("\n\n")
		if len(m.names) == 0 {
			b.WriteString(DimText.Render("  No exports yet"))
			b.WriteString("\n")
		}
		maxShow := 15
		if m.height > 0 {
			maxShow = max(5, m.height-12)
		}
		start := 0
		if m.cursor >= maxShow {
			start = m.cursor - maxShow + 1
		}
		for i := start; i < len(m.names) && i < start+maxShow; i++ {
			if i == m.cursor {
				b.WriteString(SlotCursorItem.Width(modalW - 4).Render("  " + m.names[i]))
			} else {
				b.WriteString(SlotItem.Render("  " + m.names[i]))
			}
			b.WriteString("\n")
		}
		if m.err != "" {
			b.WriteString(ErrorText.Render("  " + m.err))
			b.WriteString("\n")
		}
	}

	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(1, 2).
		Width(modalW).
		Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
	}
	return rendered
}
