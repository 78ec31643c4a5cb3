package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"matrixdesk/internal/matrix"
)

// SlotSelectedMsg is sent when a slot is chosen in the sidebar.
type SlotSelectedMsg struct {
	ID string
}

// SidebarModel lists the slots the display screen can show.
type SidebarModel struct {
	slots    []string
	cursor   int
	selected string
	focused  bool
	width    int
	height   int
}

// NewSidebarModel creates a sidebar over slots.
func NewSidebarModel(slots []string) SidebarModel {
	return SidebarModel{slots: slots}
}

// SetFocused sets the focus state.
func (m *SidebarModel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns the focus state.
func (m SidebarModel) Focused() bool {
	return m.focused
}

// SetSize sets the sidebar dimensions.
func (m *SidebarModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Selected returns the selected slot id, "" if none.
func (m SidebarModel) Selected() string {
	return m.selected
}

// Init satisfies the tea.Model interface.
func (m SidebarModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m SidebarModel) Update(msg tea.Msg) (SidebarModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.slots)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.slots) > 0 {
			return m.choose(m.cursor)
		}
	case "a":
		return m.chooseID(matrix.AnswerSlot)
	default:
		if len(key.String()) == 1 && matrix.SlotNumber(key.String()) > 0 {
			return m.chooseID(key.String())
		}
	}
	return m, nil
}

func (m SidebarModel) chooseID(id string) (SidebarModel, tea.Cmd) {
	for i, s := range m.slots {
		if s == id {
			return m.choose(i)
		}
	}
	return m, nil
}

func (m SidebarModel) choose(i int) (SidebarModel, tea.Cmd) {
	m.cursor = i
	m.selected = m.slots[i]
	id := m.selected
	return m, func() tea.Msg {
		return SlotSelectedMsg{ID: id}
	}
}

func slotLabel(id string) string {
	if id == matrix.AnswerSlot {
		return "ans  last result"
	}
	return id + "    " + matrix.AutoName(matrix.SlotNumber(id))
}

// View renders the sidebar.
func (m SidebarModel) View() string {
	borderStyle := UnfocusedBorder
	if m.focused {
		borderStyle = FocusedBorder
	}

	innerW := m.width - 2
	if innerW < 5 {
		innerW = 5
	}
	innerH := m.height - 2
	if innerH < 1 {
		innerH = 1
	}

	var lines []string
	lines = append(lines, HeaderStyle.Render("Slots"), "")

	for i, id := range m.slots {
		if len(lines) >= innerH {
			break
		}
		label := slotLabel(id)
		if lipgloss.Width(label) > innerW-1 && innerW > 4 {
			label = label[:innerW-4] + "..."
		}
		switch {
		case i == m.cursor && m.focused:
			lines = append(lines, SlotCursorItem.Width(innerW).Render(label))
		case id == m.selected:
			lines = append(lines, SlotActiveItem.Width(innerW).Render(label))
		default:
			lines = append(lines, SlotItem.Width(innerW).Render(label))
		}
	}

	content := lipgloss.NewStyle().Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
	return borderStyle.Width(innerW).Height(innerH).Render(content)
}
