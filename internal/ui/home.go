package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Screen is one of the app's top-level screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenInput
	ScreenDisplay
)

// OpenScreenMsg asks the app to switch screens.
type OpenScreenMsg struct {
	Screen Screen
}

type card struct {
	screen Screen
	title  string
	blurb  string
	key    string
}

var homeCards = []card{
	{ScreenInput, "Matrix input", "Type a matrix into one of seven slots and send it to the service.", "i"},
	{ScreenDisplay, "Matrix display", "Browse stored slots and the last result, typeset as a matrix.", "d"},
}

// HomeModel is the menu shown at start and after a submission.
type HomeModel struct {
	cursor int
	width  int
	height int
}

// NewHomeModel creates the home menu.
func NewHomeModel() HomeModel {
	return HomeModel{}
}

// SetSize sets the screen dimensions.
func (m *HomeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Hints returns the keybinding hints for the menu.
func (m HomeModel) Hints() string {
	return "←/→ Choose | Enter Open | i Input | d Display | q Quit"
}

// Init satisfies tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l", "tab":
		if m.cursor < len(homeCards)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, open(homeCards[m.cursor].screen)
	case "q":
		return m, tea.Quit
	default:
		for i, c := range homeCards {
			if key.String() == c.key {
				m.cursor = i
				return m, open(c.screen)
			}
		}
	}
	return m, nil
}

func open(s Screen) tea.Cmd {
	return func() tea.Msg { return OpenScreenMsg{Screen: s} }
}

// View renders the menu.
func (m HomeModel) View() string {
	cards := make([]string, len(homeCards))
	for i, c := range homeCards {
		style := CardStyle
		title := SubHeaderStyle.Render(c.title)
		if i == m.cursor {
			style = CardSelectedStyle
			title = HeaderStyle.Render(c.title)
		}
		body := title + "\n\n" + DimText.Render(wordwrap.String(c.blurb, 22)) +
			"\n\n" + AccentText.Render("["+c.key+"]")
		cards[i] = style.Render(body)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], "  ", cards[1])
	title := BannerText.Render("matrixdesk")
	view := lipgloss.JoinVertical(lipgloss.Center, title, "", row)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
