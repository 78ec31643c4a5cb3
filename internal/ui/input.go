package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"matrixdesk/internal/api"
	"matrixdesk/internal/editor"
	"matrixdesk/internal/matrix"
)

// Submitter sends a prepared matrix to the service.
type Submitter interface {
	Submit(ctx context.Context, req api.SubmitRequest) (api.Response, error)
}

// NavigateHomeMsg asks the app to return to the home screen. From names the
// screen that asked; the app ignores requests from a screen no longer shown.
type NavigateHomeMsg struct {
	From Screen
}

// fadeDoneMsg ends the fade that follows a successful submission.
type fadeDoneMsg struct{}

type submitResultMsg struct {
	seq  int
	resp api.Response
	err  error
}

type submitTimeoutMsg struct {
	seq int
}

type inputField int

const (
	fieldSlot inputField = iota
	fieldName
	fieldRows
	fieldCols
	fieldGrid
)

// InputModel is the matrix input screen: slot, name and dimension fields
// above an editable grid.
type InputModel struct {
	state     *editor.State
	tracker   *editor.Tracker
	submitter Submitter
	timeout   time.Duration
	fadeDelay time.Duration

	name  textinput.Model
	rows  textinput.Model
	cols  textinput.Model
	field inputField

	phase  editor.Phase
	fading bool
	width  int
	height int
}

// NewInputModel creates the input screen. Submissions go to s; a warning
// is shown when one is unanswered after timeout, and a success leaves the
// screen after fadeDelay.
func NewInputModel(s Submitter, timeout, fadeDelay time.Duration) InputModel {
	m := InputModel{
		tracker:   editor.NewTracker(),
		submitter: s,
		timeout:   timeout,
		fadeDelay: fadeDelay,
		name:      newField("Matrix name", 24),
		rows:      newField("rows", 3),
		cols:      newField("cols", 3),
	}
	m.Reset()
	return m
}

func newField(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	ti.CharLimit = 64
	return ti
}

// Reset starts a fresh form: slot 1, its auto name and a 3x3 grid.
// Exchanges still in flight keep their tracker entries.
func (m *InputModel) Reset() {
	m.state = editor.NewState()
	m.name.SetValue(m.state.Name())
	m.rows.SetValue(strconv.Itoa(m.state.Rows()))
	m.cols.SetValue(strconv.Itoa(m.state.Cols()))
	m.phase = editor.PhaseIdle
	m.fading = false
	m.focus(fieldName)
}

// SetSize sets the screen dimensions.
func (m *InputModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// State returns the form state.
func (m InputModel) State() *editor.State {
	return m.state
}

// Phase returns where the last submission stands.
func (m InputModel) Phase() editor.Phase {
	return m.phase
}

// Fading reports whether the screen is fading out after a success.
func (m InputModel) Fading() bool {
	return m.fading
}

// Hints returns the keybinding hints for the focused field.
func (m InputModel) Hints() string {
	switch m.field {
	case fieldSlot:
		return "←/→ or 1-7 Slot | Tab Next | Ctrl+A Auto name | Ctrl+S Submit | Esc Home"
	case fieldRows, fieldCols:
		return "Enter Apply size | Tab Next | Ctrl+S Submit | Esc Home"
	case fieldGrid:
		return "Enter Down | Tab/Shift+Tab Next/Prev | Arrows Move | Ctrl+S Submit | Esc Fields"
	default:
		return "Tab Next | Ctrl+A Auto name | Ctrl+S Submit | Esc Home"
	}
}

// Init satisfies tea.Model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events and submission results.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleResult(msg)
	case submitTimeoutMsg:
		return m.handleTimeout(msg)
	case fadeDoneMsg:
		// A Reset since the success cancels the fade.
		if !m.fading {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateHomeMsg{From: ScreenInput} }
	case tea.KeyMsg:
		if m.fading {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m.updateField(msg)
}

func (m InputModel) handleKey(msg tea.KeyMsg) (InputModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+a":
		m.name.SetValue(m.state.AutoName())
		return m, nil
	case "esc":
		if m.field == fieldGrid {
			m.focus(fieldName)
			return m, nil
		}
		return m, func() tea.Msg { return NavigateHomeMsg{From: ScreenInput} }
	}

	if m.field == fieldGrid {
		return m.updateGrid(msg)
	}

	switch msg.String() {
	case "tab", "down":
		m.focus(m.field + 1)
		return m, nil
	case "shift+tab", "up":
		if m.field > fieldSlot {
			m.focus(m.field - 1)
		}
		return m, nil
	case "enter":
		if m.field == fieldRows || m.field == fieldCols {
			m.applyDimensions()
		} else {
			m.focus(m.field + 1)
		}
		return m, nil
	}

	if m.field == fieldSlot {
		slot := m.state.Slot()
		switch k := msg.String(); {
		case k == "left" || k == "h":
			slot--
		case k == "right" || k == "l":
			slot++
		case matrix.SlotNumber(k) > 0:
			slot = matrix.SlotNumber(k)
		}
		m.state.SetSlot(slot)
		m.name.SetValue(m.state.Name())
		return m, nil
	}
	return m.updateField(msg)
}

// updateField forwards msg to the focused text field.
func (m InputModel) updateField(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.field {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
		m.state.SetName(m.name.Value())
	case fieldRows:
		m.rows, cmd = m.rows.Update(msg)
	case fieldCols:
		m.cols, cmd = m.cols.Update(msg)
	}
	return m, cmd
}

func (m InputModel) updateGrid(msg tea.KeyMsg) (InputModel, tea.Cmd) {
	p := m.state.Focus()
	switch msg.String() {
	case "enter":
		m.state.Navigate(p.Row, p.Col, editor.KeyEnter, false)
	case "tab":
		m.state.Navigate(p.Row, p.Col, editor.KeyTab, false)
	case "shift+tab":
		m.state.Navigate(p.Row, p.Col, editor.KeyTab, true)
	case "up":
		m.state.SetFocus(editor.Pos{Row: p.Row - 1, Col: p.Col})
	case "down":
		m.state.SetFocus(editor.Pos{Row: p.Row + 1, Col: p.Col})
	case "left":
		m.state.SetFocus(editor.Pos{Row: p.Row, Col: p.Col - 1})
	case "right":
		m.state.SetFocus(editor.Pos{Row: p.Row, Col: p.Col + 1})
	case "backspace":
		if t := m.state.Text(p.Row, p.Col); t != "" {
			m.state.Input(p.Row, p.Col, t[:len(t)-1])
		}
	case "delete", "ctrl+u":
		m.state.Input(p.Row, p.Col, "")
	default:
		if msg.Type == tea.KeyRunes {
			m.state.Input(p.Row, p.Col, m.state.Text(p.Row, p.Col)+string(msg.Runes))
		}
	}
	return m, nil
}

// focus moves to f. Leaving a dimension field applies it.
func (m *InputModel) focus(f inputField) {
	if f > fieldGrid {
		f = fieldGrid
	}
	if f == m.field && (f == fieldGrid || f == fieldSlot) {
		return
	}
	if f != m.field && (m.field == fieldRows || m.field == fieldCols) && m.dimensionsEdited() {
		m.applyDimensions()
	}
	m.field = f
	m.name.Blur()
	m.rows.Blur()
	m.cols.Blur()
	switch f {
	case fieldName:
		m.name.Focus()
	case fieldRows:
		m.rows.Focus()
	case fieldCols:
		m.cols.Focus()
	}
}

func (m InputModel) dimensionsEdited() bool {
	return m.rows.Value() != strconv.Itoa(m.state.Rows()) ||
		m.cols.Value() != strconv.Itoa(m.state.Cols())
}

// applyDimensions rebuilds the grid from the dimension fields and writes
// the clamped values back.
func (m *InputModel) applyDimensions() {
	r, c := m.state.SetDimensionText(m.rows.Value(), m.cols.Value())
	m.rows.SetValue(strconv.Itoa(r))
	m.cols.SetValue(strconv.Itoa(c))
}

func (m InputModel) submit() (InputModel, tea.Cmd) {
	if m.dimensionsEdited() {
		m.applyDimensions()
	}

	m.setPhase(editor.PhaseValidating)
	if err := m.state.Validate(); err != nil {
		m.setPhase(editor.PhaseValidationFailed)
		m.focus(fieldName)
		log.Printf("[submit] rejected: %v", err)
		return m, Alert(editor.Message(err), MsgError)
	}

	m.setPhase(editor.PhaseCollecting)
	data, err := m.state.Collect()
	if err != nil {
		m.setPhase(editor.PhaseCollectionFailed)
		var lone *editor.LoneSignError
		if errors.As(err, &lone) {
			m.focus(fieldGrid)
			m.state.SetFocus(editor.Pos{Row: lone.Row, Col: lone.Col})
		}
		log.Printf("[submit] rejected: %v", err)
		return m, Alert(editor.Message(err), MsgError)
	}
	req := m.state.Request(data)

	m.setPhase(editor.PhaseSending)
	seq := m.tracker.Begin()
	log.Printf("[submit] #%d slot %d %q %dx%d", seq, req.ID, req.Name, req.Rows, req.Cols)

	s := m.submitter
	send := func() tea.Msg {
		resp, err := s.Submit(context.Background(), req)
		return submitResultMsg{seq: seq, resp: resp, err: err}
	}
	timer := tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return submitTimeoutMsg{seq: seq}
	})
	return m, tea.Batch(send, timer)
}

func (m *InputModel) setPhase(p editor.Phase) {
	if p != m.phase {
		log.Printf("[submit] phase %s -> %s", m.phase, p)
	}
	m.phase = p
}

func (m InputModel) handleResult(msg submitResultMsg) (InputModel, tea.Cmd) {
	outcome, text := editor.Classify(msg.resp, msg.err)
	if !m.tracker.Resolve(msg.seq, outcome) {
		log.Printf("[submit] #%d late answer suppressed (%s): %s", msg.seq, outcome.Phase(), text)
		return m, nil
	}
	log.Printf("[submit] #%d %s: %s", msg.seq, outcome.Phase(), text)

	if outcome != editor.OutcomeSucceeded {
		m.setPhase(outcome.Phase())
		return m, Alert(text, MsgError)
	}

	m.setPhase(editor.PhaseNavigating)
	m.fading = true
	fade := tea.Tick(m.fadeDelay, func(time.Time) tea.Msg {
		return fadeDoneMsg{}
	})
	return m, tea.Batch(Alert(text, MsgSuccess), fade)
}

func (m InputModel) handleTimeout(msg submitTimeoutMsg) (InputModel, tea.Cmd) {
	if !m.tracker.Resolve(msg.seq, editor.OutcomeTimedOut) {
		return m, nil
	}
	log.Printf("[submit] #%d no answer after %s", msg.seq, m.timeout)
	m.setPhase(editor.PhaseTimedOut)
	return m, Alert(editor.TimeoutWarning, MsgWarning)
}

// View renders the input screen.
func (m InputModel) View() string {
	var b strings.Builder
	b.WriteString(m.style(HeaderStyle).Render("Matrix input"))
	b.WriteString("\n\n")

	b.WriteString(m.label("Slot", fieldSlot))
	b.WriteString(m.slotPicker())
	b.WriteString("\n")

	b.WriteString(m.label("Name", fieldName))
	b.WriteString(m.fieldView(m.name))
	b.WriteString("  ")
	b.WriteString(m.style(DimText).Render("Ctrl+A auto"))
	b.WriteString("\n")

	b.WriteString(m.label("Size", fieldRows))
	b.WriteString(m.fieldView(m.rows))
	b.WriteString(m.style(DimText).Render(" × "))
	b.WriteString(m.fieldView(m.cols))
	b.WriteString(m.style(DimText).Render(fmt.Sprintf("   (%d to %d)", matrix.Bounds.Min, matrix.Bounds.Max)))
	b.WriteString("\n\n")

	b.WriteString(m.gridView())
	return b.String()
}

// style swaps every style for the faded one while leaving the screen.
func (m InputModel) style(s lipgloss.Style) lipgloss.Style {
	if m.fading {
		return FadedText
	}
	return s
}

func (m InputModel) label(text string, f inputField) string {
	focused := m.field == f || (f == fieldRows && m.field == fieldCols)
	if focused && !m.fading {
		return LabelFocusedStyle.Render(text)
	}
	return m.style(LabelStyle).Render(text)
}

func (m InputModel) fieldView(ti textinput.Model) string {
	if m.fading {
		return FadedText.Render(ti.Value())
	}
	return ti.View()
}

func (m InputModel) slotPicker() string {
	parts := make([]string, len(matrix.InputSlots))
	for i, id := range matrix.InputSlots {
		switch {
		case i+1 == m.state.Slot() && m.field == fieldSlot && !m.fading:
			parts[i] = CellFocused.Render(" " + id + " ")
		case i+1 == m.state.Slot():
			parts[i] = m.style(AccentText).Render("[" + id + "]")
		default:
			parts[i] = m.style(DimText).Render(" " + id + " ")
		}
	}
	return strings.Join(parts, "")
}

// gridView draws the window of the grid that keeps the focused cell
// visible.
func (m InputModel) gridView() string {
	rows, cols := m.state.Rows(), m.state.Cols()
	cw := 4
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if w := runewidth.StringWidth(m.state.Text(r, c)); w+1 > cw {
				cw = w + 1
			}
		}
	}

	visRows, visCols := rows, cols
	if m.height > 0 {
		visRows = max(1, min(rows, m.height-9))
	}
	if m.width > 0 {
		visCols = max(1, min(cols, (m.width-4)/(cw+1)))
	}
	focus := m.state.Focus()
	r0 := max(0, focus.Row-visRows+1)
	c0 := max(0, focus.Col-visCols+1)

	var lines []string
	for r := r0; r < r0+visRows && r < rows; r++ {
		cells := make([]string, 0, visCols)
		for c := c0; c < c0+visCols && c < cols; c++ {
			text := m.state.Text(r, c)
			style := m.style(CellNormal)
			if text == "" {
				text = "0"
				style = m.style(DimText)
			}
			padded := strings.Repeat(" ", cw-runewidth.StringWidth(text)) + text
			if m.field == fieldGrid && focus == (editor.Pos{Row: r, Col: c}) && !m.fading {
				style = CellFocused
			}
			cells = append(cells, style.Render(padded))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	border := UnfocusedBorder
	if m.field == fieldGrid && !m.fading {
		border = FocusedBorder
	}
	view := border.Render(strings.Join(lines, "\n"))
	if r0 > 0 || c0 > 0 || visRows < rows || visCols < cols {
		view += "\n" + m.style(DimText).Render(fmt.Sprintf(" cell %d, %d of %d × %d", focus.Row+1, focus.Col+1, rows, cols))
	}
	return view
}
