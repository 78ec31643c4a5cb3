package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent  = lipgloss.Color("#4ecca3")
	ColorDanger  = lipgloss.Color("#e94560")
	ColorWarning = lipgloss.Color("#f0a500")
	ColorDim     = lipgloss.Color("#555555")
	ColorSuccess = lipgloss.Color("#4ecca3")
	ColorError   = lipgloss.Color("#e94560")
)

// Border styles
var (
	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent)

	UnfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)
)

// Text styles
var (
	AccentText  = lipgloss.NewStyle().Foreground(ColorAccent)
	DimText     = lipgloss.NewStyle().Foreground(ColorDim)
	ErrorText   = lipgloss.NewStyle().Foreground(ColorError)
	WarningText = lipgloss.NewStyle().Foreground(ColorWarning)
	SuccessText = lipgloss.NewStyle().Foreground(ColorSuccess)
	FadedText   = lipgloss.NewStyle().Foreground(ColorDim).Faint(true)
	BannerText  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorDim)
)

// Grid cell styles
var (
	CellNormal  = lipgloss.NewStyle()
	CellFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a3a2a")).
			Foreground(ColorAccent).
			Bold(true)
)

// Form field label styles
var (
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorDim).Width(8)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Width(8)
)

// Status bar
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#cccccc")).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorError).
				Padding(0, 1)

	StatusWarningStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorWarning).
				Padding(0, 1)

	StatusSuccessStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorSuccess).
				Padding(0, 1)
)

// Slot list styles
var (
	SlotItem       = lipgloss.NewStyle().PaddingLeft(1)
	SlotActiveItem = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(ColorAccent).
			Bold(true)
	SlotCursorItem = lipgloss.NewStyle().
			PaddingLeft(1).
			Reverse(true)
)

// Home menu cards
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(1, 3).
			Width(28)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorAccent)
)

// Top bar style
var TopBarStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#333333")).
	Foreground(lipgloss.Color("#cccccc")).
	Padding(0, 1)
