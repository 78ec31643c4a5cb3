package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

var (
	KeywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c678dd"))
	FunctionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#61afef"))
	StringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379"))
	NumberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d19a66"))
	CommentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370")).Italic(true)
	OperatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#56b6c2"))
)

// tokenStyle maps a chroma token to one of the palette styles. ok is false
// for plain text.
func tokenStyle(t chroma.TokenType) (lipgloss.Style, bool) {
	switch {
	case t.InCategory(chroma.Keyword):
		return KeywordStyle, true
	case t.InCategory(chroma.Name):
		return FunctionStyle, true
	case t.InSubCategory(chroma.LiteralNumber):
		return NumberStyle, true
	case t.InSubCategory(chroma.LiteralString):
		return StringStyle, true
	case t.InCategory(chroma.Comment):
		return CommentStyle, true
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return OperatorStyle, true
	}
	return lipgloss.Style{}, false
}

// HighlightNotation colors TeX source for the display screen's source view.
// Input the lexer cannot handle is returned unchanged.
func HighlightNotation(src string) string {
	if strings.TrimSpace(src) == "" {
		return src
	}

	lexer := lexers.Get("tex")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var b strings.Builder
	for tok := it(); tok != chroma.EOF; tok = it() {
		style, ok := tokenStyle(tok.Type)
		if !ok {
			b.WriteString(tok.Value)
			continue
		}
		// Style per line so newlines stay outside escape sequences.
		lines := strings.Split(tok.Value, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	out := b.String()
	if !strings.HasSuffix(src, "\n") {
		// Some lexers append a newline to their input.
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}
