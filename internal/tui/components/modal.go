package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/tui/styles"
)

const fieldWidth = 30

// newField returns an unfocused text input styled for the modals
func newField(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = styles.SubtitleStyle
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = styles.DimStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.CharLimit = limit
	ti.Width = fieldWidth
	return ti
}

// renderModal draws a titled box: the body rows, a blank line, then status
func renderModal(title string, rows []string, status string) string {
	parts := make([]string, 0, len(rows)+3)
	parts = append(parts, styles.ModalTitleStyle.Render(title))
	parts = append(parts, rows...)
	parts = append(parts, "", status)
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
