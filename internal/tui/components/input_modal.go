package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	maxRecentQueries   = 8
	shownRecentQueries = 5
)

// InputModal is the catalog search prompt. Submitted queries are kept,
// newest first, and recalled with up/down.
type InputModal struct {
	visible bool
	title   string
	input   textinput.Model

	recent []string
	recall int // index into recent, -1 while editing fresh text
	draft  string
}

// NewInputModal creates a new search prompt
func NewInputModal() InputModal {
	return InputModal{
		input:  newField("/ ", "", 100),
		recall: -1,
	}
}

// Show displays the modal with a title, prefilled with value
func (m *InputModal) Show(title, placeholder, value string) tea.Cmd {
	m.visible = true
	m.title = title
	m.recall = -1
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Recent returns the remembered queries, newest first
func (m InputModal) Recent() []string {
	return m.recent
}

// Remember puts query at the front of the history, dropping an older copy
func (m *InputModal) Remember(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if i := slices.Index(m.recent, query); i >= 0 {
		m.recent = slices.Delete(m.recent, i, i+1)
	}
	m.recent = slices.Insert(m.recent, 0, query)
	if len(m.recent) > maxRecentQueries {
		m.recent = m.recent[:maxRecentQueries]
	}
}

func (m *InputModal) stepRecall(delta int) {
	next := m.recall + delta
	if next < -1 || next >= len(m.recent) {
		return
	}
	if m.recall == -1 {
		m.draft = m.input.Value()
	}
	m.recall = next

	if next == -1 {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recent[next])
	}
	m.input.CursorEnd()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.Remember(m.input.Value())
			m.recall = -1
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		case "up":
			m.stepRecall(1)
			return m, nil, false
		case "down":
			m.stepRecall(-1)
			return m, nil, false
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recall = -1
	}
	return m, cmd, false
}

// View renders the search prompt and the recent queries
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	rows := []string{m.input.View()}
	if len(m.recent) > 0 {
		rows = append(rows, "", styles.DimStyle.Render("Recent"))
		for i, q := range m.recent[:min(len(m.recent), shownRecentQueries)] {
			if i == m.recall {
				rows = append(rows, styles.AccentStyle.Render("› "+q))
				continue
			}
			rows = append(rows, styles.DimStyle.Render("  "+q))
		}
	}

	return renderModal(m.title, rows, styles.DimStyle.Render("enter search · ↑↓ recent · esc cancel"))
}
