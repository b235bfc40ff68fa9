package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/tui/styles"
)

// RowEntry is one selectable landing row label
type RowEntry struct {
	Label string
	Count int
	Err   error
}

// RowList is the landing row selector
type RowList struct {
	entries []RowEntry
	cursor  int
	width   int
	height  int
	focused bool
}

// NewRowList creates an empty row selector
func NewRowList() *RowList {
	return &RowList{}
}

// SetEntries replaces the rows, keeping the cursor when still in range
func (r *RowList) SetEntries(entries []RowEntry) {
	r.entries = entries
	if r.cursor >= len(entries) {
		r.cursor = 0
	}
}

// SelectedIndex returns the highlighted row
func (r *RowList) SelectedIndex() int {
	return r.cursor
}

// SetSize updates the pane dimensions
func (r *RowList) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// SetFocused sets whether the list receives keys
func (r *RowList) SetFocused(focused bool) {
	r.focused = focused
}

// Update moves the cursor; changed reports whether the selection moved
func (r *RowList) Update(msg tea.Msg) (changed bool) {
	if !r.focused || len(r.entries) == 0 {
		return false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	prev := r.cursor
	switch keyMsg.String() {
	case "j", "down":
		if r.cursor < len(r.entries)-1 {
			r.cursor++
		}
	case "k", "up":
		if r.cursor > 0 {
			r.cursor--
		}
	case "g", "home":
		r.cursor = 0
	case "G", "end":
		r.cursor = len(r.entries) - 1
	}
	return prev != r.cursor
}

// View renders the selector inside a border
func (r *RowList) View() string {
	style := styles.InactiveBorder
	if r.focused {
		style = styles.ActiveBorder
	}

	width := r.width - BorderWidth
	lines := []string{styles.AccentStyle.Render("Browse"), " "}
	for i, e := range r.entries {
		suffix := fmt.Sprintf(" %d", e.Count)
		if e.Err != nil {
			suffix = " !"
		}
		red := styles.Red
		dim := styles.DimGray
		fg := &dim
		if e.Err != nil {
			fg = &red
		}
		lines = append(lines, styles.RenderListRow([]styles.RowPart{
			{Text: styles.Truncate(e.Label, width-len(suffix)-2)},
			{Text: suffix, Foreground: fg},
		}, i == r.cursor, width))
	}

	content := strings.Join(lines, "\n")

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(r.width-frameW, 0)).
		Height(max(r.height-frameH, 0)).
		Render(content)
}
