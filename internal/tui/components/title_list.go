package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for list panes
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus the "↑ more" and "↓ more" lines
	chromeLines = 3
)

// TitleList is a scrollable, filterable list of catalog titles
type TitleList struct {
	items    []domain.Title
	featured map[string]bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	loading      bool
	spinnerFrame int
	err          error

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filtered     []fuzzy.Match // nil when no query
}

// NewTitleList creates an empty list with a header title
func NewTitleList(title string) *TitleList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &TitleList{
		title:       title,
		filterInput: ti,
		featured:    make(map[string]bool),
	}
}

// FeaturedKey is the lookup key used by SetFeatured
func FeaturedKey(kind domain.Kind, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// SetItems replaces the list content and resets selection
func (l *TitleList) SetItems(items []domain.Title) {
	l.items = items
	l.loading = false
	l.err = nil
	l.cursor = 0
	l.offset = 0
	if l.filterQuery != "" {
		l.applyFilter()
	}
}

// Items returns the unfiltered content
func (l *TitleList) Items() []domain.Title {
	return l.items
}

// SetFeatured marks which titles are curated
func (l *TitleList) SetFeatured(keys map[string]bool) {
	if keys == nil {
		keys = make(map[string]bool)
	}
	l.featured = keys
}

// SetTitle sets the header line
func (l *TitleList) SetTitle(title string) {
	l.title = title
}

// Title returns the header line
func (l *TitleList) Title() string {
	return l.title
}

// SetLoading toggles the loading placeholder
func (l *TitleList) SetLoading(loading bool) {
	l.loading = loading
	if loading {
		l.err = nil
	}
}

// IsLoading reports whether the list is waiting for content
func (l *TitleList) IsLoading() bool {
	return l.loading
}

// SetError shows err in place of the content
func (l *TitleList) SetError(err error) {
	l.loading = false
	l.err = err
}

// SetSpinnerFrame advances the loading animation
func (l *TitleList) SetSpinnerFrame(frame int) {
	l.spinnerFrame = frame
}

// SetSize updates the pane dimensions
func (l *TitleList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused sets whether the list receives keys
func (l *TitleList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused reports whether the list receives keys
func (l *TitleList) IsFocused() bool {
	return l.focused
}

// ItemCount returns the number of visible (filtered) items
func (l *TitleList) ItemCount() int {
	if l.filtered != nil {
		return len(l.filtered)
	}
	return len(l.items)
}

// Selected returns the highlighted title
func (l *TitleList) Selected() (domain.Title, bool) {
	if l.ItemCount() == 0 {
		return domain.Title{}, false
	}
	return l.items[l.mapIndex(l.cursor)], true
}

// SelectedIndex returns the cursor position among visible items
func (l *TitleList) SelectedIndex() int {
	return l.cursor
}

// SetSelectedIndex moves the cursor, clamped to the visible items
func (l *TitleList) SetSelectedIndex(idx int) {
	count := l.ItemCount()
	if count == 0 {
		l.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	l.cursor = idx
	l.ensureVisible()
}

// ToggleFilter opens the filter input, or refocuses it when already open
func (l *TitleList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering reports whether a filter is applied or being typed
func (l *TitleList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping reports whether keystrokes go to the filter input
func (l *TitleList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter drops the filter and shows every item
func (l *TitleList) ClearFilter() {
	l.clearFilter()
}

// Update handles navigation and filter keys
func (l *TitleList) Update(msg tea.Msg) (*TitleList, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	// Typing into the filter
	if l.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				l.clearFilter()
				return l, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return l, nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return l, nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd
	}

	count := l.ItemCount()
	if count == 0 {
		return l, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.offset = 0
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d", "pgdown":
			l.SetSelectedIndex(l.cursor + max(l.maxVisible/2, 1))
		case "ctrl+u", "pgup":
			l.SetSelectedIndex(l.cursor - max(l.maxVisible/2, 1))
		}
	}

	return l, nil
}

// View renders the list inside a border
func (l *TitleList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *TitleList) recalcMaxVisible() {
	l.maxVisible = l.height - BorderHeight - chromeLines
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *TitleList) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l *TitleList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filtered = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *TitleList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.filtered = nil
		return
	}

	lowerTitles := make([]string, len(l.items))
	for i, t := range l.items {
		lowerTitles[i] = strings.ToLower(t.Name)
	}

	l.filtered = fuzzy.Find(strings.ToLower(query), lowerTitles)
	if l.filtered == nil {
		l.filtered = []fuzzy.Match{}
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

func (l *TitleList) mapIndex(i int) int {
	if l.filtered != nil && i < len(l.filtered) {
		return l.filtered[i].Index
	}
	return i
}

func (l *TitleList) matchedIndexes(i int) []int {
	if l.filtered != nil && i < len(l.filtered) {
		return l.filtered[i].MatchedIndexes
	}
	return nil
}

func (l *TitleList) renderContent() string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading {
		spinner := SpinnerFrames[l.spinnerFrame%len(SpinnerFrames)]
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner+" Loading...") + "\n "
	}
	if l.err != nil {
		return titleLine + "\n \n" + styles.ErrorStyle.Render(styles.Truncate(l.err.Error(), itemWidth)) + "\n "
	}

	count := l.ItemCount()
	if count == 0 {
		emptyMsg := "No titles"
		if l.filterQuery != "" {
			emptyMsg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(emptyMsg) + "\n "
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderItem(i, i == l.cursor, itemWidth))
	}

	// Reserve the indicator lines even when empty to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

func (l *TitleList) renderItem(i int, selected bool, width int) string {
	t := l.items[l.mapIndex(i)]

	mark := " "
	if l.featured[FeaturedKey(t.Kind, t.ID)] {
		mark = styles.FeaturedChar
	}

	year := ""
	if y := t.Year(); y > 0 {
		year = fmt.Sprintf(" (%d)", y)
	}
	rating := " " + t.Rating()

	// mark + space + name + year + rating
	nameWidth := width - 2 - 2 - lipgloss.Width(year) - lipgloss.Width(rating)
	name := styles.Truncate(t.Name, max(nameWidth, 4))

	gold := styles.ReelGold
	dim := styles.DimGray
	parts := []styles.RowPart{{Text: mark + " ", Foreground: &gold}}
	if l.filterQuery != "" {
		parts = append(parts, styles.RowPart{Text: styles.RenderHighlighted(name, l.matchedIndexes(i), selected), Styled: true})
	} else {
		parts = append(parts, styles.RowPart{Text: name})
	}
	parts = append(parts,
		styles.RowPart{Text: year, Foreground: &dim},
		styles.RowPart{Text: rating, Foreground: &dim},
	)
	return styles.RenderListRow(parts, selected, width)
}

func (l *TitleList) renderFilterBar() string {
	countStr := ""
	if l.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.ItemCount(), len(l.items)))
	}
	return l.filterInput.View() + countStr
}
