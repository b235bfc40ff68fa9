package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the detail panel
const (
	detailBorderHeight     = 2
	detailScrollIndicators = 2
	maxCastShown           = 6
	maxSimilarShown        = 8
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPanel displays the full record of one title
type DetailPanel struct {
	details    *domain.TitleDetails
	featured   bool
	imageURL   func(path string) string
	width      int
	height     int
	offset     int
	maxVisible int
}

// NewDetailPanel creates a detail panel. imageURL maps poster paths to URLs
// and may be nil.
func NewDetailPanel(imageURL func(path string) string) DetailPanel {
	return DetailPanel{imageURL: imageURL}
}

// SetDetails sets the title to display
func (d *DetailPanel) SetDetails(details *domain.TitleDetails, featured bool) {
	d.details = details
	d.featured = featured
	d.offset = 0
}

// Details returns the displayed title, if any
func (d DetailPanel) Details() (*domain.TitleDetails, bool) {
	return d.details, d.details != nil
}

// SetFeatured updates the curated marker
func (d *DetailPanel) SetFeatured(featured bool) {
	d.featured = featured
}

// SetSize updates the component dimensions
func (d *DetailPanel) SetSize(width, height int) {
	d.width = width
	d.height = height
	// reserve border, scroll indicators, title and blank line
	d.maxVisible = height - detailBorderHeight - detailScrollIndicators - 2
	if d.maxVisible < 1 {
		d.maxVisible = 1
	}
}

// ScrollDown moves the body down one line
func (d *DetailPanel) ScrollDown() {
	d.offset++
}

// ScrollUp moves the body up one line
func (d *DetailPanel) ScrollUp() {
	if d.offset > 0 {
		d.offset--
	}
}

// View renders the component
func (d DetailPanel) View() string {
	style := styles.ActiveBorder

	contentWidth := d.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}
	content := d.render(contentWidth)

	titleLine := styles.AccentStyle.Render("Details")

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := d.maxVisible - len(headerLines) - len(footerLines)
	if availableForBody < 1 {
		availableForBody = 1
	}

	maxOffset := len(bodyLines) - availableForBody
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := d.offset
	if offset > maxOffset {
		offset = maxOffset
	}

	end := offset + availableForBody
	if end > len(bodyLines) {
		end = len(bodyLines)
	}
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, content.header)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, content.footer)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 0)).
		Height(max(d.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (d DetailPanel) render(width int) detailContent {
	if d.details == nil {
		return detailContent{body: styles.DimStyle.Render("No title selected")}
	}
	return detailContent{
		header: d.renderHeader(width),
		body:   d.renderBody(width),
		footer: d.renderFooter(width),
	}
}

func (d DetailPanel) renderHeader(width int) string {
	t := d.details
	var b strings.Builder

	name := t.Name
	if d.featured {
		name = styles.FeaturedChar + " " + name
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(name, width)))
	b.WriteString("\n")

	// Meta line: Kind · Year · Runtime
	meta := []string{t.Kind.Label()}
	if y := t.Year(); y > 0 {
		meta = append(meta, fmt.Sprintf("%d", y))
	}
	if rt := t.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	b.WriteString(styles.RenderRating(t.VoteAverage, t.Rating()))
	if genres := t.GenreNames(); len(genres) > 0 {
		b.WriteString("  ")
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(strings.Join(genres, ", "), width-8)))
	}
	return b.String()
}

func (d DetailPanel) renderBody(width int) string {
	t := d.details
	var sections []string

	if t.Overview != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wordWrap(t.Overview, width)))
	} else {
		sections = append(sections, styles.DimStyle.Render("No overview available"))
	}

	if len(t.Countries) > 0 {
		names := make([]string, len(t.Countries))
		for i, c := range t.Countries {
			names[i] = c.Name
		}
		sections = append(sections, labelled("Countries", wordWrap(strings.Join(names, ", "), width)))
	}

	if len(t.Cast) > 0 {
		var lines []string
		for i, c := range t.Cast {
			if i >= maxCastShown {
				break
			}
			line := c.Name
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			lines = append(lines, line)
		}
		sections = append(sections, labelled("Cast", strings.Join(lines, "\n")))
	}

	if len(t.Similar) > 0 {
		var lines []string
		for i, s := range t.Similar {
			if i >= maxSimilarShown {
				break
			}
			line := styles.Truncate(s.Name, width-8)
			if y := s.Year(); y > 0 {
				line += styles.DimStyle.Render(fmt.Sprintf(" (%d)", y))
			}
			lines = append(lines, line)
		}
		sections = append(sections, labelled("Similar", strings.Join(lines, "\n")))
	}

	return strings.Join(sections, "\n\n")
}

func (d DetailPanel) renderFooter(width int) string {
	t := d.details
	var lines []string

	if v, ok := t.Trailer(); ok {
		lines = append(lines, styles.DimStyle.Render("Trailer ")+styles.Truncate(v.URL(), width-8))
	}
	if d.imageURL != nil {
		if u := d.imageURL(t.PosterPath); u != "" {
			lines = append(lines, styles.DimStyle.Render("Poster  ")+styles.Truncate(u, width-8))
		} else {
			lines = append(lines, styles.DimStyle.Render("Poster  no image"))
		}
	}
	return strings.Join(lines, "\n")
}

func labelled(label, body string) string {
	return styles.AccentStyle.Render(label) + "\n" + body
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
