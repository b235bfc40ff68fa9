package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

var screenTabs = []struct {
	screen Screen
	label  string
}{
	{ScreenHome, "1 Home"},
	{ScreenBrowse, "2 Browse"},
	{ScreenAdmin, "A Admin"},
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	switch m.Screen {
	case ScreenHome:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.RowList.View(), m.HomeList.View())
	case ScreenBrowse:
		content = m.BrowseList.View()
	case ScreenDetail:
		content = m.Detail.View()
	case ScreenAdmin:
		content = m.renderAdmin()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// Overlay modals
	if m.LoginModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.LoginModal.View())
	}
	if m.SearchModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SearchModal.View())
	}

	return view
}

// renderHeader renders the brand, screen tabs and session badge
func (m Model) renderHeader() string {
	active := m.Screen
	if active == ScreenDetail {
		active = m.detailFrom
	}

	parts := []string{styles.BrandStyle.Render("REEL"), " "}
	for _, tab := range screenTabs {
		if tab.screen == active {
			parts = append(parts, styles.TabActiveStyle.Render(tab.label))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(tab.label))
		}
	}
	left := strings.Join(parts, "")

	right := styles.DimBadgeStyle.Render("guest")
	if m.Authenticated {
		right = styles.BadgeStyle.Render("admin")
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner or status message
	var left string
	switch {
	case m.Loading:
		spinner := components.SpinnerFrames[m.SpinnerFrame%len(components.SpinnerFrames)]
		left = styles.SpinnerStyle.Render(spinner) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: screen-specific hints
	center := renderHints(m.screenHints())

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) screenHints() [][2]string {
	switch m.Screen {
	case ScreenHome:
		if m.homeRowsFocus {
			return [][2]string{{"l", "titles"}, {"/", "search"}}
		}
		hints := [][2]string{{"enter", "details"}, {"h", "rows"}}
		if m.Authenticated {
			hints = append(hints, [2]string{"+", "feature"})
		}
		return hints
	case ScreenBrowse:
		hints := [][2]string{{"/", "search"}, {"tab", "films/series"}, {"t", "genre"}, {"c", "country"}, {"[ ]", "page"}}
		if m.Authenticated {
			hints = append(hints, [2]string{"+", "feature"})
		}
		return hints
	case ScreenDetail:
		hints := [][2]string{{"esc", "back"}, {"j/k", "scroll"}, {"o", "trailer"}}
		if m.Authenticated {
			hints = append(hints, [2]string{"+", "feature"})
		}
		return hints
	case ScreenAdmin:
		if !m.Authenticated {
			return nil
		}
		return [][2]string{{"/", "filter"}, {"d", "remove"}, {"enter", "view"}, {"L", "logout"}}
	}
	return nil
}

func renderHints(hints [][2]string) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.AccentStyle.Render(h[0]) + styles.DimStyle.Render(" "+h[1])
	}
	return strings.Join(parts, "  ")
}

// renderAdmin renders the dashboard: counters above the curated list
func (m Model) renderAdmin() string {
	if !m.Authenticated {
		return lipgloss.Place(m.Width, max(m.Height-ChromeHeight, 1),
			lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("Admin login required"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderStatsCards(m.stats),
		m.AdminList.View(),
	)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      BROWSE
  j/k        Up/down               /      Search
  h/l        Rows/titles           tab    Films or series
  g/G        First/last item       t      Cycle genre
  Ctrl+u/d   Scroll half page      c      Cycle country
  Enter      Open details          [ ]    Previous/next page
  Esc        Back / clear          o      Play trailer

SCREENS                         ADMIN
  1          Home                  +      Feature title
  2          Browse                d      Remove curated title
  A          Admin                 /      Filter curated titles
  r          Refresh               L      Log out
  q          Quit                  ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
