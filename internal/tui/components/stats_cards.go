package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// RenderStatsCards renders the dashboard counters as a row of cards
func RenderStatsCards(stats domain.SiteStats) string {
	card := func(label string, value int) string {
		return styles.CardStyle.Render(
			styles.CardValueStyle.Render(fmt.Sprintf("%d", value)) + "\n" +
				styles.CardLabelStyle.Render(label),
		)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Films", stats.TotalFilms),
		" ",
		card("Series", stats.TotalSeries),
		" ",
		card("Total Views", stats.TotalViews),
	)

	updated := "never"
	if !stats.LastUpdated.IsZero() {
		updated = stats.LastUpdated.Local().Format("2006-01-02 15:04")
	}
	return row + "\n" + styles.DimStyle.Render("Last updated "+updated)
}
