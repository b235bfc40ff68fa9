package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes the help screen
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Typing into a list filter swallows every key
	if m.Screen == ScreenAdmin && m.AdminList.IsFilterTyping() {
		_, cmd := m.AdminList.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Home):
		cmd := m.switchScreen(ScreenHome)
		return m, cmd

	case key.Matches(msg, Keys.Browse):
		cmd := m.switchScreen(ScreenBrowse)
		return m, cmd

	case key.Matches(msg, Keys.Admin):
		cmd := m.switchScreen(ScreenAdmin)
		return m, cmd
	}

	switch m.Screen {
	case ScreenHome:
		return m.handleHomeKeys(msg)
	case ScreenBrowse:
		return m.handleBrowseKeys(msg)
	case ScreenDetail:
		return m.handleDetailKeys(msg)
	case ScreenAdmin:
		return m.handleAdminKeys(msg)
	}
	return m, nil
}

// routeToModal sends keys to a visible modal
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.LoginModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.LoginModal, cmd, submitted = m.LoginModal.Update(msg)
		if submitted {
			m.LoginModal.SetBusy(true)
			user, pass := m.LoginModal.Credentials()
			return true, m, LoginCmd(m.SessionSvc, user, pass)
		}
		// Cancelled login leaves the admin screen
		if !m.LoginModal.IsVisible() && m.Screen == ScreenAdmin {
			m.Screen = ScreenHome
			m.updateFocus()
		}
		return true, m, cmd
	}

	if m.SearchModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.SearchModal, cmd, submitted = m.SearchModal.Update(msg)
		if submitted {
			m.SearchModal.Hide()
			m.browseQuery = strings.TrimSpace(m.SearchModal.Value())
			m.browsePage = 1
			m.totalPages = 0
			if m.Screen != ScreenBrowse {
				m.Screen = ScreenBrowse
				m.updateFocus()
			}
			cmd = m.browse()
			return true, m, cmd
		}
		return true, m, cmd
	}

	return false, m, nil
}

func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		m.HomeList.SetLoading(true)
		return m, tea.Batch(LoadHomeCmd(m.CatalogSvc), LoadFeaturedCmd(m.CurationSvc))

	case key.Matches(msg, Keys.Search):
		cmd := m.SearchModal.Show("Search", "title...", m.browseQuery)
		return m, cmd
	}

	if m.homeRowsFocus {
		switch {
		case key.Matches(msg, Keys.Right, Keys.Enter):
			if m.HomeList.ItemCount() > 0 {
				m.focusHomeRows(false)
			}
			return m, nil
		}
		if m.RowList.Update(msg) {
			m.showSelectedRow()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Left, Keys.Escape):
		m.focusHomeRows(true)
		return m, nil
	case key.Matches(msg, Keys.Enter):
		return m.openSelected(m.HomeList)
	case key.Matches(msg, Keys.AddFeatured):
		return m.featureSelected(m.HomeList)
	}

	_, cmd := m.HomeList.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		cmd := m.SearchModal.Show("Search", "title...", m.browseQuery)
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if m.browseQuery == "" {
			return m, nil
		}
		m.browseQuery = ""
		m.browsePage = 1
		m.totalPages = 0
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.ToggleKind):
		m.browseKind = m.browseKind.Other()
		m.browsePage = 1
		m.totalPages = 0
		m.genreIdx = -1
		cmds := []tea.Cmd{m.browse()}
		if _, ok := m.genres[m.browseKind]; !ok {
			cmds = append(cmds, LoadGenresCmd(m.CatalogSvc, m.browseKind))
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, Keys.Country):
		if m.browseQuery != "" {
			cmd := m.setStatus("Filters apply to discover only, esc clears the search", false)
			return m, cmd
		}
		m.countryIdx = cycle(m.countryIdx, len(domain.OriginCountries))
		m.browsePage = 1
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.Genre):
		if m.browseQuery != "" {
			cmd := m.setStatus("Filters apply to discover only, esc clears the search", false)
			return m, cmd
		}
		genres := m.genres[m.browseKind]
		if len(genres) == 0 {
			cmd := m.setStatus("Genres not loaded yet", false)
			return m, cmd
		}
		m.genreIdx = cycle(m.genreIdx, len(genres))
		m.browsePage = 1
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.NextPage):
		if m.totalPages > 0 && m.browsePage >= m.totalPages {
			return m, nil
		}
		m.browsePage++
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.PrevPage):
		if m.browsePage <= 1 {
			return m, nil
		}
		m.browsePage--
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.Refresh):
		cmd := m.browse()
		return m, cmd

	case key.Matches(msg, Keys.Enter, Keys.Right):
		return m.openSelected(m.BrowseList)

	case key.Matches(msg, Keys.AddFeatured):
		return m.featureSelected(m.BrowseList)
	}

	_, cmd := m.BrowseList.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Screen = m.detailFrom
		m.updateFocus()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Detail.ScrollDown()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.Detail.ScrollUp()
		return m, nil

	case key.Matches(msg, Keys.Trailer):
		d, ok := m.Detail.Details()
		if !ok {
			return m, nil
		}
		return m, OpenTrailerCmd(m.openURL, *d)

	case key.Matches(msg, Keys.AddFeatured):
		d, ok := m.Detail.Details()
		if !ok {
			return m, nil
		}
		if !m.Authenticated {
			cmd := m.setStatus("Log in as admin (A) to feature titles", true)
			return m, cmd
		}
		return m, AddDetailsCmd(m.CurationSvc, *d)
	}
	return m, nil
}

func (m Model) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		m.AdminList.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.AdminList.IsFiltering() {
			m.AdminList.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Remove):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		return m, RemoveFeaturedCmd(m.CurationSvc, entry)

	case key.Matches(msg, Keys.Logout):
		return m, LogoutCmd(m.SessionSvc)

	case key.Matches(msg, Keys.Refresh):
		m.AdminList.SetLoading(true)
		return m, LoadAdminCmd(m.SessionSvc, m.CurationSvc)

	case key.Matches(msg, Keys.Enter):
		// Show the stored snapshot without a catalog round trip
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		payload := entry.Payload
		m.Detail.SetDetails(&payload, true)
		m.detailFrom = ScreenAdmin
		m.Screen = ScreenDetail
		return m, nil
	}

	_, cmd := m.AdminList.Update(msg)
	return m, cmd
}

// openSelected loads the detail screen for the highlighted title
func (m Model) openSelected(list *components.TitleList) (tea.Model, tea.Cmd) {
	t, ok := list.Selected()
	if !ok {
		return m, nil
	}
	m.Loading = true
	return m, LoadDetailCmd(m.CatalogSvc, t.Kind, t.ID)
}

// featureSelected adds the highlighted title to the curated set
func (m Model) featureSelected(list *components.TitleList) (tea.Model, tea.Cmd) {
	t, ok := list.Selected()
	if !ok {
		return m, nil
	}
	if !m.Authenticated {
		cmd := m.setStatus("Log in as admin (A) to feature titles", true)
		return m, cmd
	}
	m.Loading = true
	return m, AddFeaturedCmd(m.CurationSvc, t)
}

// cycle advances idx through -1 (none) and 0..n-1
func cycle(idx, n int) int {
	idx++
	if idx >= n {
		return -1
	}
	return idx
}
