package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
)

// Screen is the top level view
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBrowse
	ScreenDetail
	ScreenAdmin
)

// Layout constants
const (
	// Rows pane as percentage of width on the home screen
	RowsPanePercent  = 28
	MinRowsPaneWidth = 22

	// Header and footer lines
	ChromeHeight = 2

	// Height of the stats cards block on the admin screen
	StatsHeight = 5

	tickInterval = 100 * time.Millisecond
)

// Featured rows shown after the catalog rows on the home screen
const (
	featuredFilmsTitle  = "Featured Films"
	featuredSeriesTitle = "Featured Series"
)

// Options holds what the model needs beyond its services
type Options struct {
	AdminUsername string
	ImageURL      func(path string) string
	OpenURL       func(url string) error // trailer launcher, may be nil
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Screen     Screen
	detailFrom Screen // screen to return to from Detail
	ShowHelp   bool
	Ready      bool

	// Services
	CatalogSvc  *service.CatalogService
	CurationSvc *service.CurationService
	SessionSvc  *service.SessionService

	adminUsername string
	openURL       func(url string) error

	// Home
	rows          []service.Row
	featuredRows  []service.Row
	RowList       *components.RowList
	HomeList      *components.TitleList
	homeRowsFocus bool

	// Browse
	BrowseList  *components.TitleList
	browseKind  domain.Kind
	browseQuery string
	browsePage  int
	totalPages  int
	genres      map[domain.Kind][]domain.Genre
	genreIdx    int // -1 for any genre
	countryIdx  int // -1 for any country

	// Detail
	Detail components.DetailPanel

	// Admin
	AdminList     *components.TitleList
	entries       []domain.CuratedEntry
	stats         domain.SiteStats
	Authenticated bool

	// Modals
	SearchModal components.InputModal
	LoginModal  components.LoginModal

	featured map[string]bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *service.CatalogService,
	curationSvc *service.CurationService,
	sessionSvc *service.SessionService,
	opts Options,
) Model {
	rowList := components.NewRowList()
	rowList.SetFocused(true)

	return Model{
		Screen:        ScreenHome,
		CatalogSvc:    catalogSvc,
		CurationSvc:   curationSvc,
		SessionSvc:    sessionSvc,
		adminUsername: opts.AdminUsername,
		openURL:       opts.OpenURL,
		RowList:       rowList,
		HomeList:      components.NewTitleList(""),
		homeRowsFocus: true,
		BrowseList:    components.NewTitleList("Discover"),
		browseKind:    domain.KindFilm,
		browsePage:    1,
		genres:        make(map[domain.Kind][]domain.Genre),
		genreIdx:      -1,
		countryIdx:    -1,
		Detail:        components.NewDetailPanel(opts.ImageURL),
		AdminList:     components.NewTitleList("Curated"),
		SearchModal:   components.NewInputModal(),
		LoginModal:    components.NewLoginModal(),
		featured:      make(map[string]bool),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	m.HomeList.SetLoading(true)
	return tea.Batch(
		LoadHomeCmd(m.CatalogSvc),
		LoadFeaturedCmd(m.CurationSvc),
		CheckSessionCmd(m.SessionSvc),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.HomeList.SetSpinnerFrame(m.SpinnerFrame)
		m.BrowseList.SetSpinnerFrame(m.SpinnerFrame)
		m.AdminList.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case HomeLoadedMsg:
		m.rows = msg.Rows
		m.refreshRows()
		return m, nil

	case FeaturedLoadedMsg:
		m.featuredRows = []service.Row{
			{Title: featuredFilmsTitle, Kind: domain.KindFilm, Items: msg.Films},
			{Title: featuredSeriesTitle, Kind: domain.KindSeries, Items: msg.Series},
		}
		m.featured = make(map[string]bool, len(msg.Films)+len(msg.Series))
		for _, t := range msg.Films {
			m.featured[components.FeaturedKey(t.Kind, t.ID)] = true
		}
		for _, t := range msg.Series {
			m.featured[components.FeaturedKey(t.Kind, t.ID)] = true
		}
		m.HomeList.SetFeatured(m.featured)
		m.BrowseList.SetFeatured(m.featured)
		m.refreshRows()
		if d, ok := m.Detail.Details(); ok {
			m.Detail.SetFeatured(m.featured[components.FeaturedKey(d.Kind, d.ID)])
		}
		return m, nil

	case BrowseLoadedMsg:
		// Drop results for a query or kind the user already moved away from
		if msg.Kind != m.browseKind || msg.Query != m.browseQuery {
			return m, nil
		}
		m.Loading = false
		m.BrowseList.SetItems(msg.Page.Results)
		m.totalPages = msg.Page.TotalPages
		m.BrowseList.SetTitle(m.browseTitle())
		return m, nil

	case GenresLoadedMsg:
		m.genres[msg.Kind] = msg.Genres
		return m, nil

	case DetailLoadedMsg:
		m.Loading = false
		d := msg.Details
		m.Detail.SetDetails(d, m.featured[components.FeaturedKey(d.Kind, d.ID)])
		if m.Screen != ScreenDetail {
			m.detailFrom = m.Screen
		}
		m.Screen = ScreenDetail
		return m, nil

	case SessionCheckedMsg:
		m.Authenticated = msg.Authenticated
		return m, nil

	case LoginResultMsg:
		m.LoginModal.SetBusy(false)
		if msg.Err != nil {
			text := "login failed"
			switch {
			case errors.Is(msg.Err, domain.ErrInvalidCredentials):
				text = "invalid username or password"
			case errors.Is(msg.Err, domain.ErrAdminNotConfigured):
				text = "no admin password configured (reel hash-password)"
			}
			m.LoginModal.SetError(text)
			return m, nil
		}
		m.LoginModal.Hide()
		m.Authenticated = true
		m.Screen = ScreenAdmin
		m.AdminList.SetLoading(true)
		cmd := tea.Batch(
			LoadAdminCmd(m.SessionSvc, m.CurationSvc),
			m.setStatus("Logged in", false),
		)
		return m, cmd

	case LogoutCompleteMsg:
		m.Authenticated = false
		m.entries = nil
		m.AdminList.SetItems(nil)
		if m.Screen == ScreenAdmin {
			m.Screen = ScreenHome
		}
		cmd := m.setStatus("Logged out", false)
		return m, cmd

	case AdminLoadedMsg:
		if !msg.Authenticated {
			m.Authenticated = false
			m.AdminList.SetLoading(false)
			if m.Screen == ScreenAdmin {
				cmd := m.LoginModal.Show(m.adminUsername)
				return m, cmd
			}
			return m, nil
		}
		m.entries = msg.Entries
		m.stats = msg.Stats
		m.AdminList.SetItems(entryTitles(msg.Entries))
		m.AdminList.SetTitle(fmt.Sprintf("Curated (%d)", len(msg.Entries)))
		return m, nil

	case FeaturedAddedMsg:
		m.Loading = false
		text := msg.Name + " is already featured"
		if msg.Added {
			text = "Featured " + msg.Name
		}
		cmd := tea.Batch(
			m.setStatus(text, false),
			LoadFeaturedCmd(m.CurationSvc),
		)
		return m, cmd

	case TrailerOpenedMsg:
		cmd := m.setStatus("Opening trailer for "+msg.Name, false)
		return m, cmd

	case FeaturedRemovedMsg:
		cmd := tea.Batch(
			m.setStatus("Removed "+msg.Name, false),
			LoadAdminCmd(m.SessionSvc, m.CurationSvc),
			LoadFeaturedCmd(m.CurationSvc),
		)
		return m, cmd

	case ErrMsg:
		m.Loading = false
		m.LoginModal.SetBusy(false)
		if errors.Is(msg.Err, domain.ErrNotAuthenticated) {
			m.Authenticated = false
			cmd := m.setStatus("Not logged in, press A to sign in", true)
			return m, cmd
		}
		m.setListError(msg)
		cmd := m.setStatus(msg.Error(), true)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	return m.updateModals(msg)
}

func (m Model) updateModals(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.LoginModal.IsVisible():
		m.LoginModal, cmd, _ = m.LoginModal.Update(msg)
	case m.SearchModal.IsVisible():
		m.SearchModal, cmd, _ = m.SearchModal.Update(msg)
	}
	return m, cmd
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	delay := 3 * time.Second
	if isErr {
		delay = 5 * time.Second
	}
	return ClearStatusCmd(delay)
}

// setListError shows a failed load inside the list that was waiting on it
func (m *Model) setListError(msg ErrMsg) {
	switch m.Screen {
	case ScreenBrowse:
		if m.BrowseList.IsLoading() {
			m.BrowseList.SetError(msg.Err)
		}
	case ScreenAdmin:
		if m.AdminList.IsLoading() {
			m.AdminList.SetError(msg.Err)
		}
	}
}

// allRows returns the catalog rows followed by the featured rows
func (m Model) allRows() []service.Row {
	rows := make([]service.Row, 0, len(m.rows)+len(m.featuredRows))
	rows = append(rows, m.rows...)
	return append(rows, m.featuredRows...)
}

// refreshRows syncs the row selector and the title pane with loaded data
func (m *Model) refreshRows() {
	rows := m.allRows()
	entries := make([]components.RowEntry, len(rows))
	for i, r := range rows {
		entries[i] = components.RowEntry{Label: r.Title, Count: len(r.Items), Err: r.Err}
	}
	m.RowList.SetEntries(entries)
	m.showSelectedRow()
}

func (m *Model) showSelectedRow() {
	rows := m.allRows()
	idx := m.RowList.SelectedIndex()
	if idx >= len(rows) {
		if len(m.rows) == 0 {
			m.HomeList.SetLoading(true)
		}
		return
	}
	row := rows[idx]
	// Keep the cursor when the same row is refreshed
	cursor := 0
	if m.HomeList.Title() == row.Title {
		cursor = m.HomeList.SelectedIndex()
	}
	m.HomeList.SetTitle(row.Title)
	if row.Err != nil {
		m.HomeList.SetError(row.Err)
		return
	}
	m.HomeList.SetItems(row.Items)
	m.HomeList.SetSelectedIndex(cursor)
}

func (m *Model) focusHomeRows(rows bool) {
	m.homeRowsFocus = rows
	m.RowList.SetFocused(rows)
	m.HomeList.SetFocused(!rows)
}

// switchScreen moves to a top level screen, loading it when needed
func (m *Model) switchScreen(s Screen) tea.Cmd {
	m.Screen = s
	m.updateFocus()

	switch s {
	case ScreenBrowse:
		var cmds []tea.Cmd
		if m.BrowseList.ItemCount() == 0 && !m.BrowseList.IsLoading() {
			cmds = append(cmds, m.browse())
		}
		if _, ok := m.genres[m.browseKind]; !ok {
			cmds = append(cmds, LoadGenresCmd(m.CatalogSvc, m.browseKind))
		}
		return tea.Batch(cmds...)
	case ScreenAdmin:
		if !m.Authenticated {
			return m.LoginModal.Show(m.adminUsername)
		}
		m.AdminList.SetLoading(true)
		return LoadAdminCmd(m.SessionSvc, m.CurationSvc)
	}
	return nil
}

func (m *Model) updateFocus() {
	m.HomeList.SetFocused(m.Screen == ScreenHome && !m.homeRowsFocus)
	m.RowList.SetFocused(m.Screen == ScreenHome && m.homeRowsFocus)
	m.BrowseList.SetFocused(m.Screen == ScreenBrowse)
	m.AdminList.SetFocused(m.Screen == ScreenAdmin)
}

// browseFilter builds the discover filter from the browse state
func (m Model) browseFilter() domain.DiscoverFilter {
	f := domain.DiscoverFilter{Page: m.browsePage, SortBy: domain.DefaultSort}
	if g := m.genres[m.browseKind]; m.genreIdx >= 0 && m.genreIdx < len(g) {
		f.Genre = fmt.Sprintf("%d", g[m.genreIdx].ID)
	}
	if m.countryIdx >= 0 && m.countryIdx < len(domain.OriginCountries) {
		f.OriginCountry = domain.OriginCountries[m.countryIdx].Code
	}
	return f
}

func (m *Model) browse() tea.Cmd {
	m.BrowseList.SetTitle(m.browseTitle())
	m.BrowseList.SetLoading(true)
	return BrowseCmd(m.CatalogSvc, m.browseKind, m.browseFilter(), m.browseQuery)
}

func (m Model) browseTitle() string {
	kind := "Films"
	if m.browseKind == domain.KindSeries {
		kind = "Series"
	}
	if m.browseQuery != "" {
		return fmt.Sprintf("%s matching %q · page %d", kind, m.browseQuery, m.browsePage)
	}

	title := "Discover " + kind
	if g := m.genres[m.browseKind]; m.genreIdx >= 0 && m.genreIdx < len(g) {
		title += " · " + g[m.genreIdx].Name
	}
	if m.countryIdx >= 0 && m.countryIdx < len(domain.OriginCountries) {
		title += " · " + domain.OriginCountries[m.countryIdx].Name
	}
	if m.totalPages > 0 {
		return fmt.Sprintf("%s · page %d/%d", title, m.browsePage, m.totalPages)
	}
	return fmt.Sprintf("%s · page %d", title, m.browsePage)
}

// selectedEntry returns the curated entry under the admin cursor
func (m Model) selectedEntry() (domain.CuratedEntry, bool) {
	t, ok := m.AdminList.Selected()
	if !ok {
		return domain.CuratedEntry{}, false
	}
	for _, e := range m.entries {
		if e.Matches(t.ID, t.Kind) {
			return e, true
		}
	}
	return domain.CuratedEntry{}, false
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	rowsWidth := m.Width * RowsPanePercent / 100
	if rowsWidth < MinRowsPaneWidth {
		rowsWidth = MinRowsPaneWidth
	}
	m.RowList.SetSize(rowsWidth, contentHeight)
	m.HomeList.SetSize(max(m.Width-rowsWidth, 0), contentHeight)
	m.BrowseList.SetSize(m.Width, contentHeight)
	m.Detail.SetSize(m.Width, contentHeight)
	m.AdminList.SetSize(m.Width, max(contentHeight-StatsHeight, 3))
}

func entryTitles(entries []domain.CuratedEntry) []domain.Title {
	titles := make([]domain.Title, len(entries))
	for i, e := range entries {
		titles[i] = e.Payload.Title
	}
	return titles
}
