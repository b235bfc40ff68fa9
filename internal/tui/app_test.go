package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
)

// stubCatalog serves the same canned titles for every query
type stubCatalog struct {
	titles []domain.Title
}

func (c stubCatalog) Trending(context.Context, domain.Kind, domain.TimeWindow) ([]domain.Title, error) {
	return c.titles, nil
}

func (c stubCatalog) Popular(context.Context, domain.Kind, int) ([]domain.Title, error) {
	return c.titles, nil
}

func (c stubCatalog) TopRated(context.Context, domain.Kind, int) ([]domain.Title, error) {
	return c.titles, nil
}

func (c stubCatalog) Genres(context.Context, domain.Kind) ([]domain.Genre, error) {
	return []domain.Genre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}}, nil
}

func (c stubCatalog) Discover(_ context.Context, _ domain.Kind, f domain.DiscoverFilter) (*domain.Page, error) {
	return &domain.Page{Page: f.Page, TotalPages: 3, Results: c.titles}, nil
}

func (c stubCatalog) Search(_ context.Context, _ domain.Kind, _ string, page int) (*domain.Page, error) {
	return &domain.Page{Page: page, TotalPages: 1, Results: c.titles}, nil
}

func (c stubCatalog) SearchMulti(_ context.Context, _ string, page int) (*domain.Page, error) {
	return &domain.Page{Page: page, TotalPages: 1, Results: c.titles}, nil
}

func (c stubCatalog) Details(_ context.Context, kind domain.Kind, id int) (*domain.TitleDetails, error) {
	for _, t := range c.titles {
		if t.ID == id && t.Kind == kind {
			return &domain.TitleDetails{Title: t, Runtime: 120}, nil
		}
	}
	return nil, domain.ErrTitleNotFound
}

type fixture struct {
	model Model
	store *store.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(kv.NewMemory(), store.WithLogger(logger))

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	catalog := stubCatalog{titles: []domain.Title{
		{ID: 550, Kind: domain.KindFilm, Name: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
		{ID: 603, Kind: domain.KindFilm, Name: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2},
	}}

	session := service.NewSessionService(st, service.AdminCredentials{Username: "admin", PasswordHash: string(hash)}, logger)
	m := NewModel(
		service.NewCatalogService(catalog, st, logger),
		service.NewCurationService(st, catalog, session, logger),
		session,
		Options{AdminUsername: "admin"},
	)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return fixture{model: updated.(Model), store: st}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestHomeRowsIncludeFeatured(t *testing.T) {
	f := newFixture(t)

	m, _ := send(t, f.model, LoadHomeCmd(f.model.CatalogSvc)())
	m, _ = send(t, m, FeaturedLoadedMsg{Films: []domain.Title{{ID: 550, Kind: domain.KindFilm, Name: "Fight Club"}}})

	rows := m.allRows()
	require.Len(t, rows, 8)
	assert.Equal(t, "Trending Films", rows[0].Title)
	assert.Equal(t, featuredFilmsTitle, rows[6].Title)
	assert.Equal(t, 2, m.HomeList.ItemCount())
	assert.True(t, m.featured["film:550"])

	// Moving down the row selector swaps the title pane
	m, _ = send(t, m, runes("G"))
	assert.Equal(t, featuredSeriesTitle, m.HomeList.Title())
	assert.Equal(t, 0, m.HomeList.ItemCount())
}

func TestLoginFlow(t *testing.T) {
	f := newFixture(t)

	m, _ := send(t, f.model, runes("A"))
	require.True(t, m.LoginModal.IsVisible())
	assert.Equal(t, ScreenAdmin, m.Screen)

	m, _ = send(t, m, LoginCmd(m.SessionSvc, "admin", "wrong")())
	assert.False(t, m.Authenticated)
	assert.True(t, m.LoginModal.IsVisible())

	m, cmd := send(t, m, LoginCmd(m.SessionSvc, "admin", "hunter2")())
	assert.True(t, m.Authenticated)
	assert.False(t, m.LoginModal.IsVisible())
	assert.NotNil(t, cmd)

	ok, err := f.store.SessionValid()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelLoginLeavesAdmin(t *testing.T) {
	f := newFixture(t)

	m, _ := send(t, f.model, runes("A"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.LoginModal.IsVisible())
	assert.Equal(t, ScreenHome, m.Screen)
}

func TestFeatureRequiresLogin(t *testing.T) {
	f := newFixture(t)

	m, _ := send(t, f.model, runes("2"))
	m, _ = send(t, m, BrowseCmd(m.CatalogSvc, domain.KindFilm, m.browseFilter(), "")())
	require.Equal(t, 2, m.BrowseList.ItemCount())

	m, _ = send(t, m, runes("+"))
	assert.True(t, m.StatusIsErr)

	entries, err := f.store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdminAddAndRemove(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetSession(true))

	m, _ := send(t, f.model, CheckSessionCmd(f.model.SessionSvc)())
	require.True(t, m.Authenticated)

	title := domain.Title{ID: 603, Kind: domain.KindFilm, Name: "The Matrix"}
	msg := AddFeaturedCmd(m.CurationSvc, title)()
	assert.Equal(t, FeaturedAddedMsg{Name: "The Matrix", Added: true}, msg)

	// A second add is reported, not an error
	msg = AddFeaturedCmd(m.CurationSvc, title)()
	assert.Equal(t, FeaturedAddedMsg{Name: "The Matrix", Added: false}, msg)

	m, _ = send(t, m, runes("A"))
	m, _ = send(t, m, LoadAdminCmd(m.SessionSvc, m.CurationSvc)())
	require.Equal(t, 1, m.AdminList.ItemCount())
	assert.Equal(t, 1, m.stats.TotalFilms)

	entry, ok := m.selectedEntry()
	require.True(t, ok)
	assert.Equal(t, FeaturedRemovedMsg{Name: "The Matrix"}, RemoveFeaturedCmd(m.CurationSvc, entry)())

	entries, err := f.store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExpiredSessionDuringAdminLoad(t *testing.T) {
	f := newFixture(t)
	m := f.model
	m.Authenticated = true
	m.Screen = ScreenAdmin

	m, _ = send(t, m, LoadAdminCmd(m.SessionSvc, m.CurationSvc)())
	assert.False(t, m.Authenticated)
	assert.True(t, m.LoginModal.IsVisible())
}

func TestDetailCountsViewAndReturns(t *testing.T) {
	f := newFixture(t)

	m, _ := send(t, f.model, runes("2"))
	msg := LoadDetailCmd(m.CatalogSvc, domain.KindFilm, 550)()
	m, _ = send(t, m, msg)
	assert.Equal(t, ScreenDetail, m.Screen)
	d, ok := m.Detail.Details()
	require.True(t, ok)
	assert.Equal(t, "Fight Club", d.Name)

	stats, err := f.store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalViews)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenBrowse, m.Screen)
}

func TestDetailNotFound(t *testing.T) {
	f := newFixture(t)

	msg := LoadDetailCmd(f.model.CatalogSvc, domain.KindFilm, 1)()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, domain.ErrTitleNotFound)

	m, _ := send(t, f.model, errMsg)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, ScreenHome, m.Screen)
}

func TestStaleBrowseResultsDropped(t *testing.T) {
	f := newFixture(t)
	m := f.model
	m.browseQuery = "matrix"

	m, _ = send(t, m, BrowseLoadedMsg{Kind: domain.KindFilm, Query: "", Page: &domain.Page{Results: []domain.Title{{ID: 1}}}})
	assert.Equal(t, 0, m.BrowseList.ItemCount())
}

func TestBrowseToggleKindResetsFilters(t *testing.T) {
	f := newFixture(t)
	m := f.model
	m.Screen = ScreenBrowse
	m.genreIdx = 1
	m.browsePage = 3

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.NotNil(t, cmd)
	assert.Equal(t, domain.KindSeries, m.browseKind)
	assert.Equal(t, -1, m.genreIdx)
	assert.Equal(t, 1, m.browsePage)
}

func TestBrowseFilterFromState(t *testing.T) {
	f := newFixture(t)
	m := f.model
	m.genres[domain.KindFilm] = []domain.Genre{{ID: 18, Name: "Drama"}}
	m.genreIdx = 0
	m.countryIdx = 3
	m.browsePage = 2

	assert.Equal(t, domain.DiscoverFilter{
		Page:          2,
		Genre:         "18",
		OriginCountry: "KR",
		SortBy:        domain.DefaultSort,
	}, m.browseFilter())
	assert.Contains(t, m.browseTitle(), "Drama")
	assert.Contains(t, m.browseTitle(), "South Korea")
}

func TestNotAuthenticatedErrorDropsSession(t *testing.T) {
	f := newFixture(t)
	m := f.model
	m.Authenticated = true

	m, _ = send(t, m, ErrMsg{Err: domain.ErrNotAuthenticated, Context: "adding"})
	assert.False(t, m.Authenticated)
	assert.True(t, m.StatusIsErr)
}

func TestCycle(t *testing.T) {
	assert.Equal(t, 0, cycle(-1, 3))
	assert.Equal(t, 2, cycle(1, 3))
	assert.Equal(t, -1, cycle(2, 3))
	assert.Equal(t, -1, cycle(-1, 0))
}

func TestViewRenders(t *testing.T) {
	f := newFixture(t)
	m, _ := send(t, f.model, LoadHomeCmd(f.model.CatalogSvc)())

	out := m.View()
	assert.Contains(t, out, "REEL")
	assert.Contains(t, out, "Trending Films")
	assert.Contains(t, out, "guest")

	m.ShowHelp = true
	assert.Contains(t, m.View(), "NAVIGATION")
}

func TestOpenTrailer(t *testing.T) {
	var opened string
	open := func(url string) error {
		opened = url
		return nil
	}

	details := domain.TitleDetails{
		Title:  domain.Title{Name: "Heat"},
		Videos: []domain.Video{{Key: "teaser", Type: "Teaser", Site: "YouTube"}, {Key: "xyz", Type: "Trailer", Site: "YouTube"}},
	}
	assert.Equal(t, TrailerOpenedMsg{Name: "Heat"}, OpenTrailerCmd(open, details)())
	assert.Equal(t, "https://www.youtube.com/watch?v=xyz", opened)

	msg := OpenTrailerCmd(open, domain.TitleDetails{Title: domain.Title{Name: "Heat"}})()
	assert.Equal(t, StatusMsg{Message: "No trailer for Heat"}, msg)
}
