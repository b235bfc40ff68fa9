package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
)

// stubCatalog serves a fixed title list
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
	return []domain.Genre{{ID: 18, Name: "Drama"}}, nil
}

func (c stubCatalog) Discover(_ context.Context, _ domain.Kind, f domain.DiscoverFilter) (*domain.Page, error) {
	return &domain.Page{Page: f.Page, TotalPages: 2, Results: c.titles}, nil
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
			return &domain.TitleDetails{Title: t}, nil
		}
	}
	return nil, domain.ErrTitleNotFound
}

type harness struct {
	runner   *Runner
	output   *bytes.Buffer
	password string
}

func newHarness(t *testing.T, catalog domain.CatalogRepository) *harness {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := adapter.DefaultConfig()
	cfg.Admin.PasswordHash = string(hash)

	h := &harness{output: &bytes.Buffer{}, password: "hunter2"}
	h.runner = NewRunner(RunnerOpts{
		Config:  cfg,
		Catalog: catalog,
		Backend: kv.NewMemory(),
		Output:  h.output,
		ReadPassword: func(string) (string, error) {
			return h.password, nil
		},
	})
	return h
}

func defaultCatalog() stubCatalog {
	return stubCatalog{titles: []domain.Title{
		{ID: 550, Kind: domain.KindFilm, Name: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
		{ID: 1399, Kind: domain.KindSeries, Name: "Game of Thrones", ReleaseDate: "2011-04-17", VoteAverage: 8.5},
	}}
}

// run executes args against the registered commands, skipping config loading
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	h.output.Reset()
	app := &cli.Command{Name: "reel", Commands: h.runner.register()}
	err := app.Run(context.Background(), append([]string{"reel"}, args...))
	return h.output.String(), err
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.run(t, "login")
	require.NoError(t, err)
}

func TestNewRunner(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})
		assert.NotNil(t, r.config)
		assert.NotNil(t, r.logger)
		assert.NotNil(t, r.output)
		assert.NotNil(t, r.readPassword)
		assert.Nil(t, r.catalog)
		assert.False(t, r.store.Persistent())
	})

	t.Run("with catalog", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Catalog: defaultCatalog(), Backend: kv.NewMemory()})
		assert.NotNil(t, r.catalog)
		assert.True(t, r.store.Persistent())
	})
}

func TestLogin(t *testing.T) {
	h := newHarness(t, defaultCatalog())

	out, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)

	h.password = "wrong"
	_, err = h.run(t, "login")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	h.password = "hunter2"
	out, err = h.run(t, "login", "--username", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin")

	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin (session expires")

	_, err = h.run(t, "logout")
	require.NoError(t, err)
	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)
}

func TestLoginWithoutAdmin(t *testing.T) {
	h := newHarness(t, defaultCatalog())
	h.runner.config.Admin.PasswordHash = ""

	_, err := h.run(t, "login")
	assert.ErrorIs(t, err, domain.ErrAdminNotConfigured)
}

func TestFeatured(t *testing.T) {
	h := newHarness(t, defaultCatalog())

	_, err := h.run(t, "featured", "add", "film", "550")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	h.login(t)

	out, err := h.run(t, "featured", "add", "film", "550")
	require.NoError(t, err)
	assert.Equal(t, "✓ Featured Fight Club\n", out)

	out, err = h.run(t, "featured", "add", "movie", "550")
	require.NoError(t, err)
	assert.Equal(t, "Fight Club is already featured\n", out)

	_, err = h.run(t, "featured", "add", "tv", "1399")
	require.NoError(t, err)

	out, err = h.run(t, "featured", "list", "--json")
	require.NoError(t, err)
	var entries []domain.CuratedEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 550, entries[0].ID)
	assert.Equal(t, domain.KindSeries, entries[1].Kind)

	out, err = h.run(t, "featured", "ls", "--kind", "series")
	require.NoError(t, err)
	assert.Contains(t, out, "Game of Thrones (2011)")
	assert.NotContains(t, out, "Fight Club")

	out, err = h.run(t, "featured", "ls", "--filter", "fght")
	require.NoError(t, err)
	assert.Contains(t, out, "Fight Club")
	assert.NotContains(t, out, "Game of Thrones")

	out, err = h.run(t, "stats", "--json")
	require.NoError(t, err)
	var stats domain.SiteStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.TotalFilms)
	assert.Equal(t, 1, stats.TotalSeries)

	_, err = h.run(t, "featured", "rm", "film", "550")
	require.NoError(t, err)
	_, err = h.run(t, "featured", "rm", "film", "550")
	require.NoError(t, err, "removing an absent title succeeds")

	out, err = h.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Films:        0")
	assert.Contains(t, out, "Series:       1")
}

func TestFeaturedAddUnknownTitle(t *testing.T) {
	h := newHarness(t, defaultCatalog())
	h.login(t)

	_, err := h.run(t, "featured", "add", "film", "1")
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)
}

func TestKindAndIDValidation(t *testing.T) {
	h := newHarness(t, defaultCatalog())
	h.login(t)

	_, err := h.run(t, "featured", "add", "album", "550")
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	_, err = h.run(t, "featured", "add", "film", "abc")
	assert.ErrorContains(t, err, "positive integer")

	_, err = h.run(t, "featured", "add", "film", "-3")
	assert.Error(t, err)
}

func TestViewCountsViews(t *testing.T) {
	h := newHarness(t, defaultCatalog())

	out, err := h.run(t, "view", "film", "550")
	require.NoError(t, err)
	assert.Contains(t, out, "Fight Club (1999)")

	_, err = h.run(t, "view", "--json", "film", "550")
	require.NoError(t, err)

	_, err = h.run(t, "view", "film", "9999")
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)

	stats, err := h.runner.store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalViews)
}

func TestViewOpenWithoutTrailer(t *testing.T) {
	h := newHarness(t, defaultCatalog())

	_, err := h.run(t, "view", "--open", "film", "550")
	assert.ErrorContains(t, err, "has no trailer")
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t, defaultCatalog())

	out, err := h.run(t, "search", "fight")
	require.NoError(t, err)
	assert.Contains(t, out, "Search: fight")
	assert.Contains(t, out, "Fight Club")

	_, err = h.run(t, "search", "  ")
	assert.Error(t, err)

	out, err = h.run(t, "discover", "--kind", "series", "--page", "2", "--json")
	require.NoError(t, err)
	var page domain.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Page)

	out, err = h.run(t, "trending", "--window", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Trending Film (day)")

	_, err = h.run(t, "trending", "--window", "month")
	assert.ErrorContains(t, err, "invalid window")

	out, err = h.run(t, "genres")
	require.NoError(t, err)
	assert.Contains(t, out, "Drama")
}

func TestCatalogCommandsRequireCredentials(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.run(t, "search", "fight")
	assert.ErrorIs(t, err, adapter.ErrMissingCredentials)

	_, err = h.run(t, "view", "film", "550")
	assert.ErrorIs(t, err, adapter.ErrMissingCredentials)

	// Curation reads work without a catalog
	_, err = h.run(t, "stats")
	assert.NoError(t, err)
}

func TestHashPassword(t *testing.T) {
	h := newHarness(t, nil)

	out, err := h.run(t, "hash-password")
	require.NoError(t, err)
	hash := bytes.TrimSpace([]byte(out))
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("hunter2")))

	calls := 0
	h.runner.readPassword = func(string) (string, error) {
		calls++
		if calls == 1 {
			return "one", nil
		}
		return "two", nil
	}
	_, err = h.run(t, "hash-password")
	assert.ErrorContains(t, err, "do not match")
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := h.run(t, "config", "init", "--path", path)
	require.NoError(t, err)

	_, err = h.run(t, "config", "init", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = h.run(t, "config", "init", "--path", path, "--force")
	require.NoError(t, err)

	cfg, err := adapter.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Admin.Username)

	out, err := h.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, masked)
	assert.NotContains(t, out, h.runner.config.Admin.PasswordHash)
}
