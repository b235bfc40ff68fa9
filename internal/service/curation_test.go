package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

func newCurationService(t *testing.T, repo domain.CatalogRepository, login bool) *CurationService {
	t.Helper()
	st := newMemoryStore(t)
	session := newSessionService(t, st)
	if login {
		require.NoError(t, session.Login("admin", "hunter2"))
	}
	return NewCurationService(st, repo, session, nullLogger())
}

func fetched(id int, name string) domain.TitleDetails {
	return domain.TitleDetails{Title: domain.Title{ID: id, Name: name}}
}

func TestMutationsRequireSession(t *testing.T) {
	repo := &mockCatalog{}
	svc := newCurationService(t, repo, false)

	_, err := svc.Add(context.Background(), domain.KindFilm, 550)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = svc.AddDetails(fetched(550, "Fight Club"), domain.KindFilm)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	assert.ErrorIs(t, svc.Remove(domain.KindFilm, 550), domain.ErrNotAuthenticated)

	// reads stay public
	_, err = svc.Featured(domain.KindFilm)
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Details", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFetchesDetails(t *testing.T) {
	repo := &mockCatalog{}
	d := fetched(1399, "Game of Thrones")
	repo.On("Details", mock.Anything, domain.KindSeries, 1399).Return(&d, nil).Twice()
	repo.On("Details", mock.Anything, domain.KindFilm, 9).Return(nil, domain.ErrTitleNotFound)

	svc := newCurationService(t, repo, true)

	added, err := svc.Add(context.Background(), domain.KindSeries, 1399)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Add(context.Background(), domain.KindSeries, 1399)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = svc.Add(context.Background(), domain.KindFilm, 9)
	assert.ErrorIs(t, err, domain.ErrTitleNotFound)

	featured, err := svc.Featured(domain.KindSeries)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, domain.KindSeries, featured[0].Kind)

	ok, err := svc.IsFeatured(domain.KindSeries, 1399)
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSeries)
	repo.AssertExpectations(t)
}

func TestListAndRemove(t *testing.T) {
	svc := newCurationService(t, &mockCatalog{}, true)

	for _, in := range []struct {
		d    domain.TitleDetails
		kind domain.Kind
	}{
		{fetched(550, "Fight Club"), domain.KindFilm},
		{fetched(1399, "Game of Thrones"), domain.KindSeries},
		{fetched(603, "The Matrix"), domain.KindFilm},
	} {
		_, err := svc.AddDetails(in.d, in.kind)
		require.NoError(t, err)
	}

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	film := domain.KindFilm
	films, err := svc.List(&film)
	require.NoError(t, err)
	assert.Len(t, films, 2)

	require.NoError(t, svc.Remove(domain.KindFilm, 550))
	require.NoError(t, svc.Remove(domain.KindFilm, 550))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalFilms)
	assert.Equal(t, 1, stats.TotalSeries)
}

func TestFilter(t *testing.T) {
	svc := newCurationService(t, &mockCatalog{}, true)
	for i, name := range []string{"The Matrix", "Fight Club", "Matrix Reloaded"} {
		_, err := svc.AddDetails(fetched(i+1, name), domain.KindFilm)
		require.NoError(t, err)
	}

	all, err := svc.Filter("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "The Matrix", all[0].Entry.Payload.Name)
	assert.Empty(t, all[0].MatchedIndexes)

	results, err := svc.Filter("MATRIX")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Entry.Payload.Name, "Matrix")
		assert.Len(t, r.MatchedIndexes, len("matrix"))
	}

	none, err := svc.Filter("zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}
