package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
	"github.com/mmcdole/reel/internal/store"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Trending(ctx context.Context, kind domain.Kind, window domain.TimeWindow) ([]domain.Title, error) {
	args := m.Called(ctx, kind, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Title), args.Error(1)
}

func (m *mockCatalog) Popular(ctx context.Context, kind domain.Kind, page int) ([]domain.Title, error) {
	args := m.Called(ctx, kind, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Title), args.Error(1)
}

func (m *mockCatalog) TopRated(ctx context.Context, kind domain.Kind, page int) ([]domain.Title, error) {
	args := m.Called(ctx, kind, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Title), args.Error(1)
}

func (m *mockCatalog) Genres(ctx context.Context, kind domain.Kind) ([]domain.Genre, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Genre), args.Error(1)
}

func (m *mockCatalog) Discover(ctx context.Context, kind domain.Kind, filter domain.DiscoverFilter) (*domain.Page, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockCatalog) Search(ctx context.Context, kind domain.Kind, query string, page int) (*domain.Page, error) {
	args := m.Called(ctx, kind, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockCatalog) SearchMulti(ctx context.Context, query string, page int) (*domain.Page, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockCatalog) Details(ctx context.Context, kind domain.Kind, id int) (*domain.TitleDetails, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TitleDetails), args.Error(1)
}

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(kv.NewMemory())
}

func titles(names ...string) []domain.Title {
	out := make([]domain.Title, len(names))
	for i, n := range names {
		out[i] = domain.Title{ID: i + 1, Name: n}
	}
	return out
}
