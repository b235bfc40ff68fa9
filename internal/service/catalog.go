package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/reel/internal/domain"
)

// homeConcurrency bounds the landing row requests in flight
const homeConcurrency = 3

// RowID identifies a landing row
type RowID string

const (
	RowTrendingFilms  RowID = "trending-films"
	RowTrendingSeries RowID = "trending-series"
	RowPopularFilms   RowID = "popular-films"
	RowPopularSeries  RowID = "popular-series"
	RowTopRatedFilms  RowID = "top-rated-films"
	RowTopRatedSeries RowID = "top-rated-series"
)

// Row is one landing row. Err is set when the row failed to load.
type Row struct {
	ID    RowID
	Title string
	Kind  domain.Kind
	Items []domain.Title
	Err   error
}

type rowSpec struct {
	id    RowID
	title string
	kind  domain.Kind
	fetch func(ctx context.Context, repo domain.CatalogRepository, kind domain.Kind) ([]domain.Title, error)
}

func trending(ctx context.Context, repo domain.CatalogRepository, kind domain.Kind) ([]domain.Title, error) {
	return repo.Trending(ctx, kind, domain.WindowWeek)
}

func popular(ctx context.Context, repo domain.CatalogRepository, kind domain.Kind) ([]domain.Title, error) {
	return repo.Popular(ctx, kind, 1)
}

func topRated(ctx context.Context, repo domain.CatalogRepository, kind domain.Kind) ([]domain.Title, error) {
	return repo.TopRated(ctx, kind, 1)
}

var homeRows = []rowSpec{
	{RowTrendingFilms, "Trending Films", domain.KindFilm, trending},
	{RowTrendingSeries, "Trending Series", domain.KindSeries, trending},
	{RowPopularFilms, "Popular Films", domain.KindFilm, popular},
	{RowPopularSeries, "Popular Series", domain.KindSeries, popular},
	{RowTopRatedFilms, "Top Rated Films", domain.KindFilm, topRated},
	{RowTopRatedSeries, "Top Rated Series", domain.KindSeries, topRated},
}

// CatalogService is the read path over the remote catalog
type CatalogService struct {
	repo   domain.CatalogRepository
	store  CurationStore
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, store CurationStore, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Home loads every landing row. A failed row carries its error; the others
// are still returned.
func (s *CatalogService) Home(ctx context.Context) []Row {
	rows := make([]Row, len(homeRows))

	var g errgroup.Group
	g.SetLimit(homeConcurrency)

	for i, spec := range homeRows {
		rows[i] = Row{ID: spec.id, Title: spec.title, Kind: spec.kind}
		g.Go(func() error {
			items, err := spec.fetch(ctx, s.repo, spec.kind)
			if err != nil {
				s.logger.Warn("failed to load row", "row", spec.id, "error", err)
				rows[i].Err = err
				return nil
			}
			rows[i].Items = items
			return nil
		})
	}
	// row errors are carried in Row.Err, the group never fails
	_ = g.Wait()

	return rows
}

// Trending returns the trending titles for one window
func (s *CatalogService) Trending(ctx context.Context, kind domain.Kind, window domain.TimeWindow) ([]domain.Title, error) {
	return s.repo.Trending(ctx, kind, window)
}

// Genres returns the genre list for a kind
func (s *CatalogService) Genres(ctx context.Context, kind domain.Kind) ([]domain.Genre, error) {
	return s.repo.Genres(ctx, kind)
}

// Browse searches when query is set, otherwise discovers with filter
func (s *CatalogService) Browse(ctx context.Context, kind domain.Kind, filter domain.DiscoverFilter, query string) (*domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.Discover(ctx, kind, filter)
	}

	s.logger.Debug("searching", "kind", kind, "query", query)

	page, err := s.repo.Search(ctx, kind, query, filter.Page)
	if err != nil {
		return nil, err
	}
	page.Results = rankTitles(page.Results, query)
	return page, nil
}

// SearchAll searches films and series together
func (s *CatalogService) SearchAll(ctx context.Context, query string, page int) (*domain.Page, error) {
	p, err := s.repo.SearchMulti(ctx, query, page)
	if err != nil {
		return nil, err
	}
	p.Results = rankTitles(p.Results, query)
	return p, nil
}

// View fetches the details for one title and counts the visit
func (s *CatalogService) View(ctx context.Context, kind domain.Kind, id int) (*domain.TitleDetails, error) {
	details, err := s.repo.Details(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.IncrementViews(); err != nil {
			s.logger.Warn("failed to count view", "kind", kind, "id", id, "error", err)
		}
	}
	return details, nil
}
