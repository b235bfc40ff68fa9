package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// FilterResult is a curated entry matched by Filter, with the matched
// character positions for highlighting
type FilterResult struct {
	Entry          domain.CuratedEntry
	MatchedIndexes []int
	Score          int
}

// entrySource implements sahilm/fuzzy.Source over curated entry names
type entrySource struct {
	entries     []domain.CuratedEntry
	lowerTitles []string
}

func (s entrySource) String(i int) string { return s.lowerTitles[i] }

func (s entrySource) Len() int { return len(s.entries) }

// CurationService is the admin path over the local curation store
type CurationService struct {
	store   CurationStore
	catalog domain.CatalogRepository
	session *SessionService
	logger  *slog.Logger
}

// NewCurationService creates a new curation service
func NewCurationService(store CurationStore, catalog domain.CatalogRepository, session *SessionService, logger *slog.Logger) *CurationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurationService{
		store:   store,
		catalog: catalog,
		session: session,
		logger:  logger,
	}
}

func (s *CurationService) requireSession() error {
	ok, err := s.session.Authenticated()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// Add fetches a title from the catalog and stores a snapshot of it.
// It returns false when the title was already curated.
func (s *CurationService) Add(ctx context.Context, kind domain.Kind, id int) (bool, error) {
	if err := s.requireSession(); err != nil {
		return false, err
	}

	details, err := s.catalog.Details(ctx, kind, id)
	if err != nil {
		return false, fmt.Errorf("fetch %s %d: %w", kind, id, err)
	}
	return s.add(*details, kind)
}

// AddDetails stores an already fetched record
func (s *CurationService) AddDetails(details domain.TitleDetails, kind domain.Kind) (bool, error) {
	if err := s.requireSession(); err != nil {
		return false, err
	}
	return s.add(details, kind)
}

func (s *CurationService) add(details domain.TitleDetails, kind domain.Kind) (bool, error) {
	added, err := s.store.Add(details, kind)
	if err != nil {
		return false, err
	}
	if added {
		s.logger.Info("title featured", "kind", kind, "id", details.ID, "name", details.Name)
	}
	return added, nil
}

// Remove drops a curated entry
func (s *CurationService) Remove(kind domain.Kind, id int) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := s.store.Remove(id, kind); err != nil {
		return err
	}
	s.logger.Info("title unfeatured", "kind", kind, "id", id)
	return nil
}

// List returns the curated entries, optionally of one kind
func (s *CurationService) List(kind *domain.Kind) ([]domain.CuratedEntry, error) {
	if kind == nil {
		return s.store.ListAll()
	}
	return s.store.ListByKind(*kind)
}

// IsFeatured reports whether (kind, id) is curated
func (s *CurationService) IsFeatured(kind domain.Kind, id int) (bool, error) {
	_, ok, err := s.store.Get(id, kind)
	return ok, err
}

// Filter fuzzy matches curated entries by name. An empty query returns
// every entry in insertion order.
func (s *CurationService) Filter(query string) ([]FilterResult, error) {
	entries, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]FilterResult, len(entries))
		for i, e := range entries {
			results[i] = FilterResult{Entry: e}
		}
		return results, nil
	}

	src := entrySource{entries: entries, lowerTitles: make([]string, len(entries))}
	for i, e := range entries {
		src.lowerTitles[i] = strings.ToLower(e.Payload.Name)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), src)
	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		results[i] = FilterResult{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results, nil
}

// Stats returns the dashboard counters
func (s *CurationService) Stats() (domain.SiteStats, error) {
	return s.store.Stats()
}

// Featured returns the curated titles of one kind for public display
func (s *CurationService) Featured(kind domain.Kind) ([]domain.Title, error) {
	entries, err := s.store.ListByKind(kind)
	if err != nil {
		return nil, err
	}
	titles := make([]domain.Title, len(entries))
	for i, e := range entries {
		titles[i] = e.Payload.Title
	}
	return titles, nil
}
