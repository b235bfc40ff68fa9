package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
)

// Fixed keys, one independent record each
const (
	KeyContent = "reel_content"
	KeyStats   = "reel_stats"
	KeyAuth    = "reel_auth"
)

var errDuplicate = errors.New("duplicate entry")

// Store is the single source of truth for curated entries, site stats and
// the admin session flag.
//
// A Store built over a nil backend models an execution context without
// persistence: reads return empty or zero values and writes are dropped.
// The same degradation applies when the backend reports kv.ErrUnavailable.
type Store struct {
	backend kv.Backend
	now     func() time.Time
	ttl     time.Duration
	logger  *slog.Logger

	// mu serializes read-modify-write sequences that span two keys
	// (content then stats) within this process.
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSessionTTL overrides how long a session stays valid
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store over backend. backend may be nil.
func New(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		ttl:     domain.DefaultSessionTTL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionTTL returns how long a session stays valid after it is issued
func (s *Store) SessionTTL() time.Duration {
	return s.ttl
}

// Persistent reports whether the store has a backend to write to
func (s *Store) Persistent() bool {
	return s.backend != nil
}

// Close closes the underlying backend
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// === Generic helpers ===

// read returns the raw value under key. Missing keys and unreachable
// backends both yield (nil, false, nil).
func (s *Store) read(key string) ([]byte, bool, error) {
	if s.backend == nil {
		return nil, false, nil
	}
	data, err := s.backend.Get(key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return nil, false, nil
	case errors.Is(err, kv.ErrUnavailable):
		s.logger.Debug("store backend unavailable", "op", "get", "key", key, "error", err)
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// update runs fn against key and reports whether the result was committed.
// An unreachable backend is not an error, committed is false.
func (s *Store) update(key string, fn kv.UpdateFunc) (bool, error) {
	if s.backend == nil {
		return false, nil
	}
	err := s.backend.Update(key, fn)
	if errors.Is(err, kv.ErrUnavailable) {
		s.logger.Debug("store backend unavailable", "op", "update", "key", key, "error", err)
		return false, nil
	}
	return err == nil, err
}

func (s *Store) put(key string, value any) error {
	if s.backend == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = s.backend.Put(key, data)
	if errors.Is(err, kv.ErrUnavailable) {
		s.logger.Debug("store backend unavailable", "op", "put", "key", key, "error", err)
		return nil
	}
	return err
}

func (s *Store) delete(key string) error {
	if s.backend == nil {
		return nil
	}
	err := s.backend.Delete(key)
	if errors.Is(err, kv.ErrUnavailable) {
		s.logger.Debug("store backend unavailable", "op", "delete", "key", key, "error", err)
		return nil
	}
	return err
}

// === Curated content ===

// ListAll returns every curated entry in insertion order
func (s *Store) ListAll() ([]domain.CuratedEntry, error) {
	records, err := s.loadEntries()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.CuratedEntry, len(records))
	for i, r := range records {
		entries[i] = r.toDomain()
	}
	return entries, nil
}

func (s *Store) loadEntries() ([]entryRecord, error) {
	data, ok, err := s.read(KeyContent)
	if err != nil || !ok {
		return nil, err
	}
	return decodeEntries(KeyContent, data)
}

// ListByKind returns the curated entries of one kind
func (s *Store) ListByKind(kind domain.Kind) ([]domain.CuratedEntry, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	var out []domain.CuratedEntry
	for _, e := range all {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

// Get looks up the entry keyed by (id, kind)
func (s *Store) Get(id int, kind domain.Kind) (domain.CuratedEntry, bool, error) {
	all, err := s.ListAll()
	if err != nil {
		return domain.CuratedEntry{}, false, err
	}
	for _, e := range all {
		if e.Matches(id, kind) {
			return e, true, nil
		}
	}
	return domain.CuratedEntry{}, false, nil
}

// Add appends a snapshot of payload as a new entry. It returns false when an
// entry with the same (payload.ID, kind) already exists.
func (s *Store) Add(payload domain.TitleDetails, kind domain.Kind) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if payload.ID <= 0 {
		return false, fmt.Errorf("invalid title id %d", payload.ID)
	}
	if s.backend == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload.Kind = kind
	committed, err := s.update(KeyContent, func(current []byte, exists bool) ([]byte, error) {
		var records []entryRecord
		if exists {
			var err error
			if records, err = decodeEntries(KeyContent, current); err != nil {
				return nil, err
			}
		}
		for _, r := range records {
			if r.ID == payload.ID && r.Kind == kind {
				return nil, errDuplicate
			}
		}
		records = append(records, entryRecord{
			ID:      payload.ID,
			Kind:    kind,
			Payload: payload,
			AddedAt: s.now().UTC(),
		})
		return json.Marshal(records)
	})
	if errors.Is(err, errDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !committed {
		return false, nil
	}

	s.logger.Debug("added curated entry", "id", payload.ID, "kind", kind, "name", payload.Name)
	return true, s.recomputeLocked()
}

// Remove deletes the entry keyed by (id, kind). Removing a missing entry is a no-op.
func (s *Store) Remove(id int, kind domain.Kind) error {
	if s.backend == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	committed, err := s.update(KeyContent, func(current []byte, exists bool) ([]byte, error) {
		var records []entryRecord
		if exists {
			var err error
			if records, err = decodeEntries(KeyContent, current); err != nil {
				return nil, err
			}
		}
		kept := make([]entryRecord, 0, len(records))
		for _, r := range records {
			if r.ID == id && r.Kind == kind {
				continue
			}
			kept = append(kept, r)
		}
		return json.Marshal(kept)
	})
	if err != nil || !committed {
		return err
	}

	s.logger.Debug("removed curated entry", "id", id, "kind", kind)
	return s.recomputeLocked()
}

// === Stats ===

// Stats returns the persisted stats, or a zeroed record stamped now when none exist
func (s *Store) Stats() (domain.SiteStats, error) {
	data, ok, err := s.read(KeyStats)
	if err != nil {
		return domain.SiteStats{}, err
	}
	if !ok {
		return domain.SiteStats{LastUpdated: s.now().UTC()}, nil
	}
	rec, err := decodeStats(KeyStats, data)
	if err != nil {
		return domain.SiteStats{}, err
	}
	return rec.toDomain(), nil
}

// RecomputeStats recounts the curated entries by kind, keeping the view counter
func (s *Store) RecomputeStats() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked()
}

func (s *Store) recomputeLocked() error {
	records, err := s.loadEntries()
	if err != nil {
		return err
	}

	var films, series int
	for _, r := range records {
		switch r.Kind {
		case domain.KindFilm:
			films++
		case domain.KindSeries:
			series++
		}
	}

	_, err = s.update(KeyStats, func(current []byte, exists bool) ([]byte, error) {
		var views int
		if exists {
			rec, err := decodeStats(KeyStats, current)
			if err != nil {
				return nil, err
			}
			views = rec.TotalViews
		}
		return json.Marshal(statsRecord{
			TotalFilms:  films,
			TotalSeries: series,
			TotalViews:  views,
			LastUpdated: s.now().UTC(),
		})
	})
	return err
}

// IncrementViews adds one to the global view counter
func (s *Store) IncrementViews() error {
	_, err := s.update(KeyStats, func(current []byte, exists bool) ([]byte, error) {
		var rec statsRecord
		if exists {
			var err error
			if rec, err = decodeStats(KeyStats, current); err != nil {
				return nil, err
			}
		}
		rec.TotalViews++
		rec.LastUpdated = s.now().UTC()
		return json.Marshal(rec)
	})
	return err
}

// === Session ===

// SetSession records a new session flag issued now, replacing any prior one
func (s *Store) SetSession(authenticated bool) error {
	return s.put(KeyAuth, sessionRecord{
		Authenticated: authenticated,
		IssuedAt:      s.now().UTC(),
	})
}

// Session returns the stored flag, if any
func (s *Store) Session() (domain.SessionFlag, bool, error) {
	data, ok, err := s.read(KeyAuth)
	if err != nil || !ok {
		return domain.SessionFlag{}, false, err
	}
	rec, err := decodeSession(KeyAuth, data)
	if err != nil {
		return domain.SessionFlag{}, false, err
	}
	return domain.SessionFlag{Authenticated: rec.Authenticated, IssuedAt: rec.IssuedAt}, true, nil
}

// SessionValid reports whether an authenticated session younger than the
// TTL exists. An expired flag is left in place.
func (s *Store) SessionValid() (bool, error) {
	flag, ok, err := s.Session()
	if err != nil || !ok {
		return false, err
	}
	return flag.ValidAt(s.now(), s.ttl), nil
}

// ClearSession deletes the session flag
func (s *Store) ClearSession() error {
	return s.delete(KeyAuth)
}
