package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/kv"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *kv.Memory, *fakeClock) {
	t.Helper()
	backend := kv.NewMemory()
	clock := newFakeClock()
	return New(backend, WithClock(clock.Now)), backend, clock
}

func details(id int, name string) domain.TitleDetails {
	return domain.TitleDetails{Title: domain.Title{ID: id, Name: name}}
}

func TestAddDuplicateRemoveRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)

	added, err := s.Add(details(550, "Fight Club"), domain.KindFilm)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(details(550, "Fight Club"), domain.KindFilm)
	require.NoError(t, err)
	assert.False(t, added)

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, s.Remove(550, domain.KindFilm))

	all, err = s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalFilms)
}

func TestAddDistinctKeysUpdatesCounts(t *testing.T) {
	s, _, _ := newTestStore(t)

	inputs := []struct {
		id   int
		kind domain.Kind
	}{
		{550, domain.KindFilm},
		{550, domain.KindSeries}, // same id, other kind
		{13, domain.KindFilm},
		{1399, domain.KindSeries},
		{603, domain.KindFilm},
	}
	for _, in := range inputs {
		added, err := s.Add(details(in.id, "x"), in.kind)
		require.NoError(t, err)
		require.True(t, added)
	}

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, len(inputs))
	for i, in := range inputs {
		assert.Equal(t, in.id, all[i].ID, "insertion order")
		assert.Equal(t, in.kind, all[i].Kind)
		assert.Equal(t, in.kind, all[i].Payload.Kind)
	}

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFilms)
	assert.Equal(t, 2, stats.TotalSeries)
	assert.Equal(t, len(inputs), stats.Total())

	films, err := s.ListByKind(domain.KindFilm)
	require.NoError(t, err)
	assert.Len(t, films, 3)

	entry, ok, err := s.Get(1399, domain.KindSeries)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1399, entry.Payload.ID)

	_, ok, err = s.Get(1399, domain.KindFilm)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddRejectsBadInput(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Add(details(1, "x"), domain.Kind("anime"))
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	_, err = s.Add(details(0, "x"), domain.KindFilm)
	assert.Error(t, err)
}

func TestRemoveTwiceIsNoop(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Add(details(1, "a"), domain.KindFilm)
	require.NoError(t, err)
	_, err = s.Add(details(2, "b"), domain.KindFilm)
	require.NoError(t, err)

	require.NoError(t, s.Remove(1, domain.KindFilm))
	require.NoError(t, s.Remove(1, domain.KindFilm))
	require.NoError(t, s.Remove(42, domain.KindSeries))

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)
}

func TestAddStoresSnapshot(t *testing.T) {
	s, _, clock := newTestStore(t)

	payload := details(7, "Original")
	payload.Genres = []domain.Genre{{ID: 18, Name: "Drama"}}
	_, err := s.Add(payload, domain.KindFilm)
	require.NoError(t, err)

	payload.Name = "Changed"
	payload.Genres[0].Name = "Comedy"

	entry, ok, err := s.Get(7, domain.KindFilm)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Original", entry.Payload.Name)
	assert.Equal(t, "Drama", entry.Payload.Genres[0].Name)
	assert.True(t, entry.AddedAt.Equal(clock.Now()))
}

func TestStatsDefaultsWhenAbsent(t *testing.T) {
	s, _, clock := newTestStore(t)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalFilms)
	assert.Zero(t, stats.TotalSeries)
	assert.Zero(t, stats.TotalViews)
	assert.True(t, stats.LastUpdated.Equal(clock.Now()))
}

func TestIncrementViewsSequential(t *testing.T) {
	s, _, _ := newTestStore(t)

	const n = 17
	for i := 0; i < n; i++ {
		require.NoError(t, s.IncrementViews())
	}

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, n, stats.TotalViews)
}

func TestIncrementViewsConcurrent(t *testing.T) {
	s, _, _ := newTestStore(t)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				assert.NoError(t, s.IncrementViews())
			}
		}()
	}
	wg.Wait()

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, stats.TotalViews)
}

func TestRecomputeKeepsViews(t *testing.T) {
	s, _, clock := newTestStore(t)

	require.NoError(t, s.IncrementViews())
	require.NoError(t, s.IncrementViews())

	clock.Advance(time.Hour)
	_, err := s.Add(details(1, "a"), domain.KindSeries)
	require.NoError(t, err)
	require.NoError(t, s.RecomputeStats())

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalViews)
	assert.Equal(t, 1, stats.TotalSeries)
	assert.True(t, stats.LastUpdated.Equal(clock.Now()))
}

func TestSessionExpiry(t *testing.T) {
	s, backend, clock := newTestStore(t)

	valid, err := s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid, "no flag")

	require.NoError(t, s.SetSession(true))
	valid, err = s.SessionValid()
	require.NoError(t, err)
	assert.True(t, valid)

	clock.Advance(24*time.Hour - time.Second)
	valid, err = s.SessionValid()
	require.NoError(t, err)
	assert.True(t, valid)

	clock.Advance(time.Second)
	valid, err = s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid, "expired at 24h")

	// lazy expiry leaves the record in place
	_, err = backend.Get(KeyAuth)
	assert.NoError(t, err)

	require.NoError(t, s.ClearSession())
	_, err = backend.Get(KeyAuth)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.ClearSession())
}

func TestSetSessionRefreshesIssuedAt(t *testing.T) {
	s, _, clock := newTestStore(t)

	require.NoError(t, s.SetSession(true))
	clock.Advance(23 * time.Hour)
	require.NoError(t, s.SetSession(true))
	clock.Advance(23 * time.Hour)

	valid, err := s.SessionValid()
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, s.SetSession(false))
	valid, err = s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCustomSessionTTL(t *testing.T) {
	clock := newFakeClock()
	s := New(kv.NewMemory(), WithClock(clock.Now), WithSessionTTL(time.Minute))

	require.NoError(t, s.SetSession(true))
	clock.Advance(time.Minute)

	valid, err := s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestMalformedRecords(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		call  func(*Store) error
	}{
		{
			name:  "content not json",
			key:   KeyContent,
			value: "{not json",
			call:  func(s *Store) error { _, err := s.ListAll(); return err },
		},
		{
			name:  "content wrong shape",
			key:   KeyContent,
			value: `{"id": 1}`,
			call:  func(s *Store) error { _, err := s.ListAll(); return err },
		},
		{
			name:  "entry bad kind",
			key:   KeyContent,
			value: `[{"id":1,"kind":"anime","payload":{"id":1},"addedAt":"2026-01-01T00:00:00Z"}]`,
			call:  func(s *Store) error { _, err := s.ListAll(); return err },
		},
		{
			name:  "entry payload id mismatch",
			key:   KeyContent,
			value: `[{"id":1,"kind":"film","payload":{"id":2},"addedAt":"2026-01-01T00:00:00Z"}]`,
			call:  func(s *Store) error { _, err := s.Add(details(3, "x"), domain.KindFilm); return err },
		},
		{
			name:  "stats negative views",
			key:   KeyStats,
			value: `{"totalFilms":0,"totalSeries":0,"totalViews":-1,"lastUpdated":"2026-01-01T00:00:00Z"}`,
			call:  func(s *Store) error { return s.IncrementViews() },
		},
		{
			name:  "session missing issuedAt",
			key:   KeyAuth,
			value: `{"authenticated":true}`,
			call:  func(s *Store) error { _, err := s.SessionValid(); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend, _ := newTestStore(t)
			require.NoError(t, backend.Put(tt.key, []byte(tt.value)))

			err := tt.call(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)

			var recErr *RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.key, recErr.Key)

			// the malformed value is not overwritten
			got, err := backend.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, string(got))
		})
	}
}

func TestNilBackendDegrades(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Persistent())

	added, err := s.Add(details(550, "Fight Club"), domain.KindFilm)
	require.NoError(t, err)
	assert.False(t, added)

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Remove(550, domain.KindFilm))
	require.NoError(t, s.IncrementViews())
	require.NoError(t, s.RecomputeStats())

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalViews)

	require.NoError(t, s.SetSession(true))
	valid, err := s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid)
	require.NoError(t, s.ClearSession())
	require.NoError(t, s.Close())
}

// unavailableBackend fails every call as an unreachable store would
type unavailableBackend struct{}

func (unavailableBackend) Get(string) ([]byte, error) { return nil, kv.ErrUnavailable }
func (unavailableBackend) Put(string, []byte) error { return kv.ErrUnavailable }
func (unavailableBackend) Delete(string) error { return kv.ErrUnavailable }
func (unavailableBackend) Update(string, kv.UpdateFunc) error { return kv.ErrUnavailable }
func (unavailableBackend) Close() error { return nil }

func TestUnavailableBackendDegrades(t *testing.T) {
	s := New(unavailableBackend{})

	added, err := s.Add(details(1, "a"), domain.KindFilm)
	require.NoError(t, err)
	assert.False(t, added)

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.IncrementViews())
	require.NoError(t, s.SetSession(true))

	valid, err := s.SessionValid()
	require.NoError(t, err)
	assert.False(t, valid)
}

// lostCommitBackend runs updates but loses the write, as a redis EXEC
// failing after WATCH would
type lostCommitBackend struct {
	*kv.Memory
}

func (b lostCommitBackend) Update(key string, fn kv.UpdateFunc) error {
	current, err := b.Get(key)
	exists := err == nil
	if _, err := fn(current, exists); err != nil {
		return err
	}
	return kv.ErrUnavailable
}

func TestAddReportsFalseWhenCommitLost(t *testing.T) {
	backend := lostCommitBackend{Memory: kv.NewMemory()}
	s := New(backend)

	added, err := s.Add(details(550, "Fight Club"), domain.KindFilm)
	require.NoError(t, err)
	assert.False(t, added)

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Remove(550, domain.KindFilm))
	require.NoError(t, s.IncrementViews())
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/reel.db"

	backend, err := kv.OpenBolt(path)
	require.NoError(t, err)
	s := New(backend)
	_, err = s.Add(details(550, "Fight Club"), domain.KindFilm)
	require.NoError(t, err)
	require.NoError(t, s.IncrementViews())
	require.NoError(t, s.Close())

	backend, err = kv.OpenBolt(path)
	require.NoError(t, err)
	s = New(backend)
	defer s.Close()

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Fight Club", all[0].Payload.Name)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalFilms)
	assert.Equal(t, 1, stats.TotalViews)
}
