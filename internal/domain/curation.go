package domain

import "time"

// CuratedEntry is a locally persisted snapshot of one catalog item selected
// for display. The payload is copied when the entry is added and never refreshed.
type CuratedEntry struct {
	ID      int          `json:"id"`
	Kind    Kind         `json:"kind"`
	Payload TitleDetails `json:"payload"`
	AddedAt time.Time    `json:"addedAt"`
}

// Matches reports whether the entry is keyed by (id, kind)
func (e CuratedEntry) Matches(id int, kind Kind) bool {
	return e.ID == id && e.Kind == kind
}

// SiteStats holds the aggregate counters shown on the admin dashboard.
// TotalFilms and TotalSeries are derived from the curated set; TotalViews is a
// single global counter of detail views.
type SiteStats struct {
	TotalFilms  int       `json:"totalFilms"`
	TotalSeries int       `json:"totalSeries"`
	TotalViews  int       `json:"totalViews"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Total returns the number of curated entries the stats were computed from
func (s SiteStats) Total() int {
	return s.TotalFilms + s.TotalSeries
}

// SessionFlag is a time-boxed marker of admin authentication
type SessionFlag struct {
	Authenticated bool
	IssuedAt      time.Time
}

// DefaultSessionTTL is how long a session stays valid after it is issued
const DefaultSessionTTL = 24 * time.Hour

// ValidAt reports whether the flag grants access at now for the given lifetime.
// Expiry is fixed from IssuedAt; activity does not extend it.
func (f SessionFlag) ValidAt(now time.Time, ttl time.Duration) bool {
	return f.Authenticated && now.Sub(f.IssuedAt) < ttl
}
