package service

import "github.com/mmcdole/reel/internal/domain"

// CurationStore is the local persistence the services depend on.
// *store.Store satisfies it.
type CurationStore interface {
	ListAll() ([]domain.CuratedEntry, error)
	ListByKind(kind domain.Kind) ([]domain.CuratedEntry, error)
	Get(id int, kind domain.Kind) (domain.CuratedEntry, bool, error)
	Add(payload domain.TitleDetails, kind domain.Kind) (bool, error)
	Remove(id int, kind domain.Kind) error
	Stats() (domain.SiteStats, error)
	IncrementViews() error
	SetSession(authenticated bool) error
	SessionValid() (bool, error)
	ClearSession() error
}
