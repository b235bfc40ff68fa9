package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HomeLoadedMsg carries the landing rows
type HomeLoadedMsg struct {
	Rows []service.Row
}

// FeaturedLoadedMsg carries the curated titles per kind
type FeaturedLoadedMsg struct {
	Films  []domain.Title
	Series []domain.Title
}

// BrowseLoadedMsg carries one page of browse or search results
type BrowseLoadedMsg struct {
	Kind  domain.Kind
	Query string
	Page  *domain.Page
}

// GenresLoadedMsg carries the genre list for a kind
type GenresLoadedMsg struct {
	Kind   domain.Kind
	Genres []domain.Genre
}

// DetailLoadedMsg carries the full record for the detail screen
type DetailLoadedMsg struct {
	Details *domain.TitleDetails
}

// SessionCheckedMsg reports whether the admin session is valid
type SessionCheckedMsg struct {
	Authenticated bool
}

// LoginResultMsg reports the outcome of a login attempt
type LoginResultMsg struct {
	Err error
}

// LogoutCompleteMsg signals that the session was cleared
type LogoutCompleteMsg struct{}

// AdminLoadedMsg carries the dashboard data. Authenticated is false when the
// session expired before loading.
type AdminLoadedMsg struct {
	Authenticated bool
	Entries       []domain.CuratedEntry
	Stats         domain.SiteStats
}

// FeaturedAddedMsg reports an add to the curated set
type FeaturedAddedMsg struct {
	Name  string
	Added bool
}

// FeaturedRemovedMsg reports a removal from the curated set
type FeaturedRemovedMsg struct {
	Name string
}

// TrailerOpenedMsg signals that the trailer was handed to a player
type TrailerOpenedMsg struct {
	Name string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
