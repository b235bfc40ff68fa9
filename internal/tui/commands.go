package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// requestTimeout bounds every catalog round trip started from the UI
const requestTimeout = 30 * time.Second

// Command factories for async operations

// LoadHomeCmd loads the landing rows
func LoadHomeCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return HomeLoadedMsg{Rows: svc.Home(ctx)}
	}
}

// LoadFeaturedCmd reads the curated titles for the landing screen
func LoadFeaturedCmd(svc *service.CurationService) tea.Cmd {
	return func() tea.Msg {
		films, err := svc.Featured(domain.KindFilm)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading featured"}
		}
		series, err := svc.Featured(domain.KindSeries)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading featured"}
		}
		return FeaturedLoadedMsg{Films: films, Series: series}
	}
}

// BrowseCmd searches when query is set, otherwise discovers with filter
func BrowseCmd(svc *service.CatalogService, kind domain.Kind, filter domain.DiscoverFilter, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := svc.Browse(ctx, kind, filter, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "browsing"}
		}
		return BrowseLoadedMsg{Kind: kind, Query: query, Page: page}
	}
}

// LoadGenresCmd loads the genre list for a kind
func LoadGenresCmd(svc *service.CatalogService, kind domain.Kind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		genres, err := svc.Genres(ctx, kind)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genres"}
		}
		return GenresLoadedMsg{Kind: kind, Genres: genres}
	}
}

// LoadDetailCmd fetches the details for a title, counting a view
func LoadDetailCmd(svc *service.CatalogService, kind domain.Kind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		details, err := svc.View(ctx, kind, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return DetailLoadedMsg{Details: details}
	}
}

// CheckSessionCmd reads the admin session state
func CheckSessionCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.Authenticated()
		if err != nil {
			return ErrMsg{Err: err, Context: "reading session"}
		}
		return SessionCheckedMsg{Authenticated: ok}
	}
}

// LoginCmd attempts an admin login
func LoginCmd(svc *service.SessionService, username, password string) tea.Cmd {
	return func() tea.Msg {
		return LoginResultMsg{Err: svc.Login(username, password)}
	}
}

// LogoutCmd clears the admin session
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Logout(); err != nil {
			return ErrMsg{Err: err, Context: "logging out"}
		}
		return LogoutCompleteMsg{}
	}
}

// LoadAdminCmd loads the curated entries and dashboard counters
func LoadAdminCmd(session *service.SessionService, svc *service.CurationService) tea.Cmd {
	return func() tea.Msg {
		ok, err := session.Authenticated()
		if err != nil {
			return ErrMsg{Err: err, Context: "reading session"}
		}
		if !ok {
			return AdminLoadedMsg{Authenticated: false}
		}

		entries, err := svc.List(nil)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading curated titles"}
		}
		stats, err := svc.Stats()
		if err != nil {
			return ErrMsg{Err: err, Context: "loading stats"}
		}
		return AdminLoadedMsg{Authenticated: true, Entries: entries, Stats: stats}
	}
}

// AddFeaturedCmd fetches a title and adds it to the curated set
func AddFeaturedCmd(svc *service.CurationService, title domain.Title) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		added, err := svc.Add(ctx, title.Kind, title.ID)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding " + title.Name}
		}
		return FeaturedAddedMsg{Name: title.Name, Added: added}
	}
}

// AddDetailsCmd adds an already fetched record to the curated set
func AddDetailsCmd(svc *service.CurationService, details domain.TitleDetails) tea.Cmd {
	return func() tea.Msg {
		added, err := svc.AddDetails(details, details.Kind)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding " + details.Name}
		}
		return FeaturedAddedMsg{Name: details.Name, Added: added}
	}
}

// RemoveFeaturedCmd drops a curated entry
func RemoveFeaturedCmd(svc *service.CurationService, entry domain.CuratedEntry) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Remove(entry.Kind, entry.ID); err != nil {
			return ErrMsg{Err: err, Context: "removing " + entry.Payload.Name}
		}
		return FeaturedRemovedMsg{Name: entry.Payload.Name}
	}
}

// OpenTrailerCmd opens the first trailer of a title
func OpenTrailerCmd(open func(url string) error, details domain.TitleDetails) tea.Cmd {
	return func() tea.Msg {
		v, ok := details.Trailer()
		if !ok || open == nil {
			return StatusMsg{Message: "No trailer for " + details.Name}
		}
		if err := open(v.URL()); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerOpenedMsg{Name: details.Name}
	}
}

// ClearStatusCmd clears the status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd creates a tick command for animations
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
