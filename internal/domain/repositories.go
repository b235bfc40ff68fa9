package domain

import "context"

// CatalogRepository provides read-only access to the remote media catalog
type CatalogRepository interface {
	// Trending returns the titles trending over the given window
	Trending(ctx context.Context, kind Kind, window TimeWindow) ([]Title, error)

	// Popular returns a page of popular titles
	Popular(ctx context.Context, kind Kind, page int) ([]Title, error)

	// TopRated returns a page of top rated titles
	TopRated(ctx context.Context, kind Kind, page int) ([]Title, error)

	// Genres returns the genre list for a kind
	Genres(ctx context.Context, kind Kind) ([]Genre, error)

	// Discover returns titles matching the filter
	Discover(ctx context.Context, kind Kind, filter DiscoverFilter) (*Page, error)

	// Search returns titles of one kind matching the query
	Search(ctx context.Context, kind Kind, query string, page int) (*Page, error)

	// SearchMulti searches films and series together
	SearchMulti(ctx context.Context, query string, page int) (*Page, error)

	// Details returns the full record with credits, videos and similar titles
	Details(ctx context.Context, kind Kind, id int) (*TitleDetails, error)
}
