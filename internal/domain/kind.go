package domain

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two catalog item types
type Kind string

const (
	KindFilm   Kind = "film"
	KindSeries Kind = "series"
)

// Kinds lists every valid kind in display order
var Kinds = []Kind{KindFilm, KindSeries}

// ParseKind accepts the canonical names plus the catalog's own aliases
// ("movie", "tv") and "show".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "film", "films", "movie", "movies":
		return KindFilm, nil
	case "series", "tv", "show", "shows":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k == KindFilm || k == KindSeries
}

// MediaType returns the path segment the remote catalog uses for this kind
func (k Kind) MediaType() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// Label returns a human readable name
func (k Kind) Label() string {
	switch k {
	case KindFilm:
		return "Film"
	case KindSeries:
		return "Series"
	default:
		return string(k)
	}
}

// Other returns the opposite kind
func (k Kind) Other() Kind {
	if k == KindFilm {
		return KindSeries
	}
	return KindFilm
}
