package domain

import (
	"fmt"
	"strconv"
)

// Title is a catalog summary record as returned by list and search queries
type Title struct {
	ID               int     `json:"id"`
	Kind             Kind    `json:"kind"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"posterPath,omitempty"`
	BackdropPath     string  `json:"backdropPath,omitempty"`
	ReleaseDate      string  `json:"releaseDate,omitempty"` // first air date for series
	VoteAverage      float64 `json:"voteAverage"`
	GenreIDs         []int   `json:"genreIds,omitempty"`
	OriginalLanguage string  `json:"originalLanguage,omitempty"`
	Popularity       float64 `json:"popularity"`
}

// Year returns the release year, or 0 when the date is missing
func (t Title) Year() int {
	if len(t.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// Rating formats the vote average with one decimal
func (t Title) Rating() string {
	return fmt.Sprintf("%.1f", t.VoteAverage)
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is a production or origin country
type Country struct {
	Code string `json:"code"` // ISO 3166-1
	Name string `json:"name"`
}

// CastMember is one credited actor
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// Video is an externally hosted clip (trailer, teaser, ...)
type Video struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Site string `json:"site"`
}

// URL returns the watch page for the clip, or "" for unknown hosts
func (v Video) URL() string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	}
	return ""
}

// TitleDetails is the full record for one title, including expanded relations
type TitleDetails struct {
	Title

	Runtime   int          `json:"runtime,omitempty"`  // minutes, films only
	Seasons   int          `json:"seasons,omitempty"`  // series only
	Episodes  int          `json:"episodes,omitempty"` // series only
	Genres    []Genre      `json:"genres,omitempty"`
	Countries []Country    `json:"countries,omitempty"`
	Cast      []CastMember `json:"cast,omitempty"`
	Videos    []Video      `json:"videos,omitempty"`
	Similar   []Title      `json:"similar,omitempty"`
}

// Trailer returns the first YouTube trailer, if any
func (d TitleDetails) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v, true
		}
	}
	return Video{}, false
}

// FormattedRuntime renders the runtime ("2h 19m") or the season count for series
func (d TitleDetails) FormattedRuntime() string {
	if d.Kind == KindSeries {
		if d.Seasons == 1 {
			return fmt.Sprintf("1 Season · %d Episodes", d.Episodes)
		}
		return fmt.Sprintf("%d Seasons · %d Episodes", d.Seasons, d.Episodes)
	}
	if d.Runtime <= 0 {
		return ""
	}
	h, m := d.Runtime/60, d.Runtime%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// GenreNames returns the genre names in order
func (d TitleDetails) GenreNames() []string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return names
}

// Page is one page of list or search results
type Page struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
	Results      []Title `json:"results"`
}

// TimeWindow selects the trending period
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// DefaultSort is the discover ordering used when none is given
const DefaultSort = "popularity.desc"

// DiscoverFilter narrows a discover query
type DiscoverFilter struct {
	Page          int
	Genre         string // comma separated genre IDs
	OriginCountry string // ISO 3166-1 code
	SortBy        string
}

// OriginCountries is the shortlist offered by the browse filters
var OriginCountries = []Country{
	{Code: "US", Name: "United States"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "IN", Name: "India"},
	{Code: "KR", Name: "South Korea"},
	{Code: "JP", Name: "Japan"},
	{Code: "FR", Name: "France"},
	{Code: "ES", Name: "Spain"},
	{Code: "DE", Name: "Germany"},
}
