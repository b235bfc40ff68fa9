package tmdb

// ResultItem is one entry of a list, discover or search response.
// Films carry title/release_date; series carry name/first_air_date.
type ResultItem struct {
	ID               int     `json:"id"`
	MediaType        string  `json:"media_type,omitempty"` // multi search and trending only
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

// PageResponse is the paginated envelope
type PageResponse struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
	Results      []ResultItem `json:"results"`
}

// GenreItem is one genre
type GenreItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the body of /genre/{type}/list
type GenreListResponse struct {
	Genres []GenreItem `json:"genres"`
}

// CountryItem is one production country
type CountryItem struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// CastItem is one credited actor
type CastItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// VideoItem is one attached video
type VideoItem struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Site string `json:"site"`
}

// DetailsResponse is the body of /movie/{id} and /tv/{id} with
// append_to_response=credits,videos,similar
type DetailsResponse struct {
	ResultItem

	Runtime             int           `json:"runtime,omitempty"`
	NumberOfSeasons     int           `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes    int           `json:"number_of_episodes,omitempty"`
	Genres              []GenreItem   `json:"genres"`
	ProductionCountries []CountryItem `json:"production_countries"`

	Credits *struct {
		Cast []CastItem `json:"cast"`
	} `json:"credits,omitempty"`
	Videos *struct {
		Results []VideoItem `json:"results"`
	} `json:"videos,omitempty"`
	Similar *PageResponse `json:"similar,omitempty"`
}

// ErrorResponse is the error body TMDB returns with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
