package tmdb

import (
	"github.com/mmcdole/reel/internal/domain"
)

// maxCast caps the cast list kept on a details record
const maxCast = 10

// MapTitles converts result items of a known kind to domain titles
func MapTitles(items []ResultItem, kind domain.Kind) []domain.Title {
	titles := make([]domain.Title, 0, len(items))
	for _, it := range items {
		titles = append(titles, mapTitle(it, kind))
	}
	return titles
}

// MapMultiTitles converts multi-search items, dropping anything that is
// neither a film nor a series (persons)
func MapMultiTitles(items []ResultItem) []domain.Title {
	titles := make([]domain.Title, 0, len(items))
	for _, it := range items {
		kind, ok := kindFromMediaType(it.MediaType)
		if !ok {
			continue
		}
		titles = append(titles, mapTitle(it, kind))
	}
	return titles
}

func kindFromMediaType(mediaType string) (domain.Kind, bool) {
	switch mediaType {
	case "movie":
		return domain.KindFilm, true
	case "tv":
		return domain.KindSeries, true
	default:
		return "", false
	}
}

func mapTitle(it ResultItem, kind domain.Kind) domain.Title {
	t := domain.Title{
		ID:               it.ID,
		Kind:             kind,
		Overview:         it.Overview,
		PosterPath:       it.PosterPath,
		BackdropPath:     it.BackdropPath,
		VoteAverage:      it.VoteAverage,
		GenreIDs:         it.GenreIDs,
		OriginalLanguage: it.OriginalLanguage,
		Popularity:       it.Popularity,
	}
	if kind == domain.KindSeries {
		t.Name = firstNonEmpty(it.Name, it.Title)
		t.ReleaseDate = firstNonEmpty(it.FirstAirDate, it.ReleaseDate)
	} else {
		t.Name = firstNonEmpty(it.Title, it.Name)
		t.ReleaseDate = firstNonEmpty(it.ReleaseDate, it.FirstAirDate)
	}
	return t
}

// MapPage converts a paginated response with a known kind
func MapPage(resp PageResponse, kind domain.Kind) *domain.Page {
	return &domain.Page{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      MapTitles(resp.Results, kind),
	}
}

// MapGenres converts genre items
func MapGenres(items []GenreItem) []domain.Genre {
	genres := make([]domain.Genre, len(items))
	for i, g := range items {
		genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return genres
}

// MapDetails converts a details response
func MapDetails(resp DetailsResponse, kind domain.Kind) *domain.TitleDetails {
	d := &domain.TitleDetails{
		Title:    mapTitle(resp.ResultItem, kind),
		Runtime:  resp.Runtime,
		Seasons:  resp.NumberOfSeasons,
		Episodes: resp.NumberOfEpisodes,
		Genres:   MapGenres(resp.Genres),
	}

	// Details carry full genres rather than IDs
	if len(d.GenreIDs) == 0 {
		for _, g := range resp.Genres {
			d.GenreIDs = append(d.GenreIDs, g.ID)
		}
	}

	for _, c := range resp.ProductionCountries {
		d.Countries = append(d.Countries, domain.Country{Code: c.ISO31661, Name: c.Name})
	}

	if resp.Credits != nil {
		for i, c := range resp.Credits.Cast {
			if i >= maxCast {
				break
			}
			d.Cast = append(d.Cast, domain.CastMember{
				ID:          c.ID,
				Name:        c.Name,
				Character:   c.Character,
				ProfilePath: c.ProfilePath,
			})
		}
	}

	if resp.Videos != nil {
		for _, v := range resp.Videos.Results {
			d.Videos = append(d.Videos, domain.Video{Key: v.Key, Type: v.Type, Site: v.Site})
		}
	}

	if resp.Similar != nil {
		d.Similar = MapTitles(resp.Similar.Results, kind)
	}

	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
