package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"film":   KindFilm,
		"Movie":  KindFilm,
		" films": KindFilm,
		"series": KindSeries,
		"tv":     KindSeries,
		"SHOW":   KindSeries,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("person")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestKindMediaType(t *testing.T) {
	assert.Equal(t, "movie", KindFilm.MediaType())
	assert.Equal(t, "tv", KindSeries.MediaType())
	assert.Equal(t, KindSeries, KindFilm.Other())
	assert.False(t, Kind("person").Valid())
}

func TestTitleYear(t *testing.T) {
	assert.Equal(t, 1999, Title{ReleaseDate: "1999-10-15"}.Year())
	assert.Equal(t, 0, Title{}.Year())
	assert.Equal(t, 0, Title{ReleaseDate: "TBA"}.Year())
}

func TestTitleDetails(t *testing.T) {
	d := TitleDetails{
		Title:   Title{Kind: KindFilm},
		Runtime: 139,
		Videos: []Video{
			{Key: "teaser", Type: "Teaser", Site: "YouTube"},
			{Key: "vimeo", Type: "Trailer", Site: "Vimeo"},
			{Key: "SUXWAEX2jlg", Type: "Trailer", Site: "YouTube"},
		},
		Genres: []Genre{{ID: 18, Name: "Drama"}, {ID: 53, Name: "Thriller"}},
	}

	v, ok := d.Trailer()
	require.True(t, ok)
	assert.Equal(t, "SUXWAEX2jlg", v.Key)
	assert.Equal(t, "2h 19m", d.FormattedRuntime())
	assert.Equal(t, []string{"Drama", "Thriller"}, d.GenreNames())

	series := TitleDetails{Title: Title{Kind: KindSeries}, Seasons: 1, Episodes: 8}
	assert.Equal(t, "1 Season · 8 Episodes", series.FormattedRuntime())

	_, ok = TitleDetails{}.Trailer()
	assert.False(t, ok)
}

func TestSessionFlagValidAt(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f := SessionFlag{Authenticated: true, IssuedAt: issued}

	assert.True(t, f.ValidAt(issued, DefaultSessionTTL))
	assert.True(t, f.ValidAt(issued.Add(23*time.Hour+59*time.Minute), DefaultSessionTTL))
	assert.False(t, f.ValidAt(issued.Add(24*time.Hour), DefaultSessionTTL))
	assert.False(t, SessionFlag{IssuedAt: issued}.ValidAt(issued, DefaultSessionTTL))
}
