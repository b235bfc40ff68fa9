package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/reel/internal/domain"
)

// ErrMalformedRecord indicates a stored value failed to decode or validate
var ErrMalformedRecord = errors.New("malformed stored record")

// RecordError reports which key held the malformed record
type RecordError struct {
	Key string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrMalformedRecord, e.Key, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

var validate = validator.New()

// entryRecord is the persisted layout of one curated entry
type entryRecord struct {
	ID      int                 `json:"id" validate:"gt=0"`
	Kind    domain.Kind         `json:"kind" validate:"oneof=film series"`
	Payload domain.TitleDetails `json:"payload"`
	AddedAt time.Time           `json:"addedAt" validate:"required"`
}

type statsRecord struct {
	TotalFilms  int       `json:"totalFilms" validate:"gte=0"`
	TotalSeries int       `json:"totalSeries" validate:"gte=0"`
	TotalViews  int       `json:"totalViews" validate:"gte=0"`
	LastUpdated time.Time `json:"lastUpdated" validate:"required"`
}

type sessionRecord struct {
	Authenticated bool      `json:"authenticated"`
	IssuedAt      time.Time `json:"issuedAt" validate:"required"`
}

func decodeEntries(key string, data []byte) ([]entryRecord, error) {
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &RecordError{Key: key, Err: err}
	}
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, &RecordError{Key: key, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if r.Payload.ID != r.ID {
			return nil, &RecordError{Key: key, Err: fmt.Errorf("entry %d: payload id %d does not match %d", i, r.Payload.ID, r.ID)}
		}
	}
	return records, nil
}

func decodeStats(key string, data []byte) (statsRecord, error) {
	var rec statsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, &RecordError{Key: key, Err: err}
	}
	if err := validate.Struct(rec); err != nil {
		return rec, &RecordError{Key: key, Err: err}
	}
	return rec, nil
}

func decodeSession(key string, data []byte) (sessionRecord, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, &RecordError{Key: key, Err: err}
	}
	if err := validate.Struct(rec); err != nil {
		return rec, &RecordError{Key: key, Err: err}
	}
	return rec, nil
}

func (r entryRecord) toDomain() domain.CuratedEntry {
	return domain.CuratedEntry{ID: r.ID, Kind: r.Kind, Payload: r.Payload, AddedAt: r.AddedAt}
}

func (r statsRecord) toDomain() domain.SiteStats {
	return domain.SiteStats{
		TotalFilms:  r.TotalFilms,
		TotalSeries: r.TotalSeries,
		TotalViews:  r.TotalViews,
		LastUpdated: r.LastUpdated,
	}
}
