package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	defaultTimeout  = 15 * time.Second
	defaultLanguage = "en-US"
	appendDetails   = "credits,videos,similar"
)

// APIError is a non-2xx response that has no dedicated sentinel
type APIError struct {
	StatusCode    int
	StatusMessage string
}

func (e *APIError) Error() string {
	if e.StatusMessage == "" {
		return fmt.Sprintf("tmdb: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.StatusMessage)
}

// Options configures a Client
type Options struct {
	BaseURL     string
	APIKey      string // sent as the api_key query parameter
	AccessToken string // v4 read access token, sent as a bearer token
	Language    string
	Timeout     time.Duration

	// RequestsPerSecond throttles outgoing calls; 0 disables throttling
	RequestsPerSecond float64

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client implements domain.CatalogRepository against the TMDB v3 API
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	language    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

var _ domain.CatalogRepository = (*Client)(nil)

// NewClient creates a new TMDB API client
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		language:    opts.Language,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.language == "" {
		c.language = defaultLanguage
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// doRequest performs an authenticated GET and decodes the JSON body into out
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	query.Set("language", c.language)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = redactURL(err)
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrTitleNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e ErrorResponse
		if json.Unmarshal(body, &e) == nil {
			apiErr.StatusMessage = e.StatusMessage
		}
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// redactURL drops the request URL from transport errors, it carries the api_key
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	return q
}

func mediaType(kind domain.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	return kind.MediaType(), nil
}

func (c *Client) list(ctx context.Context, kind domain.Kind, path string, query url.Values) ([]domain.Title, error) {
	var resp PageResponse
	if err := c.doRequest(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return MapTitles(resp.Results, kind), nil
}

// Trending returns the titles trending over window (week when empty)
func (c *Client) Trending(ctx context.Context, kind domain.Kind, window domain.TimeWindow) ([]domain.Title, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	if window != domain.WindowDay {
		window = domain.WindowWeek
	}
	return c.list(ctx, kind, fmt.Sprintf("/trending/%s/%s", mt, window), nil)
}

// Popular returns a page of popular titles
func (c *Client) Popular(ctx context.Context, kind domain.Kind, page int) ([]domain.Title, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, kind, "/"+mt+"/popular", pageQuery(page))
}

// TopRated returns a page of top rated titles
func (c *Client) TopRated(ctx context.Context, kind domain.Kind, page int) ([]domain.Title, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, kind, "/"+mt+"/top_rated", pageQuery(page))
}

// Genres returns the genre list for kind
func (c *Client) Genres(ctx context.Context, kind domain.Kind) ([]domain.Genre, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	var resp GenreListResponse
	if err := c.doRequest(ctx, "/genre/"+mt+"/list", nil, &resp); err != nil {
		return nil, err
	}
	return MapGenres(resp.Genres), nil
}

// Discover returns titles matching filter, ordered by popularity unless
// the filter says otherwise
func (c *Client) Discover(ctx context.Context, kind domain.Kind, filter domain.DiscoverFilter) (*domain.Page, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}

	q := pageQuery(filter.Page)
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = domain.DefaultSort
	}
	q.Set("sort_by", sortBy)
	if filter.Genre != "" {
		q.Set("with_genres", filter.Genre)
	}
	if filter.OriginCountry != "" {
		q.Set("with_origin_country", filter.OriginCountry)
	}

	var resp PageResponse
	if err := c.doRequest(ctx, "/discover/"+mt, q, &resp); err != nil {
		return nil, err
	}
	return MapPage(resp, kind), nil
}

// Search returns titles of kind matching query. An empty query returns an
// empty page without a request.
func (c *Client) Search(ctx context.Context, kind domain.Kind, query string, page int) (*domain.Page, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.Page{Page: 1}, nil
	}

	q := pageQuery(page)
	q.Set("query", query)

	var resp PageResponse
	if err := c.doRequest(ctx, "/search/"+mt, q, &resp); err != nil {
		return nil, err
	}
	return MapPage(resp, kind), nil
}

// SearchMulti searches films and series together. Person results are dropped,
// so a page may hold fewer entries than TotalResults suggests.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.Page{Page: 1}, nil
	}

	q := pageQuery(page)
	q.Set("query", query)

	var resp PageResponse
	if err := c.doRequest(ctx, "/search/multi", q, &resp); err != nil {
		return nil, err
	}
	return &domain.Page{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      MapMultiTitles(resp.Results),
	}, nil
}

// Details returns the full record for one title
func (c *Client) Details(ctx context.Context, kind domain.Kind, id int) (*domain.TitleDetails, error) {
	mt, err := mediaType(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrTitleNotFound, id)
	}

	q := url.Values{}
	q.Set("append_to_response", appendDetails)

	var resp DetailsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/%s/%d", mt, id), q, &resp); err != nil {
		if errors.Is(err, domain.ErrTitleNotFound) {
			return nil, fmt.Errorf("%w: %s %d", domain.ErrTitleNotFound, kind, id)
		}
		return nil, err
	}
	return MapDetails(resp, kind), nil
}
