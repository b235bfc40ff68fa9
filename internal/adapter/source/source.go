package source

import (
	"log/slog"
	"net/http"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source/tmdb"
	"github.com/mmcdole/reel/internal/domain"
)

// NewCatalog creates the catalog repository from the TMDB configuration.
// httpClient may be nil.
func NewCatalog(cfg *adapter.TMDBConfig, httpClient *http.Client, logger *slog.Logger) (domain.CatalogRepository, error) {
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, adapter.ErrMissingCredentials
	}

	return tmdb.NewClient(tmdb.Options{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		AccessToken:       cfg.AccessToken,
		Language:          cfg.Language,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		HTTPClient:        httpClient,
		Logger:            logger,
	}), nil
}

// NewCatalogFromConfig creates the catalog repository from the application config
func NewCatalogFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.CatalogRepository, error) {
	return NewCatalog(&cfg.TMDB, nil, logger)
}
