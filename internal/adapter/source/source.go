package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source/tmdb"
	"github.com/mmcdole/reel/internal/domain"
)

// Catalog combines the repository interface with the credential check the
// setup command needs.
type Catalog interface {
	domain.CatalogRepository
	Validate(ctx context.Context) error
}

// ClientConfig maps application config onto the catalog client settings
func ClientConfig(cfg *adapter.CatalogConfig) tmdb.Config {
	return tmdb.Config{
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Language:        cfg.Language,
		Timeout:         cfg.RequestTimeout,
		MaxRetries:      cfg.MaxRetries,
		BreakerFailures: cfg.BreakerFailures,
	}
}

// NewClientFromConfig creates a Catalog from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}
	if cfg.Catalog.APIKey == "" {
		return nil, fmt.Errorf("catalog API key is required, run 'reel setup'")
	}
	return tmdb.NewClient(ClientConfig(&cfg.Catalog), logger), nil
}
