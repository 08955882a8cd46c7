package source

import (
	"log/slog"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source/tmdb"
	"github.com/mmcdole/reel/internal/domain"
)

// NewAuthFlow creates the interactive credential flow for the configured catalog
func NewAuthFlow(cfg *adapter.Config, logger *slog.Logger) domain.AuthFlow {
	return tmdb.NewAuthFlow(ClientConfig(&cfg.Catalog), logger)
}
