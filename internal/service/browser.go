package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// URLOpener opens a URL outside the application
type URLOpener interface {
	Open(url string) error
}

// Browser wires the router, orchestrator, overlay and annotation store
// around one view state, renderer and scheduler.
type Browser struct {
	Router       *Router
	Overlay      *DetailOverlay
	Orchestrator *FetchOrchestrator
	Catalog      *CatalogService
	Annotations  *AnnotationService
	Presenter    *Presenter

	state     *domain.ViewState
	genres    *domain.GenreTable
	renderer  domain.Renderer
	scheduler domain.Scheduler
	logger    *slog.Logger
	timeout   time.Duration

	recommending bool
}

// BrowserConfig holds the collaborators of a Browser
type BrowserConfig struct {
	Catalog        domain.CatalogRepository
	Store          domain.KeyValueStore
	Presenter      *Presenter
	Renderer       domain.Renderer
	Scheduler      domain.Scheduler
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewBrowser creates a browser on the Home view
func NewBrowser(cfg BrowserConfig) *Browser {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	state := domain.NewViewState()
	catalog := NewCatalogService(cfg.Catalog, logger)
	annotations := NewAnnotationService(cfg.Store, logger)

	orchestrator := NewFetchOrchestrator(&state, catalog, cfg.Presenter, cfg.Renderer, cfg.Scheduler, logger)
	orchestrator.SetRequestTimeout(timeout)

	overlay := NewDetailOverlay(catalog, annotations, cfg.Presenter, cfg.Renderer, cfg.Scheduler, logger)
	overlay.SetRequestTimeout(timeout)

	router := NewRouter(&state, orchestrator, overlay, annotations, cfg.Presenter, cfg.Renderer, logger)

	return &Browser{
		Router:       router,
		Overlay:      overlay,
		Orchestrator: orchestrator,
		Catalog:      catalog,
		Annotations:  annotations,
		Presenter:    cfg.Presenter,
		state:        &state,
		genres:       domain.NewGenreTable(),
		renderer:     cfg.Renderer,
		scheduler:    cfg.Scheduler,
		logger:       logger,
		timeout:      timeout,
	}
}

// Start loads the genre table and the hero item in the background and
// displays the initial address.
func (b *Browser) Start(address string) {
	b.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		table, _ := b.Catalog.LoadGenres(ctx)
		return func() { b.genres = table }
	})

	b.Router.Start(address)

	// After the route so an inline scheduler sees the initial view's header
	b.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		item, err := b.Catalog.Featured(ctx)
		return func() {
			if err != nil {
				b.logger.Error("failed to load featured item", "error", err)
				return
			}
			b.Router.SetFeatured(*item)
		}
	})
}

// Genres returns the genre table (empty until loaded)
func (b *Browser) Genres() *domain.GenreTable {
	return b.genres
}

// Recommend opens the overlay for a random trending item. Ignored while a
// previous pick is still loading.
func (b *Browser) Recommend() bool {
	if b.recommending {
		return false
	}
	b.recommending = true

	b.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		item, err := b.Catalog.Random(ctx)
		return func() {
			b.recommending = false
			if err != nil {
				b.logger.Error("random recommendation failed", "error", err)
				return
			}
			b.Router.OpenItem(*item)
		}
	})
	return true
}

// OpenFeatured opens the overlay for the hero item
func (b *Browser) OpenFeatured() bool {
	item := b.Router.Featured()
	if item == nil {
		return false
	}
	b.Router.OpenItem(*item)
	return true
}

// ShareURL returns the public web page of the open item, or "" when closed
func (b *Browser) ShareURL() string {
	item := b.Overlay.Current()
	if item == nil {
		return ""
	}
	return b.Presenter.ShareURL(item.Ref())
}

// OpenShareURL opens the open item's public web page
func (b *Browser) OpenShareURL(opener URLOpener) error {
	url := b.ShareURL()
	if url == "" {
		return fmt.Errorf("no item open")
	}
	return opener.Open(url)
}
