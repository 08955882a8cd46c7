package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultRequestTimeout = 15 * time.Second
	noResultsMessage      = "No results found."
)

// FilterItems drops what a remote listing never shows: persons, kinds outside
// the type filter and, in search (which cannot filter server-side), items
// without the selected genre.
func FilterItems(items []domain.CatalogItem, view domain.ViewKind, filters domain.Filters) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Kind == domain.KindPerson {
			continue
		}
		if !filters.Type.Matches(item.Kind) {
			continue
		}
		if view == domain.ViewSearch && filters.Genre != domain.GenreAll && !item.HasGenre(filters.Genre) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FetchOrchestrator pages through the remote feed of the current view.
// At most one page request is outstanding; calls made while one is in flight
// are dropped. Responses issued before the last Reset are discarded.
type FetchOrchestrator struct {
	state     *domain.ViewState
	catalog   *CatalogService
	presenter *Presenter
	renderer  domain.Renderer
	scheduler domain.Scheduler
	logger    *slog.Logger
	timeout   time.Duration

	inFlight   bool
	exhausted  bool // An empty page ended the sequence
	failed     bool // The last request for the current view failed
	generation uint64
}

// NewFetchOrchestrator creates an orchestrator paging the given view state
func NewFetchOrchestrator(
	state *domain.ViewState,
	catalog *CatalogService,
	presenter *Presenter,
	renderer domain.Renderer,
	scheduler domain.Scheduler,
	logger *slog.Logger,
) *FetchOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchOrchestrator{
		state:     state,
		catalog:   catalog,
		presenter: presenter,
		renderer:  renderer,
		scheduler: scheduler,
		logger:    logger,
		timeout:   defaultRequestTimeout,
	}
}

// SetRequestTimeout bounds each page request
func (o *FetchOrchestrator) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		o.timeout = d
	}
}

// InFlight reports whether a page request is outstanding
func (o *FetchOrchestrator) InFlight() bool {
	return o.inFlight
}

// Failed reports whether the last request of the current view failed.
// Callers that page automatically wait for user input before retrying.
func (o *FetchOrchestrator) Failed() bool {
	return o.failed
}

// HasMore reports whether LoadNext could issue another request
func (o *FetchOrchestrator) HasMore() bool {
	return !o.state.Kind.IsLocal() && !o.exhausted && o.state.Page <= o.state.TotalPages
}

// LoadNext requests the next page. It reports whether a request was issued.
func (o *FetchOrchestrator) LoadNext() bool {
	if o.inFlight || !o.HasMore() {
		return false
	}

	o.inFlight = true
	gen := o.generation
	req := BuildPageRequest(*o.state)
	timeout := o.timeout

	o.logger.Debug("loading page", "endpoint", req.Endpoint, "page", req.Page, "generation", gen)
	o.renderer.SetLoading(true)

	o.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		page, err := o.catalog.FetchPage(ctx, req)
		return func() { o.complete(gen, req, page, err) }
	})
	return true
}

// complete applies a page response on the event loop
func (o *FetchOrchestrator) complete(gen uint64, req PageRequest, page domain.Page, err error) {
	if gen != o.generation {
		// Reset already released the guard and cleared the list
		o.logger.Debug("discarding stale page", "endpoint", req.Endpoint, "page", req.Page,
			"generation", gen, "current", o.generation)
		return
	}

	o.inFlight = false
	o.renderer.SetLoading(false)

	if err != nil {
		o.failed = true
		o.logger.Error("failed to load page", "endpoint", req.Endpoint, "page", req.Page, "error", err)
		return
	}
	o.failed = false

	o.state.TotalPages = max(page.TotalPages, 1)

	if len(page.Items) == 0 {
		if req.Page == 1 {
			o.renderer.RenderEmptyState(noResultsMessage)
		}
		o.exhausted = true
		o.logger.Debug("feed exhausted", "endpoint", req.Endpoint, "page", req.Page)
		return
	}

	items := FilterItems(page.Items, o.state.Kind, o.state.Filters)
	if len(items) > 0 {
		o.renderer.AppendCards(o.presenter.Cards(items))
	}
	o.state.Page = req.Page + 1

	o.logger.Debug("page loaded", "endpoint", req.Endpoint, "page", req.Page,
		"received", len(page.Items), "shown", len(items), "totalPages", o.state.TotalPages)
}

// Reset returns to the first page, clears the list and orphans any in-flight request
func (o *FetchOrchestrator) Reset() {
	o.generation++
	o.inFlight = false
	o.exhausted = false
	o.failed = false
	o.state.Page = 1
	o.state.TotalPages = 1
	o.renderer.ClearList()
	o.renderer.SetLoading(false)
}
