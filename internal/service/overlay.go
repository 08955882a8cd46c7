package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const noteSavedMessage = "Note saved!"

// DetailOverlay owns the detail panel. It renders what it already knows at
// once and merges extended detail when it arrives. Annotation state is read
// from storage on every render.
type DetailOverlay struct {
	catalog     *CatalogService
	annotations *AnnotationService
	presenter   *Presenter
	renderer    domain.Renderer
	scheduler   domain.Scheduler
	logger      *slog.Logger
	timeout     time.Duration

	item   *domain.CatalogItem
	detail *domain.Detail

	// generation changes on every open and close; async results carry the
	// value they were issued under and are dropped when it no longer matches
	generation uint64

	onChange func(c Collection)
}

// NewDetailOverlay creates the overlay controller
func NewDetailOverlay(
	catalog *CatalogService,
	annotations *AnnotationService,
	presenter *Presenter,
	renderer domain.Renderer,
	scheduler domain.Scheduler,
	logger *slog.Logger,
) *DetailOverlay {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailOverlay{
		catalog:     catalog,
		annotations: annotations,
		presenter:   presenter,
		renderer:    renderer,
		scheduler:   scheduler,
		logger:      logger,
		timeout:     defaultRequestTimeout,
	}
}

// SetRequestTimeout bounds each detail request
func (d *DetailOverlay) SetRequestTimeout(t time.Duration) {
	if t > 0 {
		d.timeout = t
	}
}

// OnAnnotationsChanged registers a callback fired after a successful toggle
func (d *DetailOverlay) OnAnnotationsChanged(fn func(c Collection)) {
	d.onChange = fn
}

// Current returns the item shown, or nil when closed
func (d *DetailOverlay) Current() *domain.CatalogItem {
	if d.item == nil {
		return nil
	}
	item := *d.item
	return &item
}

// Shows reports whether the overlay currently shows id
func (d *DetailOverlay) Shows(id string) bool {
	return d.item != nil && strconv.Itoa(d.item.ID) == id
}

// Open shows item and starts loading its runtime and cast
func (d *DetailOverlay) Open(item domain.CatalogItem) {
	d.generation++
	d.item = &item
	d.detail = nil
	d.render()

	gen := d.generation
	ref := item.Ref()
	timeout := d.timeout
	d.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		detail, err := d.catalog.Detail(ctx, ref)
		return func() {
			if gen != d.generation {
				return
			}
			if err != nil {
				d.logger.Error("failed to load detail", "id", ref.ID, "kind", ref.Kind, "error", err)
				// Keep what is shown; stop the loading marker
				d.detail = &domain.Detail{Ref: ref}
				d.render()
				return
			}
			d.detail = detail
			d.render()
		}
	})
}

// OpenByID resolves a deep-linked id (movie first, then series) and opens it.
// Invalid or unresolvable ids are logged and leave the overlay closed.
func (d *DetailOverlay) OpenByID(id string) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		d.logger.Warn("ignoring invalid overlay id", "id", id, "error", domain.ErrInvalidID)
		return
	}

	d.generation++
	gen := d.generation
	timeout := d.timeout
	d.scheduler.Schedule(func(ctx context.Context) func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		item, err := d.catalog.Resolve(ctx, n)
		return func() {
			if gen != d.generation {
				d.logger.Debug("discarding stale overlay resolution", "id", n)
				return
			}
			if err != nil {
				d.logger.Error("failed to resolve overlay id", "id", n, "error", err)
				return
			}
			d.Open(*item)
		}
	})
}

// Close clears the overlay. The address is left to the router.
func (d *DetailOverlay) Close() {
	d.generation++
	if d.item == nil {
		return
	}
	d.item = nil
	d.detail = nil
	d.renderer.CloseOverlay()
}

// Refresh re-renders the open item with fresh annotation state
func (d *DetailOverlay) Refresh() {
	if d.item != nil {
		d.render()
	}
}

// ToggleFavorite flips the open item's favorite membership
func (d *DetailOverlay) ToggleFavorite() {
	d.toggle(Favorites)
}

// ToggleWatched flips the open item's watched membership
func (d *DetailOverlay) ToggleWatched() {
	d.toggle(Watched)
}

func (d *DetailOverlay) toggle(c Collection) {
	if d.item == nil {
		return
	}
	if _, err := d.annotations.Toggle(c, *d.item); err != nil {
		d.logger.Error("failed to toggle annotation", "collection", c, "id", d.item.ID, "error", err)
	}
	d.render()
	if d.onChange != nil {
		d.onChange(c)
	}
}

// SaveNote stores the note for the open item and acknowledges it
func (d *DetailOverlay) SaveNote(text string) {
	if d.item == nil {
		return
	}
	if err := d.annotations.SetNote(d.item.ID, text); err != nil {
		d.logger.Error("failed to save note", "id", d.item.ID, "error", err)
		return
	}
	d.render()
	d.renderer.Acknowledge(noteSavedMessage)
}

func (d *DetailOverlay) render() {
	item := *d.item
	view := d.presenter.DetailView(item, d.detail,
		d.annotations.Has(Favorites, item.ID),
		d.annotations.Has(Watched, item.ID),
		d.annotations.Note(item.ID),
	)
	d.renderer.RenderOverlay(view)
}
