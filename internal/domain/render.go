package domain

import "context"

// Card is the display record for one listed item
type Card struct {
	Item      CatalogItem // Source item, handed back when the card is selected
	Title     string
	Year      string
	KindLabel string
	PosterURL string
}

// DetailView is the display record for the overlay panel
type DetailView struct {
	Ref         ItemRef
	Title       string
	Overview    string
	Year        string
	Rating      string
	BackdropURL string
	KindBadge   string
	Runtime     string
	Cast        []string
	Loading     bool // Extended detail still in flight

	// Annotation state, re-read from storage on every render
	Favorite bool
	Watched  bool
	Note     string
}

// Header describes the title and visible affordances of the base view
type Header struct {
	Title        string
	Active       ViewKind
	ShowNav      bool // False when no nav entry is active (search)
	ShowControls bool // Type/genre filters
	ShowFeatured bool // Hero banner (home only)
}

// Featured is the hero banner record
type Featured struct {
	Card        Card
	Overview    string
	BackdropURL string
}

// Renderer is the presentation port. The core never touches presentation
// primitives directly; every visible change goes through this interface.
type Renderer interface {
	SetHeader(h Header)
	SetAddress(address string)
	ClearList()
	AppendCards(cards []Card)
	RenderEmptyState(message string)
	SetLoading(loading bool)
	RenderOverlay(view DetailView)
	CloseOverlay()
	RenderFeatured(f Featured)
	Acknowledge(message string)
}

// Job performs I/O off the event loop and returns the continuation to run on it.
// Continuations are where state is mutated and the renderer is called.
type Job func(ctx context.Context) func()

// Scheduler runs jobs. Implementations must apply every continuation on the
// single goroutine that drives the services.
type Scheduler interface {
	Schedule(job Job)
}
