package service

import (
	"log/slog"
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

// Router maps addresses to what is displayed. The current address is the
// single source of truth: every navigation pushes an address and then
// derives the view state from it.
type Router struct {
	state        *domain.ViewState
	history      *domain.History
	orchestrator *FetchOrchestrator
	overlay      *DetailOverlay
	annotations  *AnnotationService
	presenter    *Presenter
	renderer     domain.Renderer
	logger       *slog.Logger

	featured *domain.CatalogItem
	handlers []func(domain.Route)
}

// NewRouter creates a router over the given state. The state pointer is
// shared with the orchestrator, which advances its page cursor.
func NewRouter(
	state *domain.ViewState,
	orchestrator *FetchOrchestrator,
	overlay *DetailOverlay,
	annotations *AnnotationService,
	presenter *Presenter,
	renderer domain.Renderer,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		state:        state,
		history:      domain.NewHistory(domain.Route{View: domain.ViewHome}),
		orchestrator: orchestrator,
		overlay:      overlay,
		annotations:  annotations,
		presenter:    presenter,
		renderer:     renderer,
		logger:       logger,
	}
	overlay.OnAnnotationsChanged(r.annotationsChanged)
	return r
}

// State returns a copy of the current view state
func (r *Router) State() domain.ViewState {
	return *r.state
}

// Current returns the current route
func (r *Router) Current() domain.Route {
	return r.history.Current()
}

// OnRouteChanged registers a handler fired after every committed navigation
func (r *Router) OnRouteChanged(handler func(domain.Route)) {
	r.handlers = append(r.handlers, handler)
}

// Start handles the initial address without adding a history entry
func (r *Router) Start(raw string) {
	route := domain.DecodeRoute(raw)
	r.history.Replace(route)
	r.handle(route)
}

// Go handles an address typed by the user
func (r *Router) Go(raw string) {
	route := domain.DecodeRoute(raw)
	r.logger.Debug("go", "address", raw, "route", route.Encode())
	r.history.Push(route)
	r.handle(route)
}

// Navigate switches the base view. The overlay id is kept: changing the base
// view does not close the overlay.
func (r *Router) Navigate(target domain.NavTarget) {
	route := domain.Route{
		View:      target.View,
		Query:     target.Query,
		OverlayID: r.history.Current().OverlayID,
	}
	// Round-trip to the canonical form (e.g. a blank search becomes Home)
	route = domain.DecodeRoute(route.Encode())

	r.history.Push(route)
	r.handle(route)
}

// OpenItem opens the overlay for an item already at hand and records its id
// in the address. The base view is left alone.
func (r *Router) OpenItem(item domain.CatalogItem) {
	route := r.history.Current().WithOverlay(strconv.Itoa(item.ID))
	r.history.Push(route)
	r.renderer.SetAddress(route.Address())
	r.overlay.Open(item)
	r.notify(route)
}

// CloseOverlay strips the overlay id from the address and closes the panel
func (r *Router) CloseOverlay() {
	current := r.history.Current()
	if !current.HasOverlay() && r.overlay.Current() == nil {
		return
	}
	route := current.WithOverlay("")
	r.history.Push(route)
	r.renderer.SetAddress(route.Address())
	r.overlay.Close()
	r.notify(route)
}

// Back moves to the previous address
func (r *Router) Back() bool {
	route, ok := r.history.Back()
	if ok {
		r.handle(route)
	}
	return ok
}

// Forward moves to the next address
func (r *Router) Forward() bool {
	route, ok := r.history.Forward()
	if ok {
		r.handle(route)
	}
	return ok
}

// SetTypeFilter changes the type filter and reloads remote views
func (r *Router) SetTypeFilter(t domain.TypeFilter) {
	if r.state.Filters.Type == t {
		return
	}
	r.state.Filters.Type = t
	r.reload()
}

// SetGenreFilter changes the genre filter and reloads remote views
func (r *Router) SetGenreFilter(genre int) {
	if r.state.Filters.Genre == genre {
		return
	}
	r.state.Filters.Genre = genre
	r.reload()
}

// SetFeatured records the hero item and shows it when on Home
func (r *Router) SetFeatured(item domain.CatalogItem) {
	r.featured = &item
	r.renderer.RenderFeatured(r.presenter.Featured(item))
}

// Featured returns the hero item, or nil before it has loaded
func (r *Router) Featured() *domain.CatalogItem {
	return r.featured
}

// LoadMore asks for the next page of a remote view
func (r *Router) LoadMore() bool {
	return r.orchestrator.LoadNext()
}

// HasMore reports whether more pages can be loaded
func (r *Router) HasMore() bool {
	return r.orchestrator.HasMore()
}

func (r *Router) reload() {
	if r.state.Kind.IsLocal() {
		return
	}
	r.logger.Debug("filters changed", "type", r.state.Filters.Type, "genre", r.state.Filters.Genre)
	r.orchestrator.Reset()
	r.renderer.SetHeader(HeaderFor(*r.state))
	r.orchestrator.LoadNext()
}

// handle derives everything displayed from route
func (r *Router) handle(route domain.Route) {
	r.state.Kind = route.View
	r.state.Query = route.Query

	r.orchestrator.Reset()
	r.renderer.SetAddress(route.Address())
	r.renderer.SetHeader(HeaderFor(*r.state))

	if r.state.Kind.IsLocal() {
		r.renderLocalList()
	} else {
		r.orchestrator.LoadNext()
	}

	switch {
	case !route.HasOverlay():
		r.overlay.Close()
	case r.overlay.Shows(route.OverlayID):
		r.overlay.Refresh()
	default:
		r.overlay.OpenByID(route.OverlayID)
	}

	r.logger.Info("route handled", "view", route.View.String(), "query", route.Query, "overlay", route.OverlayID)
	r.notify(route)
}

func (r *Router) notify(route domain.Route) {
	for _, h := range r.handlers {
		h(route)
	}
}

// renderLocalList shows a favorites or watched list from the local store
func (r *Router) renderLocalList() {
	c, ok := CollectionFor(r.state.Kind)
	if !ok {
		return
	}

	items, err := r.annotations.List(c)
	if err != nil {
		r.logger.Error("failed to list annotations", "collection", c, "error", err)
		return
	}
	if len(items) == 0 {
		r.renderer.RenderEmptyState(EmptyListMessage(r.state.Kind))
		return
	}
	r.renderer.AppendCards(r.presenter.Cards(items))
}

// annotationsChanged re-renders the local list when the toggled collection is on screen
func (r *Router) annotationsChanged(c Collection) {
	if current, ok := CollectionFor(r.state.Kind); ok && current == c {
		r.renderer.ClearList()
		r.renderLocalList()
	}
}

// HeaderFor derives the title and visible affordances of a view
func HeaderFor(state domain.ViewState) domain.Header {
	h := domain.Header{
		Active:       state.Kind,
		ShowNav:      state.Kind != domain.ViewSearch,
		ShowControls: !state.Kind.IsLocal(),
		ShowFeatured: state.Kind == domain.ViewHome,
	}
	switch state.Kind {
	case domain.ViewSearch:
		h.Title = `Results for "` + state.Query + `"`
	case domain.ViewFavorites:
		h.Title = "My watchlist"
	case domain.ViewWatched:
		h.Title = "History (watched)"
	default:
		h.Title = "Trending now"
	}
	return h
}

// EmptyListMessage is shown for an empty favorites or watched list
func EmptyListMessage(view domain.ViewKind) string {
	name := "favorites list"
	if view == domain.ViewWatched {
		name = "watched list"
	}
	return "Your " + name + " is empty. Go discover!"
}
