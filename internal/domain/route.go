package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// AddressScheme prefixes addresses shown to the user
const AddressScheme = "reel://"

// Query parameter names
const (
	ParamQuery = "q"
	ParamView  = "view"
	ParamID    = "id"
)

// Route is a decoded address: the base view plus an optional overlay target
type Route struct {
	View      ViewKind
	Query     string
	OverlayID string
}

// HasOverlay returns true when the route targets the detail overlay
func (r Route) HasOverlay() bool {
	return r.OverlayID != ""
}

// DecodeRoute parses a full address, a "?query" or a bare query string.
// q wins over view; id is carried independently. Anything unparseable is Home
// with no overlay.
func DecodeRoute(raw string) Route {
	query := strings.TrimSpace(raw)
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	if i := strings.IndexByte(query, '?'); i >= 0 {
		query = query[i+1:]
	} else if strings.Contains(query, "://") {
		query = ""
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Route{View: ViewHome}
	}

	var route Route
	if q := strings.TrimSpace(values.Get(ParamQuery)); q != "" {
		route.View = ViewSearch
		route.Query = q
	} else {
		switch values.Get(ParamView) {
		case "favorites":
			route.View = ViewFavorites
		case "watched":
			route.View = ViewWatched
		default:
			route.View = ViewHome
		}
	}

	if id, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamID))); err == nil && id > 0 {
		route.OverlayID = strconv.Itoa(id)
	}
	return route
}

// Encode returns the canonical query ("?q=dune&id=42"), empty for plain Home
func (r Route) Encode() string {
	var parts []string
	switch r.View {
	case ViewSearch:
		parts = append(parts, ParamQuery+"="+url.QueryEscape(r.Query))
	case ViewFavorites, ViewWatched:
		parts = append(parts, ParamView+"="+r.View.String())
	}
	if r.OverlayID != "" {
		parts = append(parts, ParamID+"="+url.QueryEscape(r.OverlayID))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// Address returns the shareable address for the route
func (r Route) Address() string {
	return AddressScheme + r.Encode()
}

// WithOverlay returns a copy targeting the given overlay id ("" strips it)
func (r Route) WithOverlay(id string) Route {
	r.OverlayID = id
	return r
}

// History is a linear navigation history with a cursor, like a browser's
type History struct {
	entries []Route
	index   int
}

// NewHistory returns a history holding one entry
func NewHistory(initial Route) *History {
	return &History{entries: []Route{initial}}
}

// Current returns the route under the cursor
func (h *History) Current() Route {
	return h.entries[h.index]
}

// Push records a new route and discards forward entries
func (h *History) Push(r Route) {
	h.entries = append(h.entries[:h.index+1], r)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry
func (h *History) Replace(r Route) {
	h.entries[h.index] = r
}

// Back moves the cursor one entry back
func (h *History) Back() (Route, bool) {
	if h.index == 0 {
		return Route{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the cursor one entry forward
func (h *History) Forward() (Route, bool) {
	if h.index >= len(h.entries)-1 {
		return Route{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
