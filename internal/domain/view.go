package domain

import (
	"strings"
)

// ViewKind is the base view taxonomy
type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewSearch
	ViewFavorites
	ViewWatched
)

// String returns the view's name
func (v ViewKind) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewSearch:
		return "search"
	case ViewFavorites:
		return "favorites"
	case ViewWatched:
		return "watched"
	default:
		return "unknown"
	}
}

// IsLocal returns true for views rendered from the annotation store
func (v ViewKind) IsLocal() bool {
	return v == ViewFavorites || v == ViewWatched
}

// TypeFilter restricts listings by media kind
type TypeFilter int

const (
	TypeAll TypeFilter = iota
	TypeMovie
	TypeSeries
)

// String returns the filter's option value
func (t TypeFilter) String() string {
	switch t {
	case TypeMovie:
		return "movie"
	case TypeSeries:
		return "tv"
	default:
		return "all"
	}
}

// ParseTypeFilter parses a filter option value; unknown values mean All
func ParseTypeFilter(s string) TypeFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return TypeMovie
	case "tv", "series":
		return TypeSeries
	default:
		return TypeAll
	}
}

// Matches reports whether an item of the given kind passes the filter
func (t TypeFilter) Matches(kind MediaKind) bool {
	switch t {
	case TypeMovie:
		return kind == KindMovie
	case TypeSeries:
		return kind == KindSeries
	default:
		return true
	}
}

// Kind returns the media kind used for discovery; All discovers movies
func (t TypeFilter) Kind() MediaKind {
	if t == TypeSeries {
		return KindSeries
	}
	return KindMovie
}

// GenreAll means no genre constraint
const GenreAll = 0

// Filters holds the listing filters
type Filters struct {
	Type  TypeFilter
	Genre int
}

// IsDefault returns true when neither filter constrains the listing
func (f Filters) IsDefault() bool {
	return f.Type == TypeAll && f.Genre == GenreAll
}

// ViewState is what the browser is currently displaying.
// Page is reset to 1 on every view or filter change.
type ViewState struct {
	Kind       ViewKind
	Query      string
	Page       int
	TotalPages int
	Filters    Filters
}

// NewViewState returns the Home view on its first page
func NewViewState() ViewState {
	return ViewState{
		Kind:       ViewHome,
		Page:       1,
		TotalPages: 1,
	}
}

// NavTarget is a base view navigation request
type NavTarget struct {
	View  ViewKind
	Query string
}
