package domain

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// MediaKind distinguishes catalog record types
type MediaKind int

const (
	KindMovie MediaKind = iota
	KindSeries
	KindPerson
)

// String returns the catalog service's media_type value for the kind
func (k MediaKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "tv"
	case KindPerson:
		return "person"
	default:
		return "unknown"
	}
}

// Label returns the card label for the kind
func (k MediaKind) Label() string {
	if k == KindSeries {
		return "TV Series"
	}
	return "Movie"
}

// Badge returns the overlay badge for the kind
func (k MediaKind) Badge() string {
	if k == KindSeries {
		return "SERIES"
	}
	return "MOVIE"
}

// ParseMediaKind parses a media_type value ("movie", "tv", "person")
func ParseMediaKind(s string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return KindMovie, true
	case "tv", "series":
		return KindSeries, true
	case "person":
		return KindPerson, true
	default:
		return KindMovie, false
	}
}

// MarshalText encodes the kind as its media_type value
func (k MediaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a media_type value
func (k *MediaKind) UnmarshalText(text []byte) error {
	parsed, ok := ParseMediaKind(string(text))
	if !ok {
		return fmt.Errorf("unknown media type %q", string(text))
	}
	*k = parsed
	return nil
}

// ItemRef identifies a catalog record. The same numeric ID can denote
// both a movie and a series, so the kind always travels with it.
type ItemRef struct {
	ID   int
	Kind MediaKind
}

// CatalogItem is the normalized catalog record shared by movies and series
type CatalogItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Kind         MediaKind `json:"media_type"`
	ReleaseYear  string    `json:"release_year,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	VoteAverage  float64   `json:"vote_average,omitempty"`
	GenreIDs     []int     `json:"genre_ids,omitempty"`
}

// Ref returns the item's (id, kind) reference
func (i CatalogItem) Ref() ItemRef {
	return ItemRef{ID: i.ID, Kind: i.Kind}
}

// HasGenre reports whether the item is tagged with the genre
func (i CatalogItem) HasGenre(genreID int) bool {
	return slices.Contains(i.GenreIDs, genreID)
}

// Projection returns the trimmed copy persisted in annotation collections
func (i CatalogItem) Projection() CatalogItem {
	return CatalogItem{
		ID:          i.ID,
		Title:       i.Title,
		Kind:        i.Kind,
		ReleaseYear: i.ReleaseYear,
		PosterPath:  i.PosterPath,
		VoteAverage: i.VoteAverage,
	}
}

// Detail holds the extended fields loaded lazily for the overlay
type Detail struct {
	Ref            ItemRef
	RuntimeMinutes int
	Cast           []string
}

// Page is one page of a paged catalog endpoint
type Page struct {
	Items      []CatalogItem
	Page       int
	TotalPages int
}

// Genre is a catalog genre
type Genre struct {
	ID   int
	Name string
}

// GenreTable is an immutable genre id -> name lookup built once at startup
type GenreTable struct {
	byID   map[int]string
	sorted []Genre
}

// NewGenreTable merges genre lists. The first name seen for an ID wins.
func NewGenreTable(lists ...[]Genre) *GenreTable {
	t := &GenreTable{byID: make(map[int]string)}
	for _, list := range lists {
		for _, g := range list {
			if _, ok := t.byID[g.ID]; ok {
				continue
			}
			t.byID[g.ID] = g.Name
			t.sorted = append(t.sorted, g)
		}
	}
	sort.SliceStable(t.sorted, func(a, b int) bool {
		return strings.ToLower(t.sorted[a].Name) < strings.ToLower(t.sorted[b].Name)
	})
	return t
}

// Name returns the genre's display name
func (t *GenreTable) Name(id int) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.byID[id]
	return name, ok
}

// Genres returns the genres sorted by name
func (t *GenreTable) Genres() []Genre {
	if t == nil {
		return nil
	}
	return slices.Clone(t.sorted)
}

// Len returns the number of distinct genres
func (t *GenreTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sorted)
}
