package domain

import "context"

// CatalogRepository: Network operations against the remote catalog service
// (implemented by the tmdb client). All methods may block on network I/O.
type CatalogRepository interface {
	// Genres returns the genre list for movies or series
	Genres(ctx context.Context, kind MediaKind) ([]Genre, error)

	// Trending returns a page of the weekly trending feed. A nil kind means all kinds.
	Trending(ctx context.Context, kind *MediaKind, page int) (Page, error)

	// Discover returns a page of popular items of one kind, optionally constrained by genre
	Discover(ctx context.Context, kind MediaKind, genre int, page int) (Page, error)

	// Search returns a page of mixed movie/series/person matches
	Search(ctx context.Context, query string, page int) (Page, error)

	// GetItem returns one record; ErrItemNotFound when the id does not exist for that kind
	GetItem(ctx context.Context, kind MediaKind, id int) (*CatalogItem, error)

	// GetDetail returns runtime and credits for one record
	GetDetail(ctx context.Context, ref ItemRef) (*Detail, error)
}

// KeyValueStore is the synchronous local persistence substrate.
// Values are whole documents: callers read fully and rewrite fully.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// AuthResult contains the result of a successful credential check
type AuthResult struct {
	APIKey string
}

// AuthFlow obtains and validates a catalog credential interactively
type AuthFlow interface {
	Run(ctx context.Context) (*AuthResult, error)
}
