package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	featuredPool    = 5  // Hero is picked among the top trending movies
	randomPageLimit = 10 // Random pick draws from trending pages 1..10
)

// Endpoint selects which paged catalog feed a request reads
type Endpoint int

const (
	EndpointTrending Endpoint = iota
	EndpointDiscover
	EndpointSearch
)

// String returns the endpoint name for logs
func (e Endpoint) String() string {
	switch e {
	case EndpointTrending:
		return "trending"
	case EndpointDiscover:
		return "discover"
	case EndpointSearch:
		return "search"
	default:
		return "unknown"
	}
}

// PageRequest is one fully resolved page fetch
type PageRequest struct {
	Endpoint Endpoint
	Query    string           // Search only
	Kind     domain.MediaKind // Discover only
	Genre    int              // Discover only, GenreAll for none
	Page     int
}

// BuildPageRequest derives the request for the next page of a remote view.
// Search reads search-multi; Home reads weekly trending unless a filter is set,
// in which case it discovers popular items of the filtered kind.
func BuildPageRequest(state domain.ViewState) PageRequest {
	req := PageRequest{Page: state.Page}
	switch {
	case state.Kind == domain.ViewSearch:
		req.Endpoint = EndpointSearch
		req.Query = state.Query
	case state.Filters.IsDefault():
		req.Endpoint = EndpointTrending
	default:
		req.Endpoint = EndpointDiscover
		req.Kind = state.Filters.Type.Kind()
		req.Genre = state.Filters.Genre
	}
	return req
}

// CatalogService wraps the catalog repository with the lookups the browser needs
type CatalogService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	// intN returns a random int in [0, n); swapped in tests
	intN func(n int) int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger,
		intN:   rand.IntN,
	}
}

// LoadGenres fetches movie and series genres concurrently and merges them.
// On failure the returned table is empty, never nil.
func (s *CatalogService) LoadGenres(ctx context.Context) (*domain.GenreTable, error) {
	var movie, series []domain.Genre

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movie, err = s.repo.Genres(gctx, domain.KindMovie)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.repo.Genres(gctx, domain.KindSeries)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load genres", "error", err)
		return domain.NewGenreTable(), err
	}

	table := domain.NewGenreTable(movie, series)
	s.logger.Info("loaded genres", "count", table.Len())
	return table, nil
}

// FetchPage reads one page of the requested feed
func (s *CatalogService) FetchPage(ctx context.Context, req PageRequest) (domain.Page, error) {
	switch req.Endpoint {
	case EndpointSearch:
		return s.repo.Search(ctx, req.Query, req.Page)
	case EndpointDiscover:
		return s.repo.Discover(ctx, req.Kind, req.Genre, req.Page)
	default:
		return s.repo.Trending(ctx, nil, req.Page)
	}
}

// Resolve looks an id up as a movie first and then as a series, since an id
// alone does not say which it is.
func (s *CatalogService) Resolve(ctx context.Context, id int) (*domain.CatalogItem, error) {
	item, err := s.repo.GetItem(ctx, domain.KindMovie, id)
	if err == nil {
		return item, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.logger.Debug("movie lookup failed, trying series", "id", id, "error", err)

	item, seriesErr := s.repo.GetItem(ctx, domain.KindSeries, id)
	if seriesErr != nil {
		return nil, fmt.Errorf("resolve %d: %w", id, errors.Join(err, seriesErr))
	}
	return item, nil
}

// Detail returns runtime and cast for an item
func (s *CatalogService) Detail(ctx context.Context, ref domain.ItemRef) (*domain.Detail, error) {
	return s.repo.GetDetail(ctx, ref)
}

// Featured picks a random item among the top trending movies of the week
func (s *CatalogService) Featured(ctx context.Context) (*domain.CatalogItem, error) {
	movie := domain.KindMovie
	page, err := s.repo.Trending(ctx, &movie, 1)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, domain.ErrItemNotFound
	}

	pool := page.Items[:min(featuredPool, len(page.Items))]
	item := pool[s.intN(len(pool))]
	item.Kind = domain.KindMovie
	return &item, nil
}

// Random picks a random movie or series from a random trending page
func (s *CatalogService) Random(ctx context.Context) (*domain.CatalogItem, error) {
	pageNum := s.intN(randomPageLimit) + 1
	page, err := s.repo.Trending(ctx, nil, pageNum)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.CatalogItem, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Kind != domain.KindPerson {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrItemNotFound
	}

	item := candidates[s.intN(len(candidates))]
	return &item, nil
}
