package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

// fakeRenderer records everything the core asks the presentation layer to do
type fakeRenderer struct {
	headers  []domain.Header
	address  string
	cards    []domain.Card
	clears   int
	empty    []string
	loading  bool
	overlays []domain.DetailView
	closed   int
	featured []domain.Featured
	acks     []string
}

func (r *fakeRenderer) SetHeader(h domain.Header) { r.headers = append(r.headers, h) }

func (r *fakeRenderer) SetAddress(address string) { r.address = address }

func (r *fakeRenderer) AppendCards(c []domain.Card) { r.cards = append(r.cards, c...) }

func (r *fakeRenderer) RenderEmptyState(msg string) { r.empty = append(r.empty, msg) }

func (r *fakeRenderer) SetLoading(loading bool) { r.loading = loading }

func (r *fakeRenderer) RenderOverlay(v domain.DetailView) { r.overlays = append(r.overlays, v) }

func (r *fakeRenderer) CloseOverlay() { r.closed++ }

func (r *fakeRenderer) RenderFeatured(f domain.Featured) { r.featured = append(r.featured, f) }

func (r *fakeRenderer) Acknowledge(msg string) { r.acks = append(r.acks, msg) }

func (r *fakeRenderer) ClearList() {
	r.clears++
	r.cards = nil
	r.empty = nil
}

func (r *fakeRenderer) lastHeader() domain.Header {
	if len(r.headers) == 0 {
		return domain.Header{}
	}
	return r.headers[len(r.headers)-1]
}

func (r *fakeRenderer) lastOverlay() (domain.DetailView, bool) {
	if len(r.overlays) == 0 {
		return domain.DetailView{}, false
	}
	return r.overlays[len(r.overlays)-1], true
}

func (r *fakeRenderer) cardIDs() []int {
	ids := make([]int, 0, len(r.cards))
	for _, c := range r.cards {
		ids = append(ids, c.Item.ID)
	}
	return ids
}

// queueScheduler holds jobs until the test runs them, which lets a test keep
// a request "in flight" while it makes more calls
type queueScheduler struct {
	jobs []domain.Job
}

func (s *queueScheduler) Schedule(job domain.Job) {
	s.jobs = append(s.jobs, job)
}

func (s *queueScheduler) Pending() int {
	return len(s.jobs)
}

// RunAll runs queued jobs, including those scheduled by continuations, in FIFO order
func (s *queueScheduler) RunAll() {
	for len(s.jobs) > 0 {
		s.RunNext()
	}
}

func (s *queueScheduler) RunNext() {
	job := s.jobs[0]
	s.jobs = s.jobs[1:]
	if apply := job(context.Background()); apply != nil {
		apply()
	}
}

// fakeCatalog is a scripted domain.CatalogRepository
type fakeCatalog struct {
	mu    sync.Mutex
	calls []string

	genres    map[domain.MediaKind][]domain.Genre
	genresErr error

	trending func(kind *domain.MediaKind, page int) (domain.Page, error)
	discover func(kind domain.MediaKind, genre, page int) (domain.Page, error)
	search   func(query string, page int) (domain.Page, error)

	items     map[domain.ItemRef]domain.CatalogItem
	details   map[domain.ItemRef]*domain.Detail
	detailErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items:   make(map[domain.ItemRef]domain.CatalogItem),
		details: make(map[domain.ItemRef]*domain.Detail),
	}
}

func (f *fakeCatalog) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeCatalog) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) Genres(ctx context.Context, kind domain.MediaKind) ([]domain.Genre, error) {
	f.record("genres:%s", kind)
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres[kind], nil
}

func (f *fakeCatalog) Trending(ctx context.Context, kind *domain.MediaKind, page int) (domain.Page, error) {
	scope := "all"
	if kind != nil {
		scope = kind.String()
	}
	f.record("trending:%s:%d", scope, page)
	if f.trending == nil {
		return domain.Page{Page: page, TotalPages: 1}, nil
	}
	return f.trending(kind, page)
}

func (f *fakeCatalog) Discover(ctx context.Context, kind domain.MediaKind, genre, page int) (domain.Page, error) {
	f.record("discover:%s:%d:%d", kind, genre, page)
	if f.discover == nil {
		return domain.Page{Page: page, TotalPages: 1}, nil
	}
	return f.discover(kind, genre, page)
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	f.record("search:%s:%d", query, page)
	if f.search == nil {
		return domain.Page{Page: page, TotalPages: 1}, nil
	}
	return f.search(query, page)
}

func (f *fakeCatalog) GetItem(ctx context.Context, kind domain.MediaKind, id int) (*domain.CatalogItem, error) {
	f.record("item:%s:%d", kind, id)
	item, ok := f.items[domain.ItemRef{ID: id, Kind: kind}]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (f *fakeCatalog) GetDetail(ctx context.Context, ref domain.ItemRef) (*domain.Detail, error) {
	f.record("detail:%s:%d", ref.Kind, ref.ID)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[ref]; ok {
		return d, nil
	}
	return &domain.Detail{Ref: ref}, nil
}

// pageOf builds a page of movies with ids start..start+n-1
func pageOf(page, totalPages, start, n int) domain.Page {
	p := domain.Page{Page: page, TotalPages: totalPages}
	for i := 0; i < n; i++ {
		p.Items = append(p.Items, domain.CatalogItem{
			ID:    start + i,
			Title: fmt.Sprintf("Movie %d", start+i),
			Kind:  domain.KindMovie,
		})
	}
	return p
}

type fixture struct {
	browser   *Browser
	catalog   *fakeCatalog
	renderer  *fakeRenderer
	scheduler *queueScheduler
	store     *store.LocalStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv, err := store.NewLocalStore("")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	f := &fixture{
		catalog:   newFakeCatalog(),
		renderer:  &fakeRenderer{},
		scheduler: &queueScheduler{},
		store:     kv,
	}
	f.browser = NewBrowser(BrowserConfig{
		Catalog:   f.catalog,
		Store:     kv,
		Presenter: NewPresenter("https://img/w500", "https://img/original", "https://web"),
		Renderer:  f.renderer,
		Scheduler: f.scheduler,
		Logger:    discardLogger(),
	})
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
