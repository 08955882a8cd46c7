package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestFilterItems(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Kind: domain.KindPerson},
		{ID: 2, Kind: domain.KindMovie, GenreIDs: []int{28}},
	}

	got := FilterItems(items, domain.ViewSearch, domain.Filters{Type: domain.TypeMovie, Genre: 28})
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("FilterItems = %+v, want only id 2", got)
	}
}

func TestFilterItemsRules(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Kind: domain.KindMovie, GenreIDs: []int{28}},
		{ID: 2, Kind: domain.KindSeries, GenreIDs: []int{18}},
		{ID: 3, Kind: domain.KindMovie},
		{ID: 4, Kind: domain.KindPerson},
	}

	tests := []struct {
		name    string
		view    domain.ViewKind
		filters domain.Filters
		want    []int
	}{
		{"home all", domain.ViewHome, domain.Filters{}, []int{1, 2, 3}},
		{"home series", domain.ViewHome, domain.Filters{Type: domain.TypeSeries}, []int{2}},
		{"genre not enforced outside search", domain.ViewHome, domain.Filters{Genre: 28}, []int{1, 2, 3}},
		{"search genre", domain.ViewSearch, domain.Filters{Genre: 28}, []int{1}},
		{"search movie no genre", domain.ViewSearch, domain.Filters{Type: domain.TypeMovie}, []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(items, tt.view, tt.filters)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterItems = %+v, want ids %v", got, tt.want)
			}
			for i, item := range got {
				if item.ID != tt.want[i] {
					t.Fatalf("FilterItems = %+v, want ids %v", got, tt.want)
				}
			}
		})
	}
}

func TestBuildPageRequest(t *testing.T) {
	tests := []struct {
		name  string
		state domain.ViewState
		want  PageRequest
	}{
		{
			"home default filters",
			domain.ViewState{Kind: domain.ViewHome, Page: 2},
			PageRequest{Endpoint: EndpointTrending, Page: 2},
		},
		{
			"home genre only discovers movies",
			domain.ViewState{Kind: domain.ViewHome, Page: 1, Filters: domain.Filters{Genre: 35}},
			PageRequest{Endpoint: EndpointDiscover, Kind: domain.KindMovie, Genre: 35, Page: 1},
		},
		{
			"home series",
			domain.ViewState{Kind: domain.ViewHome, Page: 3, Filters: domain.Filters{Type: domain.TypeSeries}},
			PageRequest{Endpoint: EndpointDiscover, Kind: domain.KindSeries, Page: 3},
		},
		{
			"search ignores filters for endpoint choice",
			domain.ViewState{Kind: domain.ViewSearch, Query: "dune", Page: 1, Filters: domain.Filters{Genre: 35}},
			PageRequest{Endpoint: EndpointSearch, Query: "dune", Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPageRequest(tt.state); got != tt.want {
				t.Errorf("BuildPageRequest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadNextCollapsesConcurrentCalls(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(_ *domain.MediaKind, page int) (domain.Page, error) {
		return pageOf(page, 5, page*100, 3), nil
	}
	o := f.browser.Orchestrator

	if !o.LoadNext() {
		t.Fatal("first LoadNext issued nothing")
	}
	if o.LoadNext() {
		t.Error("second LoadNext issued a request while one was in flight")
	}
	if f.scheduler.Pending() != 1 {
		t.Fatalf("pending jobs = %d, want 1", f.scheduler.Pending())
	}
	if !f.renderer.loading {
		t.Error("loading indicator not shown")
	}

	f.scheduler.RunAll()

	if n := f.catalog.count("trending:all:1"); n != 1 {
		t.Errorf("trending page 1 requested %d times", n)
	}
	if st := f.browser.Router.State(); st.Page != 2 || st.TotalPages != 5 {
		t.Errorf("state = %+v, want page 2 of 5", st)
	}
	if len(f.renderer.cards) != 3 {
		t.Errorf("cards = %d, want 3", len(f.renderer.cards))
	}
	if f.renderer.loading {
		t.Error("loading indicator left on")
	}
}

func TestEmptyFirstPage(t *testing.T) {
	f := newFixture(t)
	f.catalog.search = func(string, int) (domain.Page, error) {
		return domain.Page{Page: 1, TotalPages: 0}, nil
	}

	f.browser.Router.Start("?q=zzzz")
	f.scheduler.RunAll()

	if len(f.renderer.empty) != 1 || f.renderer.empty[0] != noResultsMessage {
		t.Errorf("empty states = %v, want exactly one", f.renderer.empty)
	}
	if len(f.renderer.cards) != 0 {
		t.Errorf("cards = %v", f.renderer.cards)
	}
	if st := f.browser.Router.State(); st.Page != 1 {
		t.Errorf("Page = %d, want 1", st.Page)
	}
	if f.browser.Orchestrator.LoadNext() {
		t.Error("LoadNext after an empty first page issued a request")
	}
}

func TestEmptyLaterPageEndsSequence(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(_ *domain.MediaKind, page int) (domain.Page, error) {
		if page == 1 {
			return pageOf(1, 10, 1, 2), nil
		}
		return domain.Page{Page: page, TotalPages: 10}, nil
	}
	o := f.browser.Orchestrator

	o.LoadNext()
	f.scheduler.RunAll()
	o.LoadNext()
	f.scheduler.RunAll()

	if len(f.renderer.empty) != 0 {
		t.Errorf("empty states = %v, want none for a later page", f.renderer.empty)
	}
	if st := f.browser.Router.State(); st.Page != 2 {
		t.Errorf("Page = %d, want 2", st.Page)
	}
	if o.LoadNext() {
		t.Error("LoadNext after an empty page issued a request")
	}
}

func TestStopsAtTotalPages(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(_ *domain.MediaKind, page int) (domain.Page, error) {
		return pageOf(page, 2, page*10, 1), nil
	}
	o := f.browser.Orchestrator

	for i := 0; i < 2; i++ {
		if !o.LoadNext() {
			t.Fatalf("LoadNext %d issued nothing", i+1)
		}
		f.scheduler.RunAll()
	}
	if o.LoadNext() {
		t.Error("LoadNext past the last page issued a request")
	}
	if ids := f.renderer.cardIDs(); len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("cards = %v", ids)
	}
}

func TestFailureReleasesGuard(t *testing.T) {
	f := newFixture(t)
	fail := true
	f.catalog.trending = func(_ *domain.MediaKind, page int) (domain.Page, error) {
		if fail {
			return domain.Page{}, domain.ErrServerOffline
		}
		return pageOf(page, 3, 1, 2), nil
	}
	o := f.browser.Orchestrator

	o.LoadNext()
	f.scheduler.RunAll()

	if o.InFlight() {
		t.Fatal("guard still held after failure")
	}
	if st := f.browser.Router.State(); st.Page != 1 || st.TotalPages != 1 {
		t.Errorf("state changed on failure: %+v", st)
	}
	if f.renderer.loading {
		t.Error("loading indicator left on after failure")
	}
	if !o.Failed() {
		t.Error("Failed not set after a failed request")
	}

	fail = false
	if !o.LoadNext() {
		t.Fatal("LoadNext after failure issued nothing")
	}
	f.scheduler.RunAll()
	if len(f.renderer.cards) != 2 {
		t.Errorf("cards = %d, want 2", len(f.renderer.cards))
	}
	if o.Failed() {
		t.Error("Failed still set after a successful request")
	}
}

func TestResetClearsFailure(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(*domain.MediaKind, int) (domain.Page, error) {
		return domain.Page{}, domain.ErrServerOffline
	}
	o := f.browser.Orchestrator

	o.LoadNext()
	f.scheduler.RunAll()
	if !o.Failed() {
		t.Fatal("Failed not set")
	}
	o.Reset()
	if o.Failed() {
		t.Error("Reset kept the failure of the previous view")
	}
}

func TestResetDiscardsStaleResponse(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(_ *domain.MediaKind, page int) (domain.Page, error) {
		return pageOf(page, 9, 1, 4), nil
	}
	f.catalog.search = func(string, int) (domain.Page, error) {
		return pageOf(1, 1, 500, 1), nil
	}

	f.browser.Router.Start("")     // Home request queued
	f.browser.Router.Go("?q=dune") // Search request queued after reset
	if f.scheduler.Pending() != 2 {
		t.Fatalf("pending = %d, want the orphaned home request and the search", f.scheduler.Pending())
	}

	f.scheduler.RunAll()

	if ids := f.renderer.cardIDs(); len(ids) != 1 || ids[0] != 500 {
		t.Errorf("cards = %v, want only the search result", ids)
	}
	st := f.browser.Router.State()
	if st.Page != 2 || st.TotalPages != 1 {
		t.Errorf("state = %+v, want search page cursor only", st)
	}
	if f.browser.Orchestrator.InFlight() {
		t.Error("guard still held")
	}
}

func TestStaleFailureDoesNotReleaseNewGuard(t *testing.T) {
	f := newFixture(t)
	f.catalog.trending = func(*domain.MediaKind, int) (domain.Page, error) {
		return domain.Page{}, errors.New("boom")
	}
	o := f.browser.Orchestrator

	o.LoadNext()
	o.Reset()
	o.LoadNext()

	f.scheduler.RunNext() // stale failure
	if !o.InFlight() {
		t.Error("stale response released the current request's guard")
	}
	f.scheduler.RunNext()
	if o.InFlight() {
		t.Error("guard not released by the current response")
	}
}

func TestLocalViewNeverFetches(t *testing.T) {
	f := newFixture(t)
	f.browser.Router.Start("?view=favorites")

	if f.browser.Orchestrator.LoadNext() {
		t.Error("LoadNext on a local view issued a request")
	}
	if f.scheduler.Pending() != 0 {
		t.Errorf("pending = %d", f.scheduler.Pending())
	}
}
