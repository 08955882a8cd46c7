package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestOverlayRendersInTwoPhases(t *testing.T) {
	f := newFixture(t)
	ref := domain.ItemRef{ID: 27205, Kind: domain.KindMovie}
	f.catalog.details[ref] = &domain.Detail{Ref: ref, RuntimeMinutes: 148, Cast: []string{"Leonardo DiCaprio", "Elliot Page"}}
	item := domain.CatalogItem{ID: 27205, Title: "Inception", Kind: domain.KindMovie, VoteAverage: 8.4, PosterPath: "/p.jpg"}

	f.browser.Overlay.Open(item)

	first, ok := f.renderer.lastOverlay()
	if !ok {
		t.Fatal("nothing rendered on open")
	}
	if !first.Loading || first.Runtime != "" || first.Cast != nil {
		t.Errorf("phase one = %+v, want loading without detail", first)
	}
	if first.Title != "Inception" || first.Rating != "★ 8.4" || first.Overview != "No description available." {
		t.Errorf("phase one fields = %+v", first)
	}
	if first.BackdropURL != "https://img/w500/p.jpg" {
		t.Errorf("backdrop = %q, want poster fallback", first.BackdropURL)
	}

	f.scheduler.RunAll()

	second, _ := f.renderer.lastOverlay()
	if second.Loading || second.Runtime != "148 min" || len(second.Cast) != 2 {
		t.Errorf("phase two = %+v", second)
	}
	if second.Title != first.Title || second.Rating != first.Rating {
		t.Error("phase two dropped phase one fields")
	}
}

func TestOverlayIgnoresStaleDetail(t *testing.T) {
	f := newFixture(t)
	a := domain.ItemRef{ID: 1, Kind: domain.KindMovie}
	b := domain.ItemRef{ID: 2, Kind: domain.KindMovie}
	f.catalog.details[a] = &domain.Detail{Ref: a, RuntimeMinutes: 90}
	f.catalog.details[b] = &domain.Detail{Ref: b, RuntimeMinutes: 120}

	f.browser.Overlay.Open(domain.CatalogItem{ID: 1, Title: "A"})
	f.browser.Overlay.Open(domain.CatalogItem{ID: 2, Title: "B"})

	f.scheduler.RunNext() // A's detail arrives after B was opened
	last, _ := f.renderer.lastOverlay()
	if last.Title != "B" || !last.Loading {
		t.Fatalf("stale detail rendered: %+v", last)
	}

	f.scheduler.RunNext()
	last, _ = f.renderer.lastOverlay()
	if last.Title != "B" || last.Runtime != "120 min" {
		t.Errorf("last overlay = %+v", last)
	}
}

func TestOverlayDetailAfterCloseIsDropped(t *testing.T) {
	f := newFixture(t)
	f.browser.Overlay.Open(domain.CatalogItem{ID: 1, Title: "A"})
	f.browser.Overlay.Close()
	rendered := len(f.renderer.overlays)

	f.scheduler.RunAll()

	if len(f.renderer.overlays) != rendered {
		t.Error("detail rendered into a closed overlay")
	}
	if f.renderer.closed != 1 {
		t.Errorf("closed = %d", f.renderer.closed)
	}
}

func TestOverlayDetailFailureKeepsPhaseOne(t *testing.T) {
	f := newFixture(t)
	f.catalog.detailErr = domain.ErrServerOffline

	f.browser.Overlay.Open(domain.CatalogItem{ID: 5, Title: "Five", Overview: "plot"})
	f.scheduler.RunAll()

	last, _ := f.renderer.lastOverlay()
	if last.Loading {
		t.Error("loading marker left on after failure")
	}
	if last.Title != "Five" || last.Overview != "plot" || last.Runtime != "" {
		t.Errorf("overlay = %+v", last)
	}
}

func TestToggleRerendersLocalList(t *testing.T) {
	f := newFixture(t)
	f.browser.Router.Start("?view=favorites")
	if len(f.renderer.empty) != 1 {
		t.Fatalf("empty states = %v", f.renderer.empty)
	}

	f.browser.Router.OpenItem(domain.CatalogItem{ID: 9, Title: "Nine"})
	f.browser.Overlay.ToggleFavorite()

	view, _ := f.renderer.lastOverlay()
	if !view.Favorite || view.Watched {
		t.Errorf("overlay flags = %+v", view)
	}
	if ids := f.renderer.cardIDs(); len(ids) != 1 || ids[0] != 9 {
		t.Errorf("cards = %v, want the new favorite", ids)
	}
	if len(f.renderer.empty) != 0 {
		t.Errorf("empty state still shown: %v", f.renderer.empty)
	}

	f.browser.Overlay.ToggleFavorite()

	if len(f.renderer.cards) != 0 {
		t.Errorf("cards = %v after removal", f.renderer.cardIDs())
	}
	if len(f.renderer.empty) != 1 || f.renderer.empty[0] != "Your favorites list is empty. Go discover!" {
		t.Errorf("empty states = %v", f.renderer.empty)
	}
}

func TestToggleOtherCollectionLeavesListAlone(t *testing.T) {
	f := newFixture(t)
	f.browser.Router.Start("?view=favorites")
	clears := f.renderer.clears

	f.browser.Router.OpenItem(domain.CatalogItem{ID: 9, Title: "Nine"})
	f.browser.Overlay.ToggleWatched()

	if f.renderer.clears != clears {
		t.Error("watched toggle re-rendered the favorites list")
	}
	if !f.browser.Annotations.Has(Watched, 9) {
		t.Error("watched toggle not persisted")
	}
}

func TestSaveNoteAcknowledges(t *testing.T) {
	f := newFixture(t)
	f.browser.Overlay.Open(domain.CatalogItem{ID: 3, Title: "Three"})

	f.browser.Overlay.SaveNote("  see the director's cut  ")

	if len(f.renderer.acks) != 1 || f.renderer.acks[0] != "Note saved!" {
		t.Errorf("acks = %v", f.renderer.acks)
	}
	view, _ := f.renderer.lastOverlay()
	if view.Note == "" {
		t.Error("overlay not re-rendered with the note")
	}
	if f.browser.Annotations.Note(3) == "" {
		t.Error("note not persisted")
	}
}

func TestSaveNoteWithoutOverlay(t *testing.T) {
	f := newFixture(t)

	f.browser.Overlay.SaveNote("orphan")

	if len(f.renderer.acks) != 0 {
		t.Errorf("acks = %v", f.renderer.acks)
	}
}

func TestOpenByIDRejectsInvalidIDs(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"abc", "0", "-3", ""} {
		f.browser.Overlay.OpenByID(id)
	}

	if f.scheduler.Pending() != 0 {
		t.Errorf("pending = %d, want no lookups", f.scheduler.Pending())
	}
}

func TestOpenByIDStaleResolutionDropped(t *testing.T) {
	f := newFixture(t)
	f.catalog.items[domain.ItemRef{ID: 4, Kind: domain.KindMovie}] = domain.CatalogItem{ID: 4, Title: "Four"}

	f.browser.Overlay.OpenByID("4")
	f.browser.Overlay.Close()
	f.scheduler.RunAll()

	if f.browser.Overlay.Current() != nil {
		t.Error("resolution applied after close")
	}
}

func TestResolveErrorsJoined(t *testing.T) {
	f := newFixture(t)

	_, err := f.browser.Catalog.Resolve(t.Context(), 99)
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Resolve error = %v, want ErrItemNotFound", err)
	}
}
