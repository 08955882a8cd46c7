package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestTextCardsAndCount(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	r.AppendCards([]domain.Card{
		{Item: domain.CatalogItem{ID: 603}, Title: "The Matrix", Year: "1999", KindLabel: "Movie"},
		{Item: domain.CatalogItem{ID: 1}, Title: "Untitled", KindLabel: "TV Series"},
	})

	out := buf.String()
	if !strings.Contains(out, "[603] The Matrix (1999)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Untitled (----)") {
		t.Errorf("missing year placeholder: %q", out)
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d", r.Count())
	}
	r.ClearList()
	if r.Count() != 0 {
		t.Errorf("Count after clear = %d", r.Count())
	}
}

func TestTextOverlaySkipsLoadingPhase(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	view := domain.DetailView{Title: "Heat", Rating: "★ 7.9", Year: "1995", Overview: "A heist.", Loading: true}
	r.RenderOverlay(view)
	if buf.Len() != 0 {
		t.Fatalf("loading phase printed: %q", buf.String())
	}

	view.Loading = false
	view.Runtime = "170 min"
	view.Cast = []string{"Al Pacino", "Robert De Niro"}
	view.Favorite = true
	view.Note = "rewatch"
	r.RenderOverlay(view)

	out := buf.String()
	for _, want := range []string{"Heat", "★ 7.9 · 1995 · 170 min", "favorite", "A heist.", "Cast: Al Pacino, Robert De Niro", "Note: rewatch"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFeaturedFollowsHeader(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	hero := domain.Featured{Card: domain.Card{Title: "Dune", Year: "2021"}}

	r.SetHeader(domain.Header{Title: `Results for "dune"`})
	r.RenderFeatured(hero)
	if strings.Contains(buf.String(), "Featured:") {
		t.Errorf("hero printed under a search header: %q", buf.String())
	}

	r.SetHeader(domain.Header{Title: "Trending now", ShowFeatured: true})
	r.RenderFeatured(hero)
	if !strings.Contains(buf.String(), "Featured: Dune (2021)") {
		t.Errorf("hero missing on home: %q", buf.String())
	}
}
