package tmdb

import (
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestNormalizeItemKind(t *testing.T) {
	tests := []struct {
		name string
		raw  RawItem
		want domain.MediaKind
	}{
		{"explicit movie", RawItem{ID: 1, Title: "Dune", MediaType: "movie"}, domain.KindMovie},
		{"explicit tv wins over title", RawItem{ID: 2, Title: "Odd", MediaType: "tv"}, domain.KindSeries},
		{"explicit person", RawItem{ID: 3, Name: "Someone", MediaType: "person"}, domain.KindPerson},
		{"title without media type", RawItem{ID: 4, Title: "Alien"}, domain.KindMovie},
		{"series without title", RawItem{ID: 5, Name: "Dark"}, domain.KindSeries},
		{"unknown media type falls back to fields", RawItem{ID: 6, Name: "X", MediaType: "collection"}, domain.KindSeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeItem(tt.raw)
			if got.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestNormalizeItemFields(t *testing.T) {
	series := NormalizeItem(RawItem{
		ID:           1399,
		Name:         "Game of Thrones",
		FirstAirDate: "2011-04-17",
		PosterPath:   "/got.jpg",
		VoteAverage:  8.4,
		Genres:       []GenreDTO{{ID: 18, Name: "Drama"}, {ID: 10765, Name: "Sci-Fi & Fantasy"}},
	})

	if series.Title != "Game of Thrones" {
		t.Errorf("Title = %q", series.Title)
	}
	if series.ReleaseYear != "2011" {
		t.Errorf("ReleaseYear = %q, want 2011", series.ReleaseYear)
	}
	if !series.HasGenre(10765) {
		t.Errorf("GenreIDs = %v, want by-id genres mapped", series.GenreIDs)
	}

	movie := NormalizeItem(RawItem{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15"})
	if movie.ReleaseYear != "1999" {
		t.Errorf("ReleaseYear = %q, want 1999", movie.ReleaseYear)
	}

	undated := NormalizeItem(RawItem{ID: 9, Title: "Untitled"})
	if undated.ReleaseYear != "" {
		t.Errorf("ReleaseYear = %q, want empty", undated.ReleaseYear)
	}
}

func TestMapDetail(t *testing.T) {
	resp := &DetailResponse{EpisodeRunTime: []int{52, 60}}
	for i := 0; i < 12; i++ {
		resp.Credits.Cast = append(resp.Credits.Cast, CastDTO{Name: string(rune('A' + i))})
	}

	detail := MapDetail(domain.ItemRef{ID: 1, Kind: domain.KindSeries}, resp)
	if detail.RuntimeMinutes != 52 {
		t.Errorf("RuntimeMinutes = %d, want first episode run time 52", detail.RuntimeMinutes)
	}
	if len(detail.Cast) != 8 {
		t.Fatalf("len(Cast) = %d, want 8", len(detail.Cast))
	}
	if detail.Cast[0] != "A" || detail.Cast[7] != "H" {
		t.Errorf("Cast = %v, want billing order preserved", detail.Cast)
	}

	movie := MapDetail(domain.ItemRef{ID: 2}, &DetailResponse{Runtime: 139})
	if movie.RuntimeMinutes != 139 {
		t.Errorf("RuntimeMinutes = %d, want 139", movie.RuntimeMinutes)
	}
	if len(movie.Cast) != 0 {
		t.Errorf("Cast = %v, want empty", movie.Cast)
	}
}
