package tmdb

import (
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// maxCast is how many billed cast members a detail carries
const maxCast = 8

// NormalizeItem converts a raw record to a domain item.
// An explicit media_type wins; otherwise a title means movie and its absence means series.
func NormalizeItem(raw RawItem) domain.CatalogItem {
	kind, ok := domain.ParseMediaKind(raw.MediaType)
	if !ok {
		kind = deriveKind(raw)
	}
	return NormalizeItemAs(raw, kind)
}

// NormalizeItemAs converts a raw record whose kind is known from the endpoint
func NormalizeItemAs(raw RawItem, kind domain.MediaKind) domain.CatalogItem {
	title := raw.Title
	if title == "" {
		title = raw.Name
	}

	date := raw.ReleaseDate
	if date == "" {
		date = raw.FirstAirDate
	}

	genreIDs := raw.GenreIDs
	if len(genreIDs) == 0 && len(raw.Genres) > 0 {
		genreIDs = make([]int, 0, len(raw.Genres))
		for _, g := range raw.Genres {
			genreIDs = append(genreIDs, g.ID)
		}
	}

	return domain.CatalogItem{
		ID:           raw.ID,
		Title:        title,
		Kind:         kind,
		ReleaseYear:  yearOf(date),
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		Overview:     raw.Overview,
		VoteAverage:  raw.VoteAverage,
		GenreIDs:     genreIDs,
	}
}

func deriveKind(raw RawItem) domain.MediaKind {
	if raw.Title != "" {
		return domain.KindMovie
	}
	return domain.KindSeries
}

// yearOf extracts the year from a YYYY-MM-DD date
func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}

// MapItems normalizes a result list
func MapItems(results []RawItem) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(results))
	for _, r := range results {
		items = append(items, NormalizeItem(r))
	}
	return items
}

// MapItemsAs normalizes a single-kind result list (discover endpoints)
func MapItemsAs(results []RawItem, kind domain.MediaKind) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(results))
	for _, r := range results {
		items = append(items, NormalizeItemAs(r, kind))
	}
	return items
}

// MapPage converts a paged envelope
func MapPage(resp *PagedResponse, items []domain.CatalogItem) domain.Page {
	return domain.Page{
		Items:      items,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}
}

// MapGenres converts a genre list
func MapGenres(dtos []GenreDTO) []domain.Genre {
	genres := make([]domain.Genre, 0, len(dtos))
	for _, g := range dtos {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// MapDetail converts a detail response. Series use the first episode run time.
func MapDetail(ref domain.ItemRef, resp *DetailResponse) *domain.Detail {
	detail := &domain.Detail{
		Ref:            ref,
		RuntimeMinutes: resp.Runtime,
	}
	if detail.RuntimeMinutes == 0 && len(resp.EpisodeRunTime) > 0 {
		detail.RuntimeMinutes = resp.EpisodeRunTime[0]
	}

	cast := resp.Credits.Cast
	if len(cast) > maxCast {
		cast = cast[:maxCast]
	}
	detail.Cast = make([]string, 0, len(cast))
	for _, c := range cast {
		detail.Cast = append(detail.Cast, c.Name)
	}
	return detail
}
