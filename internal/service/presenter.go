package service

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

const noOverview = "No description available."

// Presenter turns catalog records into display records
type Presenter struct {
	imageBaseURL    string
	backdropBaseURL string
	webBaseURL      string
}

// NewPresenter creates a presenter for the given image and web roots
func NewPresenter(imageBaseURL, backdropBaseURL, webBaseURL string) *Presenter {
	return &Presenter{
		imageBaseURL:    strings.TrimRight(imageBaseURL, "/"),
		backdropBaseURL: strings.TrimRight(backdropBaseURL, "/"),
		webBaseURL:      strings.TrimRight(webBaseURL, "/"),
	}
}

// Card builds the list record for an item. Items without a poster still get a
// card, just without a poster URL.
func (p *Presenter) Card(item domain.CatalogItem) domain.Card {
	return domain.Card{
		Item:      item,
		Title:     item.Title,
		Year:      item.ReleaseYear,
		KindLabel: item.Kind.Label(),
		PosterURL: p.posterURL(item),
	}
}

// Cards builds list records for items
func (p *Presenter) Cards(items []domain.CatalogItem) []domain.Card {
	cards := make([]domain.Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, p.Card(item))
	}
	return cards
}

// DetailView builds the overlay record. detail is nil until extended detail arrives.
func (p *Presenter) DetailView(item domain.CatalogItem, detail *domain.Detail, favorite, watched bool, note string) domain.DetailView {
	overview := item.Overview
	if overview == "" {
		overview = noOverview
	}

	view := domain.DetailView{
		Ref:         item.Ref(),
		Title:       item.Title,
		Overview:    overview,
		Year:        item.ReleaseYear,
		Rating:      Rating(item.VoteAverage),
		BackdropURL: p.backdropURL(item),
		KindBadge:   item.Kind.Badge(),
		Loading:     detail == nil,
		Favorite:    favorite,
		Watched:     watched,
		Note:        note,
	}
	if detail != nil {
		view.Runtime = Runtime(detail.RuntimeMinutes)
		view.Cast = detail.Cast
	}
	return view
}

// Featured builds the hero banner record
func (p *Presenter) Featured(item domain.CatalogItem) domain.Featured {
	return domain.Featured{
		Card:        p.Card(item),
		Overview:    item.Overview,
		BackdropURL: p.backdropURL(item),
	}
}

// ShareURL returns the item's public catalog web page
func (p *Presenter) ShareURL(ref domain.ItemRef) string {
	return fmt.Sprintf("%s/%s/%d", p.webBaseURL, ref.Kind, ref.ID)
}

// Rating formats a vote average; zero means not rated
func Rating(vote float64) string {
	if vote == 0 {
		return "★ NR"
	}
	return fmt.Sprintf("★ %.1f", vote)
}

// Runtime formats a runtime in minutes; zero means unknown
func Runtime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", minutes)
}

func (p *Presenter) posterURL(item domain.CatalogItem) string {
	if item.PosterPath == "" {
		return ""
	}
	return p.imageBaseURL + item.PosterPath
}

// backdropURL prefers the backdrop and falls back to the poster
func (p *Presenter) backdropURL(item domain.CatalogItem) string {
	if item.BackdropPath != "" {
		return p.backdropBaseURL + item.BackdropPath
	}
	return p.posterURL(item)
}
