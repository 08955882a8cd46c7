// Package render holds presentation adapters that do not need a terminal UI.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	badgeStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
)

// Text writes every renderer call as plain lines. Styles degrade to plain
// text when the writer is not a terminal.
type Text struct {
	w     io.Writer
	count int

	showFeatured bool
}

// NewText creates a text renderer writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Count returns the number of cards written since the last ClearList
func (t *Text) Count() int {
	return t.count
}

func (t *Text) SetHeader(h domain.Header) {
	t.showFeatured = h.ShowFeatured
	fmt.Fprintln(t.w, titleStyle.Render("== "+h.Title+" =="))
}

func (t *Text) SetAddress(address string) {
	fmt.Fprintln(t.w, dimStyle.Render(address))
}

func (t *Text) ClearList() {
	t.count = 0
}

func (t *Text) AppendCards(cards []domain.Card) {
	for _, c := range cards {
		t.count++
		year := c.Year
		if year == "" {
			year = "----"
		}
		fmt.Fprintf(t.w, "%4d. [%d] %s (%s) %s\n", t.count, c.Item.ID, c.Title, year, dimStyle.Render(c.KindLabel))
	}
}

func (t *Text) RenderEmptyState(message string) {
	fmt.Fprintln(t.w, dimStyle.Render(message))
}

// SetLoading is a no-op; headless output is line oriented
func (t *Text) SetLoading(bool) {}

func (t *Text) RenderOverlay(v domain.DetailView) {
	// Phase one is followed by phase two; print only the settled view
	if v.Loading {
		return
	}
	fmt.Fprintln(t.w)
	fmt.Fprintf(t.w, "%s %s\n", badgeStyle.Render(v.KindBadge), titleStyle.Render(v.Title))

	meta := []string{v.Rating}
	if v.Year != "" {
		meta = append(meta, v.Year)
	}
	if v.Runtime != "" {
		meta = append(meta, v.Runtime)
	}
	fmt.Fprintln(t.w, strings.Join(meta, " · "))

	var marks []string
	if v.Favorite {
		marks = append(marks, "favorite")
	}
	if v.Watched {
		marks = append(marks, "watched")
	}
	if len(marks) > 0 {
		fmt.Fprintln(t.w, dimStyle.Render("["+strings.Join(marks, ", ")+"]"))
	}

	fmt.Fprintln(t.w, v.Overview)
	if len(v.Cast) > 0 {
		fmt.Fprintln(t.w, "Cast: "+strings.Join(v.Cast, ", "))
	}
	if v.Note != "" {
		fmt.Fprintln(t.w, "Note: "+v.Note)
	}
}

func (t *Text) CloseOverlay() {}

// RenderFeatured prints the hero only under a header that shows it
func (t *Text) RenderFeatured(f domain.Featured) {
	if !t.showFeatured {
		return
	}
	fmt.Fprintf(t.w, "Featured: %s (%s)\n", f.Card.Title, f.Card.Year)
}

func (t *Text) Acknowledge(message string) {
	fmt.Fprintln(t.w, message)
}
