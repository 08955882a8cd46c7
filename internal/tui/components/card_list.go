package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the card list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Title line at top of content area
	TitleLines = 1
)

// Marks tells the list which items carry annotation marks
type Marks func(id int) (favorite, watched bool)

// CardList is the main content browser: one row per card, with a live
// fuzzy filter over titles.
type CardList struct {
	cards []domain.Card
	marks Marks

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title   string
	empty   string
	loading string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into cards
}

// NewCardList creates a new card list
func NewCardList() CardList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return CardList{
		filterInput: ti,
		focused:     true,
	}
}

// Reset replaces the cards and moves the cursor to the top
func (c *CardList) Reset(cards []domain.Card) {
	c.cards = cards
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// SetCards updates the cards in place, keeping the cursor (used when a
// page is appended)
func (c *CardList) SetCards(cards []domain.Card) {
	c.cards = cards
	if c.filterActive {
		c.applyFilter(false)
	}
	c.SetCursor(c.cursor)
}

// SetMarks sets the annotation lookup used for row marks
func (c *CardList) SetMarks(marks Marks) {
	c.marks = marks
}

// SetTitle sets the title line
func (c *CardList) SetTitle(title string) {
	c.title = title
}

// SetEmpty sets the empty-state message shown when there are no cards
func (c *CardList) SetEmpty(message string) {
	c.empty = message
}

// SetLoading sets the trailing loading line ("" hides it)
func (c *CardList) SetLoading(line string) {
	c.loading = line
}

// SetSize updates the component dimensions
func (c *CardList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
}

// SetFocused sets the focus state
func (c *CardList) SetFocused(focused bool) {
	c.focused = focused
}

func (c *CardList) recalcMaxVisible() {
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - TitleLines
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
	c.ensureVisible()
}

// Len returns the number of visible rows (after filtering)
func (c CardList) Len() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.cards)
}

// Total returns the number of cards before filtering
func (c CardList) Total() int {
	return len(c.cards)
}

// MaxVisible returns how many rows fit in the viewport
func (c CardList) MaxVisible() int {
	return c.maxVisible
}

// Cursor returns the current cursor position
func (c CardList) Cursor() int {
	return c.cursor
}

// SetCursor moves the cursor, clamped to the rows
func (c *CardList) SetCursor(pos int) {
	last := c.Len() - 1
	if last < 0 {
		c.cursor = 0
		c.offset = 0
		return
	}
	c.cursor = min(max(pos, 0), last)
	c.ensureVisible()
}

// MoveCursor moves the cursor by delta rows
func (c *CardList) MoveCursor(delta int) {
	c.SetCursor(c.cursor + delta)
}

// Selected returns the card under the cursor
func (c CardList) Selected() *domain.Card {
	if c.cursor >= c.Len() {
		return nil
	}
	card := c.cards[c.mapIndex(c.cursor)]
	return &card
}

// NearEnd reports whether the cursor is within threshold rows of the last
// row, or the rows do not fill the viewport
func (c CardList) NearEnd(threshold int) bool {
	if c.Len() < c.maxVisible {
		return true
	}
	return c.cursor >= c.Len()-1-threshold
}

func (c CardList) mapIndex(i int) int {
	if c.filteredIdx != nil {
		return c.filteredIdx[i]
	}
	return i
}

func (c *CardList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

// StartFilter activates the filter input
func (c *CardList) StartFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c CardList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (c CardList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all cards
func (c *CardList) ClearFilter() {
	c.clearFilter()
}

func (c *CardList) clearFilter() {
	c.filterActive = false
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

// applyFilter matches titles case-insensitively. reset moves the cursor to
// the best match.
func (c *CardList) applyFilter(reset bool) {
	query := c.filterInput.Value()
	if query == "" {
		c.filteredIdx = nil
		return
	}

	titles := make([]string, len(c.cards))
	for i, card := range c.cards {
		titles[i] = strings.ToLower(card.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	if reset {
		c.cursor = 0
		c.offset = 0
	}
}

// Update handles filter typing. Returns true when the key was consumed.
func (c CardList) Update(msg tea.Msg) (CardList, tea.Cmd, bool) {
	if !c.IsFilterTyping() {
		return c, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, InputKeys.Escape):
			c.clearFilter()
			return c, nil, true
		case key.Matches(keyMsg, InputKeys.Enter):
			// Keep the filtered rows, leave typing mode
			c.filterInput.Blur()
			return c, nil, true
		case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyDown:
			return c, nil, false
		}
	}

	var cmd tea.Cmd
	before := c.filterInput.Value()
	c.filterInput, cmd = c.filterInput.Update(msg)
	if c.filterInput.Value() != before {
		c.applyFilter(true)
	}
	return c, cmd, true
}

// View renders the component
func (c CardList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	innerWidth := max(c.width-BorderWidth, 10)
	content := c.renderContent(innerWidth)

	return style.
		Width(innerWidth).
		Height(max(c.height-BorderHeight, 1)).
		Render(content)
}

func (c CardList) renderContent(width int) string {
	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, width))
	count := c.Len()

	if count == 0 {
		msg := c.empty
		switch {
		case c.filterActive && len(c.cards) > 0:
			msg = "No matches"
		case msg == "" && c.loading != "":
			msg = c.loading
		}
		body := titleLine + "\n \n" + styles.DimStyle.Render(msg)
		if c.filterActive {
			body += "\n" + c.renderFilterBar(width)
		}
		return body
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.cards[c.mapIndex(i)], i == c.cursor, width))
	}

	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	case c.loading != "":
		footer = c.loading
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar(width)
	}
	return content
}

// renderRow renders one card: marks, title (year), kind label
func (c CardList) renderRow(card domain.Card, selected bool, width int) string {
	var favorite, watched bool
	if c.marks != nil {
		favorite, watched = c.marks(card.Item.ID)
	}

	fav, seen := " ", " "
	favFg, seenFg := styles.Red, styles.Green
	if favorite {
		fav = styles.FavoriteChar
	}
	if watched {
		seen = styles.WatchedChar
	}

	title := card.Title
	if card.Year != "" {
		title += " (" + card.Year + ")"
	}
	label := "  " + card.KindLabel
	title = styles.Truncate(title, width-lipgloss.Width(label)-6)
	dim := styles.DimGray

	parts := []styles.RowPart{
		{Text: fav, Foreground: &favFg},
		{Text: seen, Foreground: &seenFg},
		{Text: " " + title},
		{Text: label, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (c CardList) renderFilterBar(width int) string {
	c.filterInput.Width = max(width-4, 1)
	return c.filterInput.View()
}
