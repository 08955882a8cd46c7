package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the detail panel
const (
	PanelBorderHeight     = 2
	PanelScrollIndicators = 2
	noteHeight            = 4
	maxBodyWidth          = 80
)

// panelContent holds the three-zone layout content
type panelContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPanel displays the overlay for one catalog item and edits its note
type DetailPanel struct {
	view    *domain.DetailView
	note    textarea.Model
	editing bool

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewDetailPanel creates a new detail panel
func NewDetailPanel() DetailPanel {
	ta := textarea.New()
	ta.Placeholder = "Your private note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(noteHeight)

	return DetailPanel{note: ta}
}

// SetView shows view. The note editor is refilled when a different item is
// shown, and left alone while the user is typing.
func (p *DetailPanel) SetView(view *domain.DetailView) {
	switched := view == nil || p.view == nil || p.view.Ref != view.Ref
	p.view = view
	if view == nil {
		p.StopEditing()
		return
	}
	if switched {
		p.offset = 0
		p.StopEditing()
	}
	if !p.editing {
		p.note.SetValue(view.Note)
	}
}

// IsOpen returns true when an item is shown
func (p DetailPanel) IsOpen() bool {
	return p.view != nil
}

// StartEditing focuses the note editor
func (p *DetailPanel) StartEditing() tea.Cmd {
	if p.view == nil {
		return nil
	}
	p.editing = true
	p.note.CursorEnd()
	return p.note.Focus()
}

// StopEditing blurs the note editor and restores the saved text
func (p *DetailPanel) StopEditing() {
	p.editing = false
	p.note.Blur()
	if p.view != nil {
		p.note.SetValue(p.view.Note)
	}
}

// IsEditing returns true while the note editor has focus
func (p DetailPanel) IsEditing() bool {
	return p.editing
}

// NoteValue returns the text in the note editor
func (p DetailPanel) NoteValue() string {
	return p.note.Value()
}

// SetSize updates the component dimensions
func (p *DetailPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.maxVisible = max(height-PanelBorderHeight-PanelScrollIndicators-2, 1)
	p.note.SetWidth(max(min(width-6, maxBodyWidth), 10))
}

// Scroll moves the body by delta lines
func (p *DetailPanel) Scroll(delta int) {
	p.offset = max(p.offset+delta, 0)
}

// Update forwards input to the note editor while editing
func (p DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {
	if !p.editing {
		return p, nil
	}
	var cmd tea.Cmd
	p.note, cmd = p.note.Update(msg)
	return p, cmd
}

// View renders the component
func (p DetailPanel) View() string {
	if p.view == nil {
		return ""
	}
	style := styles.ActiveBorder
	contentWidth := max(p.width-4, 10)
	content := p.render(contentWidth)

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(p.maxVisible-len(headerLines)-len(footerLines), 1)
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(p.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{content.header, up}
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down, content.footer)

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(p.width - frameW).
		Height(p.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (p DetailPanel) render(width int) panelContent {
	v := p.view
	return panelContent{
		header: renderDetailHeader(*v, width),
		body:   p.renderBody(*v, width),
		footer: renderDetailFooter(*v, width),
	}
}

func renderDetailHeader(v domain.DetailView, width int) string {
	var b strings.Builder

	b.WriteString(styles.BadgeStyle.Render(v.KindBadge))
	b.WriteString(" ")
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(v.Title, width-10)))
	b.WriteString("\n")

	meta := []string{styles.RatingStyle.Render(v.Rating)}
	if v.Year != "" {
		meta = append(meta, v.Year)
	}
	switch {
	case v.Runtime != "":
		meta = append(meta, v.Runtime)
	case v.Loading:
		meta = append(meta, styles.DimStyle.Render("loading..."))
	}
	b.WriteString(strings.Join(meta, styles.DimStyle.Render(" · ")))
	b.WriteString("\n")

	var marks []string
	if v.Favorite {
		marks = append(marks, styles.ErrorStyle.Render(styles.FavoriteChar+" In watchlist"))
	}
	if v.Watched {
		marks = append(marks, styles.SuccessStyle.Render(styles.WatchedChar+" Watched"))
	}
	if len(marks) == 0 {
		marks = append(marks, styles.DimStyle.Render("Not in your lists"))
	}
	b.WriteString(strings.Join(marks, "   "))

	return b.String()
}

func (p DetailPanel) renderBody(v domain.DetailView, width int) string {
	bodyWidth := min(width-2, maxBodyWidth)
	wrap := lipgloss.NewStyle().Width(bodyWidth)

	var sections []string
	sections = append(sections, styles.SubtitleStyle.Render(wrap.Render(v.Overview)))

	if len(v.Cast) > 0 {
		sections = append(sections,
			styles.AccentStyle.Render("Cast")+"\n"+
				styles.SubtitleStyle.Render(wrap.Render(strings.Join(v.Cast, ", "))))
	}

	note := styles.AccentStyle.Render("Note")
	switch {
	case p.editing:
		note += "\n" + p.note.View()
	case v.Note != "":
		note += "\n" + styles.SubtitleStyle.Render(wrap.Render(v.Note))
	default:
		note += "\n" + styles.DimStyle.Render("No note yet")
	}
	sections = append(sections, note)

	return strings.Join(sections, "\n\n")
}

func renderDetailFooter(v domain.DetailView, width int) string {
	hints := []string{
		hint("f", "watchlist"),
		hint("w", "watched"),
		hint("n", "note"),
		hint("o", "web"),
		hint("esc", "close"),
	}
	separator := styles.DimStyle.Render(strings.Repeat("─", width))
	return separator + "\n" + strings.Join(hints, "  ")
}

func hint(key, desc string) string {
	return styles.HelpKeyStyle.Render(key) + " " + styles.HelpDescStyle.Render(desc)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
