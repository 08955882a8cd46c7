package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// navTab is one base view tab
type navTab struct {
	key  string
	name string
	view domain.ViewKind
}

var navTabs = []navTab{
	{"1", "Home", domain.ViewHome},
	{"2", "Watchlist", domain.ViewFavorites},
	{"3", "Watched", domain.ViewWatched},
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmLogout {
		return m.renderLogoutConfirmation()
	}

	l := m.calculateLayout()

	parts := []string{m.AddressBar.View(), m.renderNav()}
	if l.showFeatured {
		parts = append(parts, m.renderFeatured())
	}

	var content string
	switch {
	case l.listWidth > 0 && l.detailWidth > 0:
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.Cards.View(),
			m.Detail.View(),
		)
	case l.detailWidth > 0:
		content = m.Detail.View()
	default:
		content = m.Cards.View()
	}
	parts = append(parts, content, m.renderFooter())

	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Overlay genre picker if visible
	if m.Genres.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Genres.View())
	}

	return view
}

// renderNav renders the view tabs with the filter controls on the right
func (m Model) renderNav() string {
	header := m.Screen.Header

	tabs := make([]string, 0, len(navTabs))
	for _, tab := range navTabs {
		label := tab.key + " " + tab.name
		if header.ShowNav && header.Active == tab.view {
			tabs = append(tabs, styles.NavActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.NavInactiveStyle.Render(label))
		}
	}
	left := strings.Join(tabs, " ")

	var right string
	if header.ShowControls {
		filters := m.Browser.Router.State().Filters
		genre := "All genres"
		if name, ok := m.Browser.Genres().Name(filters.Genre); ok {
			genre = name
		}
		right = styles.HelpKeyStyle.Render("t") + " " + styles.HelpDescStyle.Render(filterLabel(filters.Type)) +
			"  " + styles.HelpKeyStyle.Render("c") + " " + styles.HelpDescStyle.Render(genre)
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderFeatured renders the hero banner
func (m Model) renderFeatured() string {
	f := m.Screen.Featured
	width := max(m.Width-2, 10)

	title := styles.BadgeStyle.Render("FEATURED") + " " +
		styles.TitleStyle.Render(styles.Truncate(f.Card.Title, width-20))
	if f.Card.Year != "" {
		title += styles.DimStyle.Render(" (" + f.Card.Year + ")")
	}
	title += styles.DimStyle.Render(" · " + f.Card.KindLabel)

	overview := styles.SubtitleStyle.Render(styles.Truncate(f.Overview, width))
	hint := styles.HelpKeyStyle.Render("H") + " " + styles.HelpDescStyle.Render("open featured")

	return lipgloss.NewStyle().
		PaddingLeft(1).
		Render(strings.Join([]string{title, overview, hint}, "\n"))
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while loading, else the status message
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.Screen.Loading || (m.Screen.Detail != nil && m.Screen.Detail.Loading):
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	}

	// Center: context hints
	var hints []string
	switch {
	case m.AddressBar.IsActive():
		hints = []string{footerHint("enter", "go"), footerHint("esc", "cancel")}
	case m.Detail.IsEditing():
		hints = []string{footerHint("C-s", "save"), footerHint("esc", "discard")}
	case m.Cards.IsFilterTyping():
		hints = []string{footerHint("enter", "keep"), footerHint("esc", "clear")}
	case !m.Detail.IsOpen():
		hints = []string{footerHint("s", "search"), footerHint("r", "surprise me")}
	}
	center := strings.Join(hints, "  ")

	// Right side: "? help" hint
	right := footerHint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func footerHint(key, desc string) string {
	return styles.AccentStyle.Render(key) + styles.DimStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSING                        DETAILS
  j/k        Up/down              f      Toggle watchlist
  g/G        First/last item      w      Toggle watched
  PgUp/PgDn  Scroll page          n      Edit note (C-s saves)
  Enter/l    Open details         o      Open web page
  H          Open featured        Esc/h  Close
  [ / ]      Back/forward

VIEWS & FILTERS                 OTHER
  1/2/3      Home/Watchlist/Watched   r  Surprise me
  s          Search                   L  Logout
  :          Edit address             q  Quit
  t          Cycle type               ?  This help
  c          Pick genre
  /          Filter (local lists)

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
              Log Out?

  This will clear your TMDB credentials.
  Your watchlist and notes are kept.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
