package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, LogoutCmd(m.Session)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to the focused input if any
	if handled, newModel, cmd := m.routeToInput(msg); handled {
		return newModel, cmd
	}

	if m.Detail.IsOpen() {
		if handled, newModel, cmd := m.handleOverlayKey(msg); handled {
			return newModel, cmd
		}
	}

	return m.handleBrowseKey(msg)
}

// routeToInput sends msg to whichever text input has focus
func (m Model) routeToInput(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.AddressBar.IsActive():
		var cmd tea.Cmd
		var submitted bool
		m.AddressBar, cmd, submitted = m.AddressBar.Update(msg)
		if submitted {
			m.submitAddress()
		}
		return true, m, cmd

	case m.Genres.IsVisible():
		var cmd tea.Cmd
		var sel *components.GenreSelection
		m.Genres, cmd, sel = m.Genres.Update(msg)
		if sel != nil {
			m.Browser.Router.SetGenreFilter(sel.ID)
		}
		return true, m, cmd

	case m.Detail.IsEditing():
		switch {
		case key.Matches(msg, Keys.SaveNote):
			text := m.Detail.NoteValue()
			m.Detail.StopEditing()
			m.Browser.Overlay.SaveNote(text)
			return true, m, nil
		case msg.String() == "esc":
			m.Detail.StopEditing()
			return true, m, nil
		}
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return true, m, cmd

	case m.Cards.IsFilterTyping():
		var cmd tea.Cmd
		var consumed bool
		m.Cards, cmd, consumed = m.Cards.Update(msg)
		if consumed {
			return true, m, cmd
		}
	}
	return false, m, nil
}

// submitAddress acts on the address bar's submitted value
func (m *Model) submitAddress() {
	value := m.AddressBar.Value()
	switch m.AddressBar.Mode() {
	case components.ModeSearch:
		if value == "" {
			return
		}
		m.Browser.Router.Navigate(domain.NavTarget{View: domain.ViewSearch, Query: value})
	default:
		m.Browser.Router.Go(value)
	}
}

// handleOverlayKey handles keys that act on the open item. Keys not handled
// here fall through to browsing.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	overlay := m.Browser.Overlay
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Browser.Router.CloseOverlay()
	case key.Matches(msg, Keys.Favorite):
		overlay.ToggleFavorite()
	case key.Matches(msg, Keys.Watched):
		overlay.ToggleWatched()
	case key.Matches(msg, Keys.Note):
		cmd := m.Detail.StartEditing()
		return true, m, cmd
	case key.Matches(msg, Keys.Share):
		return true, m, OpenShareCmd(m.Browser, m.Opener)
	case key.Matches(msg, Keys.Up):
		m.Detail.Scroll(-1)
	case key.Matches(msg, Keys.Down):
		m.Detail.Scroll(1)
	case key.Matches(msg, Keys.PageUp):
		m.Detail.Scroll(-m.Height / 2)
	case key.Matches(msg, Keys.PageDown):
		m.Detail.Scroll(m.Height / 2)
	default:
		return false, m, nil
	}
	return true, m, nil
}

// handleBrowseKey handles keys for the base view
func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	router := m.Browser.Router
	header := m.Screen.Header

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout

	case key.Matches(msg, Keys.Escape):
		if m.Cards.IsFiltering() {
			m.Cards.ClearFilter()
		}

	// List movement
	case key.Matches(msg, Keys.Up):
		m.Cards.MoveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.Cards.MoveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.Cards.MoveCursor(-m.Cards.MaxVisible())
	case key.Matches(msg, Keys.PageDown):
		m.Cards.MoveCursor(m.Cards.MaxVisible())
	case key.Matches(msg, Keys.Home):
		m.Cards.SetCursor(0)
	case key.Matches(msg, Keys.End):
		m.Cards.SetCursor(m.Cards.Len() - 1)

	case key.Matches(msg, Keys.Enter):
		if card := m.Cards.Selected(); card != nil {
			router.OpenItem(card.Item)
		}

	case key.Matches(msg, Keys.Featured):
		if header.ShowFeatured {
			m.Browser.OpenFeatured()
		}

	case key.Matches(msg, Keys.Random):
		m.Browser.Recommend()

	// History
	case key.Matches(msg, Keys.Back):
		router.Back()
	case key.Matches(msg, Keys.Forward):
		router.Forward()

	// Views
	case key.Matches(msg, Keys.ViewHome):
		router.Navigate(domain.NavTarget{View: domain.ViewHome})
	case key.Matches(msg, Keys.ViewFavorites):
		router.Navigate(domain.NavTarget{View: domain.ViewFavorites})
	case key.Matches(msg, Keys.ViewWatched):
		router.Navigate(domain.NavTarget{View: domain.ViewWatched})

	case key.Matches(msg, Keys.Search):
		m.AddressBar.Show(components.ModeSearch)
		return m, m.AddressBar.Init()

	case key.Matches(msg, Keys.Address):
		m.AddressBar.Show(components.ModeAddress)
		return m, m.AddressBar.Init()

	// Filters
	case key.Matches(msg, Keys.TypeFilter):
		if header.ShowControls {
			router.SetTypeFilter(nextTypeFilter(router.State().Filters.Type))
		}

	case key.Matches(msg, Keys.Genre):
		if header.ShowControls {
			m.Genres.Show(m.Browser.Genres().Genres(), router.State().Filters.Genre)
		}

	case key.Matches(msg, Keys.Filter):
		// Remote lists are paged; a local filter would only see loaded pages
		if header.Active.IsLocal() && !m.Cards.IsFiltering() {
			m.Cards.StartFilter()
		}
	}

	return m, nil
}

// nextTypeFilter cycles all → movies → series → all
func nextTypeFilter(t domain.TypeFilter) domain.TypeFilter {
	switch t {
	case domain.TypeAll:
		return domain.TypeMovie
	case domain.TypeMovie:
		return domain.TypeSeries
	default:
		return domain.TypeAll
	}
}
