package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	allGenresLabel  = "All genres"
	pickerWidth     = 30
	pickerMaxListed = 12
)

// GenreSelection is the user's genre choice
type GenreSelection struct {
	ID int // domain.GenreAll for no genre
}

// GenrePicker is a small popup listing genres, narrowed by typing
type GenrePicker struct {
	visible bool
	genres  []domain.Genre
	shown   []domain.Genre
	cursor  int
	active  int
	input   textinput.Model
}

// NewGenrePicker creates a new genre picker
func NewGenrePicker() GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "type to narrow..."
	ti.Prompt = "› "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.Width = pickerWidth - 4

	return GenrePicker{input: ti}
}

// Show displays the picker with the cursor on the active genre
func (m *GenrePicker) Show(genres []domain.Genre, active int) {
	m.visible = true
	m.genres = append([]domain.Genre{{ID: domain.GenreAll, Name: allGenresLabel}}, genres...)
	m.active = active
	m.input.SetValue("")
	m.input.Focus()
	m.narrow()

	m.cursor = 0
	for i, g := range m.shown {
		if g.ID == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the picker
func (m *GenrePicker) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the picker is shown
func (m GenrePicker) IsVisible() bool {
	return m.visible
}

// Shown returns the genres currently listed
func (m GenrePicker) Shown() []domain.Genre {
	return m.shown
}

// narrow ranks genres against the query, closest first. An empty query
// lists everything in the original order.
func (m *GenrePicker) narrow() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.shown = m.genres
		return
	}

	names := make([]string, len(m.genres))
	for i, g := range m.genres {
		names[i] = g.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	m.shown = make([]domain.Genre, 0, len(ranks))
	for _, r := range ranks {
		m.shown = append(m.shown, m.genres[r.OriginalIndex])
	}
	m.cursor = 0
}

// Update handles a key press; returns (picker, cmd, selection). A non-nil
// selection means the user confirmed a choice.
func (m GenrePicker) Update(msg tea.Msg) (GenrePicker, tea.Cmd, *GenreSelection) {
	if !m.visible {
		return m, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, PickerKeys.Down):
			if m.cursor < len(m.shown)-1 {
				m.cursor++
			}
			return m, nil, nil
		case key.Matches(keyMsg, PickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, nil
		case key.Matches(keyMsg, PickerKeys.Enter):
			if len(m.shown) == 0 {
				return m, nil, nil
			}
			chosen := m.shown[m.cursor]
			m.Hide()
			return m, nil, &GenreSelection{ID: chosen.ID}
		case key.Matches(keyMsg, PickerKeys.Escape):
			m.Hide()
			return m, nil, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.narrow()
	}
	return m, cmd, nil
}

// View renders the picker
func (m GenrePicker) View() string {
	if !m.visible {
		return ""
	}

	lines := []string{m.input.View(), ""}

	start := 0
	if m.cursor >= pickerMaxListed {
		start = m.cursor - pickerMaxListed + 1
	}
	end := min(start+pickerMaxListed, len(m.shown))

	if len(m.shown) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matches"))
	}
	for i := start; i < end; i++ {
		g := m.shown[i]
		prefix := "  "
		if g.ID == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+g.Name, pickerWidth-4)

		switch {
		case i == m.cursor:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		case g.ID == m.active:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.Accent).
				Render(text))
		default:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Genre") + "\n" + strings.Join(lines, "\n"))
}
