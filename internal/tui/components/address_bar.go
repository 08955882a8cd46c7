package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/tui/styles"
)

// AddressMode selects what the bar submits
type AddressMode int

const (
	ModeAddress AddressMode = iota // a full reel:// address
	ModeSearch                     // a search query
)

// AddressBar is the one-line input at the top of the screen. At rest it
// shows the current address; when focused it edits an address or a query.
type AddressBar struct {
	input   textinput.Model
	mode    AddressMode
	address string
	active  bool
	width   int
}

// NewAddressBar creates a new address bar
func NewAddressBar() AddressBar {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return AddressBar{input: ti}
}

// SetAddress sets the address shown at rest
func (a *AddressBar) SetAddress(address string) {
	a.address = address
}

// Address returns the address shown at rest
func (a AddressBar) Address() string {
	return a.address
}

// Show focuses the bar in the given mode
func (a *AddressBar) Show(mode AddressMode) {
	a.active = true
	a.mode = mode
	switch mode {
	case ModeSearch:
		a.input.Prompt = "search: "
		a.input.Placeholder = "title, person, year..."
		a.input.SetValue("")
	default:
		a.input.Prompt = ""
		a.input.Placeholder = "reel://?q=..."
		a.input.SetValue(a.address)
	}
	a.input.PromptStyle = styles.FilterPromptStyle
	a.input.CursorEnd()
	a.input.Focus()
}

// Hide returns the bar to rest
func (a *AddressBar) Hide() {
	a.active = false
	a.input.Blur()
}

// IsActive returns true while the bar is being edited
func (a AddressBar) IsActive() bool {
	return a.active
}

// Mode returns the editing mode
func (a AddressBar) Mode() AddressMode {
	return a.mode
}

// Value returns the trimmed input
func (a AddressBar) Value() string {
	return strings.TrimSpace(a.input.Value())
}

// SetWidth updates the component width
func (a *AddressBar) SetWidth(width int) {
	a.width = width
	a.input.Width = max(width-12, 10)
}

// Init initializes the component
func (a AddressBar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input; returns (bar, cmd, submitted)
func (a AddressBar) Update(msg tea.Msg) (AddressBar, tea.Cmd, bool) {
	if !a.active {
		return a, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, InputKeys.Escape):
			a.Hide()
			return a, nil, false
		case key.Matches(keyMsg, InputKeys.Enter):
			a.Hide()
			return a, nil, true
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd, false
}

// View renders the bar
func (a AddressBar) View() string {
	label := styles.DimBadgeStyle.Render("reel")
	var body string
	if a.active {
		body = a.input.View()
	} else {
		body = styles.SubtitleStyle.Render(styles.Truncate(a.address, max(a.width-10, 1)))
	}

	border := styles.InactiveBorder
	if a.active {
		border = styles.ActiveBorder
	}
	return border.
		Width(max(a.width-BorderWidth, 10)).
		Render(label + " " + body)
}
