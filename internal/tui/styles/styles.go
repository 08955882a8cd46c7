package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	Accent     = lipgloss.Color("#01B4E4")
	AccentAlt  = lipgloss.Color("#90CEA1")
	SlateDark  = lipgloss.Color("#0D253F")
	SlateLight = lipgloss.Color("#1E3A5F")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Gold       = lipgloss.Color("#F5C518")
)

// Theme names accepted by UseTheme
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
	RatingStyle    lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Badge, nav and misc styles
var (
	BadgeStyle        lipgloss.Style
	DimBadgeStyle     lipgloss.Style
	NavActiveStyle    lipgloss.Style
	NavInactiveStyle  lipgloss.Style
	SpinnerStyle      lipgloss.Style
	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	HelpDescStyle     lipgloss.Style
)

// Raw annotation marks (unstyled)
const (
	FavoriteChar = "♥"
	WatchedChar  = "✓"
)

func init() {
	build()
}

// UseTheme switches the palette. Unknown names keep the default theme.
func UseTheme(name string) {
	if name == ThemeMono {
		Accent = lipgloss.Color("#FFFFFF")
		AccentAlt = lipgloss.Color("#D1D5DB")
		SlateDark = lipgloss.Color("#000000")
		SlateLight = lipgloss.Color("#374151")
		Green = lipgloss.Color("#FFFFFF")
		Red = lipgloss.Color("#FFFFFF")
		Gold = lipgloss.Color("#FFFFFF")
	}
	build()
}

func build() {
	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)

	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	TitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
		Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
		Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(Accent).
		Padding(0, 1)

	RatingStyle = lipgloss.NewStyle().
		Foreground(Gold)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(SlateLight).
		Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true).
		MarginBottom(1)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(AccentAlt).
		Bold(true).
		Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Background(SlateLight).
		Padding(0, 1)

	NavActiveStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		Underline(true)

	NavInactiveStyle = lipgloss.NewStyle().
		Foreground(LightGray)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Accent)

	FilterStyle = lipgloss.NewStyle().
		Foreground(Accent)

	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(DimGray)
}

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Pad pads a string to the given display width
func Pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly to avoid ANSI reset codes breaking the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result string
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, leaving one column of margin on each side
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result += padStyle.Render(runewidth.FillRight("", paddingNeeded))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
