package tui

// Layout constants
const (
	// Address bar is one line inside a border
	AddressBarHeight = 3

	// Nav tabs and filter controls
	NavHeight = 1

	// Hero banner on Home: title, overview, hint
	FeaturedHeight = 3

	// Footer/status bar
	ChromeHeight = 1

	// Below this width the detail panel covers the list instead of
	// sitting beside it
	SplitMinWidth = 100

	// List share of the width when the detail panel sits beside it
	ListColumnPercent = 40

	// Minimum width for any column
	MinColumnWidth = 15

	// Minimum height of the list or detail area
	MinContentHeight = 6
)

// screenLayout holds calculated sizes for the View
type screenLayout struct {
	contentHeight int
	listWidth     int // 0 if covered by the detail panel
	detailWidth   int // 0 if the overlay is closed
	showFeatured  bool
}

// calculateLayout computes the content area from window size and what the
// screen currently shows
func (m Model) calculateLayout() screenLayout {
	l := screenLayout{
		showFeatured: m.Screen.Header.ShowFeatured && m.Screen.Featured != nil,
	}

	l.contentHeight = m.Height - AddressBarHeight - NavHeight - ChromeHeight
	if l.showFeatured {
		l.contentHeight -= FeaturedHeight
	}
	l.contentHeight = max(l.contentHeight, MinContentHeight)

	switch {
	case !m.Detail.IsOpen():
		l.listWidth = m.Width
	case m.Width >= SplitMinWidth:
		// [List | Detail]
		l.listWidth = max(m.Width*ListColumnPercent/100, MinColumnWidth)
		l.detailWidth = m.Width - l.listWidth
	default:
		l.detailWidth = m.Width
	}
	return l
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	l := m.calculateLayout()
	m.AddressBar.SetWidth(m.Width)

	// A covered list keeps its full size so paging still sees a whole viewport
	listWidth := l.listWidth
	if listWidth == 0 {
		listWidth = m.Width
	}
	m.Cards.SetSize(listWidth, l.contentHeight)
	if l.detailWidth > 0 {
		m.Detail.SetSize(l.detailWidth, l.contentHeight)
	}
}
