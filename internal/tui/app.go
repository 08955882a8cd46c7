package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

const (
	defaultScrollThreshold = 3
	statusDuration         = 3 * time.Second
)

// Options holds the collaborators of the TUI
type Options struct {
	Browser         *service.Browser
	Screen          *Screen
	Session         *service.SessionService
	Opener          service.URLOpener
	StartAddress    string
	ScrollThreshold int // rows from the end that trigger the next page
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Core
	Browser *service.Browser
	Screen  *Screen
	Session *service.SessionService
	Opener  service.URLOpener

	// UI components
	AddressBar components.AddressBar
	Cards      components.CardList
	Detail     components.DetailPanel
	Genres     components.GenrePicker
	Spinner    spinner.Model

	// Dimensions
	Width  int
	Height int

	// Status line
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	scrollThreshold int
	startAddress    string
	listGen         int

	// ctx is handed to background jobs and cancelled on quit
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	threshold := opts.ScrollThreshold
	if threshold <= 0 {
		threshold = defaultScrollThreshold
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		State:           StateBrowsing,
		Browser:         opts.Browser,
		Screen:          opts.Screen,
		Session:         opts.Session,
		Opener:          opts.Opener,
		AddressBar:      components.NewAddressBar(),
		Cards:           components.NewCardList(),
		Detail:          components.NewDetailPanel(),
		Genres:          components.NewGenrePicker(),
		Spinner:         sp,
		scrollThreshold: threshold,
		startAddress:    opts.StartAddress,
		listGen:         -1,
		ctx:             ctx,
		cancel:          cancel,
	}
	m.refreshMarks()
	return m
}

// Init starts the browser at the start address
func (m Model) Init() tea.Cmd {
	m.Browser.Start(m.startAddress)
	cmds := m.Screen.Drain(m.ctx)
	cmds = append(cmds, m.Spinner.Tick)
	return tea.Batch(cmds...)
}

// Update handles all messages. Whatever the core rendered or scheduled while
// handling msg is picked up afterwards by settle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	_, userInput := msg.(tea.KeyMsg)
	return m.settle(cmd, userInput)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case JobDoneMsg:
		if msg.Apply != nil {
			msg.Apply()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case ShareOpenedMsg:
		var cmd tea.Cmd
		if msg.Error != nil {
			cmd = m.setStatus(fmt.Sprintf("Could not open browser: %v", msg.Error), true)
		} else {
			cmd = m.setStatus("Opened "+msg.URL, false)
		}
		return m, cmd

	case LogoutCompleteMsg:
		if msg.Error != nil {
			m.State = StateBrowsing
			cmd := m.setStatus(fmt.Sprintf("Logout failed: %v", msg.Error), true)
			return m, cmd
		}
		fmt.Println("\nLogged out. Run 'reel setup' to set up again.")
		return m.quit()
	}

	// Blink and other component messages
	var cmd tea.Cmd
	switch {
	case m.AddressBar.IsActive():
		m.AddressBar, cmd, _ = m.AddressBar.Update(msg)
	case m.Detail.IsEditing():
		m.Detail, cmd = m.Detail.Update(msg)
	}
	return m, cmd
}

// settle copies the screen into the components, pulls the next page when
// the cursor nears the end, and turns scheduled jobs into commands.
// A failed page is only retried on user input.
func (m Model) settle(cmd tea.Cmd, userInput bool) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}

	if userInput {
		// Annotations only change in response to keys
		m.refreshMarks()
	}
	m.sync()
	if m.shouldLoadMore(userInput) && m.Browser.Router.LoadMore() {
		m.sync()
	}

	for _, ack := range m.Screen.TakeAcks() {
		cmds = append(cmds, m.setStatus(ack, false))
	}
	cmds = append(cmds, m.Screen.Drain(m.ctx)...)

	return m, tea.Batch(cmds...)
}

// sync copies what the core rendered into the components
func (m *Model) sync() {
	s := m.Screen

	if s.ListGen() != m.listGen {
		m.listGen = s.ListGen()
		m.Cards.Reset(s.Cards)
	} else if len(s.Cards) != m.Cards.Total() {
		m.Cards.SetCards(s.Cards)
	}

	m.Cards.SetTitle(m.listTitle())
	m.Cards.SetEmpty(s.Empty)
	if s.Loading {
		m.Cards.SetLoading(m.Spinner.View() + styles.DimStyle.Render(" Loading..."))
	} else {
		m.Cards.SetLoading("")
	}

	m.AddressBar.SetAddress(s.Address)
	m.Detail.SetView(s.Detail)
	m.Cards.SetFocused(!m.Detail.IsOpen())

	// The banner and the overlay both change the content area
	m.updateLayout()
}

// refreshMarks snapshots the favorite and watched ids shown as row marks
func (m *Model) refreshMarks() {
	annotations := m.Browser.Annotations
	favorites := annotations.IDs(service.Favorites)
	watched := annotations.IDs(service.Watched)
	m.Cards.SetMarks(func(id int) (bool, bool) {
		return favorites[id], watched[id]
	})
}

// shouldLoadMore reports whether the next page of a remote view is wanted
func (m Model) shouldLoadMore(userInput bool) bool {
	if !m.Ready || m.Screen.Header.Active.IsLocal() || m.Cards.IsFiltering() {
		return false
	}
	if !m.Browser.Router.HasMore() || m.Browser.Orchestrator.InFlight() {
		return false
	}
	if m.Browser.Orchestrator.Failed() && !userInput {
		return false
	}
	return m.Cards.NearEnd(m.scrollThreshold)
}

// listTitle is the header title plus the active filters of remote views
func (m Model) listTitle() string {
	h := m.Screen.Header
	if !h.ShowControls {
		return h.Title
	}
	filters := m.Browser.Router.State().Filters
	if filters.IsDefault() {
		return h.Title
	}

	title := h.Title + " · " + filterLabel(filters.Type)
	if filters.Genre != domain.GenreAll {
		if name, ok := m.Browser.Genres().Name(filters.Genre); ok {
			title += " · " + name
		}
	}
	return title
}

func filterLabel(t domain.TypeFilter) string {
	switch t {
	case domain.TypeMovie:
		return "Movies"
	case domain.TypeSeries:
		return "Series"
	default:
		return "All types"
	}
}

// setStatus shows a temporary status message
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration, m.statusSeq)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}
