package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
)

// Screen is the renderer and scheduler the browser core drives. It only
// records what should be shown; the Model reads it back after every update.
// All methods run on the Bubble Tea update loop.
type Screen struct {
	Header   domain.Header
	Address  string
	Cards    []domain.Card
	Empty    string
	Loading  bool
	Detail   *domain.DetailView
	Featured *domain.Featured

	// listGen changes on ClearList so the card list knows to reset its cursor
	listGen int
	acks    []string
	pending []domain.Job
}

// NewScreen creates an empty screen
func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) SetHeader(h domain.Header) { s.Header = h }

func (s *Screen) SetAddress(address string) { s.Address = address }

func (s *Screen) ClearList() {
	s.Cards = nil
	s.Empty = ""
	s.listGen++
}

func (s *Screen) AppendCards(cards []domain.Card) {
	s.Cards = append(s.Cards, cards...)
	s.Empty = ""
}

func (s *Screen) RenderEmptyState(message string) { s.Empty = message }

func (s *Screen) SetLoading(loading bool) { s.Loading = loading }

func (s *Screen) RenderOverlay(view domain.DetailView) { s.Detail = &view }

func (s *Screen) CloseOverlay() { s.Detail = nil }

func (s *Screen) RenderFeatured(f domain.Featured) { s.Featured = &f }

func (s *Screen) Acknowledge(message string) { s.acks = append(s.acks, message) }

// Schedule queues job; the Model turns queued jobs into commands after the
// current update returns.
func (s *Screen) Schedule(job domain.Job) {
	s.pending = append(s.pending, job)
}

// ListGen returns the list generation, bumped by every ClearList
func (s *Screen) ListGen() int {
	return s.listGen
}

// TakeAcks returns and clears pending acknowledgements
func (s *Screen) TakeAcks() []string {
	acks := s.acks
	s.acks = nil
	return acks
}

// Drain converts queued jobs into commands. Each command runs its job off
// the loop and delivers the continuation back as a JobDoneMsg.
func (s *Screen) Drain(ctx context.Context) []tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, job := range s.pending {
		cmds = append(cmds, RunJobCmd(ctx, job))
	}
	s.pending = nil
	return cmds
}
