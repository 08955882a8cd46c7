package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Command factories for async operations

// RunJobCmd runs a core job off the update loop
func RunJobCmd(ctx context.Context, job domain.Job) tea.Cmd {
	return func() tea.Msg {
		return JobDoneMsg{Apply: job(ctx)}
	}
}

// ClearStatusCmd clears the status message after a delay. seq identifies the
// message so a newer one is not cleared early.
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// LogoutCmd clears the stored credentials
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return LogoutCompleteMsg{Error: svc.Logout()}
	}
}

// OpenShareCmd opens the open item's public web page
func OpenShareCmd(browser *service.Browser, opener service.URLOpener) tea.Cmd {
	url := browser.ShareURL()
	return func() tea.Msg {
		if url == "" {
			return nil
		}
		return ShareOpenedMsg{URL: url, Error: opener.Open(url)}
	}
}
