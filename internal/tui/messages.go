package tui

// Message types for the TUI

// JobDoneMsg carries the continuation of a finished background job
type JobDoneMsg struct {
	Apply func()
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// LogoutCompleteMsg signals that logout finished
type LogoutCompleteMsg struct {
	Error error
}

// ShareOpenedMsg signals the web page launch result
type ShareOpenedMsg struct {
	URL   string
	Error error
}
