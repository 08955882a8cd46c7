package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener opens public item pages in the user's browser
type Opener struct {
	command string // configured opener command, empty for system default
	logger  *slog.Logger

	// start is swapped in tests to avoid spawning processes
	start func(name string, args ...string) error
}

// NewOpener creates an Opener. An empty command uses the platform default.
func NewOpener(command string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		logger:  logger,
		start:   startDetached,
	}
}

// startDetached starts the command without waiting for it to exit
func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open opens url with the configured command or the system default handler
func (o *Opener) Open(url string) error {
	name, args := o.commandFor(url)
	o.logger.Info("opening in browser", "command", name, "url", url)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor builds the platform command line for url
func (o *Opener) commandFor(url string) (string, []string) {
	if o.command != "" {
		return o.command, []string{url}
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
