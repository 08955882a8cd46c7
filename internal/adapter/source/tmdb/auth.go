package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/domain"
)

// AuthFlow implements domain.AuthFlow: prompt for an API key with hidden input
// and check it against the service before it is saved.
type AuthFlow struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer

	// readSecret reads one line without echo; swapped in tests
	readSecret func() ([]byte, error)
}

// NewAuthFlow creates a new API key authentication flow
func NewAuthFlow(cfg Config, logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		cfg:    cfg,
		logger: logger,
		out:    os.Stdout,
		readSecret: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// Run prompts for the key and validates it
func (f *AuthFlow) Run(ctx context.Context) (*domain.AuthResult, error) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Catalog Authentication")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(f.out, "Create an API key at https://www.themoviedb.org/settings/api")
	fmt.Fprint(f.out, "API key: ")

	secret, err := f.readSecret()
	fmt.Fprintln(f.out) // Add newline after hidden input
	if err != nil {
		return nil, fmt.Errorf("failed to read API key: %w", err)
	}
	apiKey := strings.TrimSpace(string(secret))
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	fmt.Fprintln(f.out, "Validating...")

	cfg := f.cfg
	cfg.APIKey = apiKey
	cfg.MaxRetries = 0
	client := NewClient(cfg, f.logger)
	if err := client.Validate(ctx); err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return nil, fmt.Errorf("API key rejected: %w", err)
		}
		return nil, fmt.Errorf("failed to validate API key: %w", err)
	}

	fmt.Fprintln(f.out, "Authentication successful!")
	f.logger.Info("catalog credential validated")
	return &domain.AuthResult{APIKey: apiKey}, nil
}
