package service

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/adapter"
)

// SessionService manages the stored catalog credentials
type SessionService struct {
	logger *slog.Logger
	clear  func() error
}

// NewSessionService creates a new SessionService
func NewSessionService(logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{logger: logger, clear: adapter.ClearCredentials}
}

// Logout forgets the API key. Favorites, watched and notes are kept.
func (s *SessionService) Logout() error {
	if err := s.clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	s.logger.Info("credentials cleared")
	return nil
}
