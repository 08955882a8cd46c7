package service

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
)

// InlineScheduler runs each job and its continuation synchronously on the
// caller's goroutine. Used by the headless CLI.
type InlineScheduler struct {
	ctx context.Context
}

// NewInlineScheduler creates a scheduler whose jobs run under ctx
func NewInlineScheduler(ctx context.Context) *InlineScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &InlineScheduler{ctx: ctx}
}

// Schedule runs job and applies its continuation before returning
func (s *InlineScheduler) Schedule(job domain.Job) {
	if apply := job(s.ctx); apply != nil {
		apply()
	}
}
