package service

import (
	"context"
	"time"
)

// SweepExpired drops sessions idle for longer than the session TTL.
func (s *Service) SweepExpired(ctx context.Context) int {
	removed := s.sessions.DeleteIdleSince(ctx, s.clock().Add(-s.sessionTTL))
	s.metrics.SetActiveSessions(s.sessions.Len())
	if removed > 0 {
		s.logger.InfoContext(ctx, "expired extraction sessions", "removed", removed)
	}
	return removed
}

// RunExpirySweeper calls SweepExpired every interval until ctx ends.
func (s *Service) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.sessionTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired(ctx)
		}
	}
}
