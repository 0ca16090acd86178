package ratelimit

import (
	"context"
	"time"
)

// Run sweeps expired records every window length until ctx is cancelled.
// It is meant to run as a background goroutine for the process lifetime;
// in-flight Admit calls are never blocked longer than one map pass.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	l.logger.Info("starting rate-limit sweeper", "interval", l.window.String())

	for {
		select {
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				l.logger.Debug("swept expired rate-limit records", "removed", removed)
			}
		case <-ctx.Done():
			l.logger.Info("stopping rate-limit sweeper")
			return
		}
	}
}
