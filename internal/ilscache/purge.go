// internal/ilscache/purge.go
package ilscache

import (
	"context"
	"log/slog"
	"time"
)

// RunPurger deletes entries older than maxAge every interval until ctx is
// done. A non-positive interval disables purging.
func RunPurger(ctx context.Context, store Store, interval, maxAge time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	log := logger.With("component", "ilscache.purger")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Purge(ctx, maxAge)
			if err != nil {
				log.WarnContext(ctx, "purge failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "purged expired payloads", slog.Int64("count", n))
			}
		}
	}
}
