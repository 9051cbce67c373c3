package watcher

import (
	"context"
	"time"
)

// startPolling triggers detect() on a fixed interval.
func (w *Watcher) startPolling(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect()
		}
	}
}
