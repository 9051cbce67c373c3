package watcher

import (
	"os"

	"github.com/DevinBristol/salesforce-org-analysis/internal/worker"
)

// detect enqueues a deploy job if the ready marker changed since the
// last job and the bundle has stopped growing. The mutex serializes
// overlapping debounce timers, which also keeps one marker from
// enqueuing twice: the stability check sleeps, so a second timer can
// fire while the first detect is still in flight.
func (w *Watcher) detect() {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(w.markerPath())
	if err != nil {
		return
	}

	mod := info.ModTime()
	if !mod.After(w.lastMarker) {
		return
	}

	if !w.isBundleStable() {
		w.log.Debug("watcher: bundle still changing, waiting")
		return
	}

	w.lastMarker = mod
	w.mb.Put(worker.Job{BundleDir: w.dir, MarkedAt: mod})
	w.log.Info("watcher: bundle ready in %s", w.dir)
}
