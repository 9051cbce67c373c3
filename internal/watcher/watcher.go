// Package watcher monitors the deployment drop directory and emits a
// job whenever a complete bundle appears.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/config"
	"github.com/DevinBristol/salesforce-org-analysis/internal/fsprobe"
	"github.com/DevinBristol/salesforce-org-analysis/internal/logging"
	"github.com/DevinBristol/salesforce-org-analysis/internal/mailbox"
	"github.com/DevinBristol/salesforce-org-analysis/internal/worker"
)

// Watcher observes the drop directory's ready marker and enqueues a
// deploy job when a new bundle lands.
type Watcher struct {
	mu sync.Mutex

	dir       string
	marker    string
	mode      string
	interval  time.Duration
	debounce  time.Duration
	stability time.Duration

	log logging.Logger

	lastMarker time.Time

	mb *mailbox.Mailbox[worker.Job]
}

// New creates a watcher from the watch configuration.
func New(cfg config.WatchConfig, log logging.Logger, mb *mailbox.Mailbox[worker.Job]) *Watcher {
	return &Watcher{
		dir:       cfg.DropDir,
		marker:    cfg.ReadyMarker,
		mode:      cfg.Mode,
		interval:  cfg.PollInterval.Std(),
		debounce:  cfg.DebounceWindow.Std(),
		stability: cfg.StabilityWindow.Std(),
		log:       log,
		mb:        mb,
	}
}

func (w *Watcher) markerPath() string {
	return filepath.Join(w.dir, w.marker)
}

// Start chooses the watching strategy based on config.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.startFsNotify(ctx)

	case "poll":
		w.startPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(w.dir)
		if res.FsnotifySupported {
			return w.startFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled: %s", res.Reason)
		w.startPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", w.mode)
	}
}
