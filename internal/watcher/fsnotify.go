package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// startFsNotify triggers detect() when fsnotify reports changes to the
// drop directory, debounced so a burst of writes yields one detection.
func (w *Watcher) startFsNotify(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}

	var timer *time.Timer
	reset := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			defer func() {
				if r := recover(); r != nil {
					w.log.Error("watcher: detect panic: %v", r)
				}
			}()
			w.detect()
		})
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				reset()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher: fsnotify: %v", err)
		}
	}
}
