// Package fsprobe checks whether fsnotify works reliably for a
// directory by performing a real write test and waiting for the event.
// Network mounts commonly accept watches but never deliver anything.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Result reports whether fsnotify is usable and why not.
type Result struct {
	FsnotifySupported bool
	Reason            string
}

// Probe creates a throwaway file in dir and verifies that fsnotify
// reports it within a short window.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	probeFile := filepath.Join(dir, ".fsprobe")
	if err := os.WriteFile(probeFile, []byte("probe"), 0o644); err != nil {
		return Result{false, fmt.Sprintf("cannot create probe file: %v", err)}
	}
	defer os.Remove(probeFile)

	timeout := time.After(200 * time.Millisecond)
	for {
		select {
		case ev := <-w.Events:
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				return Result{true, ""}
			}
		case <-timeout:
			return Result{false, "no events received"}
		}
	}
}
