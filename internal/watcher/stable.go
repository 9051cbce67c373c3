package watcher

import (
	"os"
	"path/filepath"
	"time"
)

// isBundleStable compares the bundle's total size across the stability
// window. The generator writes files before touching the marker, but a
// slow copy can still be in flight when the marker appears.
func (w *Watcher) isBundleStable() bool {
	size1, err := dirSize(w.dir)
	if err != nil {
		return false
	}

	time.Sleep(w.stability)

	size2, err := dirSize(w.dir)
	if err != nil {
		return false
	}

	return size1 == size2
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
