package fs

import (
	"context"
	"os"
	"path/filepath"
)

// implements atomic file writes with retry.
// Data lands in a temp file first and is renamed into place, so a payload
// file is never observable half-written.

func writeWithRetry(ctx context.Context, path string, data []byte) error {
	return retry(ctx, "write", func() error {
		return writeOnce(ctx, path, data)
	})
}

func writeOnce(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := renameWithRetry(ctx, tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
