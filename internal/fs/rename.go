package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic.
// It finalizes atomic writes: the temp file a payload or manifest was
// staged into is renamed over the destination here.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
