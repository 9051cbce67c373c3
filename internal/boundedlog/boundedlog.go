// Package boundedlog persists an append-only, size-bounded list of
// entries as a single JSON file, newest first. When the cap is reached
// the oldest entries fall off.
package boundedlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DevinBristol/salesforce-org-analysis/internal/fs"
)

type Log[T any] struct {
	path string
	fsys fs.FS
	max  int
}

func New[T any](path string, fsys fs.FS, max int) *Log[T] {
	if fsys == nil {
		fsys = fs.New()
	}
	return &Log[T]{path: path, fsys: fsys, max: max}
}

// Append prepends entry and rewrites the file, dropping anything past
// the cap. The write is atomic, so a crash leaves either the old list
// or the new one, never a torn file.
func (l *Log[T]) Append(ctx context.Context, entry T) error {
	entries, err := l.List()
	if err != nil {
		return err
	}

	entries = append([]T{entry}, entries...)
	if len(entries) > l.max {
		entries = entries[:l.max]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding log: %w", err)
	}

	return l.fsys.WriteFile(ctx, l.path, data)
}

// List returns all entries, newest first. A log that was never written
// is empty, not an error.
func (l *Log[T]) List() ([]T, error) {
	data, err := l.fsys.ReadFile(l.path)
	if err != nil {
		return nil, nil
	}

	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding log %s: %w", l.path, err)
	}
	return entries, nil
}
