// Package fs defines the filesystem abstraction used by the snapshot store.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"io/fs"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	IsDir bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string) error
	RemoveAll(path string) error
}
