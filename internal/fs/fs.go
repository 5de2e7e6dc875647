// Package fs defines the filesystem abstraction used by retainer.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	IsDir bool
}

type FS interface {
	// ReadDir returns the names of the entries in dir, sorted by name.
	ReadDir(dir string) ([]string, error)
	Stat(path string) (FileInfo, error)
	// Remove deletes a single file or empty directory.
	Remove(ctx context.Context, path string) error
	// RemoveAll deletes path and everything below it.
	RemoveAll(ctx context.Context, path string) error
}
