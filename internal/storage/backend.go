// Package storage persists named snapshot records.
//
// A Backend stores opaque byte snapshots under a record name. Two backends
// are provided: a diskv file store (one file per record) and a SQLite table.
// Writes from the stores go through a Writer, which applies them in order on
// a background goroutine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Read when a record has never been written.
	ErrNotFound = errors.New("storage: record not found")
	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("storage: writer closed")
)

// Backend is a named-record store.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Close() error
}

// Watcher is implemented by backends whose records can be changed by another
// process. Watch emits the names of records changed on disk until ctx ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Options selects and locates a backend.
type Options struct {
	Backend string
	Dir     string
}

// Open creates the backend described by opts, creating Dir when needed.
func Open(opts Options) (Backend, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.New("storage: empty directory")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendDiskv:
		return NewDiskBackend(filepath.Join(opts.Dir, "records")), nil
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(opts.Dir, "conch.db"))
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
