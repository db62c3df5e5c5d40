package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"

	"conch/internal/system"
)

// DiskBackend keeps each record in its own file under a base directory.
type DiskBackend struct {
	d   *diskv.Diskv
	dir string
}

// NewDiskBackend creates a diskv store rooted at dir.
func NewDiskBackend(dir string) *DiskBackend {
	return &DiskBackend{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			TempDir:      filepath.Join(dir, ".tmp"),
			CacheSizeMax: 0,
			PathPerm:     0o755,
			FilePerm:     0o644,
		}),
		dir: dir,
	}
}

func (b *DiskBackend) Read(_ context.Context, name string) ([]byte, error) {
	// direct read: the file may have been rewritten by another process
	rc, err := b.d.ReadStream(name, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (b *DiskBackend) Write(_ context.Context, name string, data []byte) error {
	if err := b.d.Write(name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *DiskBackend) Remove(_ context.Context, name string) error {
	if !b.d.Has(name) {
		return nil
	}
	if err := b.d.Erase(name); err != nil {
		return fmt.Errorf("erase %s: %w", name, err)
	}
	return nil
}

func (b *DiskBackend) Close() error { return nil }

// Watch reports records rewritten on disk. Notifications for one record may
// be coalesced when the receiver is slow.
func (b *DiskBackend) Watch(ctx context.Context) (<-chan string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", b.dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(b.dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", b.dir, err)
	}
	logger := system.Component("storage")
	out := make(chan string, 16)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				name := filepath.Base(ev.Name)
				if strings.HasPrefix(name, ".") {
					continue
				}
				select {
				case out <- name:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "err", err)
			}
		}
	}()
	return out, nil
}
