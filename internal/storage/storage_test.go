package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend error: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Backend{
		"diskv":  NewDiskBackend(filepath.Join(t.TempDir(), "records")),
		"sqlite": sq,
	}
}

func TestBackends_ReadWriteRemove(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := b.Read(ctx, "lines"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound before write, got %v", err)
			}
			if err := b.Write(ctx, "lines", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if err := b.Write(ctx, "lines", []byte(`{"a":2}`)); err != nil {
				t.Fatalf("overwrite error: %v", err)
			}
			got, err := b.Read(ctx, "lines")
			if err != nil {
				t.Fatalf("Read error: %v", err)
			}
			if string(got) != `{"a":2}` {
				t.Fatalf("Read = %s, want overwritten value", got)
			}
			if err := b.Write(ctx, "stacks", []byte(`[]`)); err != nil {
				t.Fatalf("Write second record error: %v", err)
			}
			if err := b.Remove(ctx, "lines"); err != nil {
				t.Fatalf("Remove error: %v", err)
			}
			if _, err := b.Read(ctx, "lines"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after remove, got %v", err)
			}
			if got, err := b.Read(ctx, "stacks"); err != nil || string(got) != `[]` {
				t.Fatalf("independent record affected: %s, %v", got, err)
			}
			// removing a missing record is not an error
			if err := b.Remove(ctx, "missing"); err != nil {
				t.Fatalf("Remove missing error: %v", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(Options{Backend: "", Dir: dir})
	if err != nil {
		t.Fatalf("Open default error: %v", err)
	}
	if _, ok := b.(*DiskBackend); !ok {
		t.Fatalf("default backend = %T, want *DiskBackend", b)
	}
	b, err = Open(Options{Backend: "SQLite", Dir: dir})
	if err != nil {
		t.Fatalf("Open sqlite error: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*SQLiteBackend); !ok {
		t.Fatalf("backend = %T, want *SQLiteBackend", b)
	}
	if _, err := Open(Options{Backend: "redis", Dir: dir}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := Open(Options{Backend: "diskv"}); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

// recordingBackend records every applied operation and can be slowed down.
type recordingBackend struct {
	mu    sync.Mutex
	ops   []string
	data  map[string][]byte
	delay time.Duration
}

func newRecordingBackend(delay time.Duration) *recordingBackend {
	return &recordingBackend{data: map[string][]byte{}, delay: delay}
}

func (r *recordingBackend) Read(_ context.Context, name string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (r *recordingBackend) Write(_ context.Context, name string, data []byte) error {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, name+"="+string(data))
	r.data[name] = data
	return nil
}

func (r *recordingBackend) Remove(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "rm "+name)
	delete(r.data, name)
	return nil
}

func (r *recordingBackend) Close() error { return nil }

func (r *recordingBackend) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func TestWriter_PreservesOrderAndDrainsOnClose(t *testing.T) {
	rb := newRecordingBackend(time.Millisecond)
	w := NewWriter(rb)

	var want []string
	for i := 0; i < 150; i++ { // more than the queue capacity
		v := string(rune('a' + i%26))
		if err := w.Write("lines", []byte(v)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
		want = append(want, "lines="+v)
	}
	if err := w.Remove("stacks"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	want = append(want, "rm stacks")

	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	got := rb.snapshot()
	if len(got) != len(want) {
		t.Fatalf("applied %d ops, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("op %d = %q, want %q", i, got[i], want[i])
		}
	}
	if err := w.Write("lines", []byte("late")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
	if err := w.Sync(context.Background()); err != nil {
		t.Fatalf("Sync after Close error: %v", err)
	}
}

func TestWriter_Sync(t *testing.T) {
	rb := newRecordingBackend(5 * time.Millisecond)
	w := NewWriter(rb)
	defer w.Close()

	for i := 0; i < 5; i++ {
		_ = w.Write("stacks", []byte{byte('0' + i)})
	}
	if err := w.Sync(context.Background()); err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if n := len(rb.snapshot()); n != 5 {
		t.Fatalf("after Sync %d writes applied, want 5", n)
	}
	got, err := w.Read(context.Background(), "stacks")
	if err != nil || string(got) != "4" {
		t.Fatalf("Read after Sync = %q, %v", got, err)
	}
}

func TestDiskBackend_Watch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	b := NewDiskBackend(dir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	// simulate another process rewriting the record
	if err := os.WriteFile(filepath.Join(dir, "stacks"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("external write error: %v", err)
	}
	select {
	case name := <-ch:
		if name != "stacks" {
			t.Fatalf("watch reported %q, want stacks", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no watch event for external write")
	}
}
