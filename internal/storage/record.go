package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

// flushTimeout bounds Record.Flush.
const flushTimeout = 5 * time.Second

// Record binds one in-memory store to a named record on a Writer. It loads
// the record at startup, enqueues every new snapshot in call order, tells
// external rewrites apart from its own writes and fans change notifications
// out to subscribers. A nil writer keeps the store in memory only.
type Record struct {
	writer *Writer
	name   string
	log    *clog.Logger

	mu sync.Mutex
	// last is the most recent snapshot written or loaded by this process
	last []byte

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewRecord returns a Record for name on w. Errors are logged to log.
func NewRecord(w *Writer, name string, log *clog.Logger) *Record {
	return &Record{writer: w, name: name, log: log, subs: map[int]func(){}}
}

// Name returns the record name.
func (r *Record) Name() string { return r.name }

// Persistent reports whether snapshots reach storage.
func (r *Record) Persistent() bool { return r.writer != nil }

// Load reads the record. A missing record, or a nil writer, yields nil data.
func (r *Record) Load(ctx context.Context) ([]byte, error) {
	if r.writer == nil {
		return nil, nil
	}
	data, err := r.writer.Read(ctx, r.name)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.name, err)
	}
	r.mu.Lock()
	r.last = data
	r.mu.Unlock()
	return data, nil
}

// Changed waits for queued writes, re-reads the record and reports whether
// it differs from the last snapshot this process wrote or loaded. A missing
// record yields nil data.
func (r *Record) Changed(ctx context.Context) ([]byte, bool, error) {
	if r.writer == nil {
		return nil, false, nil
	}
	if err := r.writer.Sync(ctx); err != nil {
		return nil, false, err
	}
	data, err := r.writer.Read(ctx, r.name)
	if errors.Is(err, ErrNotFound) {
		data = nil
	} else if err != nil {
		return nil, false, fmt.Errorf("reload %s: %w", r.name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if bytes.Equal(data, r.last) {
		return nil, false, nil
	}
	r.last = data
	return data, true, nil
}

// Save enqueues data. Callers hold their store lock so that snapshots reach
// the writer in mutation order.
func (r *Record) Save(data []byte) {
	if r.writer == nil {
		return
	}
	r.mu.Lock()
	r.last = data
	r.mu.Unlock()
	if err := r.writer.Write(r.name, data); err != nil {
		r.log.Error("failed to enqueue snapshot", "record", r.name, "err", err)
	}
}

// Flush waits until every snapshot saved so far has been applied.
func (r *Record) Flush() error {
	if r.writer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	return r.writer.Sync(ctx)
}

// Subscribe registers fn to run on Notify and returns a func that
// unregisters it.
func (r *Record) Subscribe(fn func()) func() {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.subMu.Unlock()
	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

// Notify runs subscribers in registration order on the calling goroutine.
// Callers must not hold their store lock.
func (r *Record) Notify() {
	r.subMu.Lock()
	fns := make([]func(), 0, len(r.subs))
	for i := 0; i < r.nextSub; i++ {
		if fn, ok := r.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	r.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
