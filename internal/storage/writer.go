package storage

import (
	"context"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"conch/internal/system"
)

// writeTimeout bounds a single backend operation issued by the worker.
const writeTimeout = 5 * time.Second

// Writer applies snapshot writes to a Backend on a background goroutine.
// Requests are applied strictly in the order they were enqueued; nothing is
// coalesced or dropped. A full queue blocks the caller until the worker
// catches up.
type Writer struct {
	backend Backend
	writeCh chan *writeRequest
	wg      sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once

	log *clog.Logger
}

type writeRequest struct {
	name   string
	data   []byte
	remove bool
	// barrier requests carry only done; it is closed once every earlier
	// request has been applied
	done chan struct{}
}

// NewWriter starts a writer for backend.
func NewWriter(backend Backend) *Writer {
	w := &Writer{
		backend: backend,
		writeCh: make(chan *writeRequest, 100), // buffered to absorb bursts
		log:     system.Component("storage"),
	}
	w.wg.Add(1)
	go w.worker()
	return w
}

func (w *Writer) worker() {
	defer w.wg.Done()
	// range drains every queued request after Close closes the channel
	for req := range w.writeCh {
		w.apply(req)
	}
}

func (w *Writer) apply(req *writeRequest) {
	if req.done != nil {
		close(req.done)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	var err error
	if req.remove {
		err = w.backend.Remove(ctx, req.name)
	} else {
		err = w.backend.Write(ctx, req.name, req.data)
	}
	if err != nil {
		w.log.Error("failed to persist record", "record", req.name, "err", err)
	}
}

func (w *Writer) enqueue(req *writeRequest) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrClosed
	}
	w.writeCh <- req
	return nil
}

// Write enqueues a full snapshot for record name.
func (w *Writer) Write(name string, data []byte) error {
	return w.enqueue(&writeRequest{name: name, data: data})
}

// Remove enqueues deletion of record name.
func (w *Writer) Remove(name string) error {
	return w.enqueue(&writeRequest{name: name, remove: true})
}

// Sync blocks until every request enqueued before the call has been applied.
func (w *Writer) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := w.enqueue(&writeRequest{done: done}); err != nil {
		if err == ErrClosed {
			// Close already drained the queue
			return nil
		}
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Read reads directly from the backend.
func (w *Writer) Read(ctx context.Context, name string) ([]byte, error) {
	return w.backend.Read(ctx, name)
}

// Close stops accepting writes and waits for queued writes to complete.
// It does not close the backend.
func (w *Writer) Close() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.writeCh)
		w.mu.Unlock()
		w.wg.Wait()
	})
	return nil
}
