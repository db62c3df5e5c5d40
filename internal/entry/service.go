package entry

import (
	"context"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"conch/internal/storage"
	"conch/internal/system"
)

// DefaultRecord is the storage record name used for the scrollback.
const DefaultRecord = "lines"

// Service owns the scrollback entries. All methods are safe for concurrent use.
// Every mutation notifies subscribers and enqueues a full snapshot on the
// writer; a nil writer keeps the store in memory only.
type Service struct {
	mu    sync.RWMutex
	lines []Entry
	ids   map[string]struct{}

	rec *storage.Record
	now func() time.Time
	log *clog.Logger
}

// NewService creates an empty store persisted to record via w.
func NewService(w *storage.Writer, record string) *Service {
	if record == "" {
		record = DefaultRecord
	}
	log := system.Component("entry")
	return &Service{
		ids: map[string]struct{}{},
		rec: storage.NewRecord(w, record, log),
		now: time.Now,
		log: log,
	}
}

// Init hydrates the store from storage. A missing record leaves the store
// empty; a malformed one is logged and discarded.
func (s *Service) Init(ctx context.Context) error {
	data, err := s.rec.Load(ctx)
	if err != nil {
		return err
	}
	if data != nil {
		s.load(data)
	}
	return nil
}

// Reload re-reads the record after it was changed outside this process. It
// returns true when the store contents were replaced.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	data, changed, err := s.rec.Changed(ctx)
	if err != nil || !changed {
		return false, err
	}
	s.load(data)
	s.rec.Notify()
	return true, nil
}

// load replaces the entries with a decoded snapshot. Nil data empties the
// store.
func (s *Service) load(data []byte) {
	var lines []Entry
	if data != nil {
		var err error
		if lines, err = DecodeSnapshot(data); err != nil {
			s.log.Warn("discarding malformed snapshot", "record", s.rec.Name(), "err", err)
			lines = nil
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.ids = map[string]struct{}{}
	for _, e := range lines {
		s.appendLocked(e)
	}
}

// Close flushes pending writes for this store.
func (s *Service) Close() error {
	return s.rec.Flush()
}

// Add appends e. An empty or already used ID is replaced by a fresh UUID and a
// zero timestamp is set to the current time. The stored entry is returned.
func (s *Service) Add(e Entry) Entry {
	s.mu.Lock()
	e = s.appendLocked(e)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return e
}

// AddMany appends es in order with the same defaults as Add.
func (s *Service) AddMany(es []Entry) []Entry {
	if len(es) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(es))
	s.mu.Lock()
	for _, e := range es {
		out = append(out, s.appendLocked(e))
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return out
}

func (s *Service) appendLocked(e Entry) Entry {
	if _, dup := s.ids[e.ID]; e.ID == "" || dup {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	s.ids[e.ID] = struct{}{}
	s.lines = append(s.lines, e)
	return e
}

// Update applies p to the entry with the given id. It reports false, and
// changes nothing, when no such entry exists.
func (s *Service) Update(id string, p Patch) bool {
	s.mu.Lock()
	idx := -1
	for i := range s.lines {
		if s.lines[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.lines[idx] = p.apply(s.lines[idx])
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return true
}

// Remove drops the entry with the given id.
func (s *Service) Remove(id string) {
	s.RemoveMany([]string{id})
}

// RemoveMany drops every entry whose id is listed. Survivors keep their order.
func (s *Service) RemoveMany(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.mu.Lock()
	kept := s.lines[:0]
	for _, e := range s.lines {
		if _, ok := drop[e.ID]; ok {
			delete(s.ids, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	// clear the tail so dropped entries can be collected
	for i := len(kept); i < len(s.lines); i++ {
		s.lines[i] = Entry{}
	}
	s.lines = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Reset removes every entry.
func (s *Service) Reset() {
	s.mu.Lock()
	s.lines = nil
	s.ids = map[string]struct{}{}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Lines returns a copy of the entries in insertion order.
func (s *Service) Lines() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.lines))
	copy(out, s.lines)
	return out
}

// Get returns the entry with the given id.
func (s *Service) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.lines {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Subscribe registers fn to run after every change. Callbacks run on the
// mutating goroutine after the store lock is released. The returned func
// unregisters fn.
func (s *Service) Subscribe(fn func()) func() {
	return s.rec.Subscribe(fn)
}

func (s *Service) notify() { s.rec.Notify() }

// persistLocked enqueues the current snapshot. It runs under s.mu so that
// writes reach the writer in mutation order.
func (s *Service) persistLocked() {
	if !s.rec.Persistent() {
		return
	}
	data, err := EncodeSnapshot(s.lines)
	if err != nil {
		s.log.Error("failed to encode snapshot", "record", s.rec.Name(), "err", err)
		return
	}
	s.rec.Save(data)
}
