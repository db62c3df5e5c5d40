// Package history keeps the durable log of submitted console input.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"conch/internal/storage"
	"conch/internal/system"
)

// DefaultRecord is the storage record name used for history.
const DefaultRecord = "stacks"

// Record is one submitted input line.
type Record struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the persisted form of the history, in the same state/version
// envelope as the scrollback.
type Snapshot struct {
	State struct {
		Stacks []Record `json:"stacks" jsonschema:"description=Submitted input in submission order"`
	} `json:"state"`
	Version int `json:"version"`
}

// EncodeSnapshot serializes records.
func EncodeSnapshot(records []Record) ([]byte, error) {
	var snap Snapshot
	snap.State.Stacks = records
	if snap.State.Stacks == nil {
		snap.State.Stacks = []Record{}
	}
	return json.Marshal(snap)
}

// DecodeSnapshot parses a stored snapshot.
func DecodeSnapshot(data []byte) ([]Record, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode stacks snapshot: %w", err)
	}
	return snap.State.Stacks, nil
}

// Service owns the input history. Records are never deduplicated: repeated
// input produces a new record each time. All methods are safe for concurrent
// use.
type Service struct {
	mu      sync.RWMutex
	records []Record

	rec *storage.Record
	now func() time.Time
	log *clog.Logger
}

// NewService creates an empty history persisted to record via w. A nil
// writer keeps the history in memory only.
func NewService(w *storage.Writer, record string) *Service {
	if record == "" {
		record = DefaultRecord
	}
	log := system.Component("history")
	return &Service{
		rec: storage.NewRecord(w, record, log),
		now: time.Now,
		log: log,
	}
}

// Init hydrates the history from storage. Malformed data is logged and
// discarded.
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

// Reload re-reads the record after an external change and reports whether
// the history was replaced.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	data, changed, err := s.rec.Changed(ctx)
	if err != nil || !changed {
		return false, err
	}
	s.load(data)
	s.rec.Notify()
	return true, nil
}

func (s *Service) load(data []byte) {
	var records []Record
	if data != nil {
		var err error
		if records, err = DecodeSnapshot(data); err != nil {
			s.log.Warn("discarding malformed snapshot", "record", s.rec.Name(), "err", err)
			records = nil
		}
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

// Close flushes pending writes for the history.
func (s *Service) Close() error {
	return s.rec.Flush()
}

// Add appends r, stamping a zero timestamp with the current time.
func (s *Service) Add(r Record) Record {
	s.mu.Lock()
	r = s.appendLocked(r)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return r
}

// AddMany appends rs in order.
func (s *Service) AddMany(rs []Record) {
	if len(rs) == 0 {
		return
	}
	s.mu.Lock()
	for _, r := range rs {
		s.appendLocked(r)
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Service) appendLocked(r Record) Record {
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}
	s.records = append(s.records, r)
	return r
}

// Remove drops every record whose text equals text.
func (s *Service) Remove(text string) {
	s.RemoveMany([]string{text})
}

// RemoveMany drops every record whose text is listed.
func (s *Service) RemoveMany(texts []string) {
	drop := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		drop[t] = struct{}{}
	}
	s.mu.Lock()
	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if _, ok := drop[r.Text]; !ok {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Reset removes every record.
func (s *Service) Reset() {
	s.mu.Lock()
	s.records = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Records returns a copy of the history in submission order.
func (s *Service) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// At returns the record at position i of the live history.
func (s *Service) At(i int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe registers fn to run after every change and returns a func that
// unregisters it.
func (s *Service) Subscribe(fn func()) func() {
	return s.rec.Subscribe(fn)
}

func (s *Service) notify() { s.rec.Notify() }

func (s *Service) persistLocked() {
	if !s.rec.Persistent() {
		return
	}
	data, err := EncodeSnapshot(s.records)
	if err != nil {
		s.log.Error("failed to encode snapshot", "record", s.rec.Name(), "err", err)
		return
	}
	s.rec.Save(data)
}
