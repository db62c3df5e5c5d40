package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"conch/internal/storage"
)

func texts(rs []Record) string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Text)
	}
	return fmt.Sprint(out)
}

func TestService_AddNeverDeduplicates(t *testing.T) {
	s := NewService(nil, "")
	s.Add(Record{Text: "ls"})
	s.Add(Record{Text: "ls"})
	s.Add(Record{Text: ""})
	if got := texts(s.Records()); got != "[ls ls ]" {
		t.Fatalf("records = %s", got)
	}
	for i, r := range s.Records() {
		if r.Timestamp.IsZero() {
			t.Fatalf("record %d not stamped", i)
		}
	}
}

func TestService_RemoveByText(t *testing.T) {
	s := NewService(nil, "")
	s.AddMany([]Record{{Text: "a"}, {Text: "b"}, {Text: "a"}, {Text: "c"}, {Text: "d"}})
	s.Remove("a")
	if got := texts(s.Records()); got != "[b c d]" {
		t.Fatalf("after Remove = %s", got)
	}
	s.RemoveMany([]string{"b", "d", "zzz"})
	if got := texts(s.Records()); got != "[c]" {
		t.Fatalf("after RemoveMany = %s", got)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Reset left %d records", s.Len())
	}
}

func TestService_At(t *testing.T) {
	s := NewService(nil, "")
	s.AddMany([]Record{{Text: "a"}, {Text: "b"}})
	if r, ok := s.At(1); !ok || r.Text != "b" {
		t.Fatalf("At(1) = %+v, %v", r, ok)
	}
	for _, i := range []int{-1, 2} {
		if _, ok := s.At(i); ok {
			t.Fatalf("At(%d) should be out of range", i)
		}
	}
}

func TestService_PersistRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	w := storage.NewWriter(storage.NewDiskBackend(dir))
	defer w.Close()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewService(w, "")
	s.Add(Record{Text: "help", Timestamp: ts})
	s.Add(Record{Text: "history"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	s2 := NewService(w, "")
	if err := s2.Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	got := s2.Records()
	if texts(got) != "[help history]" || !got[0].Timestamp.Equal(ts) {
		t.Fatalf("reloaded = %+v", got)
	}
}

func TestService_InitMalformed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	b, err := storage.Open(storage.Options{Backend: storage.BackendSQLite, Dir: dir})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer b.Close()
	if err := b.Write(context.Background(), DefaultRecord, []byte(`{"state":{"stacks":"nope"}}`)); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	w := storage.NewWriter(b)
	defer w.Close()
	s := NewService(w, "")
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty history, got %d", s.Len())
	}
}

func TestService_ReloadAfterExternalReset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	w := storage.NewWriter(storage.NewDiskBackend(dir))
	defer w.Close()
	ctx := context.Background()

	s := NewService(w, "")
	s.Add(Record{Text: "a"})
	_ = s.Close()

	if err := w.Remove(DefaultRecord); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	changed, err := s.Reload(ctx)
	if err != nil || !changed {
		t.Fatalf("Reload changed=%v err=%v", changed, err)
	}
	if s.Len() != 0 {
		t.Fatalf("history not emptied after external removal")
	}
}
