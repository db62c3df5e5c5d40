package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"conch/internal/content"
)

// Snapshot is the persisted form of the store. The state/version envelope
// matches the layout written by browser builds of the console.
type Snapshot struct {
	State   SnapshotState `json:"state"`
	Version int           `json:"version"`
}

// SnapshotState holds the stored entries in order.
type SnapshotState struct {
	Lines []StoredEntry `json:"lines" jsonschema:"description=Scrollback entries in insertion order"`
}

// StoredEntry is an entry with its content flattened to a string. Render
// trees are stored as HTML markup.
type StoredEntry struct {
	ID        string    `json:"id" jsonschema:"required"`
	Content   string    `json:"content" jsonschema:"description=Plain text or HTML markup starting with <"`
	Timestamp time.Time `json:"timestamp" jsonschema:"required"`
}

// EncodeSnapshot serializes lines, flattening render trees to markup.
func EncodeSnapshot(lines []Entry) ([]byte, error) {
	snap := Snapshot{State: SnapshotState{Lines: make([]StoredEntry, 0, len(lines))}}
	for _, e := range lines {
		s, err := content.Encode(e.Content)
		if err != nil {
			return nil, fmt.Errorf("encode entry %s: %w", e.ID, err)
		}
		snap.State.Lines = append(snap.State.Lines, StoredEntry{ID: e.ID, Content: s, Timestamp: e.Timestamp})
	}
	return json.Marshal(snap)
}

// DecodeSnapshot parses a stored snapshot, reconstituting markup content into
// render trees.
func DecodeSnapshot(data []byte) ([]Entry, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode lines snapshot: %w", err)
	}
	out := make([]Entry, 0, len(snap.State.Lines))
	for _, s := range snap.State.Lines {
		out = append(out, Entry{ID: s.ID, Content: content.Decode(s.Content), Timestamp: s.Timestamp})
	}
	return out, nil
}
