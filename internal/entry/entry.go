// Package entry implements the scrollback store: an ordered, durable log of
// console entries.
package entry

import (
	"time"

	"conch/internal/content"
)

// Entry is one unit of scrollback output.
type Entry struct {
	ID        string
	Content   content.Content
	Timestamp time.Time
}

// Patch is a partial update applied by Service.Update. Nil or zero fields are
// left unchanged.
type Patch struct {
	Content   *content.Content
	Timestamp time.Time
}

// Text builds an entry holding plain text. ID and timestamp are filled in by
// the service.
func Text(s string) Entry { return Entry{Content: content.Text(s)} }

// Node builds an entry holding a render tree.
func Node(n *content.Node) Entry { return Entry{Content: content.FromNode(n)} }

func (p Patch) apply(e Entry) Entry {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if !p.Timestamp.IsZero() {
		e.Timestamp = p.Timestamp
	}
	return e
}
