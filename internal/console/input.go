package console

import (
	"unicode/utf8"

	"conch/internal/command"
)

// State is the input controller state.
type State int

const (
	// Idle: empty buffer, no history cursor.
	Idle State = iota
	// Editing: buffer holds typed text.
	Editing
	// Recalling: buffer was filled from the history record at Cursor.
	Recalling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Recalling:
		return "recalling"
	default:
		return "unknown"
	}
}

// State returns the current input state.
func (c *Console) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.recalling:
		return Recalling
	case c.buf == "":
		return Idle
	default:
		return Editing
	}
}

// Cursor returns the history index being recalled.
func (c *Console) Cursor() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor, c.recalling
}

// Buffer returns the edit buffer.
func (c *Console) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

// Suggestion returns the completion remainder for the current buffer.
func (c *Console) Suggestion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return command.Suggest(c.candidates, c.buf)
}

// SetBuffer replaces the buffer with an edited value. It reports false and
// leaves the buffer unchanged when a submit is running or v exceeds the
// input limit. A recalled buffer keeps its history cursor while edited.
func (c *Console) SetBuffer(v string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || utf8.RuneCountInString(v) > c.maxLen {
		return false
	}
	c.buf = v
	if v == "" {
		c.recalling = false
	}
	return true
}

// Complete appends the current suggestion to the buffer.
func (c *Console) Complete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || c.buf == "" {
		return
	}
	s := command.Suggest(c.candidates, c.buf)
	if s == "" || utf8.RuneCountInString(c.buf+s) > c.maxLen {
		return
	}
	c.buf += s
}

// RecallPrevious loads the previous history record. While recalling it
// steps back from the cursor, even when the recalled record is empty. From an
// empty buffer it jumps to the most recent record. At the oldest record it
// does nothing.
func (c *Console) RecallPrevious() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return
	}
	switch {
	case c.recalling:
		c.recallLocked(c.cursor - 1)
	case c.buf == "":
		c.recallLocked(c.stacks.Len() - 1)
	}
}

// RecallNext loads the next history record. It does nothing unless a record
// is being recalled, or at the newest record.
func (c *Console) RecallNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || !c.recalling {
		return
	}
	c.recallLocked(c.cursor + 1)
}

// recallLocked moves to record i of the live history. A missing record,
// for example after the history was cleared, leaves everything unchanged.
func (c *Console) recallLocked(i int) {
	r, ok := c.stacks.At(i)
	if !ok {
		return
	}
	c.buf = r.Text
	c.cursor = i
	c.recalling = true
}

// Cancel clears the buffer and drops the history cursor. It is allowed
// while a submit runs but does not stop it.
func (c *Console) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = ""
	c.recalling = false
}
