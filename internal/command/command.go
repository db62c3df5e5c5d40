// Package command defines console commands, their actions and the registry
// that resolves submitted input to a command.
package command

import (
	"context"

	"conch/internal/content"
	"conch/internal/entry"
	"conch/internal/history"
)

// Descriptor binds matcher text to an action. Input matches when it starts
// with Text; Exact additionally requires the input to equal Text.
type Descriptor struct {
	Text        string
	Description string
	Exact       bool
	Action      Action
}

// Action handles a submitted line. It returns Done for synchronous work or
// an asynchronous result from Await or Go.
type Action func(ctx context.Context, call Call) Result

// Call carries the submitted line to an action.
type Call struct {
	// Value is the raw submitted input.
	Value string
	// Event is the presentation event that triggered the submit, if any.
	Event any
	Context Context
}

// LineOps is the mutation surface of the scrollback exposed to actions.
type LineOps interface {
	Add(e entry.Entry) entry.Entry
	AddMany(es []entry.Entry) []entry.Entry
	Update(id string, p entry.Patch) bool
	Remove(id string)
	RemoveMany(ids []string)
	Reset()
	Lines() []entry.Entry
}

// StackOps is the mutation surface of the input history exposed to actions.
type StackOps interface {
	Add(r history.Record) history.Record
	AddMany(rs []history.Record)
	Remove(text string)
	RemoveMany(texts []string)
	Reset()
	Records() []history.Record
}

// Context is the console state handed to an action. Lines and Stacks are
// snapshots taken when the action starts; the ops reach the live stores.
// No locking is provided across calls.
type Context struct {
	Commands []Descriptor
	Lines    []entry.Entry
	Stacks   []history.Record
	LineOps  LineOps
	StackOps StackOps
}

// Print appends a plain text entry to the scrollback.
func (c Context) Print(s string) entry.Entry {
	return c.LineOps.Add(entry.Text(s))
}

// Render appends a render tree entry to the scrollback.
func (c Context) Render(n *content.Node) entry.Entry {
	return c.LineOps.Add(entry.Node(n))
}

// Result is what an action returns. The concrete type tells the console
// whether to wait: SyncResult completes immediately, AsyncResult when its
// channel yields.
type Result interface {
	isResult()
}

// SyncResult is a completed action.
type SyncResult struct {
	Err error
}

func (SyncResult) isResult() {}

// AsyncResult is an action still running. The channel delivers exactly one
// error (nil on success) or is closed without a value.
type AsyncResult struct {
	Settled <-chan error
}

func (AsyncResult) isResult() {}

// Done reports a synchronous outcome.
func Done(err error) Result { return SyncResult{Err: err} }

// Await wraps a channel that settles the action.
func Await(ch <-chan error) Result { return AsyncResult{Settled: ch} }

// Go runs fn on a new goroutine and settles when it returns.
func Go(fn func() error) Result {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
	}()
	return Await(ch)
}

// Wait blocks until r settles or ctx ends.
func Wait(ctx context.Context, r Result) error {
	switch r := r.(type) {
	case nil:
		return nil
	case SyncResult:
		return r.Err
	case AsyncResult:
		if r.Settled == nil {
			return nil
		}
		select {
		case err := <-r.Settled:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	default:
		return nil
	}
}

// IsAsync reports whether r must be waited on.
func IsAsync(r Result) bool {
	_, ok := r.(AsyncResult)
	return ok
}
