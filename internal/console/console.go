// Package console is the interactive command engine: it owns the edit
// buffer and history cursor, resolves submitted lines against the command
// registry and records every submit in the scrollback and history stores.
//
// A Console holds no presentation state. A surface reads Buffer, Suggestion
// and the stores, forwards key events to the input methods and subscribes to
// EventCommitted to scroll after a submit completes.
package console

import (
	"errors"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"conch/internal/command"
	"conch/internal/entry"
	"conch/internal/history"
	"conch/internal/system"
)

const (
	DefaultPrefix         = "> guest@conch:~$"
	DefaultMaxInputLength = 100
)

// ErrBusy is returned by Submit while an earlier submit is still running.
var ErrBusy = errors.New("console: submit in progress")

// Options configures a Console.
type Options struct {
	// Prefix is echoed before every submitted line.
	Prefix string
	// MaxInputLength caps the buffer in runes. Zero means the default.
	MaxInputLength int
	// Commands are appended after the built-in commands.
	Commands []command.Descriptor
	// Fallback handles input that matches no command. When nil a
	// "command not found" line is printed instead.
	Fallback command.Action
}

// EventKind identifies a console event.
type EventKind int

const (
	// EventCommitted fires after a submit completes and the buffer is cleared.
	EventCommitted EventKind = iota
)

// Event is delivered to subscribers.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Console is one console instance. Its methods are safe for concurrent use;
// Submit may run on its own goroutine while the surface keeps reading state.
type Console struct {
	lines    *entry.Service
	stacks   *history.Service
	registry *command.Registry
	// candidates are the completion texts captured at construction
	candidates []string
	fallback   command.Action
	prefix     string
	maxLen     int

	mu        sync.Mutex
	buf       string
	cursor    int
	recalling bool
	busy      bool
	committed time.Time

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	now func() time.Time
	log *clog.Logger
}

// New builds a console over the given stores. The stores are used as they
// are; hydrate them with Init before the first submit.
func New(lines *entry.Service, stacks *history.Service, opts Options) *Console {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	reg := command.NewRegistry(command.Builtins(), opts.Commands)
	return &Console{
		lines:      lines,
		stacks:     stacks,
		registry:   reg,
		candidates: reg.Texts(),
		fallback:   opts.Fallback,
		prefix:     opts.Prefix,
		maxLen:     opts.MaxInputLength,
		subs:       map[int]func(Event){},
		now:        time.Now,
		log:        system.Component("console"),
	}
}

// Lines returns the scrollback store.
func (c *Console) Lines() *entry.Service { return c.lines }

// History returns the input history store.
func (c *Console) History() *history.Service { return c.stacks }

// Registry returns the command registry.
func (c *Console) Registry() *command.Registry { return c.registry }

// Prefix returns the prompt echoed before submitted input.
func (c *Console) Prefix() string { return c.prefix }

// MaxInputLength returns the buffer limit in runes.
func (c *Console) MaxInputLength() int { return c.maxLen }

// Busy reports whether a submit is in flight.
func (c *Console) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Committed returns when the last submit completed, or the zero time.
func (c *Console) Committed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// Subscribe registers fn for console events and returns a func that
// unregisters it. Events are delivered on the goroutine that ran Submit.
func (c *Console) Subscribe(fn func(Event)) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Console) publish(ev Event) {
	c.subMu.Lock()
	fns := make([]func(Event), 0, len(c.subs))
	for i := 0; i < c.nextSub; i++ {
		if fn, ok := c.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
