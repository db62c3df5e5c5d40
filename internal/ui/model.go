package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"conch/internal/console"
)

// Options configures the console surface.
type Options struct {
	Console *console.Console
	// Title is shown in the top bar.
	Title string
	// Hydrate loads the stores before entries are shown. Nil means the
	// stores are already loaded.
	Hydrate func(ctx context.Context) error
	// Changes delivers names of records rewritten by another process.
	Changes <-chan string
}

// Model for TUI
type model struct {
	con     *console.Console
	title   string
	hydrate func(ctx context.Context) error
	changes <-chan string
	// events carries store and console notifications into the program
	events chan tea.Msg

	ti   textinput.Model
	vp   viewport.Model
	keys keyMap
	help help.Model

	width  int
	height int
	// ready is false until the stores are hydrated
	ready      bool
	submitting bool
	reloading  bool
	notice     string
	quitting   bool
}

func newModel(opts Options) model {
	m := model{
		con:     opts.Console,
		title:   opts.Title,
		hydrate: opts.Hydrate,
		changes: opts.Changes,
		events:  make(chan tea.Msg, 64),
		keys:    defaultKeyMap(),
		help:    help.New(),
		vp:      viewport.New(80, 20),
	}
	if m.title == "" {
		m.title = "conch"
	}
	// text input setup
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type help and press enter"
	ti.CharLimit = m.con.MaxInputLength()
	ti.Focus()
	m.ti = ti

	events := m.events
	changed := func() { post(events, storeChangedMsg{}) }
	m.con.Lines().Subscribe(changed)
	m.con.History().Subscribe(changed)
	m.con.Subscribe(func(ev console.Event) {
		if ev.Kind == console.EventCommitted {
			post(events, committedMsg{at: ev.At})
		}
	})
	return m
}

// New returns the console surface as a tea.Model.
func New(opts Options) tea.Model { return newModel(opts) }

// post queues msg without blocking. A full queue already holds a pending
// refresh, so dropping is safe.
func post(ch chan<- tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.hydrateCmd(), waitForEvent(m.events)}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}
