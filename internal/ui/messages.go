package ui

import "time"

// Bubble Tea messages

// storesHydratedMsg reports the end of the initial load.
type storesHydratedMsg struct{ err error }

// storeChangedMsg is sent when the scrollback or history changed.
type storeChangedMsg struct{}

// committedMsg carries the commit time of a finished submit.
type committedMsg struct{ at time.Time }

// submitDoneMsg ends a submit started from the input.
type submitDoneMsg struct{ err error }

// recordChangedMsg names a record rewritten by another process.
type recordChangedMsg struct{ name string }

// reloadDoneMsg ends a reload triggered by recordChangedMsg.
type reloadDoneMsg struct{ err error }

// watchClosedMsg is sent once the record watcher stops.
type watchClosedMsg struct{}
