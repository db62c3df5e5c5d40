package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"conch/internal/console"
)

// reloadTimeout bounds a reload after an external change.
const reloadTimeout = 5 * time.Second

func (m model) hydrateCmd() tea.Cmd {
	hydrate := m.hydrate
	return func() tea.Msg {
		if hydrate == nil {
			return storesHydratedMsg{}
		}
		return storesHydratedMsg{err: hydrate(context.Background())}
	}
}

// submitCmd runs the submit off the UI loop; async actions may block it.
func submitCmd(con *console.Console, event tea.KeyMsg) tea.Cmd {
	return func() tea.Msg {
		err := con.Submit(context.Background(), event)
		if errors.Is(err, console.ErrBusy) {
			err = nil
		}
		return submitDoneMsg{err: err}
	}
}

func reloadCmd(con *console.Console) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		if _, err := con.Lines().Reload(ctx); err != nil {
			return reloadDoneMsg{err: err}
		}
		_, err := con.History().Reload(ctx)
		return reloadDoneMsg{err: err}
	}
}

func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		name, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return recordChangedMsg{name: name}
	}
}
