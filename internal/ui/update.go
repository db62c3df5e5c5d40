package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"conch/internal/console"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		// Clicking the input box focuses it; wheel events scroll the scrollback
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if zone.Get("conch.input").InBounds(msg) {
				if !m.ti.Focused() {
					return m, m.ti.Focus()
				}
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh(false)
		return m, nil
	case tea.KeyMsg:
		// Always allow Ctrl+C to quit, even while a command runs
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.PageUp, m.keys.PageDown) {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		if !m.ti.Focused() {
			// enter or i return to the input; other keys scroll
			if key.Matches(msg, m.keys.Submit) || msg.String() == "i" {
				return m, m.ti.Focus()
			}
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		return m.handleInputKey(msg)
	case storesHydratedMsg:
		m.ready = true
		if msg.err != nil {
			m.notice = "load failed: " + msg.err.Error()
		}
		m.refresh(true)
		return m, nil
	case storeChangedMsg:
		m.refresh(false)
		m.syncInput()
		return m, waitForEvent(m.events)
	case committedMsg:
		m.refresh(true)
		return m, waitForEvent(m.events)
	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		m.syncInput()
		m.refresh(msg.err == nil)
		return m, nil
	case recordChangedMsg:
		next := waitForChange(m.changes)
		// a running submit will rewrite the records anyway
		if !m.ready || m.submitting || m.reloading || m.con.Busy() {
			return m, next
		}
		m.reloading = true
		return m, tea.Batch(next, reloadCmd(m.con))
	case reloadDoneMsg:
		m.reloading = false
		if msg.err != nil {
			m.notice = "reload failed: " + msg.err.Error()
		}
		return m, nil
	case watchClosedMsg:
		m.changes = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// handleInputKey maps keys to console input operations while the input is
// focused. Edits are ignored while a submit runs.
func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	busy := m.submitting || m.con.Busy()
	switch {
	case key.Matches(msg, m.keys.Submit):
		if !m.ready || busy {
			return m, nil
		}
		m.submitting = true
		m.notice = ""
		return m, submitCmd(m.con, msg)
	case key.Matches(msg, m.keys.Complete):
		m.con.Complete()
	case key.Matches(msg, m.keys.Previous):
		m.con.RecallPrevious()
	case key.Matches(msg, m.keys.Next):
		m.con.RecallNext()
	case key.Matches(msg, m.keys.Cancel):
		if m.con.State() == console.Idle && !busy {
			m.ti.Blur()
			return m, nil
		}
		m.con.Cancel()
	default:
		if busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		if !m.con.SetBuffer(m.ti.Value()) {
			m.syncInput()
		}
		return m, cmd
	}
	m.syncInput()
	return m, nil
}

// syncInput copies the console buffer into the text input.
func (m *model) syncInput() {
	if v := m.con.Buffer(); v != m.ti.Value() {
		m.ti.SetValue(v)
		m.ti.CursorEnd()
	}
}

// layout sizes the scrollback and input to the window.
func (m *model) layout() {
	inner := maxInt(10, m.width-2)
	m.ti.Width = maxInt(5, inner-promptWidth(m.con.Prefix())-2)
	m.vp.Width = maxInt(10, m.width)
	m.vp.Height = maxInt(1, m.height-chromeHeight)
	m.help.Width = m.width
}

// refresh re-renders the scrollback. It follows the bottom when asked to or
// when the view was already there.
func (m *model) refresh(bottom bool) {
	follow := bottom || m.vp.AtBottom()
	if !m.ready {
		m.vp.SetContent(mutedStyle().Render("loading…"))
		return
	}
	lines := m.con.Lines().Lines()
	if len(lines) == 0 {
		m.vp.SetContent(renderBanner(m.vp.Width))
		return
	}
	m.vp.SetContent(renderEntries(lines, m.con.Prefix(), m.vp.Width))
	if follow {
		m.vp.GotoBottom()
	}
}
