package ui

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"
)

// chromeHeight is the number of rows not used by the scrollback: the status
// bar, the three-row input box and the help line.
const chromeHeight = 5

func (m model) View() string {
	if m.quitting {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString(renderStatusBar(m.width, m.title, m.statusSegments()))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(zone.Mark("conch.input", renderInputUI(m.width, m.inputLine())))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return zone.Scan(b.String())
}

// inputLine renders the prompt, the text input and the completion ghost.
func (m model) inputLine() string {
	line := " " + promptStyle().Render(m.con.Prefix()) + " " + m.ti.View()
	if s := m.con.Suggestion(); s != "" && m.ti.Focused() {
		line += mutedStyle().Render(s + "  ⇥ tab")
	}
	return line
}

func (m model) statusSegments() []string {
	var seg []string
	if m.notice != "" {
		seg = append(seg, errorStyle().Render(withIcon(iconWarn(), m.notice)))
	}
	if m.submitting || m.con.Busy() {
		seg = append(seg, busyStyle().Render(withIcon(iconBusy(), "running…")))
	}
	seg = append(seg,
		withIcon(iconLines(), fmt.Sprintf("%d lines", m.con.Lines().Len())),
		withIcon(iconHistory(), fmt.Sprintf("%d history", m.con.History().Len())),
	)
	return seg
}
