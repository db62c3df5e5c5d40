package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"conch/internal/content"
	"conch/internal/entry"
)

// notFoundSuffix marks the line printed for unknown input.
const notFoundSuffix = ": command not found"

// renderEntries flattens the scrollback into styled, width-wrapped lines.
func renderEntries(lines []entry.Entry, prefix string, width int) string {
	if width <= 0 {
		width = 80
	}
	echo := prefix + " "
	var b strings.Builder
	for i, e := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, ln := range content.Lines(e.Content) {
			if j > 0 {
				b.WriteString("\n")
			}
			var styled string
			switch {
			case e.Content.IsNode():
				styled = nodeStyle().Render(ln)
			case strings.HasPrefix(ln, echo):
				styled = promptStyle().Render(prefix) + " " + textStyle().Render(ln[len(echo):])
			case strings.HasSuffix(ln, notFoundSuffix):
				styled = errorStyle().Render(ln)
			default:
				styled = textStyle().Render(ln)
			}
			b.WriteString(xansi.Hardwrap(styled, width, true))
		}
	}
	return b.String()
}

// promptWidth returns the display width of the prompt plus its separator.
func promptWidth(prefix string) int {
	return runewidth.StringWidth(prefix) + 1
}

// renderInputUI draws the bordered input box at the given width.
func renderInputUI(width int, content string) string {
	// Provide a reasonable fallback width
	w := width
	if w <= 0 {
		w = 100
	}
	// Minimum box width to safely draw borders and one space
	if w < 10 {
		w = 10
	}
	inner := w - 2
	// compute display width ignoring ANSI escape codes
	if xansi.StringWidth(content) > inner {
		content = xansi.Truncate(content, inner, "")
	}
	pad := inner - xansi.StringWidth(content)
	border := BorderStyle()
	var sb strings.Builder
	sb.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	sb.WriteString(border.Render("│"))
	sb.WriteString(content)
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(border.Render("│") + "\n")
	sb.WriteString(border.Render("╰" + strings.Repeat("─", inner) + "╯"))
	return sb.String()
}

// renderStatusBar draws a single-line status bar at the given width
// with a title chip on the left and plain segments on the right.
func renderStatusBar(width int, title string, right []string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	chip := ChipKeyStyle().Render(runewidth.Truncate(title, maxInt(1, w/3), "…"))
	base := StatusBarBase()
	r := base.Render(" " + strings.Join(right, " · ") + " ")
	// Ensure the chip fits, then trim the right side if necessary
	avail := w - xansi.StringWidth(chip)
	if xansi.StringWidth(r) > avail {
		r = xansi.Truncate(r, maxInt(0, avail), "")
	}
	pad := maxInt(0, avail-xansi.StringWidth(r))
	return chip + base.Render(strings.Repeat(" ", pad)) + r
}

// helper used locally for layout
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
