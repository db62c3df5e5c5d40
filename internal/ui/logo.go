package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// logoBlocks returns 6-row glyphs spelling CONCH.
func logoBlocks() [][]string {
	C := []string{
		"  #####  ",
		" ####### ",
		" ###     ",
		" ###     ",
		" ####### ",
		"  #####  ",
	}
	O := []string{
		"  #####  ",
		" ####### ",
		" ### ### ",
		" ### ### ",
		" ####### ",
		"  #####  ",
	}
	N := []string{
		" ##   ## ",
		" ###  ## ",
		" #### ## ",
		" ## #### ",
		" ##  ### ",
		" ##   ## ",
	}
	H := []string{
		" ### ### ",
		" ### ### ",
		" ####### ",
		" ####### ",
		" ### ### ",
		" ### ### ",
	}
	return [][]string{C, O, N, C, H}
}

// composeLogo joins glyphs horizontally, drawing marks as full blocks.
func composeLogo(blocks [][]string) []string {
	out := make([]string, 6)
	for row := range out {
		parts := make([]string, 0, len(blocks))
		for _, blk := range blocks {
			parts = append(parts, strings.ReplaceAll(blk[row], "#", "█"))
		}
		out[row] = strings.Join(parts, " ")
	}
	return out
}

// renderBanner is the placeholder shown while the scrollback is empty. The
// logo is centered in width and dropped when it does not fit.
func renderBanner(width int) string {
	if width <= 0 {
		width = 80
	}
	var lines []string
	logo := composeLogo(logoBlocks())
	if xansi.StringWidth(logo[0]) < width {
		lines = append(lines, "")
		for _, ln := range logo {
			lines = append(lines, promptStyle().Render(ln))
		}
	}
	lines = append(lines, "", mutedStyle().Render("Type a command and press enter. Tab completes, ↑ recalls."))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
