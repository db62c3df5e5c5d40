package ui

import "os"

// nfEnabled reports whether Nerd Font icons should be rendered. Default on;
// NERDFONT=0 switches to plain text for terminals without the font.
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

// Status bar icons
func iconLines() string   { return nf("", "") } // fa-terminal
func iconHistory() string { return nf("", "") } // fa-history
func iconBusy() string    { return nf("", "") } // fa-spinner
func iconWarn() string    { return nf("", "!") } // fa-warning

// withIcon prefixes s with icon and a space, or returns s when icon is empty.
func withIcon(icon, s string) string {
	if icon == "" {
		return s
	}
	return icon + " " + s
}
