package system

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger.
// It prints to stderr with timestamps enabled; the TUI redirects it to a file.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})

// Component returns a child logger tagged with name. Call it after the output
// and level are configured: children copy the parent's settings when created.
func Component(name string) *clog.Logger {
	return Logger.WithPrefix(name)
}

// Configure sets the output and level of the shared logger. An empty level
// keeps the current one.
func Configure(w io.Writer, level string) error {
	if w != nil {
		Logger.SetOutput(w)
	}
	if level == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}
