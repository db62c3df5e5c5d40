// Package settings provides the interactive config editor.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"conch/internal/config"
	"conch/internal/storage"
)

// values holds the form fields as edited strings.
type values struct {
	Prompt         string
	Title          string
	MaxInputLength string
	Backend        string
	Dir            string
	Watch          bool
	LogLevel       string
}

func newValues(c config.Config) *values {
	return &values{
		Prompt:         c.Prompt,
		Title:          c.Title,
		MaxInputLength: strconv.Itoa(c.MaxInputLength),
		Backend:        c.Storage.Backend,
		Dir:            c.Storage.Dir,
		Watch:          c.Storage.Watch,
		LogLevel:       c.Log.Level,
	}
}

// apply copies the edited values onto c and validates the result.
func (v *values) apply(c config.Config) (config.Config, error) {
	n, err := validateLength(v.MaxInputLength)
	if err != nil {
		return config.Config{}, err
	}
	c.Prompt = v.Prompt
	c.Title = v.Title
	c.MaxInputLength = n
	c.Storage.Backend = v.Backend
	c.Storage.Dir = strings.TrimSpace(v.Dir)
	c.Storage.Watch = v.Watch
	c.Log.Level = v.LogLevel
	return c, c.Validate()
}

func validateLength(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("max input length must be a positive number")
	}
	return n, nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func newForm(v *values) *huh.Form {
	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#4d9375")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Console").Description("Prompt and window settings"),
			huh.NewInput().Title("Prompt").Value(&v.Prompt).Validate(notEmpty),
			huh.NewInput().Title("Title").Value(&v.Title),
			huh.NewInput().Title("Max input length").Value(&v.MaxInputLength).
				Validate(func(s string) error { _, err := validateLength(s); return err }),
		),
		huh.NewGroup(
			huh.NewNote().Title("Storage").Description("Where scrollback and history are kept"),
			huh.NewSelect[string]().Title("Backend").
				Options(huh.NewOption("diskv (files)", storage.BackendDiskv), huh.NewOption("sqlite", storage.BackendSQLite)).
				Value(&v.Backend),
			huh.NewInput().Title("Directory").Value(&v.Dir).Validate(notEmpty),
			huh.NewConfirm().Title("Watch for changes").Value(&v.Watch),
			huh.NewSelect[string]().Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithTheme(theme).WithWidth(60)
}

// Run opens the settings form prefilled from current and returns the edited
// configuration. It does not save.
func Run(current config.Config) (config.Config, error) {
	v := newValues(current)
	if err := newForm(v).Run(); err != nil {
		return config.Config{}, err // form canceled or failed
	}
	return v.apply(current)
}
