package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig overrides the config file location.
const EnvConfig = "CONCH_CONFIG"

// Dir returns the conch config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/conch; on macOS
// to ~/Library/Application Support/conch; and on Windows to %AppData%/conch.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "conch"), nil
}

// DataDir returns the default directory for persisted console records and
// the log file.
func DataDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Path returns the config file path: $CONCH_CONFIG when set, otherwise
// config.yaml in Dir.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
