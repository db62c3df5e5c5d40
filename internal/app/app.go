package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"conch/internal/config"
	"conch/internal/console"
	"conch/internal/entry"
	"conch/internal/history"
	"conch/internal/playground"
	"conch/internal/storage"
	"conch/internal/system"
	"conch/internal/ui"
)

// Stores groups the persisted services of one console.
type Stores struct {
	Backend storage.Backend
	Writer  *storage.Writer
	Lines   *entry.Service
	History *history.Service
}

// OpenStores opens the configured backend and creates both services. The
// services are not hydrated; call Init.
func OpenStores(cfg config.Config) (*Stores, error) {
	backend, err := storage.Open(storage.Options{Backend: cfg.Storage.Backend, Dir: cfg.Storage.Dir})
	if err != nil {
		return nil, err
	}
	w := storage.NewWriter(backend)
	return &Stores{
		Backend: backend,
		Writer:  w,
		Lines:   entry.NewService(w, cfg.Storage.LinesKey),
		History: history.NewService(w, cfg.Storage.StacksKey),
	}, nil
}

// Init hydrates both services.
func (s *Stores) Init(ctx context.Context) error {
	if err := s.Lines.Init(ctx); err != nil {
		return err
	}
	return s.History.Init(ctx)
}

// Close flushes pending writes and closes the backend.
func (s *Stores) Close() error {
	err := errors.Join(s.Lines.Close(), s.History.Close(), s.Writer.Close())
	return errors.Join(err, s.Backend.Close())
}

// NewConsole builds the conch console: built-ins plus the playground
// commands and fallback.
func NewConsole(cfg config.Config, s *Stores) *console.Console {
	return console.New(s.Lines, s.History, console.Options{
		Prefix:         cfg.Prompt,
		MaxInputLength: cfg.MaxInputLength,
		Commands:       playground.Commands(),
		Fallback:       playground.Fallback,
	})
}

// Start runs the TUI program and returns any error.
func Start(ctx context.Context, cfg config.Config) error {
	// Log to a file: stderr output would corrupt the alt screen.
	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.Storage.Dir, "conch.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	if err := system.Configure(logFile, cfg.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log := system.Component("app")

	stores, err := OpenStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("failed to close stores", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes, err := watchRecords(ctx, cfg, stores.Backend)
	if err != nil {
		log.Warn("record watch disabled", "err", err)
	}

	con := NewConsole(cfg, stores)
	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	m := ui.New(ui.Options{
		Console: con,
		Title:   cfg.Title,
		Hydrate: stores.Init,
		Changes: changes,
	})
	log.Info("starting console", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	return nil
}

// watchRecords returns changes to the console's own records, or nil when
// watching is off or unsupported by the backend.
func watchRecords(ctx context.Context, cfg config.Config, b storage.Backend) (<-chan string, error) {
	if !cfg.Storage.Watch {
		return nil, nil
	}
	w, ok := b.(storage.Watcher)
	if !ok {
		return nil, fmt.Errorf("backend %s cannot be watched", cfg.Storage.Backend)
	}
	raw, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan string, 1)
	go func() {
		defer close(out)
		for name := range raw {
			if name != cfg.Storage.LinesKey && name != cfg.Storage.StacksKey {
				continue
			}
			select {
			case out <- name:
			default:
			}
		}
	}()
	return out, nil
}
