package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"conch/internal/app"
	"conch/internal/config"
	"conch/internal/entry"
	"conch/internal/history"
	"conch/internal/storage"
	"conch/internal/testutil"
	appver "conch/internal/version"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(testutil.WithEnv(t, config.EnvConfig, filepath.Join(dir, "config.yaml")))
	t.Cleanup(testutil.WithEnv(t, "CONCH_STORAGE_DIR", filepath.Join(dir, "data")))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values and Changed marks survive between executions.
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, lines []string, stacks []string) {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	s, err := app.OpenStores(cfg)
	if err != nil {
		t.Fatalf("OpenStores error: %v", err)
	}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	for _, l := range lines {
		s.Lines.Add(entry.Text(l))
	}
	for _, text := range stacks {
		s.History.Add(history.Record{Text: text})
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func counts(t *testing.T) (int, int) {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	s, err := app.OpenStores(cfg)
	if err != nil {
		t.Fatalf("OpenStores error: %v", err)
	}
	defer s.Close()
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	return s.Lines.Len(), s.History.Len()
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != appver.AppVersion {
		t.Fatalf("version = %q, want %q", out, appver.AppVersion)
	}
}

func TestHistory(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "history")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if !strings.Contains(out, "no history") {
		t.Fatalf("empty history output = %q", out)
	}

	seed(t, nil, []string{"hello", "help", "hello"})
	out, err = run(t, "history", "--limit", "2")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	rows := strings.Split(strings.TrimSpace(out), "\n")
	if len(rows) != 2 {
		t.Fatalf("history --limit 2 printed %d rows: %q", len(rows), out)
	}
	if !strings.HasSuffix(rows[0], "help") || !strings.HasSuffix(rows[1], "hello") {
		t.Fatalf("history rows = %q", rows)
	}
	if !strings.HasPrefix(strings.TrimSpace(rows[0]), "2 ") {
		t.Fatalf("row numbering = %q, want index 2 first", rows[0])
	}
}

func TestClear(t *testing.T) {
	setupEnv(t)
	seed(t, []string{"a", "b"}, []string{"a"})

	out, err := run(t, "clear")
	if err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if !strings.Contains(out, "cleared 2 lines") {
		t.Fatalf("clear output = %q", out)
	}
	if l, h := counts(t); l != 0 || h != 1 {
		t.Fatalf("after clear: lines=%d history=%d, want 0 1", l, h)
	}

	seed(t, []string{"c"}, nil)
	if _, err := run(t, "clear", "--history"); err != nil {
		t.Fatalf("clear --history error: %v", err)
	}
	if l, h := counts(t); l != 1 || h != 0 {
		t.Fatalf("after clear --history: lines=%d history=%d, want 1 0", l, h)
	}

	seed(t, nil, []string{"x"})
	if _, err := run(t, "clear", "--all"); err != nil {
		t.Fatalf("clear --all error: %v", err)
	}
	if l, h := counts(t); l != 0 || h != 0 {
		t.Fatalf("after clear --all: lines=%d history=%d, want 0 0", l, h)
	}
}

func TestConfig(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "config.yaml")

	out, err := run(t, "config")
	if err != nil {
		t.Fatalf("config error: %v", err)
	}
	if !strings.HasPrefix(out, "# "+path) {
		t.Fatalf("config output should start with the path, got %q", out)
	}
	if !strings.Contains(out, `"lines_key": "lines"`) {
		t.Fatalf("config output missing storage keys: %q", out)
	}

	if _, err := run(t, "config", "--init"); err != nil {
		t.Fatalf("config --init error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestConfig_InvalidEnv(t *testing.T) {
	setupEnv(t)
	t.Cleanup(testutil.WithEnv(t, "CONCH_STORAGE_BACKEND", "redis"))

	if _, err := run(t, "config"); err == nil || !strings.Contains(err.Error(), "storage.backend") {
		t.Fatalf("expected storage.backend error, got %v", err)
	}
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema", "stacks")
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	if !strings.Contains(out, `"stacks"`) {
		t.Fatalf("stacks schema missing property: %q", out)
	}
	if _, err := run(t, "schema", "nope"); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

// closeFailBackend is an empty backend whose Close always fails.
type closeFailBackend struct{}

func (closeFailBackend) Read(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}
func (closeFailBackend) Write(context.Context, string, []byte) error { return nil }
func (closeFailBackend) Remove(context.Context, string) error        { return nil }
func (closeFailBackend) Close() error                                { return errors.New("disk gone") }

func TestClearStores_CloseErrorSuppressesConfirmation(t *testing.T) {
	w := storage.NewWriter(closeFailBackend{})
	s := &app.Stores{
		Backend: closeFailBackend{},
		Writer:  w,
		Lines:   entry.NewService(w, ""),
		History: history.NewService(w, ""),
	}
	s.Lines.Add(entry.Text("a"))

	var out bytes.Buffer
	err := clearStores(&out, s, true, false)
	if err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("expected close error, got %v", err)
	}
	if strings.Contains(out.String(), "cleared") {
		t.Fatalf("confirmation printed despite failed close: %q", out.String())
	}
}
