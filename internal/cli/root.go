package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"conch/internal/app"
	"conch/internal/config"
	"conch/internal/system"
)

var rootCmd = &cobra.Command{
	Use:   "conch",
	Short: "conch – interactive command console",
	Long:  "conch opens a console with a persistent scrollback and command history. Subcommands inspect and manage the stored records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		fd := os.Stdin.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return errors.New("conch needs an interactive terminal; see conch --help for scriptable subcommands")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return app.Start(cmd.Context(), cfg)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStores loads the config and hydrated stores for a one-shot
// subcommand. Logs go to stderr.
func openStores(cmd *cobra.Command) (*app.Stores, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := system.Configure(cmd.ErrOrStderr(), cfg.Log.Level); err != nil {
		return nil, config.Config{}, fmt.Errorf("log level: %w", err)
	}
	s, err := app.OpenStores(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := s.Init(cmd.Context()); err != nil {
		_ = s.Close()
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}
