package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"conch/internal/config"
	"conch/internal/settings"
)

var (
	configWizard bool
	configInit   bool
)

func init() {
	configCmd.Flags().BoolVar(&configWizard, "wizard", false, "edit the config in an interactive form and save it")
	configCmd.Flags().BoolVar(&configInit, "init", false, "write the effective config to the config file")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration",
	Long:  "Prints the config file location and the effective configuration (defaults, file and CONCH_ environment overrides).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if configWizard {
			if cfg, err = settings.Run(cfg); err != nil {
				return err
			}
		}
		if configWizard || configInit {
			path, err := config.Save(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ saved %s\n", path)
			return nil
		}
		path, err := config.Path()
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# %s\n%s\n", path, b)
		return nil
	},
}
