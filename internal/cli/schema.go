package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"conch/internal/schema"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [lines|stacks|config]",
	Short:     "Print the JSON Schema of a stored record or the config",
	Args:      cobra.ExactArgs(1),
	ValidArgs: schema.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := schema.For(args[0])
		if err != nil {
			return err
		}
		b, err := schema.MarshalSchema(sch)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
