package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"conch/internal/app"
)

var (
	clearHistory bool
	clearAll     bool
)

func init() {
	clearCmd.Flags().BoolVar(&clearHistory, "history", false, "clear the input history instead of the scrollback")
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "clear both the scrollback and the input history")
	clearCmd.MarkFlagsMutuallyExclusive("history", "all")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the stored scrollback or history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStores(cmd)
		if err != nil {
			return err
		}
		return clearStores(cmd.OutOrStdout(), s, !clearHistory || clearAll, clearHistory || clearAll)
	},
}

// clearStores resets the selected stores and closes s. Confirmations are
// printed only once the reset has been flushed.
func clearStores(out io.Writer, s *app.Stores, lines, hist bool) error {
	var nLines, nHist int
	if lines {
		nLines = s.Lines.Len()
		s.Lines.Reset()
	}
	if hist {
		nHist = s.History.Len()
		s.History.Reset()
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("flush stores: %w", err)
	}
	if lines {
		fmt.Fprintf(out, "✓ cleared %s %s\n", humanize.Comma(int64(nLines)), plural(nLines, "line", "lines"))
	}
	if hist {
		fmt.Fprintf(out, "✓ cleared %s history %s\n", humanize.Comma(int64(nHist)), plural(nHist, "record", "records"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
