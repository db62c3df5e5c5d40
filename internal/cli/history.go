package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most n records (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the submitted input history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, _, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close stores: %w", cerr)
			}
		}()

		records := s.History.Records()
		start := 0
		if historyLimit > 0 && len(records) > historyLimit {
			start = len(records) - historyLimit
		}
		out := cmd.OutOrStdout()
		for i := start; i < len(records); i++ {
			r := records[i]
			fmt.Fprintf(out, "%5d  %-16s  %s\n", i+1, humanize.Time(r.Timestamp), r.Text)
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "no history")
		}
		return nil
	},
}
