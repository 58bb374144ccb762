package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the evaluation history",
	Long: `Lists the most recently evaluated lines across all sessions.

History is recorded only when history.enabled is set in the config.
Variables are never restored from the history.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default: history.limit)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if !a.config.History.Enabled {
		fmt.Fprintln(out, "history is disabled (set history.enabled = true in the config)")
		return nil
	}

	if historyClear {
		n, err := a.store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %d entries\n", n)
		return nil
	}

	limit := historyLimit
	if limit <= 0 {
		limit = a.config.History.Limit
	}

	entries, err := a.store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no history")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSESSION\tINPUT\tRESULT")
	for _, e := range entries {
		result := fmt.Sprint(e.Result)
		if e.Failed() {
			result = "error: " + e.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), shortID(e.SessionID), e.Input, result)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
