package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reqlens/reqlens-cli/internal/adapters/driven/storage/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent comparison runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	summaries, err := store.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		cmd.Println("No comparison runs recorded yet.")
		return nil
	}

	cmd.Printf("%-36s  %-19s  %-25s  %-25s  %s\n",
		"RUN ID", "WHEN", "NEW", "EXISTING", "REUSE")
	for _, s := range summaries {
		cmd.Printf("%-36s  %-19s  %-25s  %-25s  %.1f%%\n",
			s.RunID,
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(s.NewDocument, 25),
			truncate(s.ExistingDocument, 25),
			s.ReusabilityScore)
	}

	return nil
}

// truncate shortens s to at most max runes, never splitting a
// multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
