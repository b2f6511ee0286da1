package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reqlens/reqlens-cli/internal/adapters/driven/report"
	"github.com/reqlens/reqlens-cli/internal/adapters/driven/storage/sqlite"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Display a stored comparison run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	result, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	md := report.RenderMarkdown(result, nil, report.Options{
		IncludeStatistics: cfg.Report.IncludeStatistics,
	})
	cmd.Println(md)

	return nil
}
