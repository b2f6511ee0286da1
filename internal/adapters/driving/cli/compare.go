package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reqlens/reqlens-cli/internal/adapters/driven/ai"
	"github.com/reqlens/reqlens-cli/internal/adapters/driven/report"
	"github.com/reqlens/reqlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driving"
	"github.com/reqlens/reqlens-cli/internal/core/services"
	"github.com/reqlens/reqlens-cli/internal/extractor"
)

var (
	compareNew        string
	compareExisting   string
	compareDir        string
	compareLabelNew   string
	compareLabelExist string
	compareOutput     string
	compareFormat     string
	compareThreshold  float64
	compareNoRecs     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare new requirements against existing features",
	Long: `Extracts features from both documents, classifies each new feature as
an exact match, a similar match, or a delta, and writes a report.

With --existing-dir, the new document is compared against every markdown
file in the directory and the best-matching baseline is reported.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareNew, "new", "", "path to the new requirements document (required)")
	compareCmd.Flags().StringVar(&compareExisting, "existing", "", "path to the existing features document")
	compareCmd.Flags().StringVar(&compareDir, "existing-dir", "", "directory of existing feature documents to batch-compare")
	compareCmd.Flags().StringVar(&compareLabelNew, "label-new", "", "source label for new features (defaults to filename)")
	compareCmd.Flags().StringVar(&compareLabelExist, "label-existing", "", "source label for existing features (defaults to filename)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "report output path (defaults to a timestamped file)")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "", "report format: markdown, html or both")
	compareCmd.Flags().Float64VarP(&compareThreshold, "threshold", "t", 0, "override the similar-match threshold")
	compareCmd.Flags().BoolVar(&compareNoRecs, "no-recommendations", false, "skip strategic recommendations")
	_ = compareCmd.MarkFlagRequired("new")
	compareCmd.MarkFlagsMutuallyExclusive("existing", "existing-dir")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if compareExisting == "" && compareDir == "" {
		return errors.New("one of --existing or --existing-dir is required")
	}

	similarThreshold := cfg.Comparison.SimilarMatchThreshold
	if cmd.Flags().Changed("threshold") {
		similarThreshold = compareThreshold
	}

	format := report.Format(cfg.Report.DefaultFormat)
	if compareFormat != "" {
		format = report.Format(compareFormat)
	}
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, format)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}
	defer embedder.Close()

	// The LLM is optional; gap analysis and recommendations degrade to
	// fixed fallback text without it.
	llm, err := ai.CreateAndValidateLLMService(cfg.LLMSettings())
	if err != nil {
		log.Warn("LLM unavailable, using fallback analysis: %v", err)
		llm = nil
	}
	if llm != nil {
		defer llm.Close()
	}

	gap := services.NewGapAnalyzer(llm, cfg.LLMSettings(), log)
	matcher, err := services.NewMatcher(embedder, gap, cfg.Comparison.ExactMatchThreshold, similarThreshold, log)
	if err != nil {
		return err
	}

	runStore := openRunStore()
	if runStore != nil {
		defer runStore.Close()
	}

	svc := services.NewComparisonService(extractor.New(log), matcher, runStore, log)

	ctx := cmd.Context()

	var result *domain.ComparisonResult
	if compareDir != "" {
		results, err := svc.CompareAgainstDirectory(ctx, compareNew, compareDir)
		if err != nil {
			return err
		}
		result = svc.BestMatch(results)
		printBatchResults(cmd, results, result)
	} else {
		result, err = svc.CompareDocuments(ctx, compareNew, compareExisting, driving.CompareOptions{
			NewLabel:      compareLabelNew,
			ExistingLabel: compareLabelExist,
		})
		if err != nil {
			return err
		}
	}

	includeRecs := cfg.Report.IncludeRecommendations && !compareNoRecs
	var recommendations []string
	if includeRecs {
		recommendations = services.NewRecommender(llm, cfg.LLMSettings(), log).
			Generate(ctx, result.Statistics)
	}

	printSummary(cmd, result)

	gen := report.NewGenerator(cfg.Output.Directory, report.Options{
		IncludeStatistics:      cfg.Report.IncludeStatistics,
		IncludeRecommendations: includeRecs,
	}, log)

	written, err := gen.Generate(result, format, compareOutput, recommendations)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	for _, path := range written {
		cmd.Printf("Report: %s\n", path)
	}

	return nil
}

// openRunStore opens the history database. Failures are warnings: the
// comparison itself never depends on persistence.
func openRunStore() driven.RunStore {
	store, err := sqlite.NewStore("")
	if err != nil {
		log.Warn("run history unavailable: %v", err)
		return nil
	}
	return store
}

func printSummary(cmd *cobra.Command, result *domain.ComparisonResult) {
	st := result.Statistics

	cmd.Println()
	cmd.Printf("%s vs %s\n", result.NewDocument, result.ExistingDocument)
	cmd.Printf("  %s  %d (%.1f%%)\n", color.GreenString("Exact matches:  "), st.ExactCount, st.ExactMatchPercent)
	cmd.Printf("  %s  %d (%.1f%%)\n", color.YellowString("Similar matches:"), st.SimilarCount, st.SimilarMatchPercent)
	cmd.Printf("  %s  %d (%.1f%%)\n", color.BlueString("Delta features: "), st.DeltaCount, st.DeltaPercent)
	cmd.Printf("  %s %.1f%%\n", color.MagentaString("Reusability:    "), st.ReusabilityScore)
	cmd.Printf("  Run ID: %s\n", result.RunID)
	cmd.Println()
}

func printBatchResults(cmd *cobra.Command, results []*domain.ComparisonResult, best *domain.ComparisonResult) {
	cmd.Printf("Compared against %d documents:\n", len(results))
	for _, r := range results {
		cmd.Printf("  %-40s reusability %.1f%%\n", r.ExistingDocument, r.Statistics.ReusabilityScore)
	}
	if best != nil {
		cmd.Printf("Best match: %s\n", color.GreenString(best.ExistingDocument))
	}
}
