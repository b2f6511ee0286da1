package report

import (
	"fmt"
	"strings"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

// RenderMarkdown renders the result as a markdown document without
// touching the filesystem. Used to re-display stored runs.
func RenderMarkdown(result *domain.ComparisonResult, recommendations []string, opts Options) string {
	return buildMarkdown(result, recommendations, opts)
}

func buildMarkdown(result *domain.ComparisonResult, recommendations []string, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Requirements Comparison Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**New Document:** %s (%d features)\n\n", result.NewDocument, result.NewCount)
	fmt.Fprintf(&b, "**Existing Document:** %s (%d features)\n\n", result.ExistingDocument, result.ExistingCount)

	if opts.IncludeStatistics {
		st := result.Statistics
		b.WriteString("## Executive Summary\n\n")
		b.WriteString("| Metric | Count | Percentage |\n")
		b.WriteString("|--------|-------|------------|\n")
		fmt.Fprintf(&b, "| Exact Matches | %d | %.1f%% |\n", st.ExactCount, st.ExactMatchPercent)
		fmt.Fprintf(&b, "| Similar Features | %d | %.1f%% |\n", st.SimilarCount, st.SimilarMatchPercent)
		fmt.Fprintf(&b, "| New Features (Delta) | %d | %.1f%% |\n", st.DeltaCount, st.DeltaPercent)
		fmt.Fprintf(&b, "\n**Reusability Score:** %.1f%%\n\n", st.ReusabilityScore)
	}

	fmt.Fprintf(&b, "## Exact Matches (%d)\n\n", len(result.ExactMatches))
	if len(result.ExactMatches) == 0 {
		b.WriteString("No exact matches found.\n\n")
	} else {
		b.WriteString("These features already exist and can be reused directly.\n\n")
		b.WriteString("| # | New Feature | Existing Feature | Similarity |\n")
		b.WriteString("|---|-------------|------------------|------------|\n")
		for i, m := range result.ExactMatches {
			fmt.Fprintf(&b, "| %d | %s | %s | %.1f%% |\n",
				i+1, m.New.Title, m.Matched.Title, m.Score*100)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Similar Features (%d)\n\n", len(result.SimilarMatches))
	if len(result.SimilarMatches) == 0 {
		b.WriteString("No similar features found.\n\n")
	} else {
		b.WriteString("These features partially overlap with existing ones and need modification.\n\n")
		for i, m := range result.SimilarMatches {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, m.New.Title)
			fmt.Fprintf(&b, "**Matches:** %s (%.1f%% similar)\n\n", m.Matched.Title, m.Score*100)
			if m.GapAnalysis != nil && *m.GapAnalysis != "" {
				fmt.Fprintf(&b, "**Gap Analysis:**\n\n%s\n\n", *m.GapAnalysis)
			}
		}
	}

	fmt.Fprintf(&b, "## New Features - Delta (%d)\n\n", len(result.DeltaFeatures))
	if len(result.DeltaFeatures) == 0 {
		b.WriteString("No new features. Everything already exists.\n\n")
	} else {
		b.WriteString("These features do not exist yet and must be built from scratch.\n\n")
		for i, f := range result.DeltaFeatures {
			fmt.Fprintf(&b, "%d. **%s**", i+1, f.Title)
			if f.Description != "" && f.Description != f.Title {
				fmt.Fprintf(&b, " - %s", f.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if opts.IncludeRecommendations && len(recommendations) > 0 {
		b.WriteString("## Strategic Recommendations\n\n")
		for _, r := range recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	st := result.Statistics
	b.WriteString("## Implementation Impact Summary\n\n")
	fmt.Fprintf(&b, "- **Features to reuse as-is:** %d\n", st.ExactCount)
	fmt.Fprintf(&b, "- **Features to modify:** %d\n", st.SimilarCount)
	fmt.Fprintf(&b, "- **Features to build:** %d\n", st.DeltaCount)
	fmt.Fprintf(&b, "- **Estimated Effort Savings: %.1f%%**\n", st.ReusabilityScore*0.7)

	return b.String()
}
