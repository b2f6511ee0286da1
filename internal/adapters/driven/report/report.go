// Package report renders comparison results into markdown and HTML
// documents on disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// Format selects the report output format.
type Format string

// Available formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatBoth     Format = "both"
)

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatBoth:
		return true
	default:
		return false
	}
}

// Options controls report content.
type Options struct {
	// IncludeStatistics gates the executive summary table.
	IncludeStatistics bool

	// IncludeRecommendations gates the strategic recommendations section.
	IncludeRecommendations bool
}

// Generator writes comparison reports under an output directory.
type Generator struct {
	outputDir string
	opts      Options
	log       *logger.Logger
}

// NewGenerator creates a report generator rooted at outputDir.
func NewGenerator(outputDir string, opts Options, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{outputDir: outputDir, opts: opts, log: log}
}

// Generate renders the result in the requested format(s). When
// outputPath is empty, filenames are timestamp-derived under the output
// directory to avoid collisions. Returns format -> written path.
func (g *Generator) Generate(
	result *domain.ComparisonResult, format Format, outputPath string, recommendations []string,
) (map[string]string, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, format)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make(map[string]string)

	if format == FormatMarkdown || format == FormatBoth {
		path, err := g.write(result, FormatMarkdown, outputPath, recommendations)
		if err != nil {
			return nil, err
		}
		written[string(FormatMarkdown)] = path
	}

	if format == FormatHTML || format == FormatBoth {
		path, err := g.write(result, FormatHTML, outputPath, recommendations)
		if err != nil {
			return nil, err
		}
		written[string(FormatHTML)] = path
	}

	return written, nil
}

func (g *Generator) write(
	result *domain.ComparisonResult, format Format, outputPath string, recommendations []string,
) (string, error) {
	ext := ".md"
	if format == FormatHTML {
		ext = ".html"
	}

	path := outputPath
	switch {
	case path == "":
		name := "comparison_" + time.Now().Format("20060102_150405") + ext
		path = filepath.Join(g.outputDir, name)
	case filepath.Ext(path) == "":
		path += ext
	case filepath.Ext(path) != ext:
		// Both formats may share one explicit path; swap the extension.
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}

	var content string
	var err error
	if format == FormatHTML {
		content, err = buildHTML(result, recommendations, g.opts)
		if err != nil {
			return "", fmt.Errorf("rendering html report: %w", err)
		}
	} else {
		content = buildMarkdown(result, recommendations, g.opts)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}

	g.log.Info("%s report saved: %s", format, path)
	return path, nil
}
