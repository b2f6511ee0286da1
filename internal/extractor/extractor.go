// Package extractor turns semi-structured requirement documents into
// ordered sequences of discrete features.
//
// Three structural heuristics are tried in strict priority order:
// numbered lists, then level-2/3 markdown headings, then bullet points.
// The first strategy that yields at least one feature wins.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

var (
	numberedPattern = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	headingPattern  = regexp.MustCompile(`^#{2,3}\s+(.+)$`)
	bulletPattern   = regexp.MustCompile(`^[-*]\s+(.+)$`)
)

// Extractor parses requirement documents into features.
type Extractor struct {
	log *logger.Logger
}

// New creates an extractor.
func New(log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{log: log}
}

// ExtractFile reads path and extracts its features. An empty source
// label defaults to the filename stem.
func (e *Extractor) ExtractFile(path, source string) ([]domain.Feature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if source == "" {
		source = SourceLabel(path)
	}

	e.log.Debug("Parsing %s for source: %s", path, source)
	features := e.Extract(string(content), source)
	e.log.Info("Extracted %d features from %s", len(features), path)

	return features, nil
}

// Extract parses content into features. Returns an empty slice when no
// strategy recognises anything; callers decide whether that is fatal.
func (e *Extractor) Extract(content, source string) []domain.Feature {
	features := e.extractNumbered(content, source)

	if len(features) == 0 {
		e.log.Debug("No numbered items, trying headings")
		features = e.extractHeadings(content, source)
	}

	if len(features) == 0 {
		e.log.Debug("No headings, trying bullets")
		features = e.extractBullets(content, source)
	}

	return features
}

// extractNumbered handles "1. Title" style lists. The feature id uses
// the literal captured number, so duplicate numbers in the source pass
// through as duplicate ids.
func (e *Extractor) extractNumbered(content, source string) []domain.Feature {
	var features []domain.Feature
	var current *domain.Feature

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if m := numberedPattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				features = append(features, *current)
			}
			title := cleanText(m[2])
			current = &domain.Feature{
				ID:      source + "_" + m[1],
				Title:   title,
				Source:  source,
				RawText: title,
			}
			continue
		}

		// Continuation lines accumulate into the description until the
		// next numbered item. Heading lines never join a description.
		if current != nil && line != "" && !strings.HasPrefix(line, "#") {
			current.Description += " " + line
			current.RawText += " " + line
		}
	}
	if current != nil {
		features = append(features, *current)
	}

	finalise(features)
	return features
}

// extractHeadings handles "## Title" / "### Title" sections. Ids use a
// running counter starting at 1, independent of any numbers in the
// heading text.
func (e *Extractor) extractHeadings(content, source string) []domain.Feature {
	var features []domain.Feature
	var current *domain.Feature
	counter := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				features = append(features, *current)
			}
			counter++
			title := cleanText(m[1])
			current = &domain.Feature{
				ID:      fmt.Sprintf("%s_%d", source, counter),
				Title:   title,
				Source:  source,
				RawText: title,
			}
			continue
		}

		if current != nil && line != "" && !strings.HasPrefix(line, "#") {
			current.Description += " " + line
			current.RawText += " " + line
		}
	}
	if current != nil {
		features = append(features, *current)
	}

	finalise(features)
	return features
}

// extractBullets handles "- item" / "* item" lines. Each bullet is its
// own feature with no multi-line accumulation.
func (e *Extractor) extractBullets(content, source string) []domain.Feature {
	var features []domain.Feature
	counter := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		m := bulletPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		counter++
		text := cleanText(m[1])
		features = append(features, domain.Feature{
			ID:          fmt.Sprintf("%s_%d", source, counter),
			Title:       text,
			Description: text,
			Source:      source,
			RawText:     text,
		})
	}

	return features
}

// finalise normalises accumulated text and applies the description
// fallback so the domain invariant (title and description non-empty)
// holds for every returned feature.
func finalise(features []domain.Feature) {
	for i := range features {
		features[i].Description = cleanText(features[i].Description)
		features[i].RawText = cleanText(features[i].RawText)
		if features[i].Description == "" {
			features[i].Description = features[i].Title
		}
	}
}

// cleanText collapses whitespace runs to single spaces and trims.
// Case and punctuation are preserved.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SourceLabel derives a source label from a file path: the filename
// without its extension.
func SourceLabel(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
