package domain

import "fmt"

// Feature represents a single requirement extracted from a document.
// It is the canonical unit the matcher classifies.
type Feature struct {
	// ID is unique within the sequence the feature was extracted into,
	// assigned as "{source}_{number}".
	ID string `json:"id"`

	// Title is the heading or label text, whitespace-normalised.
	Title string `json:"title"`

	// Description is the body text. When extraction produced no body,
	// it falls back to the title.
	Description string `json:"description"`

	// Source is the logical name of the document the feature came from,
	// typically the filename stem or a customer identifier.
	Source string `json:"source"`

	// Category is an optional grouping label.
	Category string `json:"category,omitempty"`

	// RawText is title plus body as originally encountered, normalised.
	RawText string `json:"raw_text,omitempty"`
}

// EmbeddingText returns the text sent to the embedding provider.
// Title and description are combined for better context.
func (f Feature) EmbeddingText() string {
	return f.Title + ". " + f.Description
}

// Valid reports whether the feature satisfies the extraction invariant:
// title and description are never empty.
func (f Feature) Valid() bool {
	return f.Title != "" && f.Description != ""
}

// String returns a short identifier for logging.
func (f Feature) String() string {
	return fmt.Sprintf("Feature(%s: %s)", f.ID, f.Title)
}
