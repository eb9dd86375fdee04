package interfaces

import (
	"context"
)

// TextExtractor converts a document on disk into plain text.
// Implementations dispatch on the lowercase file extension (".docx", ".pdf", ".txt").
type TextExtractor interface {
	// Extract reads the file at path and returns its text in document order.
	// Unknown extensions fail without touching the file.
	Extract(ctx context.Context, path string, ext string) (string, error)

	// Supports reports whether ext has an extraction strategy.
	Supports(ext string) bool

	// SupportedExtensions lists the accepted extensions in display order.
	SupportedExtensions() []string
}
