// -----------------------------------------------------------------------
// Extraction Service - Convert uploaded documents into plain text
// DOCX via the OOXML package, PDF via pdfcpu + ledongthuc/pdf, TXT via x/text
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/interfaces"
)

type extractFunc func(ctx context.Context, path string) (string, error)

// Extractor dispatches on file extension to the matching extraction routine
type Extractor struct {
	logger     arbor.ILogger
	strategies map[string]extractFunc
	order      []string
}

// Compile-time interface assertion
var _ interfaces.TextExtractor = (*Extractor)(nil)

// NewExtractor creates an extractor for .docx, .pdf and .txt documents
func NewExtractor(logger arbor.ILogger) *Extractor {
	e := &Extractor{logger: logger}
	e.strategies = map[string]extractFunc{
		".docx": e.extractDocx,
		".pdf":  e.extractPDF,
		".txt":  e.extractText,
	}
	e.order = []string{".docx", ".pdf", ".txt"}
	return e
}

// Extract reads the file at path using the strategy registered for ext
func (e *Extractor) Extract(ctx context.Context, path string, ext string) (string, error) {
	ext = normalizeExt(ext)
	fn, ok := e.strategies[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := fn(ctx, path)
	if err != nil {
		e.logger.Warn().Err(err).Str("ext", ext).Msg("Text extraction failed")
		return "", err
	}

	e.logger.Debug().
		Str("ext", ext).
		Int("chars", len([]rune(text))).
		Msg("Text extracted")

	return text, nil
}

// Supports reports whether ext (with or without leading dot, any case) can be extracted
func (e *Extractor) Supports(ext string) bool {
	_, ok := e.strategies[normalizeExt(ext)]
	return ok
}

// SupportedExtensions returns the accepted extensions in display order
func (e *Extractor) SupportedExtensions() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
