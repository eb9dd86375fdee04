package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// errEncrypted is reported for password-protected documents
var errEncrypted = errors.New("document is encrypted")

// extractPDF probes the document with pdfcpu, then reads each page's plain text in page order.
// Pages whose text is blank are skipped; the rest are joined by newlines.
func (e *Extractor) extractPDF(ctx context.Context, path string) (text string, err error) {
	pageCount, err := probePDF(path)
	if err != nil {
		return "", failure("PDF", err)
	}

	// ledongthuc/pdf panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Str("path", path).Str("panic", fmt.Sprint(r)).Msg("Recovered from PDF reader panic")
			text, err = "", failure("PDF", fmt.Errorf("malformed content: %v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", failure("PDF", fmt.Errorf("open document: %w", err))
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages != pageCount {
		e.logger.Debug().
			Int("pdfcpu_pages", pageCount).
			Int("reader_pages", numPages).
			Msg("PDF page count mismatch between readers")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", failure("PDF", fmt.Errorf("page %d: %w", i, err))
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

// probePDF validates the document structure and rejects encrypted files
func probePDF(path string) (int, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}
	if pdfCtx.Encrypt != nil {
		return 0, errEncrypted
	}
	return pdfCtx.PageCount, nil
}
