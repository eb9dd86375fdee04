// -----------------------------------------------------------------------
// Export Service - downloadable TXT and PDF reports of processed documents
// -----------------------------------------------------------------------

package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/models"
)

const defaultReportName = "document"

// Service implements interfaces.ExportService
type Service struct {
	pdfService interfaces.PDFService
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ExportService = (*Service)(nil)

// NewService creates an export service that renders PDFs through pdfService
func NewService(pdfService interfaces.PDFService, logger arbor.ILogger) *Service {
	return &Service{
		pdfService: pdfService,
		logger:     logger,
	}
}

// ExportText renders the result as a plain-text report
func (s *Service) ExportText(req *models.ExportRequest) []byte {
	var b strings.Builder

	title := reportTitle(req.Filename)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	b.WriteString("SUMMARY\n\n")
	b.WriteString(strings.TrimSpace(req.Summary) + "\n\n")

	if len(req.BulletPoints) > 0 {
		b.WriteString("KEY POINTS\n\n")
		for _, point := range req.BulletPoints {
			b.WriteString("- " + point + "\n")
		}
		b.WriteString("\n")
	}

	if rewritten := strings.TrimSpace(req.RewrittenText); rewritten != "" {
		b.WriteString("ENHANCED VERSION\n\n")
		b.WriteString(rewritten + "\n")
	}

	return []byte(b.String())
}

// ExportPDF renders the result as a markdown report and converts it to PDF
func (s *Service) ExportPDF(req *models.ExportRequest) ([]byte, error) {
	title := reportTitle(req.Filename)

	data, err := s.pdfService.ConvertMarkdownToPDF(reportMarkdown(title, req), title)
	if err != nil {
		return nil, fmt.Errorf("failed to export PDF: %w", err)
	}

	s.logger.Debug().Str("title", title).Int("bytes", len(data)).Msg("PDF report exported")
	return data, nil
}

// DownloadName returns the attachment filename for a report in the given format
func DownloadName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = defaultReportName
	}
	return base + "_docspark." + ext
}

func reportTitle(filename string) string {
	if name := strings.TrimSpace(filepath.Base(filename)); filename != "" && name != "." {
		return name
	}
	return defaultReportName
}

func reportMarkdown(title string, req *models.ExportRequest) string {
	var b strings.Builder

	b.WriteString("# " + escapeMarkdown(title) + "\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString(escapeMarkdown(strings.TrimSpace(req.Summary)) + "\n\n")

	if len(req.BulletPoints) > 0 {
		b.WriteString("## Key Points\n\n")
		for _, point := range req.BulletPoints {
			b.WriteString("- " + escapeMarkdown(point) + "\n")
		}
		b.WriteString("\n")
	}

	if rewritten := strings.TrimSpace(req.RewrittenText); rewritten != "" {
		b.WriteString("## Enhanced Version\n\n")
		b.WriteString(escapeMarkdown(rewritten) + "\n")
	}

	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"&", `\&`,
)

// orderedListMarker matches "1." or "1)" at the start of a line
var orderedListMarker = regexp.MustCompile(`^(\d{1,9})([.)])`)

// escapeMarkdown keeps document text literal; line structure is preserved as hard breaks.
// Leading indentation is dropped so indented lines never become code blocks.
func escapeMarkdown(s string) string {
	lines := strings.Split(markdownEscaper.Replace(s), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "+"),
			strings.HasPrefix(trimmed, ">"), strings.HasPrefix(trimmed, "="):
			trimmed = `\` + trimmed
		case orderedListMarker.MatchString(trimmed):
			trimmed = orderedListMarker.ReplaceAllString(trimmed, `$1\$2`)
		}
		lines[i] = trimmed
	}
	return strings.Join(lines, "\\\n")
}
