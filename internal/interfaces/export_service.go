package interfaces

import "github.com/ternarybob/docspark/internal/models"

// ExportService renders processed results into downloadable documents
type ExportService interface {
	// ExportText renders the result as a plain-text report
	ExportText(req *models.ExportRequest) []byte

	// ExportPDF renders the result as a PDF report
	ExportPDF(req *models.ExportRequest) ([]byte, error)
}

// PDFService handles PDF generation from markdown
type PDFService interface {
	// ConvertMarkdownToPDF converts markdown content to a PDF byte slice
	ConvertMarkdownToPDF(markdown, title string) ([]byte, error)
}
