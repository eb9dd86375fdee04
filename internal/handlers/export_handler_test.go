package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/services/export"
	"github.com/ternarybob/docspark/internal/services/pdf"
)

type brokenPDFService struct{}

func (brokenPDFService) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	return nil, errors.New("font missing")
}

func newTestExportHandler() *ExportHandler {
	logger := arbor.NewLogger()
	return NewExportHandler(export.NewService(pdf.NewService(logger), logger), logger)
}

func exportRequest(format, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/export/"+format, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const validExportBody = `{"filename": "report.docx", "summary": "A summary.", "bullet_points": ["one", "two"], "rewritten_text": "Better."}`

func TestExportHandler_Text(t *testing.T) {
	handler := newTestExportHandler()

	rec := httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("txt", validExportBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=report_docspark.txt`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "SUMMARY\n\nA summary.")
	assert.Contains(t, rec.Body.String(), "- two\n")
}

func TestExportHandler_PDF(t *testing.T) {
	handler := newTestExportHandler()

	rec := httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("pdf", validExportBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestExportHandler_Validation(t *testing.T) {
	handler := newTestExportHandler()

	rec := httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("txt", `{"filename": "x.txt"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid export request: summary is required", decodeDetail(t, rec))

	rec = httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("txt", `{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "Invalid request body")
}

func TestExportHandler_UnknownFormatAndMethod(t *testing.T) {
	handler := newTestExportHandler()

	rec := httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("docx", validExportBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ExportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/export/pdf", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExportHandler_RendererFailure(t *testing.T) {
	logger := arbor.NewLogger()
	handler := NewExportHandler(export.NewService(brokenPDFService{}, logger), logger)

	rec := httptest.NewRecorder()
	handler.ExportHandler(rec, exportRequest("pdf", validExportBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "font missing")
}
