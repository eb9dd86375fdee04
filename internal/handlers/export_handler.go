package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/models"
	"github.com/ternarybob/docspark/internal/services/export"
)

const maxExportBodyBytes = 10 << 20

// ExportHandler turns processed results into downloadable TXT and PDF reports
type ExportHandler struct {
	exportService interfaces.ExportService
	validate      *validator.Validate
	logger        arbor.ILogger
}

func NewExportHandler(exportService interfaces.ExportService, logger arbor.ILogger) *ExportHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ExportHandler{
		exportService: exportService,
		validate:      validate,
		logger:        logger,
	}
}

// ExportHandler handles POST /api/export/{txt|pdf}
func (h *ExportHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/export/"), "/")
	if format != "txt" && format != "pdf" {
		WriteError(w, http.StatusNotFound, "Not Found")
		return
	}
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ExportRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExportBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, validationDetail(err))
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": export.DownloadName(req.Filename, format),
	})

	switch format {
	case "txt":
		WriteAttachment(w, "text/plain; charset=utf-8", disposition, h.exportService.ExportText(&req))
	case "pdf":
		data, err := h.exportService.ExportPDF(&req)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", req.Filename).Msg("PDF export failed")
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error exporting file: %s", err.Error()))
			return
		}
		WriteAttachment(w, "application/pdf", disposition, data)
	}

	h.logger.Debug().Str("format", format).Str("filename", req.Filename).Msg("Export delivered")
}

// validationDetail renders validator errors as "Invalid export request: summary is required"
func validationDetail(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Sprintf("Invalid export request: %v", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return "Invalid export request: " + strings.Join(problems, "; ")
}
