package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/docspark/internal/services/extraction"
)

var (
	// ErrEmptyExtractedText is returned when a document yields only whitespace
	ErrEmptyExtractedText = errors.New("no text could be extracted from the file")

	// ErrUploadTooLarge is returned when the uploaded file exceeds upload.max_size_mb
	ErrUploadTooLarge = errors.New("upload too large")

	// ErrMissingFile is returned when the multipart form has no "file" part
	ErrMissingFile = errors.New("missing file field")

	// ErrInvalidForm is returned for bodies that are not multipart/form-data
	ErrInvalidForm = errors.New("invalid multipart form")
)

// uploadErrorResponse maps an upload pipeline error to a status code and client-facing detail
func uploadErrorResponse(err error, maxSizeMB int) (int, string) {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, ErrUploadTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %d MB)", maxSizeMB)
	case errors.Is(err, ErrMissingFile):
		return http.StatusBadRequest, "No file uploaded. Send the document in the 'file' form field"
	case errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest, "Invalid upload. Expected multipart/form-data with a 'file' field"
	case errors.Is(err, ErrEmptyExtractedText):
		return http.StatusBadRequest, "No text could be extracted from the file"
	case errors.Is(err, extraction.ErrExtractionFailed):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Error processing file: %s", err.Error())
	}
}
