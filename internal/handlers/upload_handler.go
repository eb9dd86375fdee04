package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/models"
)

// multipartOverhead allows for boundaries and part headers on top of the file itself
const multipartOverhead = 1 << 20

// UploadHandler receives documents, extracts their text and runs the AI processor
type UploadHandler struct {
	extractor interfaces.TextExtractor
	processor interfaces.DocumentProcessor
	config    *common.UploadConfig
	logger    arbor.ILogger
}

func NewUploadHandler(
	extractor interfaces.TextExtractor,
	processor interfaces.DocumentProcessor,
	config *common.UploadConfig,
	logger arbor.ILogger,
) *UploadHandler {
	return &UploadHandler{
		extractor: extractor,
		processor: processor,
		config:    config,
		logger:    logger,
	}
}

// UploadHandler handles POST /api/upload with a multipart "file" field
func (h *UploadHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()
	maxBytes := h.config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	part, err := filePart(r)
	if err != nil {
		h.fail(w, "", err)
		return
	}
	defer part.Close()

	filename := part.FileName()
	ext := strings.ToLower(filepath.Ext(filename))
	if !h.extractor.Supports(ext) {
		h.logger.Debug().Str("filename", filename).Str("ext", ext).Msg("Rejected unsupported file type")
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("File type not supported. Allowed types: %s",
			strings.Join(h.extractor.SupportedExtensions(), ", ")))
		return
	}

	tempPath, err := h.persist(part, ext, maxBytes)
	if tempPath != "" {
		defer h.removeTemp(tempPath)
	}
	if err != nil {
		h.fail(w, filename, err)
		return
	}

	text, err := h.extractor.Extract(r.Context(), tempPath, ext)
	if err != nil {
		h.fail(w, filename, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		h.fail(w, filename, ErrEmptyExtractedText)
		return
	}

	result := h.processor.Process(r.Context(), text)

	h.logger.Info().
		Str("filename", filename).
		Int("chars", len([]rune(text))).
		Str("mode", string(h.processor.GetMode())).
		Dur("duration", time.Since(start)).
		Msg("Document processed")

	WriteJSON(w, http.StatusOK, models.NewProcessResponse(filename, text, result))
}

// filePart returns the first multipart part named "file"
func filePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingFile
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		if part.FormName() == "file" && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

// persist streams the part into a uniquely named temp file and returns its path.
// The path is returned whenever a file was created so the caller can remove it.
func (h *UploadHandler) persist(part io.Reader, ext string, maxBytes int64) (string, error) {
	pattern := fmt.Sprintf("upload_%s_*%s", common.NewUploadID(), ext)
	f, err := os.CreateTemp(h.config.TempDir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(part, maxBytes+1))
	if err != nil {
		return f.Name(), fmt.Errorf("failed to store upload: %w", err)
	}
	if n > maxBytes {
		return f.Name(), ErrUploadTooLarge
	}

	if err := f.Sync(); err != nil {
		return f.Name(), fmt.Errorf("failed to store upload: %w", err)
	}
	return f.Name(), nil
}

func (h *UploadHandler) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove temp upload")
	}
}

func (h *UploadHandler) fail(w http.ResponseWriter, filename string, err error) {
	status, detail := uploadErrorResponse(err, h.config.MaxSizeMB)

	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).Str("filename", filename).Int("status", status).Msg("Upload failed")

	WriteError(w, status, detail)
}
