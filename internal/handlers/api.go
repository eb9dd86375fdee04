package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
)

type APIHandler struct {
	processor interfaces.DocumentProcessor
	logger    arbor.ILogger
}

func NewAPIHandler(processor interfaces.DocumentProcessor, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		processor: processor,
		logger:    logger,
	}
}

// RootHandler returns the welcome message; any other unmatched path is a 404
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFoundHandler(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to DocSpark AI API",
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// VersionHandler returns version information and the active AI mode
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
		"ai_mode":    string(h.processor.GetMode()),
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not Found")
}
