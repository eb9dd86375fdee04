package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Service routes
	mux.HandleFunc("/", s.app.APIHandler.RootHandler) // GET - welcome message, 404 for anything unmatched
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)

	// API routes - Documents
	mux.HandleFunc("/api/upload", s.app.UploadHandler.UploadHandler) // POST multipart "file"
	mux.HandleFunc("/api/export/", s.app.ExportHandler.ExportHandler) // POST /api/export/{txt|pdf}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
