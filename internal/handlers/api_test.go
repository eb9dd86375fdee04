package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestAPIHandler_Root(t *testing.T) {
	handler := NewAPIHandler(&mockProcessor{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.RootHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Welcome to DocSpark AI API"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.RootHandler(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail": "Not Found"}`, rec.Body.String())
}

func TestAPIHandler_Health(t *testing.T) {
	handler := NewAPIHandler(&mockProcessor{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAPIHandler_Version(t *testing.T) {
	handler := NewAPIHandler(&mockProcessor{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "mock", body["ai_mode"])
	assert.NotEmpty(t, body["version"])
}
