package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/services/extraction"
	"github.com/ternarybob/docspark/internal/services/processor"
)

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleExtractDocument(t *testing.T) {
	logger := arbor.NewLogger()
	handler := handleExtractDocument(extraction.NewExtractor(logger), logger)

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("Plain note."), 0644))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": path}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Plain note.", resultText(t, result))

	result, err = handler(context.Background(), callRequest(map[string]interface{}{"path": "/tmp/x.rtf"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), ".docx, .pdf, .txt")

	result, err = handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleProcessDocument_MockMode(t *testing.T) {
	logger := arbor.NewLogger()
	proc := processor.NewProcessor(processor.Config{}, nil, logger)
	handler := handleProcessDocument(extraction.NewExtractor(logger), proc, logger)

	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello world. This is a test."), 0644))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": path}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "# hello.txt")
	assert.Contains(t, text, "_Demo mode: no API key configured._")
	assert.Contains(t, text, "- Hello world\n- This is a test\n")
}

func TestHandleProcessText(t *testing.T) {
	logger := arbor.NewLogger()
	handler := handleProcessText(processor.NewProcessor(processor.Config{}, nil, logger), logger)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"text": "   "}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = handler(context.Background(), callRequest(map[string]interface{}{"text": "Short text with enough words."}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "## Enhanced Version\n\nShort text with enough words.")
}
