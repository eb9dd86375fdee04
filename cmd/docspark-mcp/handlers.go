package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/interfaces"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

// extractFromPath validates the extension and returns the document text
func extractFromPath(ctx context.Context, extractor interfaces.TextExtractor, path string) (string, *mcp.CallToolResult) {
	ext := strings.ToLower(filepath.Ext(path))
	if !extractor.Supports(ext) {
		return "", errorResult("Error: file type not supported. Allowed types: %s",
			strings.Join(extractor.SupportedExtensions(), ", "))
	}

	text, err := extractor.Extract(ctx, path, ext)
	if err != nil {
		return "", errorResult("Extraction error: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errorResult("Error: no text could be extracted from the file")
	}
	return text, nil
}

// handleExtractDocument implements the extract_document tool
func handleExtractDocument(extractor interfaces.TextExtractor, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil || path == "" {
			return errorResult("Error: path parameter is required"), nil
		}

		text, failure := extractFromPath(ctx, extractor, path)
		if failure != nil {
			logger.Warn().Str("path", path).Msg("extract_document failed")
			return failure, nil
		}

		return textResult(text), nil
	}
}

// handleProcessText implements the process_text tool
func handleProcessText(proc interfaces.DocumentProcessor, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil || strings.TrimSpace(text) == "" {
			return errorResult("Error: text parameter is required"), nil
		}

		result := proc.Process(ctx, text)
		logger.Debug().Str("mode", string(proc.GetMode())).Msg("process_text completed")

		return textResult(formatResult("Processed Text", proc.GetMode(), result)), nil
	}
}

// handleProcessDocument implements the process_document tool
func handleProcessDocument(extractor interfaces.TextExtractor, proc interfaces.DocumentProcessor, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil || path == "" {
			return errorResult("Error: path parameter is required"), nil
		}

		text, failure := extractFromPath(ctx, extractor, path)
		if failure != nil {
			logger.Warn().Str("path", path).Msg("process_document failed")
			return failure, nil
		}

		result := proc.Process(ctx, text)
		return textResult(formatResult(filepath.Base(path), proc.GetMode(), result)), nil
	}
}
