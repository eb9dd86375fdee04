package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createExtractDocumentTool returns the extract_document tool definition
func createExtractDocumentTool() mcp.Tool {
	return mcp.NewTool("extract_document",
		mcp.WithDescription("Extract plain text from a local .docx, .pdf or .txt file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the document"),
		),
	)
}

// createProcessTextTool returns the process_text tool definition
func createProcessTextTool() mcp.Tool {
	return mcp.NewTool("process_text",
		mcp.WithDescription("Summarize text, extract key points and produce an enhanced rewrite"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to process"),
		),
	)
}

// createProcessDocumentTool returns the process_document tool definition
func createProcessDocumentTool() mcp.Tool {
	return mcp.NewTool("process_document",
		mcp.WithDescription("Extract a local document's text, then summarize it, list its key points and rewrite it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to a .docx, .pdf or .txt file"),
		),
	)
}
