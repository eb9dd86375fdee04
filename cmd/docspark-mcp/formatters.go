package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/models"
)

// formatResult formats an AI result as markdown
func formatResult(title string, mode interfaces.LLMMode, result *models.AIResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if mode == interfaces.LLMModeMock {
		sb.WriteString("_Demo mode: no API key configured._\n\n")
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	sb.WriteString("## Key Points\n\n")
	for _, point := range result.BulletPoints {
		sb.WriteString(fmt.Sprintf("- %s\n", point))
	}
	sb.WriteString("\n")

	sb.WriteString("## Enhanced Version\n\n")
	sb.WriteString(result.RewrittenText)
	sb.WriteString("\n")

	return sb.String()
}
