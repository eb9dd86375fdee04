package interfaces

import (
	"context"

	"github.com/ternarybob/docspark/internal/models"
)

// DocumentProcessor turns extracted document text into an AI result.
// Process never fails: provider errors are absorbed by substituting locally generated output.
type DocumentProcessor interface {
	Process(ctx context.Context, text string) *models.AIResult

	// GetMode reports whether results come from a live provider or the mock generator
	GetMode() LLMMode
}
