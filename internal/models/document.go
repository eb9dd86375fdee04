package models

// AIResult holds the three AI-derived views of a document's text
type AIResult struct {
	Summary       string   `json:"summary"`
	BulletPoints  []string `json:"bullet_points"` // Ordered, never nil when serialized
	RewrittenText string   `json:"rewritten_text"`
}

// ProcessResponse is the body returned by a successful upload
type ProcessResponse struct {
	Success       bool     `json:"success"`
	Filename      string   `json:"filename"`
	OriginalText  string   `json:"original_text"`
	Summary       string   `json:"summary"`
	BulletPoints  []string `json:"bullet_points"`
	RewrittenText string   `json:"rewritten_text"`
}

// NewProcessResponse combines the uploaded filename, its extracted text and the AI result
func NewProcessResponse(filename, originalText string, result *AIResult) *ProcessResponse {
	bullets := result.BulletPoints
	if bullets == nil {
		bullets = []string{}
	}
	return &ProcessResponse{
		Success:       true,
		Filename:      filename,
		OriginalText:  originalText,
		Summary:       result.Summary,
		BulletPoints:  bullets,
		RewrittenText: result.RewrittenText,
	}
}

// ExportRequest carries a processed result back to the server for download
type ExportRequest struct {
	Filename      string   `json:"filename" validate:"max=255"`
	Summary       string   `json:"summary" validate:"required"`
	BulletPoints  []string `json:"bullet_points" validate:"max=500"`
	RewrittenText string   `json:"rewritten_text"`
}

// ErrorResponse is the JSON body written for every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}
