package processor

import (
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/docspark/internal/models"
)

const (
	mockSummaryWords   = 50
	mockSentenceLimit  = 5
	mockMinBulletChars = 10
	mockRewriteChars   = 500

	// SummaryDemoNotice is appended to every locally generated summary
	SummaryDemoNotice = "[Note: This is a demo mode. Configure an API key for AI-powered summaries.]"

	// RewriteDemoNotice is appended to locally generated rewrites of long inputs
	RewriteDemoNotice = "...\n\n[Note: This is a demo mode. Configure an API key for full AI-powered rewriting.]"
)

// PlaceholderBulletPoints are returned when no sentence qualifies as a key point
var PlaceholderBulletPoints = []string{
	"Key point extracted from the document",
	"Another important aspect mentioned",
	"Additional detail from the content",
}

// GenerateMock builds a deterministic result from the text alone, without any API call
func GenerateMock(text string) *models.AIResult {
	return &models.AIResult{
		Summary:       mockSummary(text),
		BulletPoints:  mockBulletPoints(text),
		RewrittenText: mockRewrite(text),
	}
}

func mockSummary(text string) string {
	words := strings.Fields(text)
	n := len(words)
	if n > mockSummaryWords {
		n = mockSummaryWords
	}

	summary := strings.Join(words[:n], " ")
	if len(words) > n {
		summary += "..."
	}
	return summary + "\n\n" + SummaryDemoNotice
}

func mockBulletPoints(text string) []string {
	sentences := strings.Split(text, ".")
	if len(sentences) > mockSentenceLimit {
		sentences = sentences[:mockSentenceLimit]
	}

	points := []string{}
	for _, sentence := range sentences {
		cleaned := strings.TrimSpace(sentence)
		if utf8.RuneCountInString(cleaned) > mockMinBulletChars {
			points = append(points, cleaned)
		}
	}

	if len(points) == 0 {
		return append([]string(nil), PlaceholderBulletPoints...)
	}
	return points
}

func mockRewrite(text string) string {
	if utf8.RuneCountInString(text) <= mockRewriteChars {
		return text
	}
	return truncateRunes(text, mockRewriteChars) + RewriteDemoNotice
}
