package processor

import (
	"fmt"
	"strings"
)

// task identifies one of the three AI sub-calls
type task string

const (
	taskSummary task = "summary"
	taskBullets task = "bullet_points"
	taskRewrite task = "rewritten_text"
)

// prompt is a fixed instruction pair plus sampling limits for one sub-call
type prompt struct {
	task        task
	system      string
	instruction string
	maxTokens   int
	temperature float32
}

var prompts = []prompt{
	{
		task:        taskSummary,
		system:      "You are a helpful assistant that creates concise summaries.",
		instruction: "Please provide a concise summary of the following text:",
		maxTokens:   500,
		temperature: 0.7,
	},
	{
		task:        taskBullets,
		system:      "You are a helpful assistant that extracts key points from text.",
		instruction: "Please extract the key points from the following text as a bullet point list. Return only the bullet points, one per line, without any numbering:",
		maxTokens:   500,
		temperature: 0.7,
	},
	{
		task:        taskRewrite,
		system:      "You are a helpful assistant that rewrites and enhances text to make it more clear, professional, and engaging.",
		instruction: "Please rewrite and enhance the following text to make it more clear, professional, and engaging:",
		maxTokens:   1000,
		temperature: 0.8,
	},
}

// userPrompt embeds the (already truncated) document text after the instruction
func (p prompt) userPrompt(text string) string {
	return fmt.Sprintf("%s\n\n%s", p.instruction, text)
}

// truncateRunes returns at most n characters of s
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// parseBulletPoints splits a model response into one point per non-empty line,
// stripping leading list markers
func parseBulletPoints(content string) []string {
	points := []string{}
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		point := strings.TrimSpace(strings.TrimLeft(line, "-•*"))
		if point == "" {
			continue
		}
		points = append(points, point)
	}
	return points
}
