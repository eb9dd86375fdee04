package interfaces

// LLMMode represents the operational mode of the AI processor
type LLMMode string

const (
	// LLMModeLive indicates results come from a chat-completion API
	LLMModeLive LLMMode = "live"

	// LLMModeMock indicates results are synthesized locally without any API call
	LLMModeMock LLMMode = "mock"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}
