package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderOpenAI uses the OpenAI chat completions API
	ProviderOpenAI ProviderType = "openai"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
)

// ContentRequest represents a provider-agnostic content generation request
type ContentRequest struct {
	Messages          []interfaces.Message
	Model             string
	Temperature       float32
	MaxTokens         int
	SystemInstruction string
}

// ContentResponse represents a provider-agnostic content generation response
type ContentResponse struct {
	Text     string
	Provider ProviderType
	Model    string
}

// Provider defines the interface for AI content generation
type Provider interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
	GetProviderType() ProviderType
	Close() error
}

// ProviderFactory builds the configured provider from application config
type ProviderFactory struct {
	config *common.Config
	logger arbor.ILogger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(config *common.Config, logger arbor.ILogger) *ProviderFactory {
	return &ProviderFactory{
		config: config,
		logger: logger,
	}
}

// HasCredential reports whether the selected provider has a usable API key
func (f *ProviderFactory) HasCredential() bool {
	return common.IsUsableAPIKey(f.config.APIKeyFor(f.config.LLM.Provider))
}

// NewProvider creates the provider selected by llm.provider.
// Returns (nil, nil) when no usable credential is configured so callers can run in mock mode.
func (f *ProviderFactory) NewProvider(ctx context.Context) (Provider, error) {
	if !f.HasCredential() {
		f.logger.Warn().
			Str("provider", string(f.config.LLM.Provider)).
			Msg("No usable API key configured, AI processing will run in demo mode")
		return nil, nil
	}

	var (
		provider Provider
		err      error
	)

	switch ProviderType(f.config.LLM.Provider) {
	case ProviderOpenAI:
		provider = NewOpenAIProvider(&f.config.OpenAI, f.logger)
	case ProviderClaude:
		provider = NewClaudeProvider(&f.config.Claude, f.logger)
	case ProviderGemini:
		provider, err = NewGeminiProvider(ctx, &f.config.Gemini, f.logger)
	default:
		return nil, fmt.Errorf("unknown llm provider '%s'", f.config.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Info().
		Str("provider", string(provider.GetProviderType())).
		Str("model", f.modelFor(provider.GetProviderType())).
		Msg("LLM provider initialized")

	return provider, nil
}

func (f *ProviderFactory) modelFor(provider ProviderType) string {
	switch provider {
	case ProviderClaude:
		return f.config.Claude.Model
	case ProviderGemini:
		return f.config.Gemini.Model
	default:
		return f.config.OpenAI.Model
	}
}

// splitSystem separates the first system message from the conversation.
// At least one user message is required.
func splitSystem(messages []interfaces.Message) ([]interfaces.Message, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages cannot be empty")
	}

	hasUserMessage := false
	for _, msg := range messages {
		if msg.Role == "user" {
			hasUserMessage = true
			break
		}
	}
	if !hasUserMessage {
		return nil, "", fmt.Errorf("at least one message must have role 'user'")
	}

	conversation := make([]interfaces.Message, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		if msg.Role == "system" {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}
		conversation = append(conversation, msg)
	}

	return conversation, systemText, nil
}
