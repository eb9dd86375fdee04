package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
)

// ClaudeProvider generates content with the Anthropic Messages API
type ClaudeProvider struct {
	config *common.ClaudeConfig
	client anthropic.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ Provider = (*ClaudeProvider)(nil)

// NewClaudeProvider creates a Claude provider; base_url overrides the Messages API endpoint
func NewClaudeProvider(config *common.ClaudeConfig, logger arbor.ILogger) *ClaudeProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &ClaudeProvider{
		config: config,
		client: anthropic.NewClient(opts...),
		logger: logger,
	}
}

// convertMessagesToClaude maps user/assistant messages to Claude message params
func convertMessagesToClaude(messages []interfaces.Message) []anthropic.MessageParam {
	claudeMessages := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}
	return claudeMessages
}

// GenerateContent sends a single Messages API request
func (p *ClaudeProvider) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
	conversation, systemText, err := splitSystem(request.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to convert messages: %w", err)
	}
	if request.SystemInstruction != "" {
		systemText = request.SystemInstruction
	}

	model := request.Model
	if model == "" {
		model = p.config.Model
	}

	// Claude requires max_tokens on every request
	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  convertMessagesToClaude(conversation),
	}
	if request.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(request.Temperature))
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("empty response from Claude API")
	}

	return &ContentResponse{
		Text:     text.String(),
		Provider: ProviderClaude,
		Model:    model,
	}, nil
}

// GetProviderType returns the provider type
func (p *ClaudeProvider) GetProviderType() ProviderType {
	return ProviderClaude
}

// Close releases resources; the HTTP client needs no cleanup
func (p *ClaudeProvider) Close() error {
	return nil
}
