package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
)

// OpenAIProvider generates content with the OpenAI chat completions API
type OpenAIProvider struct {
	config *common.OpenAIConfig
	client openai.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates an OpenAI provider; base_url allows OpenAI-compatible endpoints
func NewOpenAIProvider(config *common.OpenAIConfig, logger arbor.ILogger) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

// GenerateContent sends a single chat completion request
func (p *OpenAIProvider) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
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

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conversation)+1)
	if systemText != "" {
		messages = append(messages, openai.SystemMessage(systemText))
	}
	for _, msg := range conversation {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(request.MaxTokens))
	}
	if request.Temperature > 0 {
		params.Temperature = openai.Float(float64(request.Temperature))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI API")
	}

	message := resp.Choices[0].Message
	if message.Content == "" {
		if message.Refusal != "" {
			return nil, fmt.Errorf("OpenAI API refused the request: %s", message.Refusal)
		}
		return nil, fmt.Errorf("empty response from OpenAI API")
	}

	return &ContentResponse{
		Text:     message.Content,
		Provider: ProviderOpenAI,
		Model:    model,
	}, nil
}

// GetProviderType returns the provider type
func (p *OpenAIProvider) GetProviderType() ProviderType {
	return ProviderOpenAI
}

// Close releases resources; the HTTP client needs no cleanup
func (p *OpenAIProvider) Close() error {
	return nil
}
