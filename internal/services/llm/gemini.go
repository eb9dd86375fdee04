package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
	"google.golang.org/genai"
)

// GeminiProvider generates content with the Google Gemini API
type GeminiProvider struct {
	config *common.GeminiConfig
	client *genai.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini provider backed by the Gemini developer API
func NewGeminiProvider(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiProvider, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		config: config,
		client: client,
		logger: logger,
	}, nil
}

// convertMessagesToGemini maps user/assistant messages to Gemini contents
func convertMessagesToGemini(messages []interfaces.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		var geminiRole string = genai.RoleUser
		if msg.Role == "assistant" {
			geminiRole = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  geminiRole,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}
	return contents
}

// GenerateContent sends a single GenerateContent request
func (p *GeminiProvider) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
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

	config := &genai.GenerateContentConfig{}
	if request.Temperature > 0 {
		config.Temperature = genai.Ptr(request.Temperature)
	}
	if request.MaxTokens > 0 {
		config.MaxOutputTokens = int32(request.MaxTokens)
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, convertMessagesToGemini(conversation), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	return &ContentResponse{
		Text:     text,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}

// GetProviderType returns the provider type
func (p *GeminiProvider) GetProviderType() ProviderType {
	return ProviderGemini
}

// Close releases resources
func (p *GeminiProvider) Close() error {
	return nil
}
