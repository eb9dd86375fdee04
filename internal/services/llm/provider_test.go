package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
)

func TestProviderFactory_NoCredential(t *testing.T) {
	config := common.NewDefaultConfig()
	config.OpenAI.APIKey = "your_openai_api_key_here"

	factory := NewProviderFactory(config, arbor.NewLogger())
	assert.False(t, factory.HasCredential())

	provider, err := factory.NewProvider(context.Background())
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestProviderFactory_SelectsConfiguredProvider(t *testing.T) {
	config := common.NewDefaultConfig()
	config.LLM.Provider = common.LLMProviderClaude
	config.Claude.APIKey = "sk-ant-test"

	factory := NewProviderFactory(config, arbor.NewLogger())
	provider, err := factory.NewProvider(context.Background())
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, ProviderClaude, provider.GetProviderType())
	assert.NoError(t, provider.Close())

	// Key for a different provider does not count
	config.LLM.Provider = common.LLMProviderGemini
	assert.False(t, factory.HasCredential())
}

func TestSplitSystem(t *testing.T) {
	conversation, system, err := splitSystem([]interfaces.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
		{Role: "system", Content: "ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, "be brief", system)
	assert.Equal(t, []interfaces.Message{{Role: "user", Content: "hello"}}, conversation)

	_, _, err = splitSystem(nil)
	assert.Error(t, err)

	_, _, err = splitSystem([]interfaces.Message{{Role: "system", Content: "only"}})
	assert.ErrorContains(t, err, "role 'user'")
}

func TestOpenAIProvider_GenerateContent(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  A short summary.  "}}]
		}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(&common.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-3.5-turbo",
		BaseURL: server.URL + "/v1/",
	}, arbor.NewLogger())

	resp, err := provider.GenerateContent(context.Background(), &ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: "Summarize this"}},
		SystemInstruction: "You are a helpful assistant that creates concise summaries.",
		MaxTokens:         500,
		Temperature:       0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "  A short summary.  ", resp.Text)
	assert.Equal(t, ProviderOpenAI, resp.Provider)
	assert.Equal(t, "gpt-3.5-turbo", resp.Model)

	assert.Equal(t, "gpt-3.5-turbo", captured["model"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	assert.InDelta(t, 0.7, captured["temperature"], 0.001)

	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "user", messages[1].(map[string]interface{})["role"])
}

func TestOpenAIProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(&common.OpenAIConfig{
		APIKey:  "sk-bad",
		Model:   "gpt-3.5-turbo",
		BaseURL: server.URL + "/v1/",
	}, arbor.NewLogger())

	_, err := provider.GenerateContent(context.Background(), &ContentRequest{
		Messages: []interfaces.Message{{Role: "user", Content: "hi"}},
	})
	assert.ErrorContains(t, err, "OpenAI API call failed")
}

func TestOpenAIProvider_EmptyOrRefusedContent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr string
	}{
		{
			name:    "refusal",
			message: `{"role": "assistant", "content": null, "refusal": "I can't help with that."}`,
			wantErr: "I can't help with that.",
		},
		{
			name:    "empty content",
			message: `{"role": "assistant", "content": ""}`,
			wantErr: "empty response from OpenAI API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{"id": "chatcmpl-2", "object": "chat.completion", "created": 0, "model": "gpt-3.5-turbo",
					"choices": [{"index": 0, "finish_reason": "stop", "message": `+tt.message+`}]}`)
			}))
			defer server.Close()

			provider := NewOpenAIProvider(&common.OpenAIConfig{
				APIKey:  "sk-test",
				Model:   "gpt-3.5-turbo",
				BaseURL: server.URL + "/v1/",
			}, arbor.NewLogger())

			resp, err := provider.GenerateContent(context.Background(), &ContentRequest{
				Messages: []interfaces.Message{{Role: "user", Content: "hi"}},
			})
			assert.Nil(t, resp)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
