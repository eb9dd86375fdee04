package processor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/services/llm"
)

// stubProvider answers by system instruction and records every request
type stubProvider struct {
	mu       sync.Mutex
	replies  map[string]string
	failures map[string]error
	delay    time.Duration
	requests []*llm.ContentRequest
}

func (s *stubProvider) GenerateContent(ctx context.Context, request *llm.ContentRequest) (*llm.ContentResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, request)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	for key, err := range s.failures {
		if strings.Contains(request.SystemInstruction, key) {
			return nil, err
		}
	}
	for key, reply := range s.replies {
		if strings.Contains(request.SystemInstruction, key) {
			return &llm.ContentResponse{Text: reply, Provider: llm.ProviderOpenAI, Model: "stub"}, nil
		}
	}
	return nil, errors.New("no reply configured")
}

func (s *stubProvider) GetProviderType() llm.ProviderType { return llm.ProviderOpenAI }
func (s *stubProvider) Close() error                     { return nil }

func newStub() *stubProvider {
	return &stubProvider{
		replies: map[string]string{
			"summaries":  "  A concise summary.\n",
			"key points": "- First point\n• Second point\n\n* Third point\n-\n",
			"rewrites":   "\nPolished text.  ",
		},
		failures: map[string]error{},
	}
}

func liveConfig() Config {
	return Config{LiveModeEnabled: true, MaxInputChars: 4000, RequestTimeout: time.Second}
}

func TestProcess_Live(t *testing.T) {
	stub := newStub()
	p := NewProcessor(liveConfig(), stub, arbor.NewLogger())
	assert.Equal(t, interfaces.LLMModeLive, p.GetMode())

	result := p.Process(context.Background(), "Some document text.")
	assert.Equal(t, "A concise summary.", result.Summary)
	assert.Equal(t, []string{"First point", "Second point", "Third point"}, result.BulletPoints)
	assert.Equal(t, "Polished text.", result.RewrittenText)

	require.Len(t, stub.requests, 3)
	byTokens := map[int]float32{}
	for _, req := range stub.requests {
		byTokens[req.MaxTokens] = req.Temperature
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.True(t, strings.HasSuffix(req.Messages[0].Content, ":\n\nSome document text."))
	}
	assert.Equal(t, float32(0.7), byTokens[500])
	assert.Equal(t, float32(0.8), byTokens[1000])
}

func TestProcess_LiveTruncatesInput(t *testing.T) {
	stub := newStub()
	config := liveConfig()
	config.MaxInputChars = 5
	p := NewProcessor(config, stub, arbor.NewLogger())

	p.Process(context.Background(), "ééééééééé")
	for _, req := range stub.requests {
		assert.True(t, strings.HasSuffix(req.Messages[0].Content, "\n\nééééé"))
		assert.False(t, strings.HasSuffix(req.Messages[0].Content, "éééééé"))
	}
}

func TestProcess_AnyFailureFallsBackToMock(t *testing.T) {
	stub := newStub()
	stub.failures["rewrites"] = errors.New("rate limited")
	p := NewProcessor(liveConfig(), stub, arbor.NewLogger())

	text := "Hello world. This is a test."
	result := p.Process(context.Background(), text)
	assert.Equal(t, GenerateMock(text), result)
}

func TestProcess_KeepPartialResults(t *testing.T) {
	stub := newStub()
	stub.failures["key points"] = errors.New("boom")
	config := liveConfig()
	config.KeepPartialResults = true
	p := NewProcessor(config, stub, arbor.NewLogger())

	text := "Hello world. This is a test."
	result := p.Process(context.Background(), text)
	assert.Equal(t, "A concise summary.", result.Summary)
	assert.Equal(t, []string{"Hello world", "This is a test"}, result.BulletPoints)
	assert.Equal(t, "Polished text.", result.RewrittenText)
}

func TestProcess_TimeoutIsAbsorbed(t *testing.T) {
	stub := newStub()
	stub.delay = 200 * time.Millisecond
	config := liveConfig()
	config.RequestTimeout = 10 * time.Millisecond
	p := NewProcessor(config, stub, arbor.NewLogger())

	text := "A sentence that is long enough."
	result := p.Process(context.Background(), text)
	assert.Equal(t, GenerateMock(text), result)
}

func TestNewProcessor_LiveWithoutProviderUsesMock(t *testing.T) {
	p := NewProcessor(liveConfig(), nil, arbor.NewLogger())
	assert.Equal(t, interfaces.LLMModeMock, p.GetMode())

	result := p.Process(context.Background(), "Hello world. This is a test.")
	assert.Contains(t, result.Summary, SummaryDemoNotice)
}

func TestNewConfig(t *testing.T) {
	config := common.NewDefaultConfig()
	assert.False(t, NewConfig(config).LiveModeEnabled)

	config.OpenAI.APIKey = "your_openai_api_key_here"
	assert.False(t, NewConfig(config).LiveModeEnabled)

	config.OpenAI.APIKey = "sk-real"
	derived := NewConfig(config)
	assert.True(t, derived.LiveModeEnabled)
	assert.Equal(t, 4000, derived.MaxInputChars)
	assert.Equal(t, 60*time.Second, derived.RequestTimeout)
}

func TestParseBulletPoints(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"markers", "- a\n* b\n• c", []string{"a", "b", "c"}},
		{"repeated markers", "-- a\n*-• b", []string{"a", "b"}},
		{"plain lines", "one\n\n  two  \n", []string{"one", "two"}},
		{"marker only lines dropped", "-\n*\nreal", []string{"real"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseBulletPoints(tt.content))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héł", truncateRunes("héłło", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
