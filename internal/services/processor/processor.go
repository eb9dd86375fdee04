// -----------------------------------------------------------------------
// AI Processor - summary, key points and rewrite for extracted text
// Live mode fans out three chat-completion calls; mock mode is fully local
// -----------------------------------------------------------------------

package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/models"
	"github.com/ternarybob/docspark/internal/services/llm"
	"golang.org/x/sync/errgroup"
)

// Config fixes the processor's behavior for the lifetime of the process
type Config struct {
	LiveModeEnabled    bool          // Requires a non-nil provider
	MaxInputChars      int           // Characters of input embedded in each prompt
	RequestTimeout     time.Duration // Bound on each sub-call
	KeepPartialResults bool          // Substitute only the failed fields instead of the whole result
}

// NewConfig derives processor settings from application config.
// Live mode is enabled only when the selected provider has a usable credential.
func NewConfig(config *common.Config) Config {
	return Config{
		LiveModeEnabled:    common.IsUsableAPIKey(config.APIKeyFor(config.LLM.Provider)),
		MaxInputChars:      config.LLM.MaxInputChars,
		RequestTimeout:     config.LLM.Timeout(),
		KeepPartialResults: config.LLM.KeepPartialResults,
	}
}

// callResult is the outcome of one sub-call: a value or the reason it failed
type callResult struct {
	task    task
	text    string
	bullets []string
	err     error
}

func (r callResult) ok() bool {
	return r.err == nil
}

// Processor implements interfaces.DocumentProcessor
type Processor struct {
	config   Config
	provider llm.Provider
	logger   arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.DocumentProcessor = (*Processor)(nil)

// NewProcessor creates a processor. Live mode without a provider falls back to mock mode.
func NewProcessor(config Config, provider llm.Provider, logger arbor.ILogger) *Processor {
	if config.LiveModeEnabled && provider == nil {
		logger.Warn().Msg("Live mode requested without an LLM provider, using demo mode")
		config.LiveModeEnabled = false
	}
	if config.MaxInputChars <= 0 {
		config.MaxInputChars = 4000
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 60 * time.Second
	}

	p := &Processor{
		config:   config,
		provider: provider,
		logger:   logger,
	}

	event := logger.Info().Str("mode", string(p.GetMode()))
	if p.provider != nil && config.LiveModeEnabled {
		event = event.Str("provider", string(p.provider.GetProviderType()))
	}
	event.Bool("keep_partial_results", config.KeepPartialResults).Msg("AI processor initialized")

	return p
}

// GetMode reports whether results come from the provider or the mock generator
func (p *Processor) GetMode() interfaces.LLMMode {
	if p.config.LiveModeEnabled {
		return interfaces.LLMModeLive
	}
	return interfaces.LLMModeMock
}

// Process returns the summary, key points and rewrite for text. It never fails:
// API errors are logged and replaced by locally generated output.
func (p *Processor) Process(ctx context.Context, text string) *models.AIResult {
	if !p.config.LiveModeEnabled {
		return GenerateMock(text)
	}

	results := p.runLive(ctx, text)
	return p.compose(text, results)
}

// runLive issues the three sub-calls concurrently and waits for all of them.
// Without partial retention, the first failure cancels the remaining calls.
func (p *Processor) runLive(ctx context.Context, text string) []callResult {
	input := truncateRunes(text, p.config.MaxInputChars)
	results := make([]callResult, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	for i, pr := range prompts {
		g.Go(func() error {
			results[i] = p.call(gctx, pr, input)
			if results[i].err != nil && !p.config.KeepPartialResults {
				return results[i].err
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// call performs one bounded sub-call and shapes its response
func (p *Processor) call(ctx context.Context, pr prompt, input string) callResult {
	ctx, cancel := context.WithTimeout(ctx, p.config.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := p.provider.GenerateContent(ctx, &llm.ContentRequest{
		Messages: []interfaces.Message{
			{Role: "user", Content: pr.userPrompt(input)},
		},
		SystemInstruction: pr.system,
		MaxTokens:         pr.maxTokens,
		Temperature:       pr.temperature,
	})
	if err != nil {
		return callResult{task: pr.task, err: fmt.Errorf("error generating %s: %w", pr.task, err)}
	}

	p.logger.Debug().
		Str("task", string(pr.task)).
		Str("model", resp.Model).
		Dur("duration", time.Since(start)).
		Msg("AI sub-call completed")

	content := strings.TrimSpace(resp.Text)
	if pr.task == taskBullets {
		return callResult{task: pr.task, bullets: parseBulletPoints(content)}
	}
	return callResult{task: pr.task, text: content}
}

// compose applies the failure policy: any failure yields the mock result unless
// partial retention is enabled, in which case only the failed fields are substituted
func (p *Processor) compose(text string, results []callResult) *models.AIResult {
	failed := 0
	for _, r := range results {
		if !r.ok() {
			failed++
			p.logger.Warn().Err(r.err).Str("task", string(r.task)).Msg("AI processing call failed")
		}
	}

	if failed > 0 && !p.config.KeepPartialResults {
		p.logger.Warn().Int("failed_calls", failed).Msg("Falling back to demo output for this request")
		return GenerateMock(text)
	}

	var mock *models.AIResult
	if failed > 0 {
		mock = GenerateMock(text)
	}

	result := &models.AIResult{}
	for _, r := range results {
		switch r.task {
		case taskSummary:
			result.Summary = r.text
			if !r.ok() {
				result.Summary = mock.Summary
			}
		case taskBullets:
			result.BulletPoints = r.bullets
			if !r.ok() {
				result.BulletPoints = mock.BulletPoints
			}
		case taskRewrite:
			result.RewrittenText = r.text
			if !r.ok() {
				result.RewrittenText = mock.RewrittenText
			}
		}
	}
	if result.BulletPoints == nil {
		result.BulletPoints = []string{}
	}

	return result
}
