package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Upload      UploadConfig  `toml:"upload"`
	CORS        CORSConfig    `toml:"cors"`
	LLM         LLMConfig     `toml:"llm"`
	OpenAI      OpenAIConfig  `toml:"openai"`
	Claude      ClaudeConfig  `toml:"claude"`
	Gemini      GeminiConfig  `toml:"gemini"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"`
}

// UploadConfig controls how uploaded documents are received and staged on disk
type UploadConfig struct {
	MaxSizeMB int    `toml:"max_size_mb" validate:"min=1"` // Maximum accepted upload size
	TempDir   string `toml:"temp_dir"`                     // Directory for transient upload files (empty = os.TempDir())
}

// CORSConfig lists the browser origins allowed to call the API with credentials
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderOpenAI uses the OpenAI chat completions API
	LLMProviderOpenAI LLMProvider = "openai"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig selects the live provider and bounds each request made to it
type LLMConfig struct {
	Provider           LLMProvider `toml:"provider" validate:"oneof=openai claude gemini"`
	RequestTimeout     string      `toml:"request_timeout"`                  // Per-call timeout as duration string (default: "60s")
	MaxInputChars      int         `toml:"max_input_chars" validate:"min=1"` // Characters of document text sent per prompt
	KeepPartialResults bool        `toml:"keep_partial_results"`             // Keep successful calls when another call fails
}

// OpenAIConfig contains OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`    // default: "gpt-3.5-turbo"
	BaseURL string `toml:"base_url"` // Optional OpenAI-compatible endpoint
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`    // default: "claude-3-5-haiku-latest"
	BaseURL string `toml:"base_url"` // Optional Messages API endpoint
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`    // default: "gemini-2.0-flash"
	BaseURL string `toml:"base_url"` // Optional Gemini API endpoint
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8000,
			Host: "0.0.0.0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Upload: UploadConfig{
			MaxSizeMB: 25,
			TempDir:   "",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"}, // Vite and CRA dev servers
		},
		LLM: LLMConfig{
			Provider:           LLMProviderOpenAI,
			RequestTimeout:     "60s",
			MaxInputChars:      4000,
			KeepPartialResults: false,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-3.5-turbo",
		},
		Claude: ClaudeConfig{
			Model: "claude-3-5-haiku-latest",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCSPARK_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOCSPARK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCSPARK_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("DOCSPARK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOCSPARK_LOG_OUTPUT"); output != "" {
		if outputs := splitList(output); len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Upload configuration
	if maxSize := os.Getenv("DOCSPARK_UPLOAD_MAX_SIZE_MB"); maxSize != "" {
		if m, err := strconv.Atoi(maxSize); err == nil {
			config.Upload.MaxSizeMB = m
		}
	}
	if tempDir := os.Getenv("DOCSPARK_UPLOAD_TEMP_DIR"); tempDir != "" {
		config.Upload.TempDir = tempDir
	}

	// CORS configuration
	if origins := os.Getenv("DOCSPARK_CORS_ALLOWED_ORIGINS"); origins != "" {
		if list := splitList(origins); len(list) > 0 {
			config.CORS.AllowedOrigins = list
		}
	}

	// LLM configuration
	if provider := os.Getenv("DOCSPARK_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = LLMProvider(strings.ToLower(provider))
	}
	if timeout := os.Getenv("DOCSPARK_LLM_REQUEST_TIMEOUT"); timeout != "" {
		config.LLM.RequestTimeout = timeout
	}
	if maxChars := os.Getenv("DOCSPARK_LLM_MAX_INPUT_CHARS"); maxChars != "" {
		if m, err := strconv.Atoi(maxChars); err == nil {
			config.LLM.MaxInputChars = m
		}
	}
	if keep := os.Getenv("DOCSPARK_LLM_KEEP_PARTIAL_RESULTS"); keep != "" {
		if k, err := strconv.ParseBool(keep); err == nil {
			config.LLM.KeepPartialResults = k
		}
	}

	// OpenAI configuration (DOCSPARK_ prefix takes priority)
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("DOCSPARK_OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("DOCSPARK_OPENAI_MODEL"); model != "" {
		config.OpenAI.Model = model
	}
	if baseURL := os.Getenv("DOCSPARK_OPENAI_BASE_URL"); baseURL != "" {
		config.OpenAI.BaseURL = baseURL
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("DOCSPARK_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if model := os.Getenv("DOCSPARK_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if baseURL := os.Getenv("DOCSPARK_CLAUDE_BASE_URL"); baseURL != "" {
		config.Claude.BaseURL = baseURL
	}

	// Gemini configuration
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("DOCSPARK_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("DOCSPARK_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if baseURL := os.Getenv("DOCSPARK_GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the loaded configuration for values the server cannot start with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.ParseDuration(c.LLM.RequestTimeout); err != nil {
		return fmt.Errorf("invalid llm.request_timeout '%s': %w", c.LLM.RequestTimeout, err)
	}
	return nil
}

// Timeout returns the parsed per-call LLM timeout
func (c *LLMConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// MaxUploadBytes returns the upload limit in bytes
func (c *UploadConfig) MaxUploadBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// APIKeyFor returns the configured credential for the given provider
func (c *Config) APIKeyFor(provider LLMProvider) string {
	switch provider {
	case LLMProviderClaude:
		return c.Claude.APIKey
	case LLMProviderGemini:
		return c.Gemini.APIKey
	default:
		return c.OpenAI.APIKey
	}
}

// IsUsableAPIKey reports whether key looks like a real credential.
// Empty keys and template placeholders such as "your_openai_api_key_here" are rejected.
func IsUsableAPIKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return false
	}
	if strings.HasPrefix(k, "your_") && strings.HasSuffix(k, "_here") {
		return false
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
