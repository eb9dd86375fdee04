package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the effective runtime settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.PrintSimple("DocSpark", GetVersion())

	logger.Info().
		Str("version", GetVersion()).
		Str("environment", config.Environment).
		Str("llm_provider", string(config.LLM.Provider)).
		Int("max_upload_mb", config.Upload.MaxSizeMB).
		Strs("cors_origins", config.CORS.AllowedOrigins).
		Msg("DocSpark AI API")
}
