package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/services/extraction"
	"github.com/ternarybob/docspark/internal/services/llm"
	"github.com/ternarybob/docspark/internal/services/processor"
)

func main() {
	common.InstallCrashHandler(os.TempDir())
	defer common.RecoverWithCrashFile()

	configPath := os.Getenv("DOCSPARK_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("docspark.toml"); err == nil {
			configPath = "docspark.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs go to a file only
	logger := arbor.NewLogger().WithFileWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeFile,
		FileName:         filepath.Join(os.TempDir(), "docspark-mcp.log"),
		TimeFormat:       "15:04:05",
		MaxSize:          10 * 1024 * 1024,
		MaxBackups:       1,
		OutputType:       arbor_models.OutputFormatLogfmt,
		DisableTimestamp: false,
	}).WithLevelFromString(config.Logging.Level)

	extractor := extraction.NewExtractor(logger)

	provider, err := llm.NewProviderFactory(config, logger).NewProvider(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize LLM provider: %v\n", err)
		os.Exit(1)
	}
	if provider != nil {
		defer provider.Close()
	}

	procConfig := processor.NewConfig(config)
	if provider == nil {
		procConfig.LiveModeEnabled = false
	}
	proc := processor.NewProcessor(procConfig, provider, logger)

	mcpServer := server.NewMCPServer(
		"docspark",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createExtractDocumentTool(), handleExtractDocument(extractor, logger))
	mcpServer.AddTool(createProcessTextTool(), handleProcessText(proc, logger))
	mcpServer.AddTool(createProcessDocumentTool(), handleProcessDocument(extractor, proc, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
