package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docspark/internal/common"
	"github.com/ternarybob/docspark/internal/handlers"
	"github.com/ternarybob/docspark/internal/interfaces"
	"github.com/ternarybob/docspark/internal/services/export"
	"github.com/ternarybob/docspark/internal/services/extraction"
	"github.com/ternarybob/docspark/internal/services/llm"
	"github.com/ternarybob/docspark/internal/services/pdf"
	"github.com/ternarybob/docspark/internal/services/processor"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Document services
	Extractor     interfaces.TextExtractor
	Processor     interfaces.DocumentProcessor
	PDFService    interfaces.PDFService
	ExportService interfaces.ExportService
	LLMProvider   llm.Provider

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	UploadHandler *handlers.UploadHandler
	ExportHandler *handlers.ExportHandler
}

// New initializes services and handlers from configuration
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("ai_mode", string(app.Processor.GetMode())).
		Strs("extensions", app.Extractor.SupportedExtensions()).
		Msg("Application initialization complete")

	return app, nil
}

// initServices wires extraction, AI processing and export
func (a *App) initServices(ctx context.Context) error {
	a.Extractor = extraction.NewExtractor(a.Logger)

	provider, err := llm.NewProviderFactory(a.Config, a.Logger).NewProvider(ctx)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	a.LLMProvider = provider

	procConfig := processor.NewConfig(a.Config)
	if provider == nil {
		procConfig.LiveModeEnabled = false
	}
	a.Processor = processor.NewProcessor(procConfig, provider, a.Logger)

	a.PDFService = pdf.NewService(a.Logger)
	a.ExportService = export.NewService(a.PDFService, a.Logger)

	return nil
}

// initHandlers creates the HTTP handlers over the initialized services
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Processor, a.Logger)
	a.UploadHandler = handlers.NewUploadHandler(a.Extractor, a.Processor, &a.Config.Upload, a.Logger)
	a.ExportHandler = handlers.NewExportHandler(a.ExportService, a.Logger)
}

// Close releases the LLM provider
func (a *App) Close() error {
	if a.LLMProvider != nil {
		if err := a.LLMProvider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM provider")
			return err
		}
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
