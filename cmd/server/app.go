package main

import (
	"context"
	"log/slog"

	"github.com/clientsure/ai-gateway/internal/cache"
	"github.com/clientsure/ai-gateway/internal/config"
	"github.com/clientsure/ai-gateway/internal/fallback"
	"github.com/clientsure/ai-gateway/internal/generation"
	"github.com/clientsure/ai-gateway/internal/platform/gemini"
	"github.com/clientsure/ai-gateway/internal/ratelimit"
	"github.com/clientsure/ai-gateway/internal/service"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	limiter           *ratelimit.Limiter
	responseCache     *cache.ResponseCache
	generationService *service.GenerationService
}

// newApplication wires the gateway components from configuration.
// When no Gemini API key is configured the model adapter is skipped entirely
// and every request is served by fallback synthesis.
func newApplication(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	limiter := ratelimit.New(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests, appLogger)
	responseCache := cache.New(cfg.Cache.TTL(), cfg.Cache.MaxEntries)

	var generator generation.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
		if err != nil {
			// Misconfigured credentials degrade to fallback-only operation
			// rather than refusing to start.
			appLogger.Error("failed to initialize Gemini generator, serving fallback only",
				"error", err)
		} else {
			generator = g
		}
	} else {
		appLogger.Info("no Gemini API key configured, serving fallback only")
	}

	generationService := service.NewGenerationService(
		appLogger,
		responseCache,
		generator,
		fallback.New(),
	)

	return &application{
		config:            cfg,
		logger:            appLogger,
		limiter:           limiter,
		responseCache:     responseCache,
		generationService: generationService,
	}, nil
}

// run starts the background sweeper and the HTTP server, blocking until
// shutdown completes.
func (app *application) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go app.limiter.Run(ctx)

	return app.startHTTPServer(ctx, app.setupRouter())
}
