// Package main implements the entry point for the ClientSure AI-generation
// gateway: a rate-limited, cached HTTP endpoint that delegates prompt
// completion to Gemini and falls back to deterministic template synthesis.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/clientsure/ai-gateway/internal/config"
	"github.com/clientsure/ai-gateway/internal/platform/logger"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"rate_limit_window_seconds", cfg.RateLimit.WindowSeconds,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"cache_ttl_seconds", cfg.Cache.TTLSeconds,
		"cache_max_entries", cfg.Cache.MaxEntries,
		"gemini_key_present", cfg.LLM.GeminiAPIKey != "")

	return newApplication(ctx, cfg, appLogger)
}
