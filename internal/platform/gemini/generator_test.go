package gemini_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientsure/ai-gateway/internal/config"
	"github.com/clientsure/ai-gateway/internal/generation"
	"github.com/clientsure/ai-gateway/internal/platform/gemini"
)

func validLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:          "test-key",
		Models:                []string{"gemini-2.0-flash", "gemini-pro"},
		RequestTimeoutSeconds: 8,
		MaxCallsPerSecond:     1,
		MaxBurst:              4,
	}
}

func TestNewGenerator_RequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewGenerator(context.Background(), nil, validLLMConfig())
	assert.Error(t, err)
}

func TestNewGenerator_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	cfg := validLLMConfig()
	cfg.GeminiAPIKey = ""

	_, err := gemini.NewGenerator(context.Background(), slog.Default(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewGenerator_RequiresModelCandidates(t *testing.T) {
	t.Parallel()

	cfg := validLLMConfig()
	cfg.Models = nil

	_, err := gemini.NewGenerator(context.Background(), slog.Default(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateText_RejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	g, err := gemini.NewGenerator(context.Background(), slog.Default(), validLLMConfig())
	require.NoError(t, err, "client construction needs no network round trip")

	_, err = g.GenerateText(context.Background(), "")
	assert.ErrorIs(t, err, gemini.ErrEmptyPrompt)
}
