// Package gemini implements the generation.Generator interface on top of
// Google's Gemini API. Model selection is best-effort probing over a
// preference-ordered candidate list; every failure shape is returned as an
// error so the gateway can fall back to template synthesis.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clientsure/ai-gateway/internal/config"
	"github.com/clientsure/ai-gateway/internal/generation"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Generation parameters are fixed, not request-configurable.
// They come straight from the superseded dashboard implementation.
const (
	temperature     float32 = 0.7
	topK            float32 = 40
	topP            float32 = 0.95
	maxOutputTokens int32   = 1024
)

// Generator calls the Gemini API with a bounded timeout and an outbound
// token bucket guarding the provider quota.
type Generator struct {
	logger  *slog.Logger
	client  *genai.Client
	models  []string
	timeout time.Duration
	limiter *rate.Limiter
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator from LLM configuration.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration with API key, model candidates, and call budget
//
// Returns an initialized Generator or an error if configuration is invalid
// or the client cannot be created.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("%w: at least one model candidate is required", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:  logger.With(slog.String("component", "gemini_generator")),
		client:  client,
		models:  cfg.Models,
		timeout: cfg.RequestTimeout(),
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxCallsPerSecond), cfg.MaxBurst),
	}, nil
}

// GenerateText completes the prompt with the first model candidate that
// returns non-empty text. The whole attempt, across all candidates, shares
// one timeout so a hanging upstream cannot starve the handler.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	if !g.limiter.Allow() {
		g.logger.WarnContext(ctx, "outbound call budget exhausted, skipping model attempt")
		return "", generation.ErrQuotaExhausted
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		TopK:            genai.Ptr(topK),
		TopP:            genai.Ptr(topP),
		MaxOutputTokens: maxOutputTokens,
	}

	var lastErr error
	for _, model := range g.models {
		text, err := g.generateWithModel(ctx, model, prompt, genCfg)
		if err == nil {
			return text, nil
		}

		g.logger.WarnContext(ctx, "model candidate failed",
			slog.String("model", model),
			slog.String("error", err.Error()))
		lastErr = err

		// Safety blocks are prompt-level, not model-level; trying the next
		// candidate would just burn quota on the same refusal.
		if errors.Is(err, generation.ErrContentBlocked) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, lastErr)
}

// generateWithModel runs one candidate and maps its response to trimmed text
// or an error.
func (g *Generator) generateWithModel(
	ctx context.Context,
	model string,
	prompt string,
	genCfg *genai.GenerateContentConfig,
) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", generation.ErrEmptyResponse
	}

	g.logger.DebugContext(ctx, "gemini response received",
		slog.String("model", model),
		slog.Int("response_length", len(text)))

	return text, nil
}
