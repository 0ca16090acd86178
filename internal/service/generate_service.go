// Package service contains the gateway orchestration: cache lookup, external
// model attempt, fallback synthesis, and cache write, in that order. The
// caller (API layer) handles validation and rate limiting before reaching
// this service, so nothing here charges quota for malformed requests.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clientsure/ai-gateway/internal/cache"
	"github.com/clientsure/ai-gateway/internal/fallback"
	"github.com/clientsure/ai-gateway/internal/generation"
	"golang.org/x/sync/singleflight"
)

// GenerationService runs the generation pipeline for one request.
type GenerationService struct {
	logger *slog.Logger
	cache  *cache.ResponseCache

	// generator is nil when no API key is configured; every request then
	// goes straight to fallback synthesis.
	generator generation.Generator

	synthesizer *fallback.Synthesizer

	// group collapses concurrent misses for the same fingerprint so a burst
	// of identical prompts costs a single upstream call.
	group singleflight.Group
}

// generated carries a pipeline outcome through singleflight.
type generated struct {
	text     string
	fallback bool
}

// NewGenerationService creates a GenerationService. generator may be nil.
func NewGenerationService(
	logger *slog.Logger,
	responseCache *cache.ResponseCache,
	generator generation.Generator,
	synthesizer *fallback.Synthesizer,
) *GenerationService {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationService")
	}
	if responseCache == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cache cannot be nil for GenerationService")
	}
	if synthesizer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("synthesizer cannot be nil for GenerationService")
	}

	return &GenerationService{
		logger:      logger.With(slog.String("component", "generation_service")),
		cache:       responseCache,
		generator:   generator,
		synthesizer: synthesizer,
	}
}

// Generate serves req from the cache when possible, otherwise produces text
// via the external model or, on any upstream failure, the fallback
// synthesizer. Model failures are fully recovered here and never surface to
// the caller; an error return means the fallback path itself failed.
func (s *GenerationService) Generate(ctx context.Context, req generation.Request) (generation.Result, error) {
	key := cache.Fingerprint(string(req.Tool), req.Prompt)

	if text, ok := s.cache.Get(key); ok {
		s.logger.DebugContext(ctx, "cache hit", slog.String("tool", string(req.Tool)))
		return generation.Result{Text: text, Cached: true}, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		out, genErr := s.generate(ctx, req)
		if genErr != nil {
			return generated{}, genErr
		}
		s.cache.Set(key, out.text)
		return out, nil
	})
	if err != nil {
		return generation.Result{}, err
	}

	out := v.(generated)
	if shared {
		s.logger.DebugContext(ctx, "collapsed duplicate in-flight request",
			slog.String("tool", string(req.Tool)))
	}
	return generation.Result{Text: out.text, Fallback: out.fallback}, nil
}

// generate attempts the external model, then falls back to synthesis.
func (s *GenerationService) generate(ctx context.Context, req generation.Request) (generated, error) {
	if s.generator != nil {
		text, err := s.generator.GenerateText(ctx, req.Prompt)
		if err == nil {
			return generated{text: text}, nil
		}
		s.logger.WarnContext(ctx, "model generation failed, using fallback",
			slog.String("tool", string(req.Tool)),
			slog.String("error", err.Error()))
	}

	text, err := s.synthesizer.Synthesize(req)
	if err != nil {
		return generated{}, fmt.Errorf("fallback synthesis failed: %w", err)
	}
	return generated{text: text, fallback: true}, nil
}
