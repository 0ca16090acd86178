// Package api provides HTTP handlers for the generation gateway.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clientsure/ai-gateway/internal/api/shared"
	"github.com/clientsure/ai-gateway/internal/generation"
	"github.com/clientsure/ai-gateway/internal/ratelimit"
	"github.com/clientsure/ai-gateway/internal/service"
)

// unknownClient is the rate-limit identifier used when no forwarded-IP
// header is present.
const unknownClient = "unknown"

// GenerateRequest represents the request body for a generation request.
type GenerateRequest struct {
	Prompt     string `json:"prompt"     validate:"required"`
	Tool       string `json:"tool"`
	ExpectJSON bool   `json:"expectJson"`
}

// GenerateResponse represents a successful generation result.
type GenerateResponse struct {
	Text     string `json:"text"`
	Cached   bool   `json:"cached"`
	Fallback bool   `json:"fallback,omitempty"`
}

// RateLimitedResponse is the 429 body, carrying the retry delay in seconds.
type RateLimitedResponse struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retryAfter"`
}

// GenerateHandler handles generation HTTP requests.
type GenerateHandler struct {
	service *service.GenerationService
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(
	generationService *service.GenerationService,
	limiter *ratelimit.Limiter,
	logger *slog.Logger,
) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		service: generationService,
		limiter: limiter,
		logger:  logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /api/ai/generate requests.
//
// Validation runs before the rate limiter and the cache are touched, so a
// malformed request never consumes quota. The pipeline after validation is:
// rate-limit check, cache lookup, model attempt, fallback synthesis, cache
// write.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(ErrInvalidPrompt), GetSafeErrorMessage(ErrInvalidPrompt), err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(ErrInvalidPrompt), GetSafeErrorMessage(ErrInvalidPrompt), err)
		return
	}

	clientID := clientIdentifier(r)
	decision := h.limiter.Admit(clientID)
	if !decision.Allowed {
		h.respondRateLimited(w, r, clientID, decision)
		return
	}

	result, err := h.service.Generate(r.Context(), generation.Request{
		Prompt:     req.Prompt,
		Tool:       generation.NormalizeTool(req.Tool),
		ExpectJSON: req.ExpectJSON,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Text:     result.Text,
		Cached:   result.Cached,
		Fallback: result.Fallback,
	})
}

// respondRateLimited writes the 429 response with the standard rate-limit
// headers: limit, remaining (always zero here), reset timestamp, Retry-After.
func (h *GenerateHandler) respondRateLimited(
	w http.ResponseWriter,
	r *http.Request,
	clientID string,
	decision ratelimit.Decision,
) {
	h.logger.Warn("rate limit exceeded",
		slog.String("client_id", clientID),
		slog.Int64("retry_after_seconds", decision.RetryAfterSeconds))

	w.Header().Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds, 10))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))

	shared.RespondWithJSON(w, r, http.StatusTooManyRequests, RateLimitedResponse{
		Error:      "Rate limit exceeded. Please retry later.",
		RetryAfter: decision.RetryAfterSeconds,
	})
}

// clientIdentifier derives the rate-limit key from the forwarded-IP header:
// the first entry, trimmed. Requests without the header share the sentinel
// identifier.
func clientIdentifier(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return unknownClient
	}
	first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
	if first == "" {
		return unknownClient
	}
	return first
}
