package api

import (
	"errors"
	"net/http"
)

// Errors the API layer translates into responses. Rate limiting carries its
// own headers and body shape, so it is handled inline by the handler rather
// than through this mapping.
var (
	// ErrInvalidPrompt is returned for a missing, non-string, or empty prompt.
	ErrInvalidPrompt = errors.New("invalid prompt provided")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes.
// This prevents leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPrompt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message.
// Full error details only ever reach the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPrompt):
		return "Invalid prompt provided"
	default:
		return "Generation failed"
	}
}
