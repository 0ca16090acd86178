package generation

import "errors"

// Common errors returned by Generator implementations.
var (
	// ErrGenerationFailed is returned when no model candidate produced usable text
	ErrGenerationFailed = errors.New("failed to generate text from prompt")

	// ErrEmptyResponse is returned when the model responded with empty or
	// whitespace-only output
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrQuotaExhausted is returned when the outbound call budget to the model
	// provider is exhausted
	ErrQuotaExhausted = errors.New("upstream call budget exhausted")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
