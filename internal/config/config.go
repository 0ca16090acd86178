package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"        validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all settings for the external generative-model adapter.
type LLMConfig struct {
	// GeminiAPIKey may be empty; the gateway then skips the model adapter
	// entirely and serves fallback synthesis only.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// Models is the preference-ordered list of model identifiers to try.
	Models []string `mapstructure:"models" validate:"required,min=1,dive,required"`

	// RequestTimeoutSeconds bounds a single upstream call so a hanging model
	// cannot starve the handler.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`

	// MaxCallsPerSecond and MaxBurst shape the outbound token bucket that
	// protects the provider quota independently of per-client limits.
	MaxCallsPerSecond float64 `mapstructure:"max_calls_per_second" validate:"required,gt=0"`
	MaxBurst          int     `mapstructure:"max_burst"            validate:"required,gt=0"`
}

// RequestTimeout returns the per-call timeout as a duration.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// RateLimitConfig contains the fixed-window per-client rate limit settings.
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds" validate:"required,gt=0"`
	MaxRequests   int `mapstructure:"max_requests"   validate:"required,gt=0"`
}

// Window returns the window length as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// CacheConfig contains the response-cache settings.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxEntries int `mapstructure:"max_entries" validate:"required,gt=0"`
}

// TTL returns the entry validity period as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
