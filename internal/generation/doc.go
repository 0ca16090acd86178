// Package generation defines the domain types for the AI content-generation
// gateway: the request/result shapes, the tool enumeration that selects a
// response template, and the Generator interface that abstracts the external
// LLM service (Gemini) so the gateway core never couples to a specific
// provider SDK.
package generation
