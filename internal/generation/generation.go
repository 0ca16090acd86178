package generation

import "context"

// Tool identifies the content category a generation request targets.
// The tool selects which response template or shape the gateway produces.
type Tool string

// Supported tools. Anything else normalizes to ToolText.
const (
	ToolEmails    Tool = "emails"
	ToolWhatsApp  Tool = "whatsapp"
	ToolLinkedIn  Tool = "linkedin"
	ToolContracts Tool = "contracts"
	ToolText      Tool = "text"
)

// allowedTools mirrors the fixed set accepted on the wire.
var allowedTools = map[Tool]struct{}{
	ToolEmails:    {},
	ToolWhatsApp:  {},
	ToolLinkedIn:  {},
	ToolContracts: {},
	ToolText:      {},
}

// NormalizeTool maps a raw tool string from a request onto a supported Tool.
// Unrecognized values fall back to ToolText rather than failing the request.
func NormalizeTool(raw string) Tool {
	t := Tool(raw)
	if _, ok := allowedTools[t]; ok {
		return t
	}
	return ToolText
}

// Request is a single generation request after wire-level validation.
// It is transient and never stored; only its fingerprint reaches the cache.
type Request struct {
	// Prompt is the free-text prompt. Guaranteed non-empty by the API layer.
	Prompt string

	// Tool selects the response template or shape.
	Tool Tool

	// ExpectJSON hints that the caller wants a structured subject/preview/body
	// result instead of free text. Only honored for ToolEmails.
	ExpectJSON bool
}

// Result is the outcome of a generation request.
type Result struct {
	// Text is the generated content. For ToolEmails with ExpectJSON it is a
	// JSON-encoded string carrying subject/preview/body; the gateway does not
	// parse or validate that nested document.
	Text string

	// Cached reports whether Text was served from the response cache.
	Cached bool

	// Fallback reports whether Text was produced by the deterministic
	// template synthesizer rather than the external model.
	Fallback bool
}

// Generator defines the boundary between the gateway core and an external
// generative-text service. Implementations must treat every failure shape
// (initialization, transport, timeout, empty output) as an error return so
// the caller can fall back to template synthesis; they never panic and never
// block past their configured timeout.
type Generator interface {
	// GenerateText completes the prompt and returns trimmed, non-empty text.
	//
	// Parameters:
	//   - ctx: Context for the operation, which bounds the upstream call
	//   - prompt: The free-text prompt to complete
	//
	// Returns the generated text or an error (see errors.go for sentinel types).
	GenerateText(ctx context.Context, prompt string) (string, error)
}
