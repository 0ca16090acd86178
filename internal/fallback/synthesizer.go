// Package fallback deterministically synthesizes tool-specific content from
// a free-text prompt when the external model is unavailable or fails, so the
// gateway always returns something usable. Field extraction is a prioritized
// chain of pattern matches per field with fixed defaults; the required
// call-to-action text, when present in the prompt, appears verbatim in every
// template.
package fallback

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clientsure/ai-gateway/internal/generation"
)

// nicheBenefits maps known niche keywords to the benefit phrase used in the
// email body. Lookup is case-insensitive; unknown niches get a generic
// "deliver quality {niche} solutions" phrase.
var nicheBenefits = map[string]string{
	"roofing":     "protect homes with durable, storm-ready roofs",
	"plumbing":    "keep water systems running without costly surprises",
	"marketing":   "turn attention into measurable revenue",
	"fitness":     "help people build strength that lasts",
	"real estate": "close deals faster with confident buyers",
}

// emailPayload is the structured result for emails with ExpectJSON set.
type emailPayload struct {
	Subject string `json:"subject"`
	Preview string `json:"preview"`
	Body    string `json:"body"`
}

// Synthesizer renders tool-specific templates from extracted prompt fields.
// It is stateless and safe for concurrent use.
type Synthesizer struct{}

// New creates a Synthesizer.
func New() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize produces the fallback text for req. The output is eligible for
// caching under the same fingerprint as model output.
func (s *Synthesizer) Synthesize(req generation.Request) (string, error) {
	f := extractFields(req.Prompt)

	if req.ExpectJSON && req.Tool == generation.ToolEmails {
		return s.renderEmailJSON(f)
	}

	switch req.Tool {
	case generation.ToolWhatsApp:
		return fmt.Sprintf("Hi! %s here \U0001F44B\n%s expert for %s.\n%s",
			f.senderName, f.niche, strings.ToLower(f.target), f.cta), nil

	case generation.ToolLinkedIn:
		return fmt.Sprintf("Hello! I'm %s, %s specialist helping %s. %s",
			f.senderName, f.niche, strings.ToLower(f.target), f.cta), nil

	case generation.ToolContracts:
		client := "[Client Name]"
		if f.prospectCompany != "" {
			client = f.prospectCompany
		}
		return fmt.Sprintf(
			"%s SERVICE CONTRACT\n\nProvider: %s\nClient: %s\nScope: Professional %s services\n\nTerms: Standard industry terms apply\nNext Steps: %s",
			strings.ToUpper(f.niche), f.senderName, client, strings.ToLower(f.niche), f.cta), nil

	default:
		return fmt.Sprintf("Professional %s content from %s for %s. %s",
			strings.ToLower(f.niche), f.senderName, strings.ToLower(f.target), f.cta), nil
	}
}

// renderEmailJSON assembles the subject/preview/body document. The body is a
// greeting (personalized when a prospect name was extracted), an intro line,
// a niche benefit phrase, the exact CTA, and a sign-off.
func (s *Synthesizer) renderEmailJSON(f promptFields) (string, error) {
	greeting := "Hi there!"
	if f.prospectName != "" {
		greeting = fmt.Sprintf("Hi %s!", f.prospectName)
	}

	intro := fmt.Sprintf("I'm %s, %s specializing in %s services for %s.",
		f.senderName, strings.ToLower(f.senderRole), strings.ToLower(f.niche), strings.ToLower(f.target))
	if f.prospectCompany != "" {
		intro += fmt.Sprintf(" I work with teams like %s every day.", f.prospectCompany)
	}

	payload := emailPayload{
		Subject: fmt.Sprintf("%s Services - %s", f.niche, f.senderName),
		Preview: fmt.Sprintf("Professional %s solutions for %s", strings.ToLower(f.niche), strings.ToLower(f.target)),
		Body: fmt.Sprintf("%s\n\n%s\n\nWe %s.\n\n%s\n\nBest regards,\n%s",
			greeting, intro, benefitPhrase(f.niche), f.cta, f.senderName),
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}
	return string(out), nil
}

// benefitPhrase returns the mapped benefit for a known niche keyword, or the
// generic phrase otherwise.
func benefitPhrase(niche string) string {
	if phrase, ok := nicheBenefits[strings.ToLower(niche)]; ok {
		return phrase
	}
	return fmt.Sprintf("deliver quality %s solutions", strings.ToLower(niche))
}
