package fallback

import (
	"regexp"
	"strconv"
	"strings"
)

// promptFields holds everything the templates interpolate, extracted from the
// free-text prompt. Empty string means "not present, use the template default".
type promptFields struct {
	senderName      string
	senderRole      string
	niche           string
	target          string
	prospectName    string
	prospectCompany string
	cta             string

	// wordLimit is extracted for completeness but the fixed templates do not
	// enforce it; their length is bounded by construction.
	wordLimit int
}

// Each field has a prioritized chain of patterns; the first submatch wins.
// This is pattern matching over a known prompt shape, not a parser.
var (
	senderNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Sender name: ([^.\n]+)`),
		regexp.MustCompile(`My name is ([^.,\n]+)`),
	}
	senderRolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Sender role: ([^.\n]+)`),
		regexp.MustCompile(`I am an? ([^.,\n]+)`),
	}
	nichePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Niche: ([^.\n]+)`),
		regexp.MustCompile(`Industry: ([^.\n]+)`),
	}
	targetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Target: ([^.\n]+)`),
		regexp.MustCompile(`Audience: ([^.\n]+)`),
	}
	prospectNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Prospect name: ([^.\n]+)`),
		regexp.MustCompile(`Prospect: ([^.,\n]+)`),
	}
	prospectCompanyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Prospect company: ([^.\n]+)`),
		regexp.MustCompile(`Company: ([^.\n]+)`),
	}
	ctaPattern       = regexp.MustCompile(`Include this CTA \(exact\): "([^"]+)"`)
	wordLimitPattern = regexp.MustCompile(`Keep it under (\d+) words`)
)

// extractFields runs each field's pattern chain over the prompt and applies
// the template defaults where nothing matched.
func extractFields(prompt string) promptFields {
	f := promptFields{
		senderName: firstMatch(prompt, senderNamePatterns, "Professional"),
		senderRole: firstMatch(prompt, senderRolePatterns, "Consultant"),
		niche:      firstMatch(prompt, nichePatterns, "Business"),
		target:     firstMatch(prompt, targetPatterns, "Clients"),

		// Prospect fields have no defaults; templates branch on presence.
		prospectName:    firstMatch(prompt, prospectNamePatterns, ""),
		prospectCompany: firstMatch(prompt, prospectCompanyPatterns, ""),

		cta: "Contact us",
	}

	if m := ctaPattern.FindStringSubmatch(prompt); m != nil {
		f.cta = m[1]
	}
	if m := wordLimitPattern.FindStringSubmatch(prompt); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.wordLimit = n
		}
	}

	return f
}

// firstMatch returns the trimmed first submatch of the first pattern that
// matches, or fallback when none do.
func firstMatch(prompt string, patterns []*regexp.Regexp, fallback string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(prompt); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return fallback
}
