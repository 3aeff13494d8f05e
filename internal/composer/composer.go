// Package composer turns typed generation requests into the single prompt
// string sent to the image provider. Every function is pure: the same
// catalog and inputs always produce the same bytes.
package composer

import (
	"strings"
	"unicode/utf8"

	"nftforge/internal/catalog"
)

const (
	// MaxPromptLength leaves headroom under the provider's 4000 character limit.
	MaxPromptLength = 3800
	// ClosingSentinel always terminates a stadium prompt.
	ClosingSentinel = "Premium NFT quality, architectural excellence."
	// MaxCustomAdditions bounds the CUSTOM: line payload.
	MaxCustomAdditions = 200

	maxDescriptionLength = 2400
)

// Degradation records an input that was replaced by a documented default.
// Callers log these; they are never surfaced as errors.
type Degradation struct {
	Field    string
	Value    string
	Fallback string
}

// Interpolate substitutes known placeholder tokens and leaves the rest.
func Interpolate(template string, values map[string]string) string {
	return catalog.Interpolate(template, values)
}

// Placeholders lists the {TOKEN} placeholders remaining in s.
func Placeholders(s string) []string {
	return catalog.Placeholders(s)
}

// sanitizeFreeText collapses whitespace and neutralises braces in client or
// model supplied text.
func sanitizeFreeText(s string) string {
	return catalog.NeutralizeBraces(strings.Join(strings.Fields(s), " "))
}

// truncateWords cuts s to at most limit bytes, preferring the last space and
// never splitting a UTF-8 sequence.
func truncateWords(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	head := s[:cut]
	if i := strings.LastIndexByte(head, ' '); i > limit/2 {
		head = head[:i]
	}
	return strings.TrimRight(head, " ,;:")
}

// fitLines drops trailing lines until the joined text plus the sentinel fits
// the budget, then appends the sentinel. A lone first line that is still too
// long is cut at a word boundary.
func fitLines(lines []string, sentinel string) string {
	budget := MaxPromptLength - len(sentinel) - 1
	total := -1
	for _, l := range lines {
		total += len(l) + 1
	}
	for len(lines) > 1 && total > budget {
		total -= len(lines[len(lines)-1]) + 1
		lines = lines[:len(lines)-1]
	}
	body := strings.Join(lines, "\n")
	if len(body) > budget {
		body = truncateWords(body, budget)
	}
	return body + "\n" + sentinel
}
