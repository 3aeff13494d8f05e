package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// Placeholder tokens understood by the catalog templates.
const (
	TokenPlayerName            = "{PLAYER_NAME}"
	TokenPlayerNumber          = "{PLAYER_NUMBER}"
	TokenTeamName              = "{TEAM_NAME}"
	TokenArchitecturalAnalysis = "{architectural_analysis}"
	TokenBadgeName             = "{badge_name}"
	TokenBadgeNumber           = "{badge_number}"
)

var placeholderPattern = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Interpolate substitutes every known token present in values. Tokens missing
// from values are left literal.
func Interpolate(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Placeholders returns the distinct {TOKEN} placeholders left in s, in order
// of first appearance.
func Placeholders(s string) []string {
	matches := placeholderPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// NeutralizeBraces rewrites curly braces in free text so client or model
// supplied content can never masquerade as a placeholder.
func NeutralizeBraces(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	return strings.NewReplacer("{", "(", "}", ")").Replace(s)
}
