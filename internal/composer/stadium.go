package composer

import (
	"strings"

	"nftforge/internal/catalog"
	"nftforge/internal/domain"
)

// StadiumInput carries the material a stadium prompt is built from. The
// description precedence is Analysis, then ClientPrompt, then a default
// naming Subject.
type StadiumInput struct {
	Subject         string
	Analysis        string
	ClientPrompt    string
	CustomAdditions string
	Modifiers       domain.StadiumModifiers
}

// Stadium composes a stadium prompt that always ends with ClosingSentinel and
// never exceeds MaxPromptLength.
func Stadium(cat *catalog.Catalog, in StadiumInput) (string, []Degradation) {
	var degraded []Degradation
	mods := in.Modifiers

	style := domain.GenerationStyle(domain.Normalize(string(mods.GenerationStyle)))
	if style == "" {
		style = domain.StyleRealistic
	}
	perspective := domain.Perspective(domain.Normalize(string(mods.Perspective)))
	if perspective == "" {
		perspective = domain.PerspectiveExternal
	}
	tpl, ok := cat.StadiumTemplate(style, perspective)
	if !ok {
		degraded = append(degraded, Degradation{
			Field:    "generation_style/perspective",
			Value:    string(style) + "/" + string(perspective),
			Fallback: "realistic/external",
		})
	}

	description := sanitizeFreeText(in.Analysis)
	if description == "" {
		description = sanitizeFreeText(in.ClientPrompt)
	}
	if description == "" {
		description = catalog.StadiumFallbackDescription(sanitizeFreeText(in.Subject))
	}
	description = truncateWords(description, maxDescriptionLength)

	body := Interpolate(tpl, map[string]string{catalog.TokenArchitecturalAnalysis: description})
	lines := strings.Split(body, "\n")

	specific, dropped := specificPhrases(cat, mods)
	degraded = append(degraded, dropped...)
	if len(specific) > 0 {
		lines = append(lines, "SPECIFIC: "+strings.Join(specific, ", ")+".")
	}

	if custom := sanitizeFreeText(in.CustomAdditions); custom != "" {
		lines = append(lines, "CUSTOM: "+truncateRunes(custom, MaxCustomAdditions))
	}
	return fitLines(lines, ClosingSentinel), degraded
}

// specificPhrases returns modifier phrases in atmosphere, time, weather order.
// Unknown values are dropped and reported.
func specificPhrases(cat *catalog.Catalog, mods domain.StadiumModifiers) ([]string, []Degradation) {
	var (
		phrases  []string
		degraded []Degradation
	)
	add := func(field, value string, lookup func(string) (string, bool)) {
		value = domain.Normalize(value)
		if value == "" {
			return
		}
		if p, ok := lookup(value); ok {
			phrases = append(phrases, p)
			return
		}
		degraded = append(degraded, Degradation{Field: field, Value: value})
	}
	add("atmosphere", string(mods.Atmosphere), func(v string) (string, bool) {
		return cat.AtmospherePhrase(domain.Atmosphere(v))
	})
	add("time_of_day", string(mods.TimeOfDay), func(v string) (string, bool) {
		return cat.TimePhrase(domain.TimeOfDay(v))
	})
	add("weather", string(mods.Weather), func(v string) (string, bool) {
		return cat.WeatherPhrase(domain.Weather(v))
	})
	return phrases, degraded
}

// truncateRunes keeps at most n characters of s.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
