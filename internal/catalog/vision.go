package catalog

import (
	"fmt"
	"strings"

	"nftforge/internal/domain"
)

var stadiumAnalysisInstructions = map[domain.Perspective]string{
	domain.PerspectiveExternal: "Analyze this stadium photograph and describe its EXTERIOR architecture in one dense paragraph: overall shape and footprint, roof structure, facade materials and colours, distinctive structural elements, surroundings. Describe only what is visible. Do not mention team names, sponsors or any text.",
	domain.PerspectiveInternal: "Analyze this stadium photograph and describe its INTERIOR in one dense paragraph: bowl shape, number of tiers, seat colours, roof coverage, floodlight layout, pitch surroundings. Describe only what is visible. Do not mention team names, sponsors or any text.",
	domain.PerspectiveMixed:    "Analyze this stadium photograph and describe its architecture in one dense paragraph covering both the exterior shell and the interior bowl: shape, roof, facade materials, tiers, seat colours, distinctive structural elements. Describe only what is visible. Do not mention team names, sponsors or any text.",
}

var sportGarments = map[domain.Sport]string{
	domain.SportSoccer:     "soccer jersey",
	domain.SportBasketball: "basketball tank top jersey",
	domain.SportFootball:   "american football jersey with shoulder pad cut",
}

const jerseyAnalysisKeys = `{
  "dominantColors": ["#RRGGBB", "..."],
  "pattern": "solid | horizontal stripes | vertical stripes | diagonal sash | gradient | other, with a short description",
  "numberStyle": {"font": "...", "fillPattern": "...", "outline": "..."},
  "namePlacement": "...",
  "collar": "...",
  "sleeves": "...",
  "style": "...",
  "texture": "...",
  "logos": "...",
  "view": "%s"
}`

func renderJerseyAnalysis(sport domain.Sport, view domain.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analysing a photo of a %s seen from the %s. ", sportGarments[sport], view)
	if view == domain.ViewBack {
		b.WriteString("Focus on the player name and number typography, their placement and the back panel pattern. ")
	} else {
		b.WriteString("Focus on the chest area, crest and sponsor placement, collar shape and the front panel pattern. ")
	}
	b.WriteString("Respond with ONLY a strict JSON object, no prose and no markdown, using exactly these keys:\n")
	fmt.Fprintf(&b, jerseyAnalysisKeys, view)
	return b.String()
}

// StadiumFallbackDescription is the analysis text used when the vision step
// fails for subject.
func StadiumFallbackDescription(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "football"
	}
	return fmt.Sprintf("Modern %s stadium with distinctive architectural features", subject)
}
