package catalog

import (
	"strings"

	"nftforge/internal/domain"
)

var stadiumBases = map[domain.Perspective]string{
	domain.PerspectiveExternal: strings.Join([]string{
		"Ultra-detailed exterior view of a football stadium rendered as a premium digital collectible, seen from an elevated three-quarter aerial angle.",
		"ARCHITECTURE: " + TokenArchitecturalAnalysis,
		"COMPOSITION: the full stadium silhouette centered in frame, surrounding plaza and city context visible, strong leading lines toward the main entrance.",
		"LIGHTING: physically accurate global illumination, realistic materials on concrete, steel and glass facades.",
		"QUALITY: 8k detail, sharp focus, architectural photography standards, NFT-grade finish.",
		"EXCLUSIONS: no text, no logos, no watermarks.",
	}, "\n"),
	domain.PerspectiveInternal: strings.Join([]string{
		"Ultra-detailed interior view of a football stadium rendered as a premium digital collectible, seen from the upper tier behind the goal looking across the pitch.",
		"ARCHITECTURE: " + TokenArchitecturalAnalysis,
		"COMPOSITION: the pitch fills the lower third, stands wrap around the frame, roof structure framing the sky.",
		"LIGHTING: balanced exposure across stands and pitch, realistic grass texture and seat materials.",
		"QUALITY: 8k detail, sharp focus, wide-angle architectural photography, NFT-grade finish.",
		"EXCLUSIONS: no text, no logos, no watermarks.",
	}, "\n"),
}

// stadiumStyleSuffix is appended after the base prompt. Realistic renders the
// base unchanged.
var stadiumStyleSuffix = map[domain.GenerationStyle]map[domain.Perspective]string{
	domain.StyleRealistic: {},
	domain.StyleCinematic: {
		domain.PerspectiveExternal: "STYLE: cinematic wide shot, anamorphic lens feel, volumetric light shafts, teal and orange colour grade.",
		domain.PerspectiveInternal: "STYLE: cinematic tracking shot from the stands, shallow haze over the pitch, film grain, epic scale.",
	},
	domain.StyleDramatic: {
		domain.PerspectiveExternal: "STYLE: dramatic high-contrast rendering, deep shadows, heroic low clouds, intense saturated highlights.",
		domain.PerspectiveInternal: "STYLE: dramatic high-contrast rendering, spotlight beams cutting through smoke, charged matchday tension.",
	},
}

const mixedPerspectiveSuffix = "PERSPECTIVE: blend the exterior facade with a glimpse of the interior bowl through the open roof, showing both the shell and the pitch."

var atmospherePhrases = map[domain.Atmosphere]string{
	domain.AtmospherePacked:   "stands packed with a roaring crowd of fans waving flags and scarves",
	domain.AtmosphereHalfFull: "stands half full with scattered groups of supporters",
	domain.AtmosphereEmpty:    "empty stands with rows of clean, unoccupied seats",
}

var timePhrases = map[domain.TimeOfDay]string{
	domain.TimeDay:    "bright daylight with crisp natural shadows",
	domain.TimeNight:  "night match under powerful floodlights illuminating the pitch",
	domain.TimeSunset: "golden hour sunset with warm orange and purple sky",
}

var weatherPhrases = map[domain.Weather]string{
	domain.WeatherClear:    "clear sky",
	domain.WeatherDramatic: "dramatic storm clouds with rays of light breaking through",
	domain.WeatherCloudy:   "soft overcast clouds diffusing the light",
}
