package domain

import "strings"

// Kind discriminates the three artifact families.
type Kind string

const (
	KindJersey  Kind = "jersey"
	KindStadium Kind = "stadium"
	KindBadge   Kind = "badge"
)

// Quality is the image provider quality tier.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHD       Quality = "hd"
)

// Size is an image provider size token.
type Size string

const (
	SizeSquare    Size = "1024x1024"
	SizePortrait  Size = "1024x1792"
	SizeLandscape Size = "1792x1024"
)

// AllSizes lists the sizes accepted by the image provider.
var AllSizes = []Size{SizeSquare, SizePortrait, SizeLandscape}

// Sport selects the jersey cut.
type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
)

// AllSports lists supported sports in catalog order.
var AllSports = []Sport{SportSoccer, SportBasketball, SportFootball}

// View is the side of a jersey shown.
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
)

// AllViews lists supported jersey views.
var AllViews = []View{ViewFront, ViewBack}

// Perspective is the stadium camera position.
type Perspective string

const (
	PerspectiveExternal Perspective = "external"
	PerspectiveInternal Perspective = "internal"
	PerspectiveMixed    Perspective = "mixed"
)

// Atmosphere describes crowd occupancy.
type Atmosphere string

const (
	AtmospherePacked   Atmosphere = "packed"
	AtmosphereHalfFull Atmosphere = "half_full"
	AtmosphereEmpty    Atmosphere = "empty"
)

// TimeOfDay sets stadium lighting.
type TimeOfDay string

const (
	TimeDay    TimeOfDay = "day"
	TimeNight  TimeOfDay = "night"
	TimeSunset TimeOfDay = "sunset"
)

// Weather sets stadium sky conditions.
type Weather string

const (
	WeatherClear    Weather = "clear"
	WeatherDramatic Weather = "dramatic"
	WeatherCloudy   Weather = "cloudy"
)

// GenerationStyle is the stadium rendering style.
type GenerationStyle string

const (
	StyleRealistic GenerationStyle = "realistic"
	StyleCinematic GenerationStyle = "cinematic"
	StyleDramatic  GenerationStyle = "dramatic"
)

// BadgeStyle is a badge design family.
type BadgeStyle string

const (
	BadgeModern   BadgeStyle = "modern"
	BadgeRetro    BadgeStyle = "retro"
	BadgeNational BadgeStyle = "national"
	BadgeUrban    BadgeStyle = "urban"
	BadgeClassic  BadgeStyle = "classic"
)

// AllBadgeStyles lists badge styles in catalog order.
var AllBadgeStyles = []BadgeStyle{BadgeModern, BadgeRetro, BadgeNational, BadgeUrban, BadgeClassic}

// Valid reports whether q is a known quality.
func (q Quality) Valid() bool { return q == QualityStandard || q == QualityHD }

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	for _, known := range AllSizes {
		if s == known {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known badge style.
func (s BadgeStyle) Valid() bool {
	for _, known := range AllBadgeStyles {
		if s == known {
			return true
		}
	}
	return false
}

// Normalize lower-cases and trims free-form enum input.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ParseQuality returns the quality for value, defaulting to standard when empty.
func ParseQuality(value string) (Quality, bool) {
	q := Quality(Normalize(value))
	if q == "" {
		return QualityStandard, true
	}
	return q, q.Valid()
}
