package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"nftforge/internal/domain"
)

// BadgeStyle is the design language applied to a badge.
type BadgeStyle struct {
	BaseDescription string `json:"base_description"`
	VisualElements  string `json:"visual_elements"`
}

// TeamBadgeConfig carries the identity of a club used when composing badges.
type TeamBadgeConfig struct {
	Name       string `json:"name"`
	Colors     string `json:"colors"`
	Identity   string `json:"identity"`
	Symbols    string `json:"symbols"`
	StyleNotes string `json:"style_notes"`
}

var badgeStyles = map[domain.BadgeStyle]BadgeStyle{
	domain.BadgeModern: {
		BaseDescription: "Modern minimalist sports badge with clean geometric shapes, flat colour fields, crisp negative space and a contemporary sans-serif wordmark",
		VisualElements:  "simplified geometric emblem, bold outline ring, subtle gradient accents, precise symmetric layout",
	},
	domain.BadgeRetro: {
		BaseDescription: "Vintage 1970s football badge inspired by classic woven patches, warm muted colours, slightly distressed print texture and rounded slab lettering",
		VisualElements:  "circular patch border with stitched edge, retro ribbon banner, halftone shading, aged fabric feel",
	},
	domain.BadgeNational: {
		BaseDescription: "Proud national-team style crest with heraldic structure, strong shield silhouette and ceremonial typography",
		VisualElements:  "shield shape, laurel branches, championship stars above the crest, patriotic colour bands",
	},
	domain.BadgeUrban: {
		BaseDescription: "Urban streetwear badge with graffiti energy, spray paint texture, bold outlines and sticker-like presence",
		VisualElements:  "drip effects, stencil lettering, tag-style flourishes, high contrast colour blocking",
	},
	domain.BadgeClassic: {
		BaseDescription: "Timeless traditional football club crest with elegant serif lettering, balanced proportions and refined metallic details",
		VisualElements:  "classic shield or roundel, gold trim, founding-year banner, fine line engraving detail",
	},
}

// teamBadges is keyed by foldKey(team name).
var teamBadges = map[string]TeamBadgeConfig{
	"flamengo": {
		Name:       "Flamengo",
		Colors:     "red and black",
		Identity:   "passionate, massive crowd, rubro-negro tradition from Rio de Janeiro",
		Symbols:    "horizontal red and black stripes, the interlaced CRF monogram feel, a vulture silhouette",
		StyleNotes: "Keep the red vivid and the black deep; stripes must read as horizontal",
	},
	"palmeiras": {
		Name:       "Palmeiras",
		Colors:     "emerald green and white",
		Identity:   "Italian-Brazilian heritage, the Verdao, champions of Sao Paulo",
		Symbols:    "a green roundel, a white letter P, a rampant pig or parrot mascot reference",
		StyleNotes: "Dominant green with clean white contrast",
	},
	"corinthians": {
		Name:       "Corinthians",
		Colors:     "black and white",
		Identity:   "the people's club, loyal Fiel supporters, Timao",
		Symbols:    "crossed oars and anchor, the Sao Paulo state flag motif, a compact roundel",
		StyleNotes: "Monochrome palette only, strong contrast",
	},
	"sao paulo": {
		Name:       "Sao Paulo",
		Colors:     "red, white and black",
		Identity:   "Tricolor Paulista, tradition of continental and world titles",
		Symbols:    "an inverted triangle shield with horizontal red, white and black bands, five stars",
		StyleNotes: "Balance the three colours equally",
	},
	"santos": {
		Name:       "Santos",
		Colors:     "white and black",
		Identity:   "Peixe, coastal club of legends, joga bonito heritage",
		Symbols:    "a white shield with black vertical stripes, the SFC initials, a fish reference",
		StyleNotes: "Predominantly white with precise black lines",
	},
	"vasco": {
		Name:       "Vasco da Gama",
		Colors:     "black and white with a red accent",
		Identity:   "Gigante da Colina, Portuguese navigator heritage",
		Symbols:    "a diagonal white sash, a red cross patee, a caravel ship",
		StyleNotes: "The red cross is the only red element",
	},
	"fluminense": {
		Name:       "Fluminense",
		Colors:     "maroon, green and white",
		Identity:   "Tricolor das Laranjeiras, elegant and aristocratic tradition",
		Symbols:    "vertical tricolour stripes, an FFC monogram, a classic shield",
		StyleNotes: "Refined palette with maroon leading",
	},
	"botafogo": {
		Name:       "Botafogo",
		Colors:     "black and white",
		Identity:   "Glorioso, the lone star, mystical and proud",
		Symbols:    "a single white five-pointed star on a black shield",
		StyleNotes: "The lone star is the hero of the composition",
	},
	"gremio": {
		Name:       "Gremio",
		Colors:     "sky blue, black and white",
		Identity:   "Imortal Tricolor from Porto Alegre, gaucho grit",
		Symbols:    "vertical tricolour stripes, a musketeer silhouette, a gold star",
		StyleNotes: "Black dominant with sky blue highlights",
	},
	"internacional": {
		Name:       "Internacional",
		Colors:     "red and white",
		Identity:   "Colorado, the people's club of Porto Alegre",
		Symbols:    "an SCI monogram, a red roundel, a saci mascot reference",
		StyleNotes: "Rich red with crisp white lettering",
	},
	"cruzeiro": {
		Name:       "Cruzeiro",
		Colors:     "royal blue and white",
		Identity:   "Raposa, the fox of Minas Gerais",
		Symbols:    "the Southern Cross constellation of five stars, a blue roundel",
		StyleNotes: "Stars arranged as the Southern Cross",
	},
	"atletico mineiro": {
		Name:       "Atletico Mineiro",
		Colors:     "black and white",
		Identity:   "Galo, fierce rooster spirit from Belo Horizonte",
		Symbols:    "a rooster silhouette, vertical black and white stripes, the CAM initials",
		StyleNotes: "Aggressive rooster energy, monochrome",
	},
}

// GenericTeamBadge is the fallback config for teams not in the catalog.
func GenericTeamBadge(teamName string) TeamBadgeConfig {
	name := strings.TrimSpace(teamName)
	if name == "" {
		name = "the team"
	}
	return TeamBadgeConfig{
		Name:       name,
		Colors:     "the team's traditional colours",
		Identity:   "a proud sports club with a passionate fan base",
		Symbols:    "a shield or roundel, stars for titles, a stylised ball",
		StyleNotes: "Keep the design balanced and instantly recognisable",
	}
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey lower-cases s and strips diacritics so "São Paulo" and "sao paulo"
// resolve to the same config.
func foldKey(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.TrimSpace(s))
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
