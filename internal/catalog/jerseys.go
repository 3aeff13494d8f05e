package catalog

import (
	"fmt"
	"strings"
)

// jerseyDesign holds the garment facts a jersey template is rendered from.
type jerseyDesign struct {
	Team        string
	Body        string
	Collar      string
	Sleeves     string
	NameStyle   string
	NumberStyle string
	Details     string
}

// jerseyDesigns is keyed by the team id clients send as the first token of
// model_id.
var jerseyDesigns = map[string]jerseyDesign{
	"flamengo": {
		Team:        "Flamengo",
		Body:        "bold HORIZONTAL red and black stripes of equal width running across the entire back panel, with the black stripe sitting at the shoulders",
		Collar:      "a black ribbed crew-neck collar with a thin red inner trim",
		Sleeves:     "black short sleeves finished with red and white cuffs",
		NameStyle:   "white block capital letters",
		NumberStyle: "white rounded athletic numerals with a thin black outline",
		Details:     "A small white club crest patch sits at the nape below the collar",
	},
	"palmeiras": {
		Team:        "Palmeiras",
		Body:        "a solid emerald green body with a subtle tone-on-tone vertical pinstripe texture",
		Collar:      "a white V-neck collar with a dark green edge",
		Sleeves:     "green short sleeves with white cuffs",
		NameStyle:   "white classic block capitals",
		NumberStyle: "white serif-free numerals with a dark green drop shadow",
		Details:     "A thin white horizontal band crosses the lower back above the hem",
	},
	"corinthians": {
		Team:        "Corinthians",
		Body:        "a clean solid white body with a faint grey geometric jacquard pattern",
		Collar:      "a black round collar with a white piping line",
		Sleeves:     "white short sleeves with black cuffs",
		NameStyle:   "black condensed capital letters",
		NumberStyle: "black squared athletic numerals with no outline",
		Details:     "Thin black side panels run from the armpits to the hem",
	},
	"santos": {
		Team:        "Santos",
		Body:        "a pure white body with a minimal tonal wave texture",
		Collar:      "a white polo collar with black tipping and a short black placket",
		Sleeves:     "white short sleeves with a single thin black band near the cuff",
		NameStyle:   "black traditional block capitals",
		NumberStyle: "black classic numerals with a thin gold outline",
		Details:     "A discreet black and white striped loop sits at the nape",
	},
	"vasco": {
		Team:        "Vasco da Gama",
		Body:        "a black body crossed by a single wide white DIAGONAL sash running from the left shoulder to the right hip",
		Collar:      "a black crew-neck collar with white trim",
		Sleeves:     "black short sleeves with white cuffs",
		NameStyle:   "white block capitals placed above the sash",
		NumberStyle: "white numerals with a red outline, centered over the sash",
		Details:     "A small red cross motif is embroidered at the nape",
	},
	"fluminense": {
		Team:        "Fluminense",
		Body:        "VERTICAL stripes of maroon, green and white with thin white separators",
		Collar:      "a white crew-neck collar with a maroon inner band",
		Sleeves:     "maroon short sleeves with green and white cuffs",
		NameStyle:   "white capitals on a dark maroon name bar",
		NumberStyle: "white numerals with a green outline",
		Details:     "The tricolour stripes continue uninterrupted down to the hem",
	},
	"botafogo": {
		Team:        "Botafogo",
		Body:        "VERTICAL black and white stripes of equal width",
		Collar:      "a black crew-neck collar",
		Sleeves:     "black short sleeves with white cuffs",
		NameStyle:   "white capital letters on a black name panel",
		NumberStyle: "white numerals with a black outline on a black rectangular number panel",
		Details:     "A small white lone star is embroidered at the nape",
	},
	"gremio": {
		Team:        "Gremio",
		Body:        "VERTICAL sky blue, black and white stripes with black dominant",
		Collar:      "a black crew-neck collar with sky blue trim",
		Sleeves:     "black short sleeves with sky blue cuffs",
		NameStyle:   "white capital letters on a black name bar",
		NumberStyle: "white numerals with a sky blue outline on a black number panel",
		Details:     "Thin white piping traces the shoulder seams",
	},
	"internacional": {
		Team:        "Internacional",
		Body:        "a solid vivid red body with a subtle tonal diamond texture",
		Collar:      "a white V-neck collar",
		Sleeves:     "red short sleeves with white cuffs",
		NameStyle:   "white block capitals",
		NumberStyle: "white numerals with a thin red inner stroke",
		Details:     "White side tape runs along both flanks",
	},
	"cruzeiro": {
		Team:        "Cruzeiro",
		Body:        "a royal blue body with a faint constellation pattern of five small stars in a tonal print",
		Collar:      "a white crew-neck collar with royal blue trim",
		Sleeves:     "royal blue short sleeves with white cuffs",
		NameStyle:   "white capital letters",
		NumberStyle: "white numerals with a thin navy outline",
		Details:     "A white band of five stars is printed at the nape",
	},
	"atletico": {
		Team:        "Atletico Mineiro",
		Body:        "VERTICAL black and white stripes with narrower white stripes",
		Collar:      "a black polo collar with white tipping",
		Sleeves:     "black short sleeves with white cuffs",
		NameStyle:   "white capitals on a solid black name panel",
		NumberStyle: "white numerals with a gold outline on a black number panel",
		Details:     "A small gold star is embroidered at the nape",
	},
	"bahia": {
		Team:        "Bahia",
		Body:        "a white body with a horizontal chest band of blue, red and blue stripes",
		Collar:      "a blue crew-neck collar with red trim",
		Sleeves:     "white short sleeves with blue and red cuffs",
		NameStyle:   "blue block capitals above the chest band",
		NumberStyle: "blue numerals with a red outline below the chest band",
		Details:     "Thin red piping runs along the side seams",
	},
}

func renderJerseyTemplate(d jerseyDesign) string {
	parts := []string{
		fmt.Sprintf("Professional product photograph of an official %s home soccer jersey, flat-lay back view, perfectly centered on a seamless light grey studio background.", d.Team),
		fmt.Sprintf("The shirt features %s.", d.Body),
		fmt.Sprintf("It has %s and %s.", d.Collar, d.Sleeves),
		fmt.Sprintf("The player name %s is printed across the upper back in %s, evenly spaced and perfectly legible.", TokenPlayerName, d.NameStyle),
		fmt.Sprintf("The number %s is printed large in the center of the back in %s.", TokenPlayerNumber, d.NumberStyle),
		d.Details + ".",
		"Soft, even studio lighting with subtle shadows along the fabric folds, sharp detail on the breathable mesh texture and stitching.",
		"No mannequin, no human model, no hanger, no additional text, no watermarks. Photorealistic, high resolution, e-commerce quality.",
	}
	return strings.Join(parts, " ")
}
