// Package catalog holds the frozen prompt assets used to compose generation
// prompts: jersey templates, badge styles and team identities, stadium bases
// with their modifier tables, and vision analysis instructions.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"nftforge/internal/domain"
)

// MaxTemplateLength bounds every stored template so a composed prompt can stay
// under the provider's 4000 character limit.
const MaxTemplateLength = 3800

type styleKey struct {
	style       domain.GenerationStyle
	perspective domain.Perspective
}

// Catalog is immutable after New returns and safe for concurrent use.
type Catalog struct {
	jerseys        map[string]string
	jerseyTeams    []string
	badgeStyles    map[domain.BadgeStyle]BadgeStyle
	teamBadges     map[string]TeamBadgeConfig
	stadiums       map[styleKey]string
	atmosphere     map[domain.Atmosphere]string
	times          map[domain.TimeOfDay]string
	weather        map[domain.Weather]string
	stadiumVision  map[domain.Perspective]string
	jerseyVision   map[string]string
	badgeTeamNames []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog. It panics if the built-in assets
// fail validation, which can only happen after a bad edit to this package.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// New renders and validates the built-in assets.
func New() (*Catalog, error) {
	c := &Catalog{
		jerseys:       make(map[string]string, len(jerseyDesigns)),
		badgeStyles:   make(map[domain.BadgeStyle]BadgeStyle, len(badgeStyles)),
		teamBadges:    make(map[string]TeamBadgeConfig, len(teamBadges)),
		stadiums:      make(map[styleKey]string),
		atmosphere:    atmospherePhrases,
		times:         timePhrases,
		weather:       weatherPhrases,
		stadiumVision: stadiumAnalysisInstructions,
		jerseyVision:  make(map[string]string),
	}

	for id, design := range jerseyDesigns {
		tpl := renderJerseyTemplate(design)
		if err := checkTemplate("jersey "+id, tpl, TokenPlayerName, TokenPlayerNumber); err != nil {
			return nil, err
		}
		c.jerseys[id] = tpl
		c.jerseyTeams = append(c.jerseyTeams, id)
	}
	sort.Strings(c.jerseyTeams)

	for _, style := range domain.AllBadgeStyles {
		s, ok := badgeStyles[style]
		if !ok {
			return nil, fmt.Errorf("catalog: badge style %q missing", style)
		}
		c.badgeStyles[style] = s
	}
	for key, cfg := range teamBadges {
		c.teamBadges[foldKey(key)] = cfg
		c.badgeTeamNames = append(c.badgeTeamNames, cfg.Name)
	}
	sort.Strings(c.badgeTeamNames)

	for style, suffixes := range stadiumStyleSuffix {
		for _, perspective := range []domain.Perspective{domain.PerspectiveExternal, domain.PerspectiveInternal, domain.PerspectiveMixed} {
			tpl := stadiumTemplate(style, perspective, suffixes)
			name := fmt.Sprintf("stadium %s/%s", style, perspective)
			if err := checkTemplate(name, tpl, TokenArchitecturalAnalysis); err != nil {
				return nil, err
			}
			c.stadiums[styleKey{style, perspective}] = tpl
		}
	}

	for _, sport := range domain.AllSports {
		for _, view := range domain.AllViews {
			c.jerseyVision[jerseyVisionKey(sport, view)] = renderJerseyAnalysis(sport, view)
		}
	}
	return c, nil
}

func stadiumTemplate(style domain.GenerationStyle, perspective domain.Perspective, suffixes map[domain.Perspective]string) string {
	base := perspective
	if base == domain.PerspectiveMixed {
		base = domain.PerspectiveExternal
	}
	lines := []string{stadiumBases[base]}
	if suffix := suffixes[base]; suffix != "" {
		lines = append(lines, suffix)
	}
	if perspective == domain.PerspectiveMixed {
		lines = append(lines, mixedPerspectiveSuffix)
	}
	return strings.Join(lines, "\n")
}

// checkTemplate enforces the length ceiling and that tpl carries exactly the
// wanted placeholders, each at least once.
func checkTemplate(name, tpl string, want ...string) error {
	if len(tpl) > MaxTemplateLength {
		return fmt.Errorf("catalog: %s template is %d characters, limit %d", name, len(tpl), MaxTemplateLength)
	}
	found := Placeholders(tpl)
	if len(found) != len(want) {
		return fmt.Errorf("catalog: %s template placeholders %v, want %v", name, found, want)
	}
	for _, token := range want {
		if !strings.Contains(tpl, token) {
			return fmt.Errorf("catalog: %s template missing %s", name, token)
		}
	}
	return nil
}

// JerseyTemplate returns the template for teamID. Unknown teams are a
// CatalogMiss.
func (c *Catalog) JerseyTemplate(teamID string) (string, error) {
	tpl, ok := c.jerseys[domain.Normalize(teamID)]
	if !ok {
		return "", domain.CatalogMiss(teamID)
	}
	return tpl, nil
}

// JerseyTeams lists configured jersey team ids, sorted.
func (c *Catalog) JerseyTeams() []string {
	return append([]string(nil), c.jerseyTeams...)
}

// BadgeStyle looks up a badge style.
func (c *Catalog) BadgeStyle(style domain.BadgeStyle) (BadgeStyle, bool) {
	s, ok := c.badgeStyles[style]
	return s, ok
}

// BadgeStyles lists badge styles in catalog order.
func (c *Catalog) BadgeStyles() []domain.BadgeStyle {
	return append([]domain.BadgeStyle(nil), domain.AllBadgeStyles...)
}

// TeamBadge looks up a team identity ignoring case and accents.
func (c *Catalog) TeamBadge(teamName string) (TeamBadgeConfig, bool) {
	cfg, ok := c.teamBadges[foldKey(teamName)]
	return cfg, ok
}

// BadgeTeams lists the display names of teams with a badge identity.
func (c *Catalog) BadgeTeams() []string {
	return append([]string(nil), c.badgeTeamNames...)
}

// StadiumTemplate returns the base prompt for the style and perspective.
// Unknown styles fall back to realistic and unknown perspectives to external;
// ok reports whether both inputs were known.
func (c *Catalog) StadiumTemplate(style domain.GenerationStyle, perspective domain.Perspective) (string, bool) {
	ok := true
	if _, known := stadiumStyleSuffix[style]; !known {
		style, ok = domain.StyleRealistic, false
	}
	switch perspective {
	case domain.PerspectiveExternal, domain.PerspectiveInternal, domain.PerspectiveMixed:
	default:
		perspective, ok = domain.PerspectiveExternal, false
	}
	return c.stadiums[styleKey{style, perspective}], ok
}

func (c *Catalog) AtmospherePhrase(a domain.Atmosphere) (string, bool) {
	p, ok := c.atmosphere[a]
	return p, ok
}

func (c *Catalog) TimePhrase(t domain.TimeOfDay) (string, bool) {
	p, ok := c.times[t]
	return p, ok
}

func (c *Catalog) WeatherPhrase(w domain.Weather) (string, bool) {
	p, ok := c.weather[w]
	return p, ok
}

// StadiumAnalysisInstruction returns the vision instruction for perspective,
// defaulting to the exterior one.
func (c *Catalog) StadiumAnalysisInstruction(perspective domain.Perspective) string {
	if s, ok := c.stadiumVision[perspective]; ok {
		return s
	}
	return c.stadiumVision[domain.PerspectiveExternal]
}

// JerseyAnalysisInstruction returns the strict-JSON vision instruction for the
// sport and view. Empty or unknown values default to soccer and back.
func (c *Catalog) JerseyAnalysisInstruction(sport domain.Sport, view domain.View) string {
	if s, ok := c.jerseyVision[jerseyVisionKey(sport, view)]; ok {
		return s
	}
	if _, ok := sportGarments[sport]; !ok {
		sport = domain.SportSoccer
	}
	if view != domain.ViewFront {
		view = domain.ViewBack
	}
	return c.jerseyVision[jerseyVisionKey(sport, view)]
}

func jerseyVisionKey(sport domain.Sport, view domain.View) string {
	return string(sport) + "/" + string(view)
}
