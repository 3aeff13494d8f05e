package composer

import (
	"fmt"
	"strings"

	"nftforge/internal/catalog"
	"nftforge/internal/domain"
)

// BadgeInput carries the fields a badge prompt depends on.
type BadgeInput struct {
	TeamName    string
	BadgeName   string
	BadgeNumber string
	Style       domain.BadgeStyle
}

const badgeLayout = `Design a premium sports badge for {TEAM_NAME} as a collectible NFT emblem.

SPECIFICATIONS:
- Team: {TEAM_NAME}
- Badge name: "{badge_name}"
- Badge number: {badge_number}
- Style: %s

DESIGN REQUIREMENTS:
%s. Use the team colours (%s) and express the club identity: %s.

VISUAL ELEMENTS:
%s. Team symbols: %s.

COMPOSITION:
A single centered circular or heraldic emblem on a plain neutral background. The badge name "{badge_name}" is set prominently in the emblem and the number {badge_number} is integrated as a clear focal detail. Balanced symmetric layout with generous margins.

TECHNICAL:
Crisp vector-like edges, flat lighting, high resolution, print ready. No photographic background, no extra text, no watermarks.

STYLE NOTES:
%s.`

// Badge composes a badge prompt. Unknown styles fall back to modern and
// unknown teams to the generic identity; both are reported as degradations.
func Badge(cat *catalog.Catalog, in BadgeInput) (string, []Degradation) {
	var degraded []Degradation

	style := domain.BadgeStyle(domain.Normalize(string(in.Style)))
	if style == "" {
		style = domain.BadgeModern
	}
	styleDef, ok := cat.BadgeStyle(style)
	if !ok {
		degraded = append(degraded, Degradation{Field: "style", Value: string(in.Style), Fallback: string(domain.BadgeModern)})
		style = domain.BadgeModern
		styleDef, _ = cat.BadgeStyle(style)
	}

	team, ok := cat.TeamBadge(in.TeamName)
	if !ok {
		team = catalog.GenericTeamBadge(sanitizeFreeText(in.TeamName))
		degraded = append(degraded, Degradation{Field: "team_name", Value: in.TeamName, Fallback: "generic"})
	}

	teamName := sanitizeFreeText(in.TeamName)
	if teamName == "" {
		teamName = team.Name
	}

	layout := fmt.Sprintf(badgeLayout,
		style,
		styleDef.BaseDescription, team.Colors, team.Identity,
		styleDef.VisualElements, team.Symbols,
		team.StyleNotes,
	)
	prompt := Interpolate(layout, map[string]string{
		catalog.TokenTeamName:    teamName,
		catalog.TokenBadgeName:   sanitizeFreeText(in.BadgeName),
		catalog.TokenBadgeNumber: sanitizeFreeText(in.BadgeNumber),
	})
	return strings.TrimSpace(truncateWords(prompt, MaxPromptLength)), degraded
}
