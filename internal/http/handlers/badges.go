package handlers

import (
	"net/http"

	"nftforge/internal/domain"
	"nftforge/internal/pricing"
)

// GenerateBadge handles POST /badges/generate.
func (a *App) GenerateBadge(w http.ResponseWriter, r *http.Request) {
	var req domain.BadgeRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Generator.GenerateBadge(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, res)
}

// GenerateBadgeVariations handles POST /badges/generate-variations. The call
// succeeds as a whole even when individual styles fail; see summary.
func (a *App) GenerateBadgeVariations(w http.ResponseWriter, r *http.Request) {
	var req domain.VariationsRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Generator.GenerateBadgeVariations(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, res)
}

type badgeStyleView struct {
	ID              string `json:"id"`
	BaseDescription string `json:"base_description"`
	VisualElements  string `json:"visual_elements"`
}

func (a *App) badgeStyles() []badgeStyleView {
	cat := a.Generator.Catalog()
	styles := cat.BadgeStyles()
	out := make([]badgeStyleView, 0, len(styles))
	for _, id := range styles {
		def, _ := cat.BadgeStyle(id)
		out = append(out, badgeStyleView{ID: string(id), BaseDescription: def.BaseDescription, VisualElements: def.VisualElements})
	}
	return out
}

// BadgeStyles handles GET /badges/styles.
func (a *App) BadgeStyles(w http.ResponseWriter, r *http.Request) {
	styles := a.badgeStyles()
	a.json(w, http.StatusOK, map[string]any{"success": true, "styles": styles, "count": len(styles)})
}

// BadgeTeams handles GET /badges/teams.
func (a *App) BadgeTeams(w http.ResponseWriter, r *http.Request) {
	teams := a.Generator.Catalog().BadgeTeams()
	a.json(w, http.StatusOK, map[string]any{"success": true, "teams": teams, "count": len(teams)})
}

// BadgeInfo handles GET /badges/info.
func (a *App) BadgeInfo(w http.ResponseWriter, r *http.Request) {
	table := pricing.Default()
	sizes := make([]string, 0, len(domain.AllSizes))
	for _, s := range domain.AllSizes {
		sizes = append(sizes, string(s))
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":       true,
		"styles":        a.badgeStyles(),
		"teams":         a.Generator.Catalog().BadgeTeams(),
		"sizes":         sizes,
		"qualities":     []string{string(domain.QualityStandard), string(domain.QualityHD)},
		"default_style": string(domain.BadgeModern),
		"default_size":  string(domain.SizeSquare),
		"pricing": map[string]float64{
			"standard": table.Cost(pricing.OpBadge, domain.QualityStandard),
			"hd":       table.Cost(pricing.OpBadge, domain.QualityHD),
		},
		"generator_available": a.Generator.Availability().Images,
	})
}
