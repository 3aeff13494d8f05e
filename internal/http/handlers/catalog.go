package handlers

import (
	"net/http"

	"nftforge/internal/domain"
)

// ListTeams handles GET /teams: the jersey reference folders on disk, plus the
// teams the built-in catalog can render.
func (a *App) ListTeams(w http.ResponseWriter, r *http.Request) {
	folders := []string{}
	if a.Teams != nil {
		list, err := a.Teams.List(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		folders = append(folders, list...)
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"teams":   folders,
		"count":   len(folders),
		"catalog": a.Generator.Catalog().JerseyTeams(),
	})
}

// ListStadiums handles GET /stadiums.
func (a *App) ListStadiums(w http.ResponseWriter, r *http.Request) {
	if a.Stadiums == nil {
		a.json(w, http.StatusOK, map[string]any{"success": true, "stadiums": []any{}, "count": 0})
		return
	}
	list, err := a.Stadiums.ListStadiums(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.StadiumInfo{}
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "stadiums": list, "count": len(list)})
}
