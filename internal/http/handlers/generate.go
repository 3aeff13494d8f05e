package handlers

import (
	"net/http"

	"nftforge/internal/domain"
	"nftforge/internal/generation"
)

type jerseyResponse struct {
	Success bool `json:"success"`
	*generation.JerseyResult
}

// GenerateJersey handles POST /generate.
func (a *App) GenerateJersey(w http.ResponseWriter, r *http.Request) {
	var req domain.JerseyRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Generator.GenerateJersey(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, jerseyResponse{Success: true, JerseyResult: res})
}

type referenceJerseyResponse struct {
	Success bool `json:"success"`
	*generation.ReferenceJerseyResult
}

// GenerateJerseyFromReference handles POST /generate-jersey-from-reference.
func (a *App) GenerateJerseyFromReference(w http.ResponseWriter, r *http.Request) {
	var req domain.ReferenceJerseyRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Generator.GenerateJerseyFromReference(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, referenceJerseyResponse{Success: true, ReferenceJerseyResult: res})
}

type stadiumFromReferenceBody struct {
	StadiumID          string `json:"stadium_id"`
	ReferenceType      string `json:"reference_type"`
	Quality            string `json:"quality"`
	CustomPrompt       string `json:"custom_prompt"`
	CustomReference    string `json:"custom_reference_base64"`
	IncludeNFTMetadata bool   `json:"include_nft_metadata"`
	CreatorWallet      string `json:"creator_wallet"`
	domain.StadiumModifiers
}

type stadiumCustomBody struct {
	Prompt             string `json:"prompt"`
	ReferenceImage     string `json:"reference_image_base64"`
	Quality            string `json:"quality"`
	IncludeNFTMetadata bool   `json:"include_nft_metadata"`
	CreatorWallet      string `json:"creator_wallet"`
	domain.StadiumModifiers
}

type stadiumResponse struct {
	Success bool `json:"success"`
	*generation.StadiumResult
}

// GenerateStadiumFromReference handles POST /generate-from-reference.
func (a *App) GenerateStadiumFromReference(w http.ResponseWriter, r *http.Request) {
	var body stadiumFromReferenceBody
	if !a.decode(w, r, &body) {
		return
	}
	a.generateStadium(w, r, domain.StadiumRequest{
		Mode:               domain.StadiumFromReference,
		StadiumID:          body.StadiumID,
		ReferenceType:      body.ReferenceType,
		Prompt:             body.CustomPrompt,
		ReferenceImageB64:  body.CustomReference,
		Quality:            domain.Quality(body.Quality),
		IncludeNFTMetadata: body.IncludeNFTMetadata,
		CreatorWallet:      body.CreatorWallet,
		StadiumModifiers:   body.StadiumModifiers,
	})
}

// GenerateStadiumCustom handles POST /generate-custom.
func (a *App) GenerateStadiumCustom(w http.ResponseWriter, r *http.Request) {
	var body stadiumCustomBody
	if !a.decode(w, r, &body) {
		return
	}
	a.generateStadium(w, r, domain.StadiumRequest{
		Mode:               domain.StadiumCustom,
		Prompt:             body.Prompt,
		ReferenceImageB64:  body.ReferenceImage,
		Quality:            domain.Quality(body.Quality),
		IncludeNFTMetadata: body.IncludeNFTMetadata,
		CreatorWallet:      body.CreatorWallet,
		StadiumModifiers:   body.StadiumModifiers,
	})
}

func (a *App) generateStadium(w http.ResponseWriter, r *http.Request, req domain.StadiumRequest) {
	res, err := a.Generator.GenerateStadium(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, stadiumResponse{Success: true, StadiumResult: res})
}

type analyzeJerseyResponse struct {
	Success bool `json:"success"`
	*generation.JerseyAnalysisResult
}

// AnalyzeJersey handles POST /analyze-jersey.
func (a *App) AnalyzeJersey(w http.ResponseWriter, r *http.Request) {
	var req domain.JerseyAnalysisRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Generator.AnalyzeJersey(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, analyzeJerseyResponse{Success: true, JerseyAnalysisResult: res})
}
