package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"nftforge/internal/domain"
	"nftforge/internal/nft"
)

type nftMetadataRequest struct {
	Record         json.RawMessage `json:"record"`
	Kind           domain.Kind     `json:"kind" validate:"required,oneof=jersey stadium badge"`
	EntityID       string          `json:"entity_id" validate:"omitempty,max=120"`
	Name           string          `json:"name" validate:"max=200"`
	Description    string          `json:"description" validate:"max=4000"`
	ImageURL       string          `json:"image_url" validate:"omitempty,url"`
	CloudinaryURL  string          `json:"cloudinary_url" validate:"omitempty,url"`
	Team           string          `json:"team" validate:"max=80"`
	Style          string          `json:"style" validate:"max=40"`
	PromptUsed     string          `json:"prompt_used" validate:"max=4000"`
	GenerationType string          `json:"generation_type" validate:"max=60"`
	CreatorWallet  string          `json:"creator_wallet" validate:"omitempty,eth_addr"`
}

type nftMetadataResponse struct {
	Success  bool            `json:"success"`
	Document json.RawMessage `json:"document"`
}

// NFTMetadata handles POST /nft/metadata: it normalises an existing record,
// or builds a fresh one, into the canonical document. Nothing is persisted.
func (a *App) NFTMetadata(w http.ResponseWriter, r *http.Request) {
	var req nftMetadataRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := domain.Validate(req); err != nil {
		a.fail(w, r, err)
		return
	}

	var existing *nft.Document
	if raw := bytes.TrimSpace(req.Record); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		doc, err := nft.Parse(raw)
		if err != nil {
			a.error(w, r, http.StatusBadRequest, "record is not a valid NFT document")
			return
		}
		existing = doc
	}
	if existing == nil && req.Name == "" {
		a.error(w, r, http.StatusBadRequest, "name is required")
		return
	}

	doc := nft.Build(existing, nft.Input{
		Kind:           req.Kind,
		EntityID:       req.EntityID,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		CloudinaryURL:  req.CloudinaryURL,
		Team:           req.Team,
		Style:          req.Style,
		PromptUsed:     req.PromptUsed,
		GenerationType: req.GenerationType,
		CreatorWallet:  req.CreatorWallet,
	}, a.now())
	raw, err := nft.Marshal(doc)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, nftMetadataResponse{Success: true, Document: raw})
}
