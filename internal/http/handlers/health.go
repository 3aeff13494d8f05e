package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	statusOperational  = "operational"
	statusNotAvailable = "not_available"
)

func availability(ok bool) string {
	if ok {
		return statusOperational
	}
	return statusNotAvailable
}

// Health reports per-subsystem status. It is always 200 so load balancers
// keep routing the catalog endpoints when a provider key is missing.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	avail := a.Generator.Availability()
	database := false
	if a.Database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		database = a.Database.Ping(ctx) == nil
		cancel()
	}
	a.json(w, http.StatusOK, map[string]string{
		"status":             "ok",
		"jersey_generator":   availability(avail.Images),
		"stadium_generator":  availability(avail.Images),
		"badge_generator":    availability(avail.Images),
		"jersey_reference":   availability(avail.Images && avail.Teams),
		"vision":             availability(avail.Vision),
		"database":           availability(database),
		"stadium_references": availability(avail.Stadiums),
	})
}

type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []endpoint{
	{"POST", "/generate", "Jersey from the built-in team catalog"},
	{"POST", "/generate-jersey-from-reference", "Jersey from a persisted team reference"},
	{"POST", "/generate-from-reference", "Stadium from a local reference folder"},
	{"POST", "/generate-custom", "Stadium from a prompt and optional reference image"},
	{"POST", "/badges/generate", "Single badge"},
	{"POST", "/badges/generate-variations", "Badge across several styles"},
	{"POST", "/analyze-jersey", "Structured description of a jersey photo"},
	{"POST", "/nft/metadata", "Canonical NFT metadata document"},
	{"GET", "/badges/styles", "Badge styles"},
	{"GET", "/badges/teams", "Teams with a badge identity"},
	{"GET", "/badges/info", "Badge options and pricing"},
	{"GET", "/teams", "Jersey reference folders"},
	{"GET", "/stadiums", "Stadium reference folders"},
	{"GET", "/health", "Subsystem status"},
	{"GET", "/metrics", "Prometheus metrics"},
}

// Root is the service banner.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	version := a.Version
	if version == "" {
		version = "dev"
	}
	a.json(w, http.StatusOK, map[string]any{
		"service":   "nftforge",
		"message":   "Sports NFT artwork generation API",
		"version":   version,
		"endpoints": endpoints,
	})
}
