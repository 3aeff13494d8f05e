package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"nftforge/internal/http/handlers"
	"nftforge/internal/infra/geoip"
	"nftforge/internal/metrics"
	"nftforge/internal/middleware"
)

// Options tunes the middleware stack around the handlers.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	RateLimitBurst  int
	// TrustProxy honours X-Forwarded-For and X-Real-IP. Enable it only
	// behind a proxy that overwrites those headers.
	TrustProxy      bool
	Geo             geoip.CountryResolver
	Metrics         *metrics.Recorder
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	var rec middleware.HTTPRecorder
	if opts.Metrics != nil {
		rec = opts.Metrics
	}
	burst := opts.RateLimitBurst
	if burst <= 0 {
		burst = opts.RateLimitPerMin / 6
	}

	limit := middleware.RateLimit(opts.RateLimitPerMin, burst)

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.Geo(opts.Geo),
		middleware.Logger(app.Logger, rec),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", app.Root)
	r.Get("/health", app.Health)
	r.Get("/teams", app.ListTeams)
	r.Get("/stadiums", app.ListStadiums)
	r.Route("/badges", func(r chi.Router) {
		r.Get("/styles", app.BadgeStyles)
		r.Get("/teams", app.BadgeTeams)
		r.Get("/info", app.BadgeInfo)
		r.With(limit).Group(func(r chi.Router) {
			r.Post("/generate", app.GenerateBadge)
			r.Post("/generate-variations", app.GenerateBadgeVariations)
		})
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	// POST endpoints share one per-client budget.
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Post("/generate", app.GenerateJersey)
		r.Post("/generate-jersey-from-reference", app.GenerateJerseyFromReference)
		r.Post("/generate-from-reference", app.GenerateStadiumFromReference)
		r.Post("/generate-custom", app.GenerateStadiumCustom)
		r.Post("/analyze-jersey", app.AnalyzeJersey)
		r.Post("/nft/metadata", app.NFTMetadata)
	})

	return r
}

func writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    false,
		"error":      message,
		"request_id": middleware.RequestIDFromContext(r.Context()),
	})
}
