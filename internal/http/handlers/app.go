package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"nftforge/internal/domain"
	"nftforge/internal/generation"
	"nftforge/internal/infra"
	"nftforge/internal/middleware"
)

// MaxBodyBytes bounds request bodies; reference images arrive as base64.
const MaxBodyBytes = 20 << 20

// TeamLister lists the jersey reference folders.
type TeamLister interface {
	List(ctx context.Context) ([]string, error)
}

// Pinger is implemented by the database-backed team stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App carries the dependencies shared by every handler.
type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Generator *generation.Service
	Stadiums  domain.StadiumReferenceStore
	Teams     TeamLister
	Database  Pinger
	Clock     func() time.Time
	Version   string
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *App) error(w http.ResponseWriter, r *http.Request, code int, message string) {
	a.json(w, code, errorResponse{
		Success:   false,
		Error:     message,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// fail maps a pipeline error onto its status code.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger(r).Error().Err(err).Int("status", status).Msg("request failed")
	}
	a.error(w, r, status, domain.MessageOf(err))
}

func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindCatalogMiss:
		return http.StatusBadRequest
	case domain.KindReferenceMiss:
		return http.StatusNotFound
	case domain.KindProvider, domain.KindDownload:
		return http.StatusBadGateway
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a bounded JSON body into dst. Unknown fields are ignored.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			a.error(w, r, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			a.error(w, r, http.StatusBadRequest, "request body is required")
		default:
			a.error(w, r, http.StatusBadRequest, "invalid JSON payload")
		}
		return false
	}
	return true
}

func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}
