// Package generation orchestrates one artifact request end to end: validate,
// compose the prompt, optionally analyse a reference image, call the image
// provider and shape the result. The Service holds no per-request state and
// is safe for concurrent use.
package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"nftforge/internal/catalog"
	"nftforge/internal/composer"
	"nftforge/internal/domain"
	"nftforge/internal/infra"
	"nftforge/internal/metrics"
	"nftforge/internal/pricing"
	"nftforge/internal/providers/openai"
	"nftforge/internal/providers/vision"
)

// ImageProvider is the text-to-image client. Create issues the generation
// call and Fetch downloads or decodes its output.
type ImageProvider interface {
	HasCredentials() bool
	Model() string
	Create(ctx context.Context, req openai.ImageRequest) (*openai.Generation, error)
	Fetch(ctx context.Context, gen *openai.Generation) (*domain.GenerationArtifact, error)
}

// VisionAnalyzer describes reference images. It never fails; degraded calls
// come back as fallback outcomes.
type VisionAnalyzer interface {
	HasCredentials() bool
	Analyze(ctx context.Context, req vision.Request) vision.Outcome
	AnalyzeJersey(ctx context.Context, req vision.Request) (*domain.JerseyAnalysis, vision.Outcome)
}

// Stage is one step of a generation run.
type Stage string

const (
	StageValidating  Stage = "validating"
	StageComposing   Stage = "composing"
	StageAnalyzing   Stage = "analyzing"
	StageGenerating  Stage = "generating"
	StageDownloading Stage = "downloading"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// StageEvent is emitted on every transition. Err is set only for StageFailed.
type StageEvent struct {
	RunID string
	Kind  domain.Kind
	Stage Stage
	Err   error
	At    time.Time
}

// Dependencies are constructed once at startup. Only Images is required for
// generation; a nil Vision degrades stadium analysis, a nil Teams disables the
// reference jersey path and a nil Stadiums disables local stadium references.
type Dependencies struct {
	Catalog  *catalog.Catalog
	Images   ImageProvider
	Vision   VisionAnalyzer
	Stadiums domain.StadiumReferenceStore
	Teams    domain.TeamReferenceStore
	Pricing  pricing.Table
	Metrics  *metrics.Recorder
	Logger   *infra.Logger
	Clock    func() time.Time
	OnStage  func(StageEvent)
	NewID    func() string
}

// Service implements the per-kind generation flows.
type Service struct {
	catalog  *catalog.Catalog
	images   ImageProvider
	vision   VisionAnalyzer
	stadiums domain.StadiumReferenceStore
	teams    domain.TeamReferenceStore
	pricing  pricing.Table
	metrics  *metrics.Recorder
	logger   *infra.Logger
	clock    func() time.Time
	onStage  func(StageEvent)
	newID    func() string
}

// NewService fills defaults for every optional dependency.
func NewService(deps Dependencies) *Service {
	s := &Service{
		catalog:  deps.Catalog,
		images:   deps.Images,
		vision:   deps.Vision,
		stadiums: deps.Stadiums,
		teams:    deps.Teams,
		pricing:  deps.Pricing,
		metrics:  deps.Metrics,
		logger:   infra.OrDiscard(deps.Logger),
		clock:    deps.Clock,
		onStage:  deps.OnStage,
		newID:    deps.NewID,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.pricing.Standard == nil {
		s.pricing = pricing.Default()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Catalog exposes the catalog the service composes from.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Availability reports which subsystems are usable.
type Availability struct {
	Images   bool
	Vision   bool
	Teams    bool
	Stadiums bool
}

func (s *Service) Availability() Availability {
	return Availability{
		Images:   s.images != nil && s.images.HasCredentials(),
		Vision:   s.vision != nil && s.vision.HasCredentials(),
		Teams:    s.teams != nil,
		Stadiums: s.stadiums != nil,
	}
}

// run tracks one generation through the stage machine.
type run struct {
	s       *Service
	id      string
	kind    domain.Kind
	stage   Stage
	started time.Time
	logger  infra.Logger
}

func (s *Service) begin(kind domain.Kind) *run {
	id := s.newID()
	r := &run{
		s:       s,
		id:      id,
		kind:    kind,
		started: s.clock(),
		logger:  s.logger.With().Str("run_id", id).Str("kind", string(kind)).Logger(),
	}
	r.enter(StageValidating)
	return r
}

func (r *run) enter(stage Stage) {
	r.stage = stage
	r.logger.Debug().Str("stage", string(stage)).Msg("generation: stage")
	r.emit(stage, nil)
}

func (r *run) emit(stage Stage, err error) {
	if r.s.onStage != nil {
		r.s.onStage(StageEvent{RunID: r.id, Kind: r.kind, Stage: stage, Err: err, At: r.s.clock()})
	}
}

// fail moves the run to its terminal failed state and returns err unchanged.
func (r *run) fail(err error) error {
	ev := r.logger.Warn()
	if domain.KindOf(err) == domain.KindInternal {
		ev = r.logger.Error()
	}
	ev.Err(err).
		Str("stage", string(r.stage)).
		Str("error_kind", string(domain.KindOf(err))).
		Msg("generation: failed")
	r.stage = StageFailed
	r.emit(StageFailed, err)
	r.s.metrics.RecordGeneration(string(r.kind), "failed", 0)
	return err
}

func (r *run) done(cost float64) {
	r.stage = StageDone
	r.logger.Info().
		Float64("cost_usd", cost).
		Dur("elapsed", r.s.clock().Sub(r.started)).
		Msg("generation: done")
	r.emit(StageDone, nil)
	r.s.metrics.RecordGeneration(string(r.kind), "success", cost)
}

func (r *run) degraded(items []composer.Degradation) {
	for _, d := range items {
		r.logger.Warn().
			Str("field", d.Field).
			Str("value", d.Value).
			Str("fallback", d.Fallback).
			Msg("generation: catalog degraded")
		r.s.metrics.RecordDegraded(string(r.kind), d.Field)
	}
}

// generate runs the generating and downloading stages against the image
// provider. It is the only place the provider is called.
func (r *run) generate(ctx context.Context, req openai.ImageRequest) (*domain.GenerationArtifact, error) {
	if r.s.images == nil || !r.s.images.HasCredentials() {
		return nil, domain.Unavailablef("%s generator not available", titleKind(r.kind))
	}
	r.enter(StageGenerating)
	start := time.Now()
	gen, err := r.s.images.Create(ctx, req)
	r.s.metrics.RecordUpstream("openai", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.enter(StageDownloading)
	start = time.Now()
	artifact, err := r.s.images.Fetch(ctx, gen)
	if gen.URL != "" {
		r.s.metrics.RecordUpstream("openai_download", time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// analyze runs the vision step. It never fails the run.
func (r *run) analyze(ctx context.Context, req vision.Request) vision.Outcome {
	r.enter(StageAnalyzing)
	if r.s.vision == nil {
		r.logger.Warn().Str("subject", req.Subject).Msg("generation: vision analyzer not configured")
		return vision.Outcome{Status: vision.StatusFallback, Text: req.Fallback, Reason: vision.ReasonNotConfigured}
	}
	start := time.Now()
	out := r.s.vision.Analyze(ctx, req)
	if out.Attempted() {
		var err error
		if out.Status != vision.StatusOK {
			err = errors.New(out.Reason)
		}
		r.s.metrics.RecordUpstream("openrouter", time.Since(start), err)
	}
	if out.Status != vision.StatusOK {
		r.logger.Warn().Str("reason", out.Reason).Msg("generation: analysis degraded")
		r.s.metrics.RecordDegraded(string(r.kind), "analysis")
	}
	return out
}

func titleKind(k domain.Kind) string {
	if k == "" {
		return "Image"
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func parseQuality(q domain.Quality) (domain.Quality, error) {
	quality, ok := domain.ParseQuality(string(q))
	if !ok {
		return "", domain.Validationf("quality must be one of standard, hd")
	}
	return quality, nil
}

// normalizeImageB64 accepts raw base64 or a data URL and returns the bare
// base64 payload after checking it decodes.
func normalizeImageB64(value string) (string, error) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "data:") {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[i+1:]
		}
	}
	if v == "" {
		return "", nil
	}
	if _, err := base64.StdEncoding.DecodeString(v); err != nil {
		return "", domain.Validationf("reference image is not valid base64")
	}
	return v, nil
}

// roundCost keeps reported costs free of float noise.
func roundCost(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
