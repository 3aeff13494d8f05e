package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"nftforge/internal/domain"
	"nftforge/internal/generation"
	"nftforge/internal/http/handlers"
	httpapi "nftforge/internal/http/httpapi"
	"nftforge/internal/infra"
	"nftforge/internal/infra/geoip"
	"nftforge/internal/metrics"
	"nftforge/internal/providers/openai"
	"nftforge/internal/providers/vision"
	"nftforge/internal/reference"
)

var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()

	// Team references: Mongo when configured, else Postgres, else none.
	backend, err := reference.OpenTeamBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect team reference database")
	}
	teams, database := teamReferences(backend, cfg.ReferenceCacheTTL)
	if backend != nil {
		defer func() { _ = backend.Close(context.Background()) }()
		logger.Info().Str("backend", backend.Name).Msg("team references connected")
	} else {
		logger.Warn().Msg("no team reference database configured; /generate-jersey-from-reference is disabled")
	}

	stadiums, err := reference.NewStadiumStore(cfg.StadiumReferencesDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid stadium references directory")
	}

	images := openai.NewClient(openai.Options{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		Model:           cfg.OpenAIImageModel,
		Organization:    cfg.OpenAIOrg,
		Logger:          &logger,
		RequestTimeout:  cfg.ImageTimeout,
		DownloadTimeout: cfg.DownloadTimeout,
	})
	analyzer := vision.NewAnalyzer(vision.Options{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.OpenRouterVisionModel,
		Referer: cfg.OpenRouterReferer,
		Title:   cfg.OpenRouterTitle,
		Timeout: cfg.VisionTimeout,
		Logger:  &logger,
	})
	if !images.HasCredentials() {
		logger.Warn().Msg("OPENAI_API_KEY not set; generation endpoints will answer 503")
	}

	svc := generation.NewService(generation.Dependencies{
		Images:   images,
		Vision:   analyzer,
		Stadiums: stadiums,
		Teams:    teams,
		Metrics:  recorder,
		Logger:   &logger,
	})

	opts := httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		TrustProxy:      cfg.TrustProxyHeaders,
		Metrics:         recorder,
	}
	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable")
	} else if resolver != nil {
		defer resolver.Close()
		opts.Geo = resolver
	}

	app := &handlers.App{
		Config:    cfg,
		Logger:    logger,
		Generator: svc,
		Stadiums:  stadiums,
		Teams:     reference.NewTeamFolders(cfg.ImageReferencesDir),
		Database:  database,
		Version:   version,
	}
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app, opts))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Str("version", version).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}

// teamReferences exposes the backend read-only. Schema and indexes are
// created by `nftctl teamref put`, never by the API process.
func teamReferences(backend *reference.Backend, ttl time.Duration) (domain.TeamReferenceStore, handlers.Pinger) {
	if backend == nil || backend.Store == nil {
		return nil, nil
	}
	return reference.NewCachedTeamStore(backend.Store, ttl), backend.Store
}
