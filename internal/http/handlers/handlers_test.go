package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftforge/internal/domain"
	"nftforge/internal/generation"
	"nftforge/internal/providers/openai"
	"nftforge/internal/providers/vision"
	"nftforge/internal/reference"
)

var fakePNG = base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

type stubImages struct {
	noKey bool
}

func (s *stubImages) HasCredentials() bool { return !s.noKey }
func (s *stubImages) Model() string        { return "dall-e-3" }

func (s *stubImages) Create(ctx context.Context, req openai.ImageRequest) (*openai.Generation, error) {
	return &openai.Generation{URL: "https://images.example.com/a.png", Size: req.Size, Quality: req.Quality}, nil
}

func (s *stubImages) Fetch(ctx context.Context, gen *openai.Generation) (*domain.GenerationArtifact, error) {
	return &domain.GenerationArtifact{ImageB64: fakePNG, ProviderURL: gen.URL, MIMEType: "image/png"}, nil
}

type stubVision struct{}

func (stubVision) HasCredentials() bool { return true }

func (stubVision) Analyze(ctx context.Context, req vision.Request) vision.Outcome {
	return vision.Outcome{Status: vision.StatusOK, Text: "concrete bowl", Model: "openai/gpt-4o"}
}

func (stubVision) AnalyzeJersey(ctx context.Context, req vision.Request) (*domain.JerseyAnalysis, vision.Outcome) {
	return &domain.JerseyAnalysis{Pattern: "solid"}, vision.Outcome{Status: vision.StatusOK}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func newTestApp(t *testing.T) *App {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "maracana"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "maracana", "front.jpg"), []byte{0xff, 0xd8, 0xff}, 0o644))
	stadiums, err := reference.NewStadiumStore(root)
	require.NoError(t, err)

	teamsDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(teamsDir, "Flamengo"), 0o755))

	clock := func() time.Time { return time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC) }
	svc := generation.NewService(generation.Dependencies{
		Images:   &stubImages{},
		Vision:   stubVision{},
		Stadiums: stadiums,
		Teams:    reference.NewMemoryTeamStore(map[string]string{"Flamengo": "Jersey for {PLAYER_NAME} #{PLAYER_NUMBER}"}),
		Clock:    clock,
	})
	return &App{
		Logger:    zerolog.Nop(),
		Generator: svc,
		Stadiums:  stadiums,
		Teams:     reference.NewTeamFolders(teamsDir),
		Clock:     clock,
	}
}

func do(t *testing.T, h http.HandlerFunc, method, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestGenerateJerseyHandler(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.GenerateJersey, http.MethodPost,
		`{"model_id":"flamengo_home","player_name":"pedro","player_number":"9","quality":"standard"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 0.045, out["cost_usd"])
	assert.NotEmpty(t, out["image_base64"])
	assert.NotContains(t, out, "prompt")
}

func TestGenerateJerseyHandlerUnknownTeam(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.GenerateJersey, http.MethodPost, `{"model_id":"xyz_home","player_name":"a","player_number":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, rec.Body.String(), "not configured")
	assert.Contains(t, rec.Body.String(), "xyz")
}

func TestGenerateJerseyHandlerNoKey(t *testing.T) {
	app := newTestApp(t)
	app.Generator = generation.NewService(generation.Dependencies{Images: &stubImages{noKey: true}})
	rec, _ := do(t, app.GenerateJersey, http.MethodPost, `{"model_id":"flamengo_home","player_name":"a","player_number":"1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerateJerseyFromReferenceHandler(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.GenerateJerseyFromReference, http.MethodPost,
		`{"teamName":"Flamengo","player_name":"gabi","player_number":"10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jersey for GABI #10", out["prompt"])
	assert.Equal(t, "https://images.example.com/a.png", out["image_url"])

	rec, _ = do(t, app.GenerateJerseyFromReference, http.MethodPost,
		`{"teamName":"Santos","player_name":"gabi","player_number":"10"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStadiumHandlers(t *testing.T) {
	app := newTestApp(t)

	rec, out := do(t, app.GenerateStadiumFromReference, http.MethodPost,
		`{"stadium_id":"maracana","generation_style":"cinematic","perspective":"external","atmosphere":"packed","time_of_day":"night","weather":"dramatic","quality":"hd"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "local", out["reference_source"])
	assert.True(t, strings.HasPrefix(out["reference_used"].(string), "maracana"))
	assert.InDelta(t, 0.09, out["cost_usd"], 1e-9)
	assert.NotNil(t, out["analysis"])

	rec, out = do(t, app.GenerateStadiumFromReference, http.MethodPost,
		`{"stadium_id":"unknown_x","custom_prompt":"a brutalist oval","atmosphere":"empty","time_of_day":"sunset"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom", out["reference_source"])
	assert.Equal(t, "custom_prompt_only", out["reference_used"])
	assert.NotContains(t, out, "analysis")
	assert.Contains(t, out["prompt_used"], "brutalist oval")

	rec, _ = do(t, app.GenerateStadiumFromReference, http.MethodPost, `{"stadium_id":"unknown_x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_x")

	rec, out = do(t, app.GenerateStadiumCustom, http.MethodPost,
		`{"prompt":"floating arena","include_nft_metadata":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom_prompt_only", out["reference_source"])
	assert.NotNil(t, out["nft_metadata"])

	rec, _ = do(t, app.GenerateStadiumCustom, http.MethodPost, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBadgeVariationsRejectsUnknownStyle(t *testing.T) {
	app := newTestApp(t)
	rec, _ := do(t, app.GenerateBadgeVariations, http.MethodPost,
		`{"team_name":"Flamengo","badge_name":"CHAMPION","badge_number":"1","styles":["modern","retro","unknown"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown")

	rec, out := do(t, app.GenerateBadgeVariations, http.MethodPost,
		`{"team_name":"Flamengo","badge_name":"CHAMPION","badge_number":"1","styles":["modern","retro"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := out["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["successful"])
}

func TestGenerateBadgeHandler(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.GenerateBadge, http.MethodPost,
		`{"team_name":"Flamengo","badge_name":"CHAMPION","badge_number":"1","style":"retro","quality":"hd"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 0.08, out["cost_usd"])

	rec, _ = do(t, app.GenerateBadge, http.MethodPost, `{"team_name":"Flamengo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeJerseyHandler(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.AnalyzeJersey, http.MethodPost, fmt.Sprintf(`{"image_base64":%q}`, fakePNG))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.01, out["cost_usd"])

	rec, _ = do(t, app.AnalyzeJersey, http.MethodPost, `{"image_base64":"***"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.Health, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "operational", out["jersey_generator"])
	assert.Equal(t, "operational", out["stadium_references"])
	assert.Equal(t, "not_available", out["database"])

	app.Database = stubPinger{}
	_, out = do(t, app.Health, http.MethodGet, "")
	assert.Equal(t, "operational", out["database"])

	app.Database = stubPinger{err: errors.New("down")}
	rec, out = do(t, app.Health, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not_available", out["database"])
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t)

	_, out := do(t, app.ListTeams, http.MethodGet, "")
	assert.Equal(t, []any{"Flamengo"}, out["teams"])
	assert.Contains(t, out["catalog"], "flamengo")

	_, out = do(t, app.ListStadiums, http.MethodGet, "")
	assert.Equal(t, float64(1), out["count"])

	app.Stadiums = nil
	_, out = do(t, app.ListStadiums, http.MethodGet, "")
	assert.Equal(t, []any{}, out["stadiums"])

	_, out = do(t, app.BadgeStyles, http.MethodGet, "")
	assert.Equal(t, float64(5), out["count"])

	_, out = do(t, app.BadgeInfo, http.MethodGet, "")
	pricing := out["pricing"].(map[string]any)
	assert.Equal(t, 0.04, pricing["standard"])
	assert.Equal(t, 0.08, pricing["hd"])
	assert.Equal(t, true, out["generator_available"])

	_, out = do(t, app.Root, http.MethodGet, "")
	assert.Equal(t, "dev", out["version"])
}

func TestNFTMetadataHandler(t *testing.T) {
	app := newTestApp(t)
	rec, out := do(t, app.NFTMetadata, http.MethodPost,
		`{"kind":"badge","name":"Flamengo CHAMPION #1","team":"Flamengo","style":"retro","creator_wallet":"0x52908400098527886e0f7030069857d2e4169ee7"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := out["document"].(map[string]any)
	assert.Equal(t, "Flamengo CHAMPION #1", doc["name"])

	// A document fed back in keeps its values.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	rec, again := do(t, app.NFTMetadata, http.MethodPost, fmt.Sprintf(`{"kind":"badge","record":%s}`, raw))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc["name"], again["document"].(map[string]any)["name"])

	rec, _ = do(t, app.NFTMetadata, http.MethodPost, `{"kind":"badge"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, app.NFTMetadata, http.MethodPost, `{"kind":"poster","name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, app.NFTMetadata, http.MethodPost, `{"kind":"badge","name":"x","creator_wallet":"0x123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeErrors(t *testing.T) {
	app := newTestApp(t)

	rec, out := do(t, app.GenerateJersey, http.MethodPost, `{"model_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON payload", out["error"])

	rec, out = do(t, app.GenerateJersey, http.MethodPost, ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is required", out["error"])

	huge := `{"image_base64":"` + strings.Repeat("A", MaxBodyBytes) + `"}`
	rec, _ = do(t, app.AnalyzeJersey, http.MethodPost, huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.Validationf("bad"):                http.StatusBadRequest,
		domain.ReferenceMissf("none"):            http.StatusNotFound,
		domain.ProviderError("boom", nil):        http.StatusBadGateway,
		context.DeadlineExceeded:                 http.StatusGatewayTimeout,
		fmt.Errorf("wrap: %w", context.Canceled): http.StatusGatewayTimeout,
		errors.New("plain"):                      http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
