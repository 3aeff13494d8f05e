// Package openai is the text-to-image client for the OpenAI images API.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nftforge/internal/domain"
	"nftforge/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("openai: api key is required")

const (
	defaultBaseURL         = "https://api.openai.com/v1"
	defaultModel           = "dall-e-3"
	defaultRequestTimeout  = 120 * time.Second
	defaultDownloadTimeout = 60 * time.Second
)

// Options configures the images client.
type Options struct {
	APIKey          string
	BaseURL         string
	Model           string
	Organization    string
	HTTPClient      *http.Client
	Logger          *infra.Logger
	RequestTimeout  time.Duration
	DownloadTimeout time.Duration
}

// Client performs HTTP calls to the images/generations endpoint. It is safe
// for concurrent use and is meant to be built once at startup.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	organization    string
	httpClient      *http.Client
	logger          *infra.Logger
	requestTimeout  time.Duration
	downloadTimeout time.Duration
}

// ImageRequest captures the inputs for one generation.
type ImageRequest struct {
	Prompt  string
	Size    domain.Size
	Quality domain.Quality
}

type generationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type generationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		B64JSON       string `json:"b64_json"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewClient constructs a client with defaults for every unset option.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = defaultDownloadTimeout
	}
	return &Client{
		apiKey:          strings.TrimSpace(opts.APIKey),
		baseURL:         baseURL,
		model:           model,
		organization:    strings.TrimSpace(opts.Organization),
		httpClient:      httpClient,
		logger:          infra.OrDiscard(opts.Logger),
		requestTimeout:  requestTimeout,
		downloadTimeout: downloadTimeout,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Generation is the provider's answer before any download: either a
// short-lived URL or inline base64.
type Generation struct {
	URL           string
	B64JSON       string
	RevisedPrompt string
	Size          domain.Size
	Quality       domain.Quality
}

// Generate performs Create followed by Fetch.
func (c *Client) Generate(ctx context.Context, req ImageRequest) (*domain.GenerationArtifact, error) {
	gen, err := c.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, gen)
}

// Create performs the single generation POST. There is no retry.
func (c *Client) Create(ctx context.Context, req ImageRequest) (*Generation, error) {
	if !c.HasCredentials() {
		return nil, domain.Unavailablef("image generation is not configured: %v", ErrMissingAPIKey)
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.Validationf("prompt is required")
	}
	size := req.Size
	if size == "" {
		size = domain.SizeSquare
	}
	if !size.Valid() {
		return nil, domain.Validationf("size must be one of 1024x1024, 1024x1792, 1792x1024")
	}
	quality := req.Quality
	if quality == "" {
		quality = domain.QualityStandard
	}
	if !quality.Valid() {
		return nil, domain.Validationf("quality must be one of standard, hd")
	}

	decoded, err := c.postGeneration(ctx, generationRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    string(size),
		Quality: string(quality),
	})
	if err != nil {
		return nil, err
	}
	if len(decoded.Data) == 0 {
		return nil, domain.ProviderError("openai: response has no image data", nil)
	}
	first := decoded.Data[0]
	gen := &Generation{
		URL:           strings.TrimSpace(first.URL),
		B64JSON:       strings.TrimSpace(first.B64JSON),
		RevisedPrompt: strings.TrimSpace(first.RevisedPrompt),
		Size:          size,
		Quality:       quality,
	}
	if gen.URL == "" && gen.B64JSON == "" {
		return nil, domain.ProviderError("openai: response has neither url nor b64_json", nil)
	}
	return gen, nil
}

// Fetch turns a Generation into bytes: inline base64 is decoded, a URL is
// downloaded once. ImageB64 is always the re-encoded bytes.
func (c *Client) Fetch(ctx context.Context, gen *Generation) (*domain.GenerationArtifact, error) {
	if gen == nil {
		return nil, domain.ProviderError("openai: nothing to fetch", nil)
	}
	artifact := &domain.GenerationArtifact{
		ProviderURL:   gen.URL,
		RevisedPrompt: gen.RevisedPrompt,
	}
	if gen.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(gen.B64JSON)
		if err != nil {
			return nil, domain.ProviderError("openai: invalid b64_json payload", err)
		}
		artifact.ImageBytes = data
	} else {
		data, mime, err := c.download(ctx, gen.URL)
		if err != nil {
			return nil, err
		}
		artifact.ImageBytes = data
		artifact.MIMEType = mime
	}

	artifact.ImageB64 = base64.StdEncoding.EncodeToString(artifact.ImageBytes)
	if artifact.MIMEType == "" || artifact.MIMEType == "application/octet-stream" {
		artifact.MIMEType = http.DetectContentType(artifact.ImageBytes)
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(artifact.ImageBytes)); err == nil {
		artifact.Width, artifact.Height = cfg.Width, cfg.Height
	}
	c.logger.Debug().
		Str("model", c.model).
		Str("size", string(gen.Size)).
		Str("quality", string(gen.Quality)).
		Bool("inline", gen.B64JSON != "").
		Int("bytes", len(artifact.ImageBytes)).
		Msg("openai: generated image")
	return artifact, nil
}

func (c *Client) postGeneration(ctx context.Context, payload generationRequest) (*generationResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}
	endpoint := c.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", c.organization)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.ProviderError("openai: http request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ProviderError("openai: read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			return nil, domain.ProviderError(fmt.Sprintf("openai: %s (status %d)", detail.Error.Message, resp.StatusCode), nil)
		}
		return nil, domain.ProviderError(fmt.Sprintf("openai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))), nil)
	}

	var decoded generationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, domain.ProviderError("openai: decode response", err)
	}
	return &decoded, nil
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || parsed.Scheme == "" {
		return nil, "", domain.DownloadError(fmt.Sprintf("openai: invalid image url: %s", imageURL), err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, "", domain.DownloadError("openai: build download request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", domain.DownloadError("openai: download image", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", domain.DownloadError(fmt.Sprintf("openai: download status %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", domain.DownloadError("openai: read image", err)
	}
	if len(data) == 0 {
		return nil, "", domain.DownloadError("openai: downloaded image is empty", nil)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
