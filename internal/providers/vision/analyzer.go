// Package vision calls an OpenRouter vision-language chat model to describe
// reference images. Failures never surface as errors: every call yields an
// Outcome, falling back to the caller's text when the model cannot answer.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nftforge/internal/domain"
	"nftforge/internal/infra"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "openai/gpt-4o"
	defaultTimeout = 60 * time.Second
	temperature    = 0.3
	maxTokens      = 1000
)

// Status tells whether an Outcome carries model text or the fallback.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFallback Status = "fallback"
)

// Outcome is the typed result of one analysis.
type Outcome struct {
	Status Status
	Text   string
	Reason string
	Model  string
}

// Result converts the outcome into the response-facing analysis.
func (o Outcome) Result() domain.AnalysisResult {
	tag := o.Model
	if o.Status != StatusOK {
		tag = domain.SourceTagFallback
	}
	return domain.AnalysisResult{ArchitecturalDescription: o.Text, SourceTag: tag}
}

// Attempted reports whether the model was actually called. Fallbacks that
// happened before the network request are free.
func (o Outcome) Attempted() bool {
	if o.Status == StatusOK {
		return true
	}
	switch o.Reason {
	case ReasonNotConfigured, "missing_api_key", "invalid_image", "encode_request", "build_request":
		return false
	}
	return true
}

// ReasonNotConfigured is used by callers that hold no analyzer at all.
const ReasonNotConfigured = "not_configured"

// Request is one image plus the instruction to apply to it. Subject is only
// used for logging; Fallback is returned when the model fails.
type Request struct {
	ImageB64    string
	Instruction string
	Subject     string
	Fallback    string
}

// Options configures the analyzer.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Referer    string
	Title      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
	OnFallback func(reason string, err error)
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	apiKey     string
	baseURL    string
	model      string
	referer    string
	title      string
	timeout    time.Duration
	client     *http.Client
	logger     *infra.Logger
	onFallback func(reason string, err error)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnalyzer builds an analyzer. A missing API key is allowed: every call
// then degrades to the fallback with reason missing_api_key.
func NewAnalyzer(opts Options) *Analyzer {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Analyzer{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      coalesce(opts.Model, defaultModel),
		referer:    strings.TrimSpace(opts.Referer),
		title:      strings.TrimSpace(opts.Title),
		timeout:    timeout,
		client:     client,
		logger:     infra.OrDiscard(opts.Logger),
		onFallback: opts.OnFallback,
	}
}

// HasCredentials reports whether the analyzer can reach the model.
func (a *Analyzer) HasCredentials() bool { return a.apiKey != "" }

// Model returns the configured model id.
func (a *Analyzer) Model() string { return a.model }

// Analyze returns the model's description of the image with code fences
// stripped. Non-JSON text is returned unchanged for free-form consumers.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Outcome {
	text, reason, err := a.complete(ctx, req.ImageB64, req.Instruction)
	if reason != "" {
		return a.fallback(req, reason, err)
	}
	return Outcome{Status: StatusOK, Text: trimCodeFence(text), Model: a.model}
}

// AnalyzeJersey asks for the strict jersey JSON object and decodes it. A
// reply that is not valid JSON degrades to the fallback with reason
// parse_payload and a nil analysis.
func (a *Analyzer) AnalyzeJersey(ctx context.Context, req Request) (*domain.JerseyAnalysis, Outcome) {
	text, reason, err := a.complete(ctx, req.ImageB64, req.Instruction)
	if reason != "" {
		return nil, a.fallback(req, reason, err)
	}
	fragment := extractJSONFragment(text)
	var analysis domain.JerseyAnalysis
	if fragment == "" {
		return nil, a.fallback(req, "parse_payload", errors.New("empty payload"))
	}
	if err := json.Unmarshal([]byte(fragment), &analysis); err != nil {
		return nil, a.fallback(req, "parse_payload", err)
	}
	return &analysis, Outcome{Status: StatusOK, Text: fragment, Model: a.model}
}

// complete runs the chat call. A non-empty reason means the call failed.
func (a *Analyzer) complete(ctx context.Context, imageB64, instruction string) (string, string, error) {
	if a.apiKey == "" {
		return "", "missing_api_key", nil
	}
	dataURL, err := toDataURL(imageB64)
	if err != nil {
		return "", "invalid_image", err
	}
	payload := chatRequest{
		Model:       a.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: instruction},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", "encode_request", err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", "build_request", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	if a.referer != "" {
		httpReq.Header.Set("HTTP-Referer", a.referer)
	}
	if a.title != "" {
		httpReq.Header.Set("X-Title", a.title)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", "http_request", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("openrouter status %d", resp.StatusCode)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "decode_response", err
	}
	if out.Error != nil && out.Error.Message != "" {
		return "", "upstream_error", errors.New(out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", "empty_choices", errors.New("no choices")
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", "empty_response", errors.New("empty response")
	}
	return text, "", nil
}

func (a *Analyzer) fallback(req Request, reason string, err error) Outcome {
	ev := a.logger.Warn().Str("subject", req.Subject).Str("reason", reason)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("vision: analysis degraded to fallback")
	if a.onFallback != nil {
		a.onFallback(reason, err)
	}
	return Outcome{Status: StatusFallback, Text: req.Fallback, Reason: reason, Model: a.model}
}

// toDataURL accepts raw base64 or an existing data URL and returns a data URL
// with a sniffed MIME type.
func toDataURL(imageB64 string) (string, error) {
	trimmed := strings.TrimSpace(imageB64)
	if trimmed == "" {
		return "", errors.New("image is empty")
	}
	if strings.HasPrefix(trimmed, "data:") {
		return trimmed, nil
	}
	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + trimmed, nil
}
