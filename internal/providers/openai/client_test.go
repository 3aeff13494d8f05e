package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"strings"
	"testing"

	"nftforge/internal/domain"
)

func TestGenerateDownloadsURLResponse(t *testing.T) {
	pngBytes := tinyPNG(t, 4, 3)
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/images/generations", map[string]any{
		"created": 1700000000,
		"data": []any{
			map[string]any{"url": "https://files.example.com/out.png", "revised_prompt": "a revised prompt"},
		},
	})
	transport.setBinaryResponse("https://files.example.com/out.png", pngBytes)

	client := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	artifact, err := client.Generate(context.Background(), ImageRequest{Prompt: "a jersey", Size: domain.SizePortrait, Quality: domain.QualityHD})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(artifact.ImageBytes, pngBytes) {
		t.Fatalf("image bytes mismatch")
	}
	if artifact.ImageB64 != base64.StdEncoding.EncodeToString(pngBytes) {
		t.Fatalf("image_b64 is not the re-encoded bytes")
	}
	if artifact.ProviderURL != "https://files.example.com/out.png" {
		t.Fatalf("provider url = %q", artifact.ProviderURL)
	}
	if artifact.RevisedPrompt != "a revised prompt" {
		t.Fatalf("revised prompt = %q", artifact.RevisedPrompt)
	}
	if artifact.Width != 4 || artifact.Height != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", artifact.Width, artifact.Height)
	}
	if transport.posts != 1 || transport.gets != 1 {
		t.Fatalf("calls = %d posts / %d gets, want 1/1", transport.posts, transport.gets)
	}

	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["model"] != "dall-e-3" || payload["size"] != "1024x1792" || payload["quality"] != "hd" || payload["n"] != float64(1) {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if got := transport.lastAuth; got != "Bearer test" {
		t.Fatalf("authorization = %q", got)
	}
}

func TestGenerateInlineBase64(t *testing.T) {
	pngBytes := tinyPNG(t, 2, 2)
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/images/generations", map[string]any{
		"data": []any{map[string]any{"b64_json": base64.StdEncoding.EncodeToString(pngBytes)}},
	})

	client := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	artifact, err := client.Generate(context.Background(), ImageRequest{Prompt: "a badge"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if artifact.ProviderURL != "" {
		t.Fatalf("provider url should be empty for inline responses")
	}
	if artifact.MIMEType != "image/png" {
		t.Fatalf("mime = %q, want image/png", artifact.MIMEType)
	}
	if transport.gets != 0 {
		t.Fatalf("inline response must not trigger a download")
	}
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload any
		kind    error
		message string
	}{
		{name: "upstream_error", status: http.StatusBadRequest, payload: map[string]any{"error": map[string]any{"message": "content policy violation"}}, kind: domain.ErrProvider, message: "content policy violation"},
		{name: "rate_limited_plain", status: http.StatusTooManyRequests, payload: "slow down", kind: domain.ErrProvider, message: "status 429"},
		{name: "missing_data", status: http.StatusOK, payload: map[string]any{"data": []any{}}, kind: domain.ErrProvider, message: "no image data"},
		{name: "download_failure", status: http.StatusOK, payload: map[string]any{"data": []any{map[string]any{"url": "https://files.example.com/missing.png"}}}, kind: domain.ErrDownload, message: "download status 404"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &captureTransport{responses: map[string]responseStub{}}
			transport.setStatusResponse("/v1/images/generations", tc.status, tc.payload)
			client := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})

			_, err := client.Generate(context.Background(), ImageRequest{Prompt: "x"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("error kind = %v, want %v", domain.KindOf(err), tc.kind)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.message)
			}
			if transport.posts != 1 {
				t.Fatalf("posts = %d, want exactly one attempt", transport.posts)
			}
		})
	}
}

func TestGenerateWithoutCredentials(t *testing.T) {
	client := NewClient(Options{})
	if client.HasCredentials() {
		t.Fatalf("expected no credentials")
	}
	_, err := client.Generate(context.Background(), ImageRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want unavailable", err)
	}
}

func TestGenerateRejectsUnknownSize(t *testing.T) {
	client := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: &captureTransport{}}})
	_, err := client.Generate(context.Background(), ImageRequest{Prompt: "x", Size: "512x512"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type captureTransport struct {
	responses map[string]responseStub
	lastBody  []byte
	lastAuth  string
	posts     int
	gets      int
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost {
		c.posts++
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
		c.lastAuth = req.Header.Get("Authorization")
		if stub, ok := c.responses[req.URL.Path]; ok {
			return stub.toResponse(), nil
		}
	}
	if req.Method == http.MethodGet {
		c.gets++
		if stub, ok := c.responses[req.URL.String()]; ok {
			return stub.toResponse(), nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func (c *captureTransport) setJSONResponse(path string, payload any) {
	c.setStatusResponse(path, http.StatusOK, payload)
}

func (c *captureTransport) setStatusResponse(path string, status int, payload any) {
	var body []byte
	if s, ok := payload.(string); ok {
		body = []byte(s)
	} else {
		body, _ = json.Marshal(payload)
	}
	c.responses[path] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (c *captureTransport) setBinaryResponse(url string, data []byte) {
	c.responses[url] = responseStub{
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{"image/png"}},
		body:   data,
	}
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, values := range s.header {
		header[k] = append([]string(nil), values...)
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}
