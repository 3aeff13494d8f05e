package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"nftforge/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

var jpegStub = base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'})

func chatReply(status int, content string) roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		body, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(string(body)))}, nil
	}
}

func TestAnalyzeSendsTwoPartMessage(t *testing.T) {
	var captured map[string]any
	var headers http.Header
	analyzer := NewAnalyzer(Options{
		APIKey:  "key",
		Model:   "openai/gpt-4o",
		Referer: "https://nft.example.com",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			headers = r.Header.Clone()
			if r.URL.Path != "/api/v1/chat/completions" {
				t.Fatalf("path = %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			return chatReply(http.StatusOK, "```\nOval bowl with a cantilevered roof\n```")(r)
		})},
	})

	out := analyzer.Analyze(context.Background(), Request{ImageB64: jpegStub, Instruction: "describe", Subject: "maracana", Fallback: "fb"})
	if out.Status != StatusOK {
		t.Fatalf("status = %s (%s)", out.Status, out.Reason)
	}
	if out.Text != "Oval bowl with a cantilevered roof" {
		t.Fatalf("text = %q", out.Text)
	}
	res := out.Result()
	if res.SourceTag != "openai/gpt-4o" || res.Degraded() {
		t.Fatalf("result = %+v", res)
	}
	if headers.Get("Authorization") != "Bearer key" || headers.Get("HTTP-Referer") != "https://nft.example.com" {
		t.Fatalf("headers = %v", headers)
	}
	if captured["temperature"] != 0.3 || captured["max_tokens"] != float64(1000) {
		t.Fatalf("unexpected sampling params: %v", captured)
	}
	messages := captured["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("content parts = %d, want 2", len(content))
	}
	url := content[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("image url = %q", url[:30])
	}
}

func TestAnalyzeFallbackReasons(t *testing.T) {
	cases := []struct {
		name      string
		apiKey    string
		transport roundTripFunc
		reason    string
	}{
		{name: "missing_key", apiKey: "", transport: chatReply(http.StatusOK, "x"), reason: "missing_api_key"},
		{name: "transport", apiKey: "k", transport: func(*http.Request) (*http.Response, error) { return nil, errors.New("boom") }, reason: "http_request"},
		{name: "status", apiKey: "k", transport: chatReply(http.StatusBadGateway, "x"), reason: "http_502"},
		{name: "empty", apiKey: "k", transport: chatReply(http.StatusOK, "   "), reason: "empty_response"},
		{name: "no_choices", apiKey: "k", transport: func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"choices":[]}`))}, nil
		}, reason: "empty_choices"},
		{name: "garbage", apiKey: "k", transport: func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`<html>`))}, nil
		}, reason: "decode_response"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hook string
			analyzer := NewAnalyzer(Options{
				APIKey:     tc.apiKey,
				HTTPClient: &http.Client{Transport: tc.transport},
				OnFallback: func(reason string, err error) { hook = reason },
			})
			out := analyzer.Analyze(context.Background(), Request{ImageB64: jpegStub, Instruction: "i", Fallback: "Modern Maracana stadium with distinctive architectural features"})
			if out.Status != StatusFallback || out.Reason != tc.reason || hook != tc.reason {
				t.Fatalf("outcome = %+v hook=%q, want reason %q", out, hook, tc.reason)
			}
			res := out.Result()
			if res.SourceTag != domain.SourceTagFallback {
				t.Fatalf("source tag = %q", res.SourceTag)
			}
			if res.ArchitecturalDescription != "Modern Maracana stadium with distinctive architectural features" {
				t.Fatalf("description = %q", res.ArchitecturalDescription)
			}
		})
	}
}

func TestAnalyzeJersey(t *testing.T) {
	reply := "```json\n" + `{"dominantColors":["#FF0000","#000000"],"pattern":"horizontal stripes","numberStyle":{"font":"rounded","fillPattern":"solid","outline":"thin black"},"namePlacement":"upper back","collar":"crew","sleeves":"short","style":"classic","texture":"mesh","logos":"none","view":"back"}` + "\n```"
	analyzer := NewAnalyzer(Options{APIKey: "k", HTTPClient: &http.Client{Transport: chatReply(http.StatusOK, reply)}})

	analysis, out := analyzer.AnalyzeJersey(context.Background(), Request{ImageB64: jpegStub, Instruction: "json please"})
	if out.Status != StatusOK || analysis == nil {
		t.Fatalf("outcome = %+v", out)
	}
	if analysis.Pattern != "horizontal stripes" || analysis.NumberStyle.Outline != "thin black" || len(analysis.DominantColors) != 2 {
		t.Fatalf("analysis = %+v", analysis)
	}

	prose := NewAnalyzer(Options{APIKey: "k", HTTPClient: &http.Client{Transport: chatReply(http.StatusOK, "A red shirt.")}})
	analysis, out = prose.AnalyzeJersey(context.Background(), Request{ImageB64: jpegStub, Instruction: "json please"})
	if analysis != nil || out.Reason != "parse_payload" {
		t.Fatalf("expected parse_payload fallback, got %+v", out)
	}
}

func TestToDataURL(t *testing.T) {
	if _, err := toDataURL("   "); err == nil {
		t.Fatalf("expected error for empty image")
	}
	if _, err := toDataURL("%%%"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
	existing := "data:image/png;base64,AAAA"
	if got, _ := toDataURL(existing); got != existing {
		t.Fatalf("data url rewritten: %q", got)
	}
}
