package middleware

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"nftforge/internal/infra/geoip"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{name: "forwarded header ignored", header: "203.0.113.1", remoteAddr: "198.51.100.10:1234", want: "198.51.100.10"},
		{name: "forwarded list ignored", header: " bogus , 203.0.113.1 , 198.51.100.2 ", remoteAddr: "198.51.100.10:1234", want: "198.51.100.10"},
		{name: "ipv6 remote", remoteAddr: net.JoinHostPort("2001:db8::2", "443"), want: "2001:db8::2"},
		{name: "remote without port", remoteAddr: "203.0.113.1", want: "203.0.113.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientIP(req); got != tc.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(60, 2)(okHandler())
	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}
	for i := 0; i < 2; i++ {
		if rec := call("203.0.113.1"); rec.Code != http.StatusOK {
			t.Fatalf("call %d status = %d", i, rec.Code)
		}
	}
	rec := call("203.0.113.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third call status = %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["success"] != false {
		t.Fatalf("body = %s (%v)", rec.Body.String(), err)
	}
	if rec := call("203.0.113.2"); rec.Code != http.StatusOK {
		t.Fatalf("other client status = %d", rec.Code)
	}

	unlimited := RateLimit(0, 0)(okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		unlimited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter status = %d", rec.Code)
		}
	}
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	h := RateLimit(60, 1)(okHandler())
	for i, forwarded := range []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"} {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		want := http.StatusOK
		if i > 0 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Fatalf("call %d with X-Forwarded-For %s status = %d, want %d", i, forwarded, rec.Code, want)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:3000", "https://app.example.com/"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("credentials not allowed")
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Custom" {
		t.Fatalf("allow headers = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("foreign origin: status %d, allow %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("reused id = %q / %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 100))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if len(seen) != 36 || seen != rec.Header().Get(RequestIDHeader) {
		t.Fatalf("generated id = %q", seen)
	}
}

func TestResolveCountry(t *testing.T) {
	resolver := geoip.Static{"203.0.113.4": "br"}
	tests := []struct {
		name   string
		header map[string]string
		res    geoip.CountryResolver
		want   string
	}{
		{name: "cdn header wins", header: map[string]string{"CF-IPCountry": "us"}, res: resolver, want: "US"},
		{name: "unknown cdn value ignored", header: map[string]string{"CF-IPCountry": "XX"}, res: resolver, want: "BR"},
		{name: "resolver fallback", res: resolver, want: "BR"},
		{name: "no resolver", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			if got := ResolveCountry(req, tc.res); got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct{ got []recordedRequest }

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.got = append(f.got, recordedRequest{method, route, status})
}

func TestLoggerRecordsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Geo(geoip.Static{"203.0.113.4": "BR"}))
	r.Use(Logger(zerolog.New(&buf), rec))
	r.Get("/stadiums/{id}", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/stadiums/maracana", nil)
	req.RemoteAddr = "203.0.113.4:80"
	r.ServeHTTP(httptest.NewRecorder(), req)

	if len(rec.got) != 1 || rec.got[0] != (recordedRequest{"GET", "/stadiums/{id}", http.StatusTeapot}) {
		t.Fatalf("recorded = %+v", rec.got)
	}
	out := buf.String()
	for _, want := range []string{`"route":"/stadiums/{id}"`, `"status":418`, `"country":"BR"`, `"request_id":"`, `"message":"inside"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %s: %s", want, out)
		}
	}
}
