package middleware

import (
	"context"
	"net/http"
	"strings"

	"nftforge/internal/infra/geoip"
)

type countryContextKey struct{}

// CountryKey stores the caller's ISO country code on the request context.
var CountryKey = countryContextKey{}

var countryHeaders = []string{"CF-IPCountry", "X-Country-Code", "X-IP-Country", "X-Appengine-Country"}

// Geo tags the request with a best-effort country code used only for access
// logs. A nil resolver leaves lookups to edge headers.
func Geo(resolver geoip.CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if country := ResolveCountry(r, resolver); country != "" {
				r = r.WithContext(context.WithValue(r.Context(), CountryKey, country))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResolveCountry prefers CDN headers and falls back to the GeoIP database.
func ResolveCountry(r *http.Request, resolver geoip.CountryResolver) string {
	if r == nil {
		return ""
	}
	for _, key := range countryHeaders {
		val := strings.TrimSpace(r.Header.Get(key))
		if len(val) == 2 && !strings.EqualFold(val, "XX") {
			return strings.ToUpper(val)
		}
	}
	if resolver == nil {
		return ""
	}
	ip := ClientIP(r)
	if ip == "" {
		return ""
	}
	country, err := resolver.CountryCode(ip)
	if err != nil {
		return ""
	}
	return strings.ToUpper(country)
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}
