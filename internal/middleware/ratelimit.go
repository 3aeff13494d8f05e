package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterTTL evicts limiters for clients that stopped calling.
const limiterTTL = 10 * time.Minute

// RateLimit applies a per-client token bucket refilling perMinute tokens a
// minute. A non-positive perMinute disables limiting.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = perMinute
	}
	limiters := gocache.New(limiterTTL, limiterTTL)
	every := rate.Every(time.Minute / time.Duration(perMinute))

	limiterFor := func(key string) *rate.Limiter {
		if v, ok := limiters.Get(key); ok {
			limiters.SetDefault(key, v)
			return v.(*rate.Limiter)
		}
		lim := rate.NewLimiter(every, burst)
		if err := limiters.Add(key, lim, gocache.DefaultExpiration); err != nil {
			if v, ok := limiters.Get(key); ok {
				return v.(*rate.Limiter)
			}
		}
		return lim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := limiterFor(ClientIP(r))
			if !lim.Allow() {
				reservation := lim.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()
				retryAfter := int(math.Ceil(delay.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the remote host. Forwarding headers are ignored here;
// chi's RealIP rewrites RemoteAddr when the deployment trusts its proxy.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"error":` + strconv.Quote(message) + `}`))
}
