package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	appErr "github.com/contactbook/engine/pkg/errors"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

type visitors struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

func (v *visitors) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastSweep) > sweepInterval {
		for k, e := range v.entries {
			if now.Sub(e.last) > visitorTTL {
				delete(v.entries, k)
			}
		}
		v.lastSweep = now
	}

	e, ok := v.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.entries[ip] = e
	}
	e.last = now
	return e.limiter.AllowN(now, 1)
}

func getIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies an IP-based token bucket limiter. A non-positive rps
// disables limiting.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	v := &visitors{rps: rate.Limit(rps), burst: burst, entries: map[string]*limiterEntry{}, lastSweep: time.Now()}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !v.allow(getIP(r), time.Now()) {
				writeError(w, http.StatusTooManyRequests, appErr.CodeRateLimited, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
