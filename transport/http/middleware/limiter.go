package middleware

import (
	"agenda/shared"
	"agenda/shared/constant"
	"agenda/transport/http/response"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"

	rateLimitStoreMemory = "memory"
)

// RateLimit counts requests per client IP and user agent in fixed windows.
// Counters live in redis; the in-process token bucket takes over when the
// store is "memory" or redis fails.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	settings := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !settings.Enable {
				next.ServeHTTP(w, r)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			if settings.Store == rateLimitStoreMemory {
				a.allowLocal(w, r, next, key)

				return
			}

			count, err := a.cache.Incr(r.Context(), key, settings.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable, using in-process limiter")
				a.allowLocal(w, r, next, key)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(settings.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(settings.MaxRequests)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(settings.WindowSeconds))

			if count > int64(settings.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) allowLocal(w http.ResponseWriter, r *http.Request, next http.Handler, key string) {
	if !a.limiter.allow(key) {
		response.WithRequestLimitExceeded(w)

		return
	}

	next.ServeHTTP(w, r)
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For may hold a chain, the first entry is the client
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}

// localLimiter is a per-key token bucket kept in process memory. A bucket idle for a full
// window has refilled to its burst, so dropping it changes no decision.
type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*localEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(maxRequests, windowSeconds int) *localLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}

	if windowSeconds <= 0 {
		windowSeconds = 1
	}

	window := time.Duration(windowSeconds) * time.Second

	return &localLimiter{
		entries: make(map[string]*localEntry),
		limit:   rate.Every(window / time.Duration(maxRequests)),
		burst:   maxRequests,
		idle:    max(window, time.Minute),
		now:     time.Now,
	}
}

func (l *localLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}

	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (l *localLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= l.idle {
			delete(l.entries, key)
		}
	}

	l.lastSweep = now
}
