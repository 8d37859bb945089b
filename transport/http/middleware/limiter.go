package middleware

import (
	"net"
	"net/http"
	"salon/shared"
	"salon/shared/constant"
	"salon/transport/http/response"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const cacheKeyRateLimit = "limiter"

// localLimiter is the per-process token bucket used while redis is unreachable. Buckets are only
// created during an outage and are dropped once redis answers again.
type localLimiter struct {
	limit   rate.Limit
	burst   int
	buckets sync.Map
	active  atomic.Bool
}

func newLocalLimiter(maxRequests, windowSeconds int) *localLimiter {
	return &localLimiter{
		limit: rate.Limit(float64(maxRequests) / float64(max(windowSeconds, 1))),
		burst: max(maxRequests, 1),
	}
}

func (l *localLimiter) allow(key string) bool {
	l.active.Store(true)

	bucket, _ := l.buckets.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))

	return bucket.(*rate.Limiter).Allow()
}

func (l *localLimiter) reset() {
	if l.active.CompareAndSwap(true, false) {
		l.buckets.Clear()
	}
}

// RateLimit counts requests per client IP and user agent in a fixed redis window shared by every
// instance. When redis fails it falls back to an in-process token bucket with the same budget.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter
	local := newLocalLimiter(limit.MaxRequests, limit.WindowSeconds)
	warn := log.Sample(&zerolog.BurstSampler{Burst: 1, Period: time.Minute})

	return func(next http.Handler) http.Handler {
		if !limit.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			count, err := a.cache.Incr(r.Context(), key, limit.WindowSeconds)
			if err != nil {
				warn.Warn().Err(err).Msg("redis rate limiter unavailable, using local buckets")

				if !local.allow(key) {
					response.WithRequestLimitExceeded(w)

					return
				}

				next.ServeHTTP(w, r)

				return
			}

			local.reset()

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limit.MaxRequests)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limit.WindowSeconds))

			if count > int64(limit.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != constant.Empty {
		return ua
	}

	return "unknown"
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if ip := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); ip != constant.Empty {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
