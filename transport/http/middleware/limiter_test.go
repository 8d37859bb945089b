package middleware

import (
	"net/http"
	"net/http/httptest"
	"salon/config"
	otelMocks "salon/infras/otel/mocks"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/metrics"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimited(t *testing.T, maxRequests int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	app := NewAppMiddleware(otelMocks.NewOtel(), cfg, cache.NewRedisCache(client, otelMocks.NewOtel()), metrics.New(cfg))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	return app.RateLimit()(ok), mr
}

func TestRateLimit(t *testing.T) {
	handler, _ := newLimited(t, 2)

	codes := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.RemoteAddr = "10.0.0.7:51000"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		}
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	other.RemoteAddr = "10.0.0.8:51000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimit_RedisDownFallsBackToLocalBucket(t *testing.T) {
	handler, mr := newLimited(t, 1)
	mr.Close()

	codes := make([]int, 0, 2)

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestLocalLimiter(t *testing.T) {
	local := newLocalLimiter(2, 60)

	assert.True(t, local.allow("a"))
	assert.True(t, local.allow("a"))
	assert.False(t, local.allow("a"))
	assert.True(t, local.allow("b"))

	local.reset()
	assert.True(t, local.allow("a"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{constant.RequestHeaderForwardedFor: "203.0.113.9, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.9"},
		{"real ip", map[string]string{constant.RequestHeaderRealIP: " 198.51.100.4 "}, "10.0.0.1:80", "198.51.100.4"},
		{"socket", nil, "192.0.2.10:4431", "192.0.2.10"},
		{"socket without port", nil, "192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
