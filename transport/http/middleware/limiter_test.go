package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookly/config"
	"bookly/infras/otel/mocks"
	"bookly/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimited(t *testing.T, enable bool, maxRequests int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	mw := NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()))

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mw.RateLimit()(ok), server
}

func TestRateLimit(t *testing.T) {
	handler, _ := newLimited(t, true, 2)

	codes := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/public/barber-joe", nil)
		req.RemoteAddr = "203.0.113.7:5123"

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		codes = append(codes, recorder.Code)

		if recorder.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", recorder.Header().Get("Retry-After"))
			assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_ClientsAreIndependent(t *testing.T) {
	handler, _ := newLimited(t, true, 1)

	for _, ip := range []string{"203.0.113.7", "203.0.113.8"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/public/barber-joe", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code, ip)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler, _ := newLimited(t, false, 0)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_CacheDownAllowsTraffic(t *testing.T) {
	handler, server := newLimited(t, true, 1)
	server.Close()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetClientIP(t *testing.T) {
	mw := &appMiddleware{}

	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{name: "forwarded chain", header: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, want: "198.51.100.1"},
		{name: "real ip", header: map[string]string{"X-Real-IP": " 198.51.100.2 "}, want: "198.51.100.2"},
		{name: "remote addr without port", remote: "198.51.100.3:4000", want: "198.51.100.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}

			assert.Equal(t, tt.want, mw.getClientIP(req))
		})
	}
}
