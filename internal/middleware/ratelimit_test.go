package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketr/internal/config"
)

func rateTestConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
}

func doPOST(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func TestTokenBucketRejectsOverCapacity(t *testing.T) {
	_, rdb := newTestRedis(t)
	e := echo.New()
	e.POST("/v1/events", okHandler, NewTokenBucket(rateTestConfig(2), rdb))

	// the refill interval is long, so the bucket holds exactly capacity
	require.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)
	require.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)

	rec := doPOST(e, "/v1/events")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucketBucketsPerRoute(t *testing.T) {
	_, rdb := newTestRedis(t)
	e := echo.New()
	limiter := NewTokenBucket(rateTestConfig(1), rdb)
	e.POST("/v1/events", okHandler, limiter)
	e.POST("/v1/events/:id/tickets", okHandler, limiter)

	require.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPOST(e, "/v1/events").Code)

	// a different route has its own bucket
	assert.Equal(t, http.StatusOK, doPOST(e, "/v1/events/1/tickets").Code)
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
	mr, rdb := newTestRedis(t)
	e := echo.New()
	e.POST("/v1/events", okHandler, NewTokenBucket(rateTestConfig(1), rdb))
	mr.Close()

	// an unreachable redis must never take the API down
	assert.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)
	assert.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)
}

func TestTokenBucketDisabledIsPassthrough(t *testing.T) {
	_, rdb := newTestRedis(t)
	e := echo.New()
	e.POST("/v1/events", okHandler, NewTokenBucket(config.RateLimitConfig{}, rdb))

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, doPOST(e, "/v1/events").Code)
	}
}
