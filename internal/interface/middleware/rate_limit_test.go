package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(rdb *redis.Client, max int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimit(rdb, max, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	r := rateLimitedRouter(rdb, 3)

	for i := 0; i < 3; i++ {
		w := hit(r)
		require.Equal(t, http.StatusOK, w.Code, "request %d within the limit", i+1)
	}

	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimit_RemainingNeverNegative(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	r := rateLimitedRouter(rdb, 2)

	var w *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		w = hit(r)
		assert.NotEqual(t, "-", w.Header().Get("X-RateLimit-Remaining")[:1],
			"remaining header must not go negative")
	}
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	r := rateLimitedRouter(nil, 1)
	for i := 0; i < 5; i++ {
		w := hit(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_FailsOpenOnRedisError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	r := rateLimitedRouter(rdb, 1)
	require.Equal(t, http.StatusOK, hit(r).Code)

	// Redis going away must not lock anyone out.
	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r).Code)
	}
}
