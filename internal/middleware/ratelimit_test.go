package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2"))
}

func TestRateLimiter_RefillsAfterInterval(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	rl := &RateLimiter{visitors: map[string]*visitor{}, rate: 1, interval: time.Minute, now: func() time.Time { return now }}

	ok, _ := rl.allow("ip")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, wait := rl.allow("ip")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, wait)

	now = now.Add(41 * time.Second)
	ok, _ = rl.allow("ip")
	assert.True(t, ok)
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	r := gin.New()
	r.PUT("/uploads/put/:key", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, serve(r, httptest.NewRequest(http.MethodPut, "/uploads/put/a", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodPut, "/uploads/put/a", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
