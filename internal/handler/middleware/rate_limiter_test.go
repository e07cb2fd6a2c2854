//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	commonhttp "hotel-reservation/tests/common/httptest"
)

func newLimitedRouter(rl *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func hit(r *gin.Engine, ip string) int {
	return hitRecorder(r, ip).Code
}

func hitRecorder(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("burst then 429", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		rl := middleware.NewRateLimiter(config.RateLimitConfig{PerMinute: 60, Burst: 2, IdleTTL: time.Minute}, clk)
		r := newLimitedRouter(rl)

		assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1"))
		assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1"))
		limited := hitRecorder(r, "10.0.0.1")
		commonhttp.AssertErrorResponse(t, limited, http.StatusTooManyRequests, "Too many requests")
		commonhttp.AssertHeaders(t, limited, map[string]string{"Retry-After": "60"})

		// other clients keep their own bucket
		assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.2"))

		clk.Add(time.Second)
		assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1"))
	})

	t.Run("idle visitors are pruned", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		rl := middleware.NewRateLimiter(config.RateLimitConfig{PerMinute: 60, Burst: 5, IdleTTL: time.Minute}, clk)
		r := newLimitedRouter(rl)

		hit(r, "10.0.0.1")
		hit(r, "10.0.0.2")
		assert.Equal(t, 2, rl.Visitors())

		clk.Add(2 * time.Minute)
		hit(r, "10.0.0.3")
		assert.Equal(t, 1, rl.Visitors())
	})
}
