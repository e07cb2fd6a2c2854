package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/errs"
)

var errRateLimited = errs.New("rate limit exceeded")

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle longer than
// the configured TTL are dropped on the next request.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	clock     clock.Clock
	lastPrune time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, clk clock.Clock) *RateLimiter {
	perMinute := max(cfg.PerMinute, 1)
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(cfg.Burst, 1),
		idleTTL:  cfg.IdleTTL,
		clock:    clk,
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.allow(ip) {
			slog.Warn("Rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				"Too many requests. Try again later.", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.pruneLocked(now)

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (r *RateLimiter) pruneLocked(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastPrune) < r.idleTTL {
		return
	}
	r.lastPrune = now
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.visitors, ip)
		}
	}
}

func (r *RateLimiter) Visitors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}
