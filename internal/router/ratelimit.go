package router

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/httperrors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var errRateLimited = errors.New("too many donations from your address, please try again later")

// maxLimiters bounds the number of tracked client addresses.
const maxLimiters = 10000

// RateLimiter limits requests per client IP with a token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond with
// bursts of burst requests. A rate of 0 disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}

		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}

	return limiter
}

// Handler returns the middleware. Only requests that modify resources are
// limited.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rate == 0 || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.ClientIP()
		if !rl.limiter(key).Allow() {
			log.Info().Str("request-id", requestid.Get(c)).Str("client", key).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperrors.New(errRateLimited))
			return
		}

		c.Next()
	}
}
