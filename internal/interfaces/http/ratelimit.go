package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

const limiterCleanupEvery = 5 * time.Minute

// ipLimiter token bucket por IP del cliente.
type ipLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	lastCleanup time.Time
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastCleanup) >= limiterCleanupEvery {
		// Un bucket lleno lleva tiempo sin usarse.
		for k, lim := range l.limiters {
			if lim.Tokens() >= float64(l.burst) {
				delete(l.limiters, k)
			}
		}
		l.lastCleanup = time.Now()
	}

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// RateLimitByIP limita a requestsPerMinute por IP con ráfaga burst.
// Responde 429 RATE_LIMITED con Retry-After.
func RateLimitByIP(requestsPerMinute, burst int) fiber.Handler {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	l := &ipLimiter{
		limiters:    make(map[string]*rate.Limiter),
		rate:        rate.Limit(float64(requestsPerMinute) / time.Minute.Seconds()),
		burst:       burst,
		lastCleanup: time.Now(),
	}
	return func(c *fiber.Ctx) error {
		lim := l.get(c.IP())
		if lim.Allow() {
			return c.Next()
		}
		res := lim.Reserve()
		delay := res.Delay()
		res.Cancel()

		retryAfter := max(int(delay.Seconds()), 1)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:  "RATE_LIMITED",
			Error: "demasiadas peticiones, intente más tarde",
		})
	}
}
