package middleware

import (
	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"

	"elevennote/pkg/logger"
)

// Значения по умолчанию для ограничителя.
const (
	defaultRPS   = 100
	defaultBurst = 10
)

// NewRateLimitMiddleware ограничивает общий поток запросов: rps в секунду и всплески до burst.
func NewRateLimitMiddleware(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c fiber.Ctx) error {
		if !limiter.Allow() {
			requestCtx := UserContext(c)
			logger.Log(requestCtx).Warn(requestCtx, "rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too Many Requests"})
		}
		return c.Next()
	}
}
