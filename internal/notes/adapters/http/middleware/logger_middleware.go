package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"elevennote/pkg/logger"
)

// RequestIDHeader - заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// NewLoggerMiddleware кладет logger и request_id в контекст запроса и пишет итог запроса.
func NewLoggerMiddleware(base *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(c.Context(), c.Get(RequestIDHeader))
		requestCtx = logger.NewContext(requestCtx, base)
		c.Locals(LocalUserContext, requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			c.Set(RequestIDHeader, id)
		}

		start := time.Now()
		log := base.With(
			zap.String("path", c.Path()),
			zap.String("http_method", c.Method()),
			zap.String("ip", c.IP()),
		)

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Error(requestCtx, "request failed", append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, "request completed", fields...)
		return nil
	}
}
