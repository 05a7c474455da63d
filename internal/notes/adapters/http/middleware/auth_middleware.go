package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"elevennote/internal/notes/ports/services"
	"elevennote/pkg/logger"
)

// Сообщения аутентификации.
const (
	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware проверяет Bearer токен и кладет ID владельца в Locals.
func NewAuthMiddleware(identity services.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := UserContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(c, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(c, ErrorInvalidTokenFormat)
		}

		ownerID, err := identity.CurrentUserID(requestCtx, strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(c, ErrorInvalidToken)
		}

		c.Locals(LocalOwnerID, ownerID)
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
