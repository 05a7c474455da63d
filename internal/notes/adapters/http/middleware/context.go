// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи fiber Locals.
const (
	LocalUserContext = "userContext"
	LocalOwnerID     = "ownerID"
)

// UserContext возвращает контекст запроса с logger и request_id, положенный LoggerMiddleware.
func UserContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalUserContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// OwnerID возвращает ID владельца, положенный AuthMiddleware.
func OwnerID(c fiber.Ctx) (string, bool) {
	ownerID, ok := c.Locals(LocalOwnerID).(string)
	return ownerID, ok && ownerID != ""
}
