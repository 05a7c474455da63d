// Package services defines service interfaces for the notes service.
package services

import (
	"context"
	"errors"
)

// IdentityProvider определяет текущего пользователя по токену доступа.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context, token string) (string, error)
}

// Ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	ErrExpiredJWTToken = errors.New("JWT token has expired")
)
