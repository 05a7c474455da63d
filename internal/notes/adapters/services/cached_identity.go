package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"elevennote/internal/notes/ports/services"
	"elevennote/pkg/logger"
)

// Префикс ключей кеша идентификации.
const identityKeyPrefix = "identity:"

const (
	methodCachedCurrentUserID = "CachedIdentity.CurrentUserID"
	msgIdentityCacheHit       = "identity cache hit"
	msgIdentityCacheReadFail  = "identity cache read failed"
	msgIdentityCacheWriteFail = "identity cache write failed"
)

// Cache - хранилище строк с TTL, например *redis.Client из pkg/db/redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// CachedIdentity запоминает результат next для токена на ttl, но не дольше срока жизни токена.
// Кешируется только соответствие токена пользователю, сами заметки никогда.
// Ошибки кеша не мешают проверке: запрос уходит в next.
type CachedIdentity struct {
	next  services.IdentityProvider
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

var _ services.IdentityProvider = (*CachedIdentity)(nil)

// NewCachedIdentity оборачивает next кешем.
func NewCachedIdentity(next services.IdentityProvider, cache Cache, ttl time.Duration) *CachedIdentity {
	return &CachedIdentity{
		next:  next,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// CurrentUserID возвращает пользователя из кеша или из next.
func (c *CachedIdentity) CurrentUserID(ctx context.Context, token string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCachedCurrentUserID))
	key := IdentityCacheKey(token)

	userID, found, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, msgIdentityCacheReadFail, zap.Error(err))
	case found && userID != "":
		log.Debug(ctx, msgIdentityCacheHit)
		return userID, nil
	}

	userID, err = c.next.CurrentUserID(ctx, token)
	if err != nil {
		return "", err
	}

	if ttl := c.entryTTL(token); ttl > 0 {
		if err := c.cache.Set(ctx, key, userID, ttl); err != nil {
			log.Warn(ctx, msgIdentityCacheWriteFail, zap.Error(err))
		}
	}
	return userID, nil
}

func (c *CachedIdentity) entryTTL(token string) time.Duration {
	ttl := c.ttl
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return ttl
	}
	if left := claims.ExpiresAt.Sub(c.now()); left < ttl {
		ttl = left
	}
	return ttl
}

// IdentityCacheKey строит ключ кеша из SHA-256 токена. Сам токен в Redis не хранится.
func IdentityCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return identityKeyPrefix + hex.EncodeToString(sum[:])
}
