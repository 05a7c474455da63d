package services_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"elevennote/internal/notes/adapters/services"
	portservices "elevennote/internal/notes/ports/services"
	"elevennote/pkg/db/redis"
)

const secretKey = "test-secret-key"

func signed(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTIdentity_CurrentUserID(t *testing.T) {
	ctx := context.Background()
	identity := services.NewJWTIdentity(secretKey)

	t.Run("valid token", func(t *testing.T) {
		token, err := services.SignToken(secretKey, "user-123", "alice", time.Hour, time.Now())
		require.NoError(t, err)

		userID, err := identity.CurrentUserID(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := services.SignToken(secretKey, "user-123", "", time.Hour, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = identity.CurrentUserID(ctx, token)

		require.ErrorIs(t, err, portservices.ErrExpiredJWTToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := services.SignToken("other-secret", "user-123", "", time.Hour, time.Now())
		require.NoError(t, err)

		_, err = identity.CurrentUserID(ctx, token)

		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := identity.CurrentUserID(ctx, "not-a-jwt")

		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("empty user id claim", func(t *testing.T) {
		token := signed(t, &services.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		}, jwt.SigningMethodHS256, []byte(secretKey))

		_, err := identity.CurrentUserID(ctx, token)

		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("non hmac algorithm", func(t *testing.T) {
		token := signed(t, &services.Claims{UserID: "user-123"}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

		_, err := identity.CurrentUserID(ctx, token)

		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) CurrentUserID(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := redis.DefaultConfig()
	cfg.Host = mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg.Port = port

	client, err := redis.NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		mr, client := newRedis(t)
		next := new(mockIdentity)
		next.On("CurrentUserID", mock.Anything, "tok").Return("user-1", nil).Once()
		cached := services.NewCachedIdentity(next, client, time.Minute)

		first, err := cached.CurrentUserID(ctx, "tok")
		require.NoError(t, err)
		second, err := cached.CurrentUserID(ctx, "tok")
		require.NoError(t, err)

		assert.Equal(t, "user-1", first)
		assert.Equal(t, "user-1", second)
		next.AssertExpectations(t)

		key := services.IdentityCacheKey("tok")
		assert.True(t, mr.Exists(key))
		assert.NotContains(t, key, "tok")
		assert.Equal(t, time.Minute, mr.TTL(key))
	})

	t.Run("entries expire", func(t *testing.T) {
		mr, client := newRedis(t)
		next := new(mockIdentity)
		next.On("CurrentUserID", mock.Anything, "tok").Return("user-1", nil).Twice()
		cached := services.NewCachedIdentity(next, client, time.Minute)

		_, err := cached.CurrentUserID(ctx, "tok")
		require.NoError(t, err)
		mr.FastForward(2 * time.Minute)
		_, err = cached.CurrentUserID(ctx, "tok")
		require.NoError(t, err)

		next.AssertExpectations(t)
	})

	t.Run("ttl is capped by token expiry", func(t *testing.T) {
		mr, client := newRedis(t)
		token, err := services.SignToken(secretKey, "user-9", "", 30*time.Second, time.Now())
		require.NoError(t, err)
		cached := services.NewCachedIdentity(services.NewJWTIdentity(secretKey), client, time.Hour)

		userID, err := cached.CurrentUserID(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, "user-9", userID)
		ttl := mr.TTL(services.IdentityCacheKey(token))
		assert.LessOrEqual(t, ttl, 30*time.Second)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		mr, client := newRedis(t)
		next := new(mockIdentity)
		next.On("CurrentUserID", mock.Anything, "bad").Return("", portservices.ErrInvalidJWTToken).Twice()
		cached := services.NewCachedIdentity(next, client, time.Minute)

		_, err := cached.CurrentUserID(ctx, "bad")
		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
		_, err = cached.CurrentUserID(ctx, "bad")
		require.ErrorIs(t, err, portservices.ErrInvalidJWTToken)

		assert.False(t, mr.Exists(services.IdentityCacheKey("bad")))
		next.AssertExpectations(t)
	})

	t.Run("cache outage falls through", func(t *testing.T) {
		mr, client := newRedis(t)
		mr.Close()
		next := new(mockIdentity)
		next.On("CurrentUserID", mock.Anything, "tok").Return("user-1", nil).Once()
		cached := services.NewCachedIdentity(next, client, time.Minute)

		userID, err := cached.CurrentUserID(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})
}

var errUnexpected = errors.New("unexpected")

func TestCachedIdentity_PropagatesNextError(t *testing.T) {
	_, client := newRedis(t)
	next := new(mockIdentity)
	next.On("CurrentUserID", mock.Anything, "tok").Return("", errUnexpected).Once()

	_, err := services.NewCachedIdentity(next, client, time.Minute).CurrentUserID(context.Background(), "tok")

	require.ErrorIs(t, err, errUnexpected)
}
