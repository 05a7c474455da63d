package grpc

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"elevennote/internal/notes/ports/services"
	"elevennote/pkg/logger"
)

// Ключи metadata.
const (
	AuthorizationHeader = "authorization"
	RequestIDHeader     = "x-request-id"
	bearerPrefix        = "Bearer "
)

type ownerKey struct{}

// WithOwnerID кладет ID владельца в контекст.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerIDFromContext достает ID владельца, положенный AuthUnaryInterceptor.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)
	return ownerID, ok && ownerID != ""
}

// LoggerUnaryInterceptor кладет в контекст logger и request_id и пишет итог каждого вызова.
func LoggerUnaryInterceptor(base *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var requestID string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(RequestIDHeader); len(values) > 0 {
				requestID = values[0]
			}
		}
		ctx = logger.NewRequestIDContext(ctx, requestID)
		ctx = logger.NewContext(ctx, base)

		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("grpc_method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			base.Warn(ctx, "gRPC request failed", fields...)
		} else {
			base.Info(ctx, "gRPC request handled", fields...)
		}
		return resp, err
	}
}

// AuthUnaryInterceptor проверяет токен из metadata и кладет ID владельца в контекст.
func AuthUnaryInterceptor(identity services.IdentityProvider) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		token, err := ExtractToken(ctx)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		ownerID, err := identity.CurrentUserID(ctx, token)
		if err != nil {
			logger.Log(ctx).Debug(ctx, "token rejected", zap.String("grpc_method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}

		return handler(WithOwnerID(ctx, ownerID), req)
	}
}

// ExtractToken достает токен из заголовка authorization. Префикс Bearer необязателен.
func ExtractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrMetadataNotFound
	}

	values := md.Get(AuthorizationHeader)
	if len(values) == 0 {
		return "", ErrAuthHeaderNotFound
	}

	token := strings.TrimSpace(strings.TrimPrefix(values[0], bearerPrefix))
	if token == "" {
		return "", ErrInvalidAuthFormat
	}
	return token, nil
}
