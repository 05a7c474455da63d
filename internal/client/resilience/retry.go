package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"elevennote/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt   = "retrying call"
	LogRetrySucceeded = "call succeeded after retry"
	LogRetryExhausted = "retry attempts exhausted"
)

// ErrRetryCanceled возвращается, если контекст отменили во время ожидания.
var ErrRetryCanceled = errors.New("context canceled while waiting to retry")

// RetryConfig - настройки повтора.
type RetryConfig struct {
	// MaxAttempts включает первую попытку.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// Retryable решает, стоит ли повторять вызов после ошибки.
	Retryable func(error) bool
}

// DefaultRetryConfig возвращает настройки по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     2,
		Retryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}
}

// Retry повторяет вызов с экспоненциальной задержкой.
type Retry struct {
	name string
	cfg  RetryConfig
}

// NewRetry создает механизм повтора.
func NewRetry(name string, cfg RetryConfig) *Retry {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Retry{name: name, cfg: cfg}
}

// Do выполняет fn до MaxAttempts раз.
func (r *Retry) Do(ctx context.Context, fn func() error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))
	backoff := r.cfg.InitialBackoff

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySucceeded, zap.Int("attempts", attempt))
			}
			return nil
		}
		if r.cfg.Retryable != nil && !r.cfg.Retryable(err) {
			return err
		}
		if attempt >= r.cfg.MaxAttempts {
			log.Warn(ctx, LogRetryExhausted, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Debug(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrRetryCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * r.cfg.Multiplier)
		if backoff > r.cfg.MaxBackoff {
			backoff = r.cfg.MaxBackoff
		}
	}
}
