// Package resilience защищает вызовы клиента к сервису заметок:
// автомат размыкания цепи и повтор чтений с экспоненциальной задержкой.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"elevennote/pkg/logger"
)

// BreakerState - состояние автомата.
type BreakerState int

// Состояния автомата.
const (
	// BreakerClosed - вызовы проходят.
	BreakerClosed BreakerState = iota
	// BreakerOpen - вызовы отклоняются до истечения Cooldown.
	BreakerOpen
	// BreakerHalfOpen - пробные вызовы.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogBreakerTripped  = "circuit breaker tripped"
	LogBreakerReset    = "circuit breaker reset"
	LogBreakerHalfOpen = "circuit breaker half-open"
	LogBreakerRejected = "circuit breaker rejected call"
)

// ErrBreakerOpen возвращается, пока цепь разомкнута.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// BreakerConfig - настройки автомата.
type BreakerConfig struct {
	// FailureThreshold - сколько ошибок подряд размыкают цепь.
	FailureThreshold int
	// Cooldown - через сколько разомкнутая цепь пропускает пробный вызов.
	Cooldown time.Duration
	// SuccessThreshold - сколько удачных пробных вызовов замыкают цепь.
	SuccessThreshold int
	// IsFailure решает, считается ли ошибка отказом сервиса. nil - любая ошибка.
	IsFailure func(error) bool
}

// DefaultBreakerConfig возвращает настройки по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Cooldown:         10 * time.Second,
		SuccessThreshold: 2,
	}
}

// Breaker - автомат размыкания цепи.
type Breaker struct {
	name string
	cfg  BreakerConfig
	now  func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	changedAt time.Time
}

// NewBreaker создает замкнутый автомат.
func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	return &Breaker{name: name, cfg: cfg, now: time.Now, changedAt: time.Now()}
}

// Do выполняет fn, если цепь это позволяет, и учитывает результат.
func (b *Breaker) Do(ctx context.Context, fn func() error) error {
	if !b.allow(ctx) {
		return ErrBreakerOpen
	}
	err := fn()
	b.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != BreakerOpen {
		return true
	}

	log := logger.Log(ctx).With(zap.String("breaker", b.name))
	if b.now().Sub(b.changedAt) < b.cfg.Cooldown {
		log.Debug(ctx, LogBreakerRejected)
		return false
	}

	b.moveTo(BreakerHalfOpen)
	log.Info(ctx, LogBreakerHalfOpen)
	return true
}

func (b *Breaker) record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("breaker", b.name))

	if err != nil && b.isFailure(err) {
		b.failures++
		if b.state == BreakerHalfOpen || b.failures >= b.cfg.FailureThreshold {
			if b.state != BreakerOpen {
				log.Warn(ctx, LogBreakerTripped, zap.Int("failures", b.failures), zap.Error(err))
			}
			b.moveTo(BreakerOpen)
		}
		return
	}

	switch b.state {
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.moveTo(BreakerClosed)
			log.Info(ctx, LogBreakerReset)
		}
	default:
		b.failures = 0
	}
}

func (b *Breaker) isFailure(err error) bool {
	if b.cfg.IsFailure == nil {
		return true
	}
	return b.cfg.IsFailure(err)
}

// moveTo вызывается под b.mu.
func (b *Breaker) moveTo(s BreakerState) {
	b.state = s
	b.changedAt = b.now()
	b.failures = 0
	b.successes = 0
}
