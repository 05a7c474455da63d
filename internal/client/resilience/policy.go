package resilience

import "context"

// Policy объединяет автомат и повтор для одного удаленного сервиса.
// Чтения повторяются, записи выполняются ровно один раз.
type Policy struct {
	breaker *Breaker
	retry   *Retry
}

// NewPolicy создает политику с заданными настройками.
func NewPolicy(name string, breaker BreakerConfig, retry RetryConfig) *Policy {
	return &Policy{
		breaker: NewBreaker(name, breaker),
		retry:   NewRetry(name, retry),
	}
}

// Read выполняет идемпотентный вызов: с повтором внутри автомата.
func (p *Policy) Read(ctx context.Context, fn func() error) error {
	return p.breaker.Do(ctx, func() error {
		return p.retry.Do(ctx, fn)
	})
}

// Write выполняет неидемпотентный вызов один раз, но через автомат.
func (p *Policy) Write(ctx context.Context, fn func() error) error {
	return p.breaker.Do(ctx, fn)
}

// Breaker возвращает автомат политики.
func (p *Policy) Breaker() *Breaker {
	return p.breaker
}
