package audio

import (
	"context"
	"fmt"

	"codeberg.org/snonux/voxlate/internal/breaker"
	"github.com/sony/gobreaker"
)

// BreakerProvider guards a Provider with a circuit breaker
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a breaker using cfg
func NewBreakerProvider(provider Provider, cfg breaker.Config) *BreakerProvider {
	return &BreakerProvider{
		provider: provider,
		cb:       breaker.New("speech-"+provider.Name(), cfg),
	}
}

// Synthesize calls the wrapped provider unless the breaker is open
func (b *BreakerProvider) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Synthesize(ctx, text, langCode)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%s speech service unavailable after repeated failures: %w", b.provider.Name(), err)
		}
		return nil, err
	}
	return out.([]byte), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// IsAvailable delegates to the wrapped provider
func (b *BreakerProvider) IsAvailable() error {
	return b.provider.IsAvailable()
}
