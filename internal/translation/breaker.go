package translation

import (
	"context"
	"fmt"

	"codeberg.org/snonux/voxlate/internal/breaker"
	"github.com/sony/gobreaker"
)

// BreakerModel guards a Model with a circuit breaker
type BreakerModel struct {
	model Model
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerModel wraps model with a breaker using cfg
func NewBreakerModel(model Model, cfg breaker.Config) *BreakerModel {
	return &BreakerModel{
		model: model,
		cb:    breaker.New("translation", cfg),
	}
}

// Generate calls the wrapped model unless the breaker is open
func (b *BreakerModel) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.model.Generate(ctx, prompt, temperature)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("language model unavailable after repeated failures: %w", err)
		}
		return "", err
	}
	return out.(string), nil
}
