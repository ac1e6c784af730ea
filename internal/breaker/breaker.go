// Package breaker holds the circuit breaker settings shared by the remote
// translation and speech clients. A tripped breaker fails calls immediately
// instead of waiting on a service that keeps erroring; nothing is retried.
package breaker

import (
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultMaxFailures is the number of consecutive failures that opens the breaker
	DefaultMaxFailures uint32 = 3
	// DefaultOpenTimeout is how long an open breaker rejects calls
	DefaultOpenTimeout = 30 * time.Second
)

// Config tunes a breaker
type Config struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// DefaultConfig returns the default breaker configuration
func DefaultConfig() Config {
	return Config{
		MaxFailures: DefaultMaxFailures,
		OpenTimeout: DefaultOpenTimeout,
	}
}

// Settings returns gobreaker settings for a named remote service
func Settings(name string, cfg Config) gobreaker.Settings {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultMaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}
	maxFailures := cfg.MaxFailures

	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
}

// New creates a circuit breaker for a named remote service
func New(name string, cfg Config) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(Settings(name, cfg))
}
