package providers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrCircuitOpen is returned while the breaker rejects lookups.
var ErrCircuitOpen = errors.New("circuit breaker open")

// BreakerConfig controls when the breaker trips and how it recovers.
type BreakerConfig struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset (0 = never).
	Interval time.Duration
	// Timeout the breaker stays open before going half-open.
	Timeout time.Duration
	// MaxConsecutiveFailures trips the breaker.
	MaxConsecutiveFailures uint32
}

// DefaultBreakerConfig mirrors the settings used for upstream providers.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                   "weather-source",
		MaxRequests:            5,
		Interval:               1 * time.Minute,
		Timeout:                2 * time.Minute,
		MaxConsecutiveFailures: 5,
	}
}

// BreakerSource guards a weather.DataSource with a circuit breaker. A miss
// (weather.ErrLocationNotFound) counts as a healthy answer; only real
// failures move the breaker toward open. Lookups are never retried.
type BreakerSource struct {
	next    weather.DataSource
	circuit *gobreaker.CircuitBreaker
}

// NewBreakerSource wraps next.
func NewBreakerSource(next weather.DataSource, cfg BreakerConfig) *BreakerSource {
	maxFailures := cfg.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("WARN: circuit %s changed from %s to %s", name, from, to)
		},
	})

	return &BreakerSource{next: next, circuit: cb}
}

// Find implements weather.DataSource.
func (s *BreakerSource) Find(ctx context.Context, key string) (weather.Bundle, error) {
	var miss error

	result, err := s.circuit.Execute(func() (interface{}, error) {
		b, err := s.next.Find(ctx, key)
		if errors.Is(err, weather.ErrLocationNotFound) {
			miss = err
			return weather.Bundle{}, nil
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	})

	if err != nil {
		// If circuit is open, fail fast without touching the source.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return weather.Bundle{}, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return weather.Bundle{}, err
	}
	if miss != nil {
		return weather.Bundle{}, miss
	}

	b, ok := result.(weather.Bundle)
	if !ok {
		return weather.Bundle{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return b, nil
}

// State reports the breaker state.
func (s *BreakerSource) State() gobreaker.State {
	return s.circuit.State()
}
