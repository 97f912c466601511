package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-dashboard/internal/notification"
)

const (
	// DefaultLocation is the fallback key when a query has no data.
	DefaultLocation = "new york"
	// DefaultLatency emulates a network round-trip.
	DefaultLatency = 1000 * time.Millisecond
)

// ServiceConfig tunes a Service. Zero values fall back to the defaults above,
// except Latency, where a negative value disables the delay.
type ServiceConfig struct {
	DefaultLocation string
	Latency         time.Duration
	Recorder        Recorder
}

// Service resolves free-text location queries against a DataSource.
type Service struct {
	source      DataSource
	notifier    Notifier
	recorder    Recorder
	defaultKey  string
	defaultName string
	latency     time.Duration
}

// NewService creates a new Service. A nil notifier discards notifications.
func NewService(source DataSource, notifier Notifier, cfg ServiceConfig) *Service {
	key := Normalize(cfg.DefaultLocation)
	if key == "" {
		key = DefaultLocation
	}

	latency := cfg.Latency
	switch {
	case latency == 0:
		latency = DefaultLatency
	case latency < 0:
		latency = 0
	}

	if notifier == nil {
		notifier = NotifierFunc(func(notification.Notification) {})
	}

	return &Service{
		source:      source,
		notifier:    notifier,
		recorder:    cfg.Recorder,
		defaultKey:  key,
		defaultName: cases.Title(language.English).String(key),
		latency:     latency,
	}
}

// Normalize trims surrounding whitespace and lowercases a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// DefaultLocation returns the normalized fallback key.
func (s *Service) DefaultLocation() string {
	return s.defaultKey
}

// Resolve returns the bundle for query after the simulated latency.
//
// An unknown location is not an error: the caller gets the default location's
// bundle and a location-not-found notification naming the original query.
// Any other source failure emits a retrieval-failed notification and returns
// an error wrapping ErrRetrievalFailed. Nothing is retried.
func (s *Service) Resolve(ctx context.Context, query string) (Bundle, error) {
	start := time.Now()
	key := Normalize(query)

	if err := s.wait(ctx); err != nil {
		return Bundle{}, err
	}

	b, err := s.source.Find(ctx, key)
	switch {
	case err == nil:
		s.observe(OutcomeHit, start)
		return b, nil

	case errors.Is(err, ErrLocationNotFound):
		log.Printf("INFO: no weather data for %q; falling back to %q", query, s.defaultKey)
		s.notifier.Notify(notification.LocationNotFound(query, s.defaultName))

		b, err = s.source.Find(ctx, s.defaultKey)
		if err != nil {
			return Bundle{}, s.fail(start, s.defaultKey, err)
		}
		s.observe(OutcomeFallback, start)
		return b, nil

	default:
		return Bundle{}, s.fail(start, key, err)
	}
}

func (s *Service) fail(start time.Time, key string, err error) error {
	log.Printf("ERROR: weather retrieval failed for %q: %v", key, err)
	s.notifier.Notify(notification.RetrievalFailed())
	s.observe(OutcomeFailure, start)
	return fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveResolve(outcome, time.Since(start).Seconds())
	}
}
