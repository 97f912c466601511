package weather

import (
	"context"
	"errors"

	"github.com/i474232898/weather-dashboard/internal/notification"
)

var (
	// ErrLocationNotFound is returned by a DataSource that has no data for a key.
	// Service.Resolve absorbs it by falling back to the default location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrRetrievalFailed wraps any other DataSource failure returned from Resolve.
	ErrRetrievalFailed = errors.New("weather retrieval failed")
)

// DataSource abstracts the lookup table behind the provider. Keys are
// normalized (trimmed, lowercase) location names.
type DataSource interface {
	Find(ctx context.Context, key string) (Bundle, error)
}

// Notifier receives user-facing notifications. Notify must not block.
type Notifier interface {
	Notify(n notification.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n notification.Notification)

func (f NotifierFunc) Notify(n notification.Notification) { f(n) }

// Recorder observes resolution outcomes. The metrics package implements it.
type Recorder interface {
	ObserveResolve(outcome string, seconds float64)
}

// Resolution outcomes passed to Recorder.
const (
	OutcomeHit      = "hit"
	OutcomeFallback = "fallback"
	OutcomeFailure  = "failure"
)
