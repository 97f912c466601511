// Package dashboard holds the view state a client renders: the latest search,
// whether a resolution is pending, and the bundle to display.
//
// Searches resolve concurrently. Each one is tagged with a generation number
// when it starts, and only the newest generation may update the visible
// state, so a slow older search can never overwrite a newer result.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-dashboard/internal/notification"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrInvalidQuery is returned by Search for queries that are too short.
	ErrInvalidQuery = errors.New("invalid location query")
	// ErrClosed is returned by Search after Close.
	ErrClosed = errors.New("dashboard closed")
)

var validate = validator.New()

// Resolver is the weather lookup the dashboard drives.
type Resolver interface {
	Resolve(ctx context.Context, query string) (weather.Bundle, error)
}

// StaleRecorder is told about discarded out-of-date results.
type StaleRecorder interface {
	ObserveStale()
}

// Config tunes a Dashboard.
type Config struct {
	// MinQueryLength is the minimum number of characters after trimming.
	MinQueryLength int
	// SlowLoadingAfter is how long a search may stay pending without any
	// data on screen before a still-loading notification is sent (0 = never).
	SlowLoadingAfter time.Duration
	Stale            StaleRecorder
}

// State is a point-in-time copy of what the client should render.
type State struct {
	Query string `json:"query"`
	// Pending is true while the latest search is unresolved; clients render
	// placeholders while it is set.
	Pending bool `json:"pending"`
	// Generation is the latest search issued; Applied is the one on screen.
	Generation uint64            `json:"generation"`
	Applied    uint64            `json:"applied"`
	Bundle     *weather.Bundle   `json:"bundle,omitempty"`
	Error      string            `json:"error,omitempty"`
	ChartMode  weather.ChartMode `json:"chartMode"`
}

// Dashboard owns the view state.
type Dashboard struct {
	resolver Resolver
	notifier weather.Notifier
	stale    StaleRecorder

	minQueryLength int
	slowAfter      time.Duration

	latest atomic.Uint64
	wg     sync.WaitGroup

	mu        sync.RWMutex
	state     State
	slowTimer *time.Timer
	closed    bool
}

// New creates a Dashboard. A nil notifier discards notifications.
func New(resolver Resolver, notifier weather.Notifier, cfg Config) *Dashboard {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = 2
	}
	if notifier == nil {
		notifier = weather.NotifierFunc(func(notification.Notification) {})
	}
	return &Dashboard{
		resolver:       resolver,
		notifier:       notifier,
		stale:          cfg.Stale,
		minQueryLength: cfg.MinQueryLength,
		slowAfter:      cfg.SlowLoadingAfter,
		state:          State{ChartMode: weather.ChartTemperature},
	}
}

// Search validates query and starts resolving it in the background. It
// returns the generation assigned to the search.
func (d *Dashboard) Search(query string) (uint64, error) {
	trimmed := strings.TrimSpace(query)
	if err := validate.Var(trimmed, fmt.Sprintf("required,min=%d", d.minQueryLength)); err != nil {
		d.notifier.Notify(notification.InvalidSearch(query, d.minQueryLength))
		return 0, fmt.Errorf("%w: %q must be at least %d characters", ErrInvalidQuery, trimmed, d.minQueryLength)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, ErrClosed
	}
	gen := d.latest.Add(1)
	d.state.Query = trimmed
	d.state.Pending = true
	d.state.Generation = gen
	d.armSlowTimer(gen)
	d.wg.Add(1)
	d.mu.Unlock()

	go d.run(gen, trimmed)
	return gen, nil
}

// Refresh re-runs the current query, if any.
func (d *Dashboard) Refresh() (uint64, error) {
	d.mu.RLock()
	q := d.state.Query
	d.mu.RUnlock()

	if q == "" {
		return 0, nil
	}
	return d.Search(q)
}

// Latest returns the newest generation issued.
func (d *Dashboard) Latest() uint64 {
	return d.latest.Load()
}

func (d *Dashboard) run(gen uint64, query string) {
	defer d.wg.Done()

	// In-flight resolutions always run to completion.
	b, err := d.resolver.Resolve(context.Background(), query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.latest.Load() {
		log.Printf("DEBUG: discarding result of search %d (%q); latest is %d", gen, query, d.latest.Load())
		if d.stale != nil {
			d.stale.ObserveStale()
		}
		return
	}

	d.state.Pending = false
	d.stopSlowTimer()

	if err != nil {
		// Keep whatever is on screen; surface the error state.
		log.Printf("ERROR: search %d (%q) failed: %v", gen, query, err)
		d.state.Error = err.Error()
		return
	}

	d.state.Bundle = &b
	d.state.Applied = gen
	d.state.Error = ""
}

// armSlowTimer must be called with mu held.
func (d *Dashboard) armSlowTimer(gen uint64) {
	d.stopSlowTimer()
	if d.slowAfter <= 0 {
		return
	}
	d.slowTimer = time.AfterFunc(d.slowAfter, func() {
		d.mu.RLock()
		slow := d.latest.Load() == gen && d.state.Pending && d.state.Bundle == nil
		d.mu.RUnlock()
		if slow {
			d.notifier.Notify(notification.StillLoading())
		}
	})
}

// stopSlowTimer must be called with mu held.
func (d *Dashboard) stopSlowTimer() {
	if d.slowTimer != nil {
		d.slowTimer.Stop()
		d.slowTimer = nil
	}
}

// State returns a copy of the current view state.
func (d *Dashboard) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := d.state
	if s.Bundle != nil {
		b := s.Bundle.Clone()
		s.Bundle = &b
	}
	return s
}

// SetChartMode switches the chart toggle.
func (d *Dashboard) SetChartMode(mode weather.ChartMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ChartMode = mode
}

// Chart returns the toggled mode and its trend series. While pending, or
// before any data has arrived, the series is a zero-valued placeholder of
// HoursPerDay points.
func (d *Dashboard) Chart() (weather.ChartMode, []weather.TrendPoint) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	mode := d.state.ChartMode
	if d.state.Pending || d.state.Bundle == nil {
		return mode, placeholderSeries()
	}
	series := d.state.Bundle.Trends.Series(mode)
	if len(series) == 0 {
		return mode, placeholderSeries()
	}
	out := make([]weather.TrendPoint, len(series))
	copy(out, series)
	return mode, out
}

func placeholderSeries() []weather.TrendPoint {
	out := make([]weather.TrendPoint, weather.HoursPerDay)
	for h := range out {
		out[h] = weather.TrendPoint{Time: fmt.Sprintf("%d:00", h)}
	}
	return out
}

// Wait blocks until every in-flight search has completed.
func (d *Dashboard) Wait() {
	d.wg.Wait()
}

// Close rejects further searches, stops the slow-loading timer and waits for
// in-flight searches.
func (d *Dashboard) Close() {
	d.mu.Lock()
	d.closed = true
	d.stopSlowTimer()
	d.mu.Unlock()

	d.wg.Wait()
}
