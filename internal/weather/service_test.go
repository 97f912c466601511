package weather_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/notification"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type recordingNotifier struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (r *recordingNotifier) Notify(n notification.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) all() []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Notification(nil), r.items...)
}

type recordingRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingRecorder) ObserveResolve(outcome string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

type failingSource struct {
	err error
}

func (f failingSource) Find(context.Context, string) (weather.Bundle, error) {
	return weather.Bundle{}, f.err
}

func newTestService(t *testing.T, source weather.DataSource) (*weather.Service, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	svc := weather.NewService(source, n, weather.ServiceConfig{Latency: -1})
	return svc, n
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "london", weather.Normalize("  LoNdOn \t"))
	assert.Equal(t, "new york", weather.Normalize("New York"))
	assert.Equal(t, "", weather.Normalize("   "))
}

func TestResolveIsCaseAndWhitespaceInsensitive(t *testing.T) {
	svc, notes := newTestService(t, store.NewSampleStore())
	ctx := context.Background()

	canonical, err := svc.Resolve(ctx, "london")
	require.NoError(t, err)

	for _, q := range []string{"London", " London ", "LONDON", "\tlondon\n"} {
		got, err := svc.Resolve(ctx, q)
		require.NoError(t, err, q)
		assert.Equal(t, canonical, got, q)
	}
	assert.Empty(t, notes.all())
}

func TestResolveTokyo(t *testing.T) {
	svc, notes := newTestService(t, store.NewSampleStore())

	b, err := svc.Resolve(context.Background(), "Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", b.Current.Location)
	assert.Len(t, b.Hourly, weather.HoursPerDay)
	assert.Len(t, b.Daily, weather.ForecastDays)
	assert.Empty(t, notes.all())
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	svc, notes := newTestService(t, store.NewSampleStore())
	ctx := context.Background()

	want, err := svc.Resolve(ctx, "new york")
	require.NoError(t, err)
	require.Empty(t, notes.all())

	got, err := svc.Resolve(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	items := notes.all()
	require.Len(t, items, 1)
	assert.Equal(t, notification.KindLocationNotFound, items[0].Kind)
	assert.Equal(t, notification.VariantDestructive, items[0].Variant)
	assert.Equal(t, "Atlantis", items[0].Query)
	assert.Contains(t, items[0].Description, "Atlantis")
	assert.Contains(t, items[0].Description, "New York")
}

func TestResolveNotFoundKeepsOriginalQueryText(t *testing.T) {
	svc, notes := newTestService(t, store.NewSampleStore())

	_, err := svc.Resolve(context.Background(), "  El Dorado ")
	require.NoError(t, err)

	items := notes.all()
	require.Len(t, items, 1)
	assert.Equal(t, "  El Dorado ", items[0].Query)
}

func TestResolveAlwaysReturnsFullSeries(t *testing.T) {
	sample := store.NewSampleStore()
	svc, _ := newTestService(t, sample)

	queries := append(sample.Keys(), "atlantis", "xx", "PARIS ")
	for _, q := range queries {
		b, err := svc.Resolve(context.Background(), q)
		require.NoError(t, err, q)
		assert.Len(t, b.Hourly, weather.HoursPerDay, q)
		assert.Len(t, b.Daily, weather.ForecastDays, q)

		assert.Equal(t, b.Current.FeelsLike, b.Details.FeelsLike, q)
		assert.Equal(t, b.Current.Humidity, b.Details.Humidity, q)
		assert.Equal(t, b.Current.WindSpeed, b.Details.WindSpeed, q)
		assert.Equal(t, b.Current.Pressure, b.Details.Pressure, q)
		assert.Equal(t, b.Current.Precipitation, b.Details.Precipitation, q)
	}
}

func TestResolveSourceFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	svc, notes := newTestService(t, failingSource{err: boom})

	_, err := svc.Resolve(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrRetrievalFailed)
	assert.ErrorIs(t, err, boom)

	items := notes.all()
	require.Len(t, items, 1)
	assert.Equal(t, notification.KindRetrievalFailed, items[0].Kind)
	assert.NotContains(t, items[0].Description, "disk on fire")
}

func TestResolveMissingDefaultIsFailure(t *testing.T) {
	entries := store.SampleBundles()
	delete(entries, "new york")
	src, err := store.NewMemoryStore(entries)
	require.NoError(t, err)

	svc, notes := newTestService(t, src)

	_, err = svc.Resolve(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrRetrievalFailed)
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)

	items := notes.all()
	require.Len(t, items, 2)
	assert.Equal(t, notification.KindLocationNotFound, items[0].Kind)
	assert.Equal(t, notification.KindRetrievalFailed, items[1].Kind)
}

func TestResolveCustomDefaultLocation(t *testing.T) {
	notes := &recordingNotifier{}
	svc := weather.NewService(store.NewSampleStore(), notes, weather.ServiceConfig{
		DefaultLocation: " Paris ",
		Latency:         -1,
	})
	assert.Equal(t, "paris", svc.DefaultLocation())

	b, err := svc.Resolve(context.Background(), "Gotham")
	require.NoError(t, err)
	assert.Equal(t, "Paris", b.Current.Location)

	items := notes.all()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Description, "Showing data for Paris instead.")
}

func TestResolveWaitsForLatency(t *testing.T) {
	svc := weather.NewService(store.NewSampleStore(), nil, weather.ServiceConfig{Latency: 40 * time.Millisecond})

	start := time.Now()
	_, err := svc.Resolve(context.Background(), "sydney")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestResolveHonoursCallerCancellation(t *testing.T) {
	notes := &recordingNotifier{}
	svc := weather.NewService(store.NewSampleStore(), notes, weather.ServiceConfig{Latency: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Resolve(ctx, "sydney")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, weather.ErrRetrievalFailed)
	assert.Empty(t, notes.all())
}

func TestResolveRecordsOutcomes(t *testing.T) {
	rec := &recordingRecorder{}
	svc := weather.NewService(store.NewSampleStore(), nil, weather.ServiceConfig{Latency: -1, Recorder: rec})

	_, _ = svc.Resolve(context.Background(), "paris")
	_, _ = svc.Resolve(context.Background(), "atlantis")

	failing := weather.NewService(failingSource{err: errors.New("x")}, nil, weather.ServiceConfig{Latency: -1, Recorder: rec})
	_, _ = failing.Resolve(context.Background(), "paris")

	assert.Equal(t, []string{weather.OutcomeHit, weather.OutcomeFallback, weather.OutcomeFailure}, rec.outcomes)
}
