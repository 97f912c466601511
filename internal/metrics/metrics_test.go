package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/notification"
)

func TestObserveResolve(t *testing.T) {
	m := New()

	m.ObserveResolve("hit", 1.0)
	m.ObserveResolve("hit", 1.1)
	m.ObserveResolve("fallback", 2.0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolves.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolves.WithLabelValues("fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.resolves.WithLabelValues("failure")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserveStale(t *testing.T) {
	m := New()
	m.ObserveStale()
	m.ObserveStale()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stale))
}

func TestCountNotifications(t *testing.T) {
	m := New()

	ch := make(chan notification.Notification, 3)
	ch <- notification.RetrievalFailed()
	ch <- notification.StillLoading()
	ch <- notification.StillLoading()
	close(ch)

	m.CountNotifications(ch)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(string(notification.KindRetrievalFailed))))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues(string(notification.KindStillLoading))))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveResolve("hit", 0.5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `weather_dashboard_resolves_total{outcome="hit"} 1`))
	assert.Contains(t, body, "weather_dashboard_resolve_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
