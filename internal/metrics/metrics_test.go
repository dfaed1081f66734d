package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var (
	_ Recorder = (*NoopRecorder)(nil)
	_ Recorder = (*InMemoryRecorder)(nil)
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncLogin("success")
	m.IncLogin("failure")
	m.IncLogin("failure")
	m.IncPlaceCacheHit()
	m.IncPlaceCacheMiss()
	m.IncListCreated()
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)

	snap := m.Snapshot()
	if snap.LoginSuccesses != 1 || snap.LoginFailures != 2 {
		t.Errorf("logins = %d/%d, want 1/2", snap.LoginSuccesses, snap.LoginFailures)
	}
	if snap.PlaceCacheHits != 1 || snap.PlaceCacheMisses != 1 {
		t.Errorf("cache = %d/%d, want 1/1", snap.PlaceCacheHits, snap.PlaceCacheMisses)
	}
	if snap.ListsCreated != 1 || snap.HTTPRequests != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestPrometheusRecorder_Exposition(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	p.IncPlaceCreated()
	p.IncPlaceCreated()
	p.IncRateLimited("auth")
	p.ObserveHTTPRequest("GET", "/api/places", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(p.events.WithLabelValues("place_created")); got != 2 {
		t.Errorf("place_created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.rateLimited.WithLabelValues("auth")); got != 1 {
		t.Errorf("rate_limited{auth} = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`placelist_domain_events_total{event="place_created"} 2`,
		`placelist_http_request_duration_seconds_count{method="GET",route="/api/places",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
