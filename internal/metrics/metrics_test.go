package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/models"
)

func value(t *testing.T, metric prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := metric.Write(&out); err != nil {
		t.Fatalf("reading metric: %v", err)
	}
	switch {
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	}
	t.Fatalf("unsupported metric type")
	return 0
}

func TestTrackActiveQuestions(t *testing.T) {
	m := New()
	store := journal.NewQuestionStore(models.DefaultCatalog())

	stop := m.TrackActiveQuestions(store)
	if got := value(t, m.ActiveQuestions); got != 8 {
		t.Fatalf("expected 8 active questions, got %v", got)
	}

	store.Toggle("1")
	if got := value(t, m.ActiveQuestions); got != 9 {
		t.Errorf("expected gauge to follow toggle, got %v", got)
	}

	stop()
	store.Toggle("1")
	if got := value(t, m.ActiveQuestions); got != 9 {
		t.Errorf("expected gauge to stop after unsubscribe, got %v", got)
	}
	if store.Subscribers() != 0 {
		t.Errorf("expected no subscribers, got %d", store.Subscribers())
	}
}

func TestObserveToggle(t *testing.T) {
	m := New()
	m.ObserveToggle(true)
	m.ObserveToggle(true)
	m.ObserveToggle(false)

	if got := value(t, m.Toggles.WithLabelValues("changed")); got != 2 {
		t.Errorf("expected 2 changed, got %v", got)
	}
	if got := value(t, m.Toggles.WithLabelValues("unknown_id")); got != 1 {
		t.Errorf("expected 1 unknown, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues(http.MethodGet, "GET /api/journal/questions", "200").Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "dailycheck_http_requests_total") {
		t.Error("expected request counter in exposition output")
	}
}
