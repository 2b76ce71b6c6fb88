package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersExistAndIncrement(t *testing.T) {
	lbl := "test-result"

	Subscriptions.WithLabelValues(lbl).Inc()
	if v := testutil.ToFloat64(Subscriptions.WithLabelValues(lbl)); v < 1 {
		t.Fatalf("expected Subscriptions >= 1, got %v", v)
	}

	Unsubscriptions.WithLabelValues(lbl).Add(2)
	if v := testutil.ToFloat64(Unsubscriptions.WithLabelValues(lbl)); v < 2 {
		t.Fatalf("expected Unsubscriptions >= 2, got %v", v)
	}

	MailSendFailure.WithLabelValues("smtp.test").Inc()
	if v := testutil.ToFloat64(MailSendFailure.WithLabelValues("smtp.test")); v < 1 {
		t.Fatalf("expected MailSendFailure >= 1, got %v", v)
	}
}

func TestBloggerRequestsLabelCardinality(t *testing.T) {
	BloggerRequests.Reset()
	defer BloggerRequests.Reset()
	labels := []string{"latest", "ok"}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("BloggerRequests panicked with labels %v: %v", labels, r)
		}
	}()

	BloggerRequests.WithLabelValues(labels...).Inc()
	if v := testutil.ToFloat64(BloggerRequests.WithLabelValues(labels...)); v != 1 {
		t.Fatalf("expected metric value 1 after increment, got %v", v)
	}
}

func TestMetricsHandlerServesRegisteredCollectors(t *testing.T) {
	NotificationRuns.WithLabelValues("manual").Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "portfolio_notification_runs_total") {
		t.Fatalf("expected notification runs metric in output")
	}
}
