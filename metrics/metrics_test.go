package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/imkonsowa/rera-insights/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsHandler(t *testing.T) {
	m := metrics.New()

	m.ObserveHTTP("/api/find-rera-listings", "POST", 200, 12*time.Millisecond)
	m.StartCall("listings").Done(nil)
	m.StartCall("listings").Done(errors.New("model down"))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)

	for _, want := range []string{
		"rera_http_requests_total",
		`rera_analysis_requests_total{operation="listings",outcome="success"} 1`,
		`rera_analysis_requests_total{operation="listings",outcome="failure"} 1`,
		"rera_analysis_duration_seconds_bucket",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestCallDoneReturnsElapsed(t *testing.T) {
	m := metrics.New()

	call := m.StartCall("valuation")
	time.Sleep(5 * time.Millisecond)
	if d := call.Done(nil); d < 5*time.Millisecond {
		t.Fatalf("elapsed %s shorter than sleep", d)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "rera_analysis_duration_seconds")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}
