package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mverell/tokengate"
)

type stubSource struct {
	snapshot tokengate.MetricsSnapshot
	dropped  uint64
}

func (s stubSource) MetricsSnapshot() tokengate.MetricsSnapshot { return s.snapshot }
func (s stubSource) AuditDropped() uint64                       { return s.dropped }

func TestRenderEmptyWhenNoSamples(t *testing.T) {
	exporter := NewExporterFromSource(stubSource{
		snapshot: tokengate.MetricsSnapshot{Counters: map[tokengate.MetricID]uint64{}},
	})

	if out := exporter.Render(); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderCountersSortedWithTypeLines(t *testing.T) {
	exporter := NewExporterFromSource(stubSource{
		snapshot: tokengate.MetricsSnapshot{Counters: map[tokengate.MetricID]uint64{
			tokengate.MetricValidateSuccess: 7,
			tokengate.MetricAuthSuccess:     2,
		}},
	})

	out := exporter.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		"# TYPE tokengate_auth_success_total counter",
		"tokengate_auth_success_total 2",
		"# TYPE tokengate_validate_success_total counter",
		"tokengate_validate_success_total 7",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), out)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("line %d: expected %q, got %q", i, line, lines[i])
		}
	}
}

func TestRenderIncludesAuditDropped(t *testing.T) {
	exporter := NewExporterFromSource(stubSource{
		snapshot: tokengate.MetricsSnapshot{Counters: map[tokengate.MetricID]uint64{}},
		dropped:  3,
	})

	out := exporter.Render()
	if !strings.Contains(out, "tokengate_audit_dropped_total 3") {
		t.Fatalf("expected audit dropped counter, got %q", out)
	}
}

func TestHandlerServesTextExposition(t *testing.T) {
	exporter := NewExporterFromSource(stubSource{
		snapshot: tokengate.MetricsSnapshot{Counters: map[tokengate.MetricID]uint64{
			tokengate.MetricRefreshSuccess: 1,
		}},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	exporter.Handler().ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(recorder.Body.String(), "tokengate_refresh_success_total 1") {
		t.Fatalf("expected refresh counter in body, got %q", recorder.Body.String())
	}
}
