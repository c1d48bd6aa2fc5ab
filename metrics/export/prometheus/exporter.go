package prometheus

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/mverell/tokengate"
	"github.com/mverell/tokengate/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() tokengate.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter renders tokengate metrics in Prometheus text exposition format.
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter that reads from the given
// [tokengate.Engine].
func NewExporter(engine *tokengate.Engine) *Exporter {
	return &Exporter{source: engine}
}

// NewExporterFromSource creates an exporter from a custom metrics source.
func NewExporterFromSource(source metricsSource) *Exporter {
	return &Exporter{source: source}
}

// Handler returns an http.Handler that serves the current metrics.
func (p *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

var metricNames = func() map[tokengate.MetricID]string {
	names := make(map[tokengate.MetricID]string, len(internaldefs.CounterDefs))
	for _, def := range internaldefs.CounterDefs {
		names[def.ID] = def.Name
	}
	return names
}()

// Render writes the current metrics in Prometheus text exposition format.
// Counters with no samples yet are omitted.
func (p *Exporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && dropped == 0 {
		return ""
	}

	names := make([]string, 0, len(snapshot.Counters))
	values := make(map[string]uint64, len(snapshot.Counters))
	for id, v := range snapshot.Counters {
		name, ok := metricNames[id]
		if !ok {
			continue
		}
		names = append(names, name)
		values[name] = v
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("# TYPE " + name + " counter\n")
		b.WriteString(name + " " + strconv.FormatUint(values[name], 10) + "\n")
	}
	if dropped > 0 {
		b.WriteString("# TYPE " + internaldefs.AuditDroppedName + " counter\n")
		b.WriteString(internaldefs.AuditDroppedName + " " + strconv.FormatUint(dropped, 10) + "\n")
	}

	return b.String()
}
