package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() goCred.MetricsSnapshot
}

// PrometheusExporter renders engine counters in Prometheus text exposition
// format. It holds no state beyond the source; every render reads a fresh
// snapshot.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates an exporter that reads from engine.
func NewPrometheusExporter(engine *goCred.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates an exporter from any snapshot
// source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves the current counters.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render returns the current counters in text exposition format.
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()

	var b strings.Builder
	for _, def := range internaldefs.CounterDefs {
		b.WriteString("# HELP ")
		b.WriteString(def.Name)
		b.WriteByte(' ')
		b.WriteString(def.Help)
		b.WriteByte('\n')
		b.WriteString("# TYPE ")
		b.WriteString(def.Name)
		b.WriteString(" counter\n")
		b.WriteString(def.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(snapshot.Counters[def.ID], 10))
		b.WriteByte('\n')
	}

	return b.String()
}
