// Package prometheus renders goCred counters in Prometheus text exposition
// format, pull-style, without a client-library dependency.
//
// [PrometheusExporter.Handler] serves the current snapshot; [PrometheusExporter.Render]
// returns it as a string for embedding in other handlers.
package prometheus
