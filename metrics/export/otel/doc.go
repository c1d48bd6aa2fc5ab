// Package otel provides OpenTelemetry metric exporter bindings for the
// tokengate counters.
//
// [NewExporter] registers an Int64ObservableCounter instrument for each
// engine counter plus the audit backpressure counter. A single callback reads
// [tokengate.Engine.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
