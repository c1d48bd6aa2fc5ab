// Package prometheus renders the engine's in-process counters in Prometheus
// text exposition format without pulling in a client library.
package prometheus
