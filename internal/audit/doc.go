// Package audit defines the audit event model and the built-in sinks. The
// root package dispatches events into a Sink through a buffered worker.
package audit
