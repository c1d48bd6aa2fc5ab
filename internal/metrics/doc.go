// Package metrics implements the in-process atomic counter metrics used by
// the token engine. The root package re-exports the public surface.
package metrics
