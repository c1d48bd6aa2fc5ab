// Package flows contains the dependency-injected token flow runners:
// authenticate, issue, validate, refresh, and revoke. Each runner receives
// its collaborators through a Deps struct and reports the outcome as a
// classified failure kind, so the root package owns all sentinel-error and
// metric mapping without import cycles.
package flows
