// Package middleware provides net/http middleware that enforces the engine's
// replay-guard validation on incoming requests. It composes with any router
// built on http.Handler.
package middleware
