// Package cache provides the key/value registry abstraction backing the
// token engine: the jti replay-guard registry and the refresh token
// registry. Both share one Store; key derivation and the TTL normalization
// policy live here so no caller embeds key formats or magic timeouts.
package cache
