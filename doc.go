// Package tokengate implements a cache-backed token authentication and
// revocation engine: issuance of paired access/refresh tokens, single-use
// token-id (jti) replay prevention, refresh token rotation, and explicit
// revocation.
//
// Access tokens are HS256-signed JWTs carrying a unique token id. The token
// id must be present in the Redis-backed registry for the token to be
// accepted; absence, whether from TTL lapse or explicit removal, rejects the
// token regardless of its embedded expiry. Refresh tokens are opaque
// crypto-random secrets stored per identity with their own longer TTL; a new
// issuance overwrites the entry, so at most one refresh token per identity
// is trusted at a time.
//
// Build an engine with the builder:
//
//	engine, err := tokengate.New().
//		WithConfig(cfg).
//		WithRedis(redisClient).
//		WithIdentityStore(store).
//		Build()
//
// All operations take a context and fail closed when the registry is
// unreachable.
package tokengate
