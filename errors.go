package tokengate

import "errors"

var (
	// ErrCredentialsRequired is returned when the client id or secret is empty.
	ErrCredentialsRequired = errors.New("client id and secret are required")
	// ErrInvalidCredentials is returned when credential validation fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid is returned for malformed or tampered access tokens.
	ErrTokenInvalid = errors.New("invalid token: a valid access token is required")
	// ErrTokenExpired is returned when a token's natural expiry has passed,
	// and by Revoke when there is nothing left to revoke.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is returned when the token id is absent from the
	// replay-guard registry. Revocation and natural registry expiry are
	// deliberately indistinguishable to the caller.
	ErrTokenRevoked = errors.New("token revoked or expired")
	// ErrTokenAndRefreshTokenRequired is returned by Refresh on empty input.
	ErrTokenAndRefreshTokenRequired = errors.New("token and refresh token are required")
	// ErrRefreshTokenExpired covers absent, mismatched, and superseded
	// refresh tokens uniformly.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	// ErrNoIdentityInToken is returned when required claims are missing.
	ErrNoIdentityInToken = errors.New("no identity information in token")
	// ErrIdentityNotFound is returned when the identity lookup fails.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrIdentityBlocked is returned when the identity is flagged blocked.
	ErrIdentityBlocked = errors.New("invalid identity")
	// ErrCacheUnavailable signals a registry infrastructure failure. Token
	// operations fail closed on it; retrying is the caller's concern.
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrEngineNotReady is returned when the engine was not built properly.
	ErrEngineNotReady = errors.New("engine not initialized")
)
