package flows

import (
	"context"
	"time"
)

// IssueFailureKind classifies issuance failures for root-level mapping.
type IssueFailureKind int

const (
	IssueFailureNone IssueFailureKind = iota
	IssueFailureRefreshSecret
	IssueFailureJtiWrite
	IssueFailureRefreshWrite
	IssueFailureEncode
)

// TokenPair is the transient issuance output. It is returned to the caller
// and never stored server-side as a unit; its two halves live in the jti and
// refresh registries with independent TTLs.
type TokenPair struct {
	AccessToken            string
	AccessTokenExpiresAt   time.Time
	AccessLifetimeMinutes  int
	RefreshToken           string
	RefreshTokenExpiresAt  time.Time
	RefreshLifetimeMinutes int
}

// IssueResult carries either the minted pair or failure metadata.
type IssueResult struct {
	Failure    IssueFailureKind
	Err        error
	IdentityID string
	TokenID    string
	Pair       *TokenPair
}

type IssueStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// IssueDeps captures issuance flow dependencies.
type IssueDeps struct {
	NewTokenID             func() string
	NewRefreshToken        func() (string, error)
	JtiKey                 func(string) string
	RefreshKey             func(string) string
	AccessLifetimeMinutes  func() int
	RefreshLifetimeMinutes func() int
	EncodeAccess           func(subject, tokenID, locale string) (string, time.Time, error)
	Now                    func() time.Time
	Store                  IssueStore
}

// RunIssue mints a fresh access/refresh pair for an already-validated
// identity. Both registry writes are awaited before the pair is returned, so
// a caller never holds a token whose registry entry is not yet visible.
// Writing the refresh entry overwrites any prior refresh token for the
// identity, which is what enforces the single-active-refresh-token policy.
func RunIssue(ctx context.Context, identityID, locale string, deps IssueDeps) IssueResult {
	tokenID := deps.NewTokenID()
	accessTTL := time.Duration(deps.AccessLifetimeMinutes()) * time.Minute
	refreshTTL := time.Duration(deps.RefreshLifetimeMinutes()) * time.Minute

	if err := deps.Store.Set(ctx, deps.JtiKey(tokenID), tokenID, accessTTL); err != nil {
		return IssueResult{
			Failure:    IssueFailureJtiWrite,
			Err:        err,
			IdentityID: identityID,
			TokenID:    tokenID,
		}
	}

	refreshToken, err := deps.NewRefreshToken()
	if err != nil {
		return IssueResult{
			Failure:    IssueFailureRefreshSecret,
			Err:        err,
			IdentityID: identityID,
			TokenID:    tokenID,
		}
	}

	if err := deps.Store.Set(ctx, deps.RefreshKey(identityID), refreshToken, refreshTTL); err != nil {
		return IssueResult{
			Failure:    IssueFailureRefreshWrite,
			Err:        err,
			IdentityID: identityID,
			TokenID:    tokenID,
		}
	}

	accessToken, accessExpiresAt, err := deps.EncodeAccess(identityID, tokenID, locale)
	if err != nil {
		return IssueResult{
			Failure:    IssueFailureEncode,
			Err:        err,
			IdentityID: identityID,
			TokenID:    tokenID,
		}
	}

	return IssueResult{
		Failure:    IssueFailureNone,
		IdentityID: identityID,
		TokenID:    tokenID,
		Pair: &TokenPair{
			AccessToken:            accessToken,
			AccessTokenExpiresAt:   accessExpiresAt,
			AccessLifetimeMinutes:  deps.AccessLifetimeMinutes(),
			RefreshToken:           refreshToken,
			RefreshTokenExpiresAt:  deps.Now().Add(refreshTTL),
			RefreshLifetimeMinutes: deps.RefreshLifetimeMinutes(),
		},
	}
}
