package flows

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/mverell/tokengate/jwt"
)

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureMissingInput
	RefreshFailureDecode
	RefreshFailureNoIdentity
	RefreshFailureLookup
	RefreshFailureExpired
	RefreshFailureIdentityNotFound
	RefreshFailureIdentityBlocked
	RefreshFailureIssue
)

// IdentityRecord is the minimal identity view the flows need.
type IdentityRecord struct {
	ID      string
	Blocked bool
}

// RefreshResult carries either the re-issued pair or failure metadata.
type RefreshResult struct {
	Failure    RefreshFailureKind
	Err        error
	IdentityID string
	Issue      IssueResult
}

type RefreshStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	ParseAccessExpired func(string) (*jwt.AccessClaims, error)
	RefreshKey         func(string) string
	LoadIdentity       func(ctx context.Context, identityID string) (*IdentityRecord, error)
	DefaultLocale      func() string
	Issue              func(ctx context.Context, identityID, locale string) IssueResult
	Store              RefreshStore
	StoreMiss          error
}

// RunRefresh exchanges an expired access token plus its paired refresh token
// for a new pair. The access token is verified with expiry validation off;
// the refresh registry entry must match the supplied token exactly, which
// uniformly covers the never-issued, expired, and superseded cases. The
// identity's standing is re-checked because refresh may happen long after
// original authentication.
//
// Two concurrent refreshes with the same still-valid refresh token can both
// pass the match check before either overwrite lands; single-active-refresh
// is best effort, not a mutual-exclusion guarantee.
func RunRefresh(ctx context.Context, accessToken, refreshToken string, deps RefreshDeps) RefreshResult {
	if accessToken == "" || refreshToken == "" {
		return RefreshResult{Failure: RefreshFailureMissingInput}
	}

	claims, err := deps.ParseAccessExpired(accessToken)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureDecode, Err: err}
	}
	if claims.Subject == "" {
		return RefreshResult{Failure: RefreshFailureNoIdentity}
	}
	identityID := claims.Subject

	stored, err := deps.Store.Get(ctx, deps.RefreshKey(identityID))
	if err != nil {
		if deps.StoreMiss != nil && errors.Is(err, deps.StoreMiss) {
			return RefreshResult{
				Failure:    RefreshFailureExpired,
				IdentityID: identityID,
			}
		}
		return RefreshResult{
			Failure:    RefreshFailureLookup,
			Err:        err,
			IdentityID: identityID,
		}
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return RefreshResult{
			Failure:    RefreshFailureExpired,
			IdentityID: identityID,
		}
	}

	identity, err := deps.LoadIdentity(ctx, identityID)
	if err != nil || identity == nil {
		return RefreshResult{
			Failure:    RefreshFailureIdentityNotFound,
			Err:        err,
			IdentityID: identityID,
		}
	}
	if identity.Blocked {
		return RefreshResult{
			Failure:    RefreshFailureIdentityBlocked,
			IdentityID: identityID,
		}
	}

	locale := claims.Locale
	if locale == "" {
		locale = deps.DefaultLocale()
	}

	// Issuing the new pair overwrites the refresh entry, invalidating the
	// one just presented. The old jti is left to lapse via its own TTL.
	issue := deps.Issue(ctx, identityID, locale)
	if issue.Failure != IssueFailureNone {
		return RefreshResult{
			Failure:    RefreshFailureIssue,
			Err:        issue.Err,
			IdentityID: identityID,
			Issue:      issue,
		}
	}

	return RefreshResult{
		Failure:    RefreshFailureNone,
		IdentityID: identityID,
		Issue:      issue,
	}
}
