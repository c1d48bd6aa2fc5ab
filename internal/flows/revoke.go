package flows

import (
	"context"

	"github.com/mverell/tokengate/jwt"
)

// RevokeFailureKind classifies revocation failures for root-level mapping.
type RevokeFailureKind int

const (
	RevokeFailureNone RevokeFailureKind = iota
	RevokeFailureDecode
	RevokeFailureNoIdentity
	RevokeFailureNothingToRevoke
	RevokeFailureCache
)

// RevokeResult reports the revocation outcome.
type RevokeResult struct {
	Failure    RevokeFailureKind
	Err        error
	IdentityID string
	TokenID    string
}

type RevokeStore interface {
	Contains(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
}

// RevokeDeps captures revocation flow dependencies.
type RevokeDeps struct {
	ParseAccess func(string) (*jwt.AccessClaims, error)
	JtiKey      func(string) string
	RefreshKey  func(string) string
	Store       RevokeStore
}

// RunRevoke invalidates a still-valid access token ahead of its natural
// expiry: the jti entry goes first, closing the replay guard, then the
// identity's refresh entry, closing the refresh path. A second call for the
// same token fails at the presence check, making revocation idempotent in
// effect.
func RunRevoke(ctx context.Context, tokenStr string, deps RevokeDeps) RevokeResult {
	claims, err := deps.ParseAccess(tokenStr)
	if err != nil {
		return RevokeResult{Failure: RevokeFailureDecode, Err: err}
	}
	if claims.ID == "" || claims.Subject == "" {
		return RevokeResult{Failure: RevokeFailureNoIdentity}
	}

	present, err := deps.Store.Contains(ctx, deps.JtiKey(claims.ID))
	if err != nil {
		return RevokeResult{
			Failure:    RevokeFailureCache,
			Err:        err,
			IdentityID: claims.Subject,
			TokenID:    claims.ID,
		}
	}
	if !present {
		return RevokeResult{
			Failure:    RevokeFailureNothingToRevoke,
			IdentityID: claims.Subject,
			TokenID:    claims.ID,
		}
	}

	if err := deps.Store.Remove(ctx, deps.JtiKey(claims.ID)); err != nil {
		return RevokeResult{
			Failure:    RevokeFailureCache,
			Err:        err,
			IdentityID: claims.Subject,
			TokenID:    claims.ID,
		}
	}
	if err := deps.Store.Remove(ctx, deps.RefreshKey(claims.Subject)); err != nil {
		return RevokeResult{
			Failure:    RevokeFailureCache,
			Err:        err,
			IdentityID: claims.Subject,
			TokenID:    claims.ID,
		}
	}

	return RevokeResult{
		Failure:    RevokeFailureNone,
		IdentityID: claims.Subject,
		TokenID:    claims.ID,
	}
}
