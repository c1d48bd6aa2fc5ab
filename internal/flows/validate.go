package flows

import (
	"context"

	"github.com/mverell/tokengate/jwt"
)

// ValidateFailureKind classifies validation failures for root-level mapping.
type ValidateFailureKind int

const (
	ValidateFailureNone ValidateFailureKind = iota
	ValidateFailureDecode
	ValidateFailureNoTokenID
	ValidateFailureRevoked
	ValidateFailureCache
	ValidateFailurePermissions
)

// ValidateResult returns either the decoded claims or a classified failure.
type ValidateResult struct {
	Failure     ValidateFailureKind
	Err         error
	Claims      *jwt.AccessClaims
	Permissions []string
}

type ValidateStore interface {
	Contains(ctx context.Context, key string) (bool, error)
}

// ValidateDeps captures replay-guard validation dependencies.
type ValidateDeps struct {
	ParseAccess        func(string) (*jwt.AccessClaims, error)
	JtiKey             func(string) string
	ResolvePermissions func(ctx context.Context, identityID string) ([]string, error)
	Store              ValidateStore
}

// RunValidate executes the per-request replay-guard check. Signature and
// expiry validation alone cannot reflect server-side revocation, so cache
// presence of the token id is authoritative: a miss rejects the token even
// when its embedded expiry has not passed. Cache outage fails closed.
func RunValidate(ctx context.Context, tokenStr string, deps ValidateDeps) ValidateResult {
	claims, err := deps.ParseAccess(tokenStr)
	if err != nil {
		return ValidateResult{Failure: ValidateFailureDecode, Err: err}
	}

	if claims.ID == "" || claims.Subject == "" {
		return ValidateResult{Failure: ValidateFailureNoTokenID, Claims: claims}
	}

	present, err := deps.Store.Contains(ctx, deps.JtiKey(claims.ID))
	if err != nil {
		return ValidateResult{Failure: ValidateFailureCache, Err: err, Claims: claims}
	}
	if !present {
		return ValidateResult{Failure: ValidateFailureRevoked, Claims: claims}
	}

	var permissions []string
	if deps.ResolvePermissions != nil {
		permissions, err = deps.ResolvePermissions(ctx, claims.Subject)
		if err != nil {
			return ValidateResult{Failure: ValidateFailurePermissions, Err: err, Claims: claims}
		}
	}

	return ValidateResult{
		Failure:     ValidateFailureNone,
		Claims:      claims,
		Permissions: permissions,
	}
}
