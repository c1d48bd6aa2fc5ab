package tokengate

import (
	"context"
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/mverell/tokengate/internal/flows"
)

// Revoke proactively invalidates a still-valid access token: its token id is
// removed from the replay-guard registry, then the identity's refresh
// registry entry is removed, closing the refresh path as well.
//
// Revoke expects the token of the currently authenticated request. A second
// call with the same token fails with [ErrTokenExpired] because the registry
// entry is already gone.
func (e *Engine) Revoke(ctx context.Context, tokenStr string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	result := e.flows.Revoke(ctx, tokenStr)

	switch result.Failure {
	case flows.RevokeFailureNone:
		e.metricInc(MetricRevokeSuccess)
		e.emitAudit(ctx, auditEventRevokeSuccess, true, result.IdentityID, result.TokenID, nil, nil)
		return nil

	case flows.RevokeFailureDecode:
		e.metricInc(MetricRevokeFailure)
		e.emitAudit(ctx, auditEventRevokeFailure, false, "", "", result.Err, nil)
		if errors.Is(result.Err, jwtlib.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid

	case flows.RevokeFailureNoIdentity:
		e.metricInc(MetricRevokeFailure)
		return ErrNoIdentityInToken

	case flows.RevokeFailureNothingToRevoke:
		e.metricInc(MetricRevokeFailure)
		e.emitAudit(ctx, auditEventRevokeFailure, false, result.IdentityID, result.TokenID, ErrTokenExpired, nil)
		return ErrTokenExpired

	case flows.RevokeFailureCache:
		e.metricInc(MetricRevokeFailure)
		e.metricInc(MetricCacheUnavailable)
		e.emitAudit(ctx, auditEventRevokeFailure, false, result.IdentityID, result.TokenID, result.Err, nil)
		return ErrCacheUnavailable
	}

	return ErrEngineNotReady
}
