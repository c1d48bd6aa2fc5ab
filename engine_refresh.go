package tokengate

import (
	"context"

	"github.com/mverell/tokengate/internal/flows"
)

// Refresh exchanges an expired access token plus its paired refresh token
// for a new pair without re-submitting credentials. The access token only
// needs a valid signature; its expiry is ignored. The refresh token must
// match the identity's current registry entry exactly, and the identity must
// still be in good standing.
//
// Single-active-refresh is best effort: two concurrent Refresh calls holding
// the same still-valid refresh token can both pass the match check and each
// receive a valid pair.
func (e *Engine) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	result := e.flows.Refresh(ctx, accessToken, refreshToken)

	switch result.Failure {
	case flows.RefreshFailureNone:
		e.metricInc(MetricRefreshSuccess)
		e.metricInc(MetricIssueSuccess)
		e.emitAudit(ctx, auditEventRefreshSuccess, true, result.IdentityID, result.Issue.TokenID, nil, nil)
		return tokenResultFromPair(result.Issue.Pair), nil

	case flows.RefreshFailureMissingInput:
		e.metricInc(MetricRefreshFailure)
		return nil, ErrTokenAndRefreshTokenRequired

	case flows.RefreshFailureDecode:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, "", "", result.Err, nil)
		return nil, ErrTokenInvalid

	case flows.RefreshFailureNoIdentity:
		e.metricInc(MetricRefreshFailure)
		return nil, ErrNoIdentityInToken

	case flows.RefreshFailureLookup:
		e.metricInc(MetricRefreshFailure)
		e.metricInc(MetricCacheUnavailable)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.IdentityID, "", result.Err, nil)
		return nil, ErrCacheUnavailable

	case flows.RefreshFailureExpired:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.IdentityID, "", ErrRefreshTokenExpired, nil)
		return nil, ErrRefreshTokenExpired

	case flows.RefreshFailureIdentityNotFound:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.IdentityID, "", ErrIdentityNotFound, nil)
		return nil, ErrIdentityNotFound

	case flows.RefreshFailureIdentityBlocked:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.IdentityID, "", ErrIdentityBlocked, nil)
		return nil, ErrIdentityBlocked

	case flows.RefreshFailureIssue:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.IdentityID, "", result.Err, nil)
		return nil, e.issueError(result.Issue)
	}

	return nil, ErrEngineNotReady
}
