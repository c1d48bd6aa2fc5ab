package tokengate

import (
	"context"
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/mverell/tokengate/internal/flows"
)

// IssueTokenPair mints a fresh access/refresh pair for an already-validated
// identity. Both registry writes complete before the pair is returned, so
// the first validation of the new token cannot race a pending write. Issuing
// overwrites the identity's refresh registry entry: any previously issued
// refresh token stops working.
func (e *Engine) IssueTokenPair(ctx context.Context, identityID, locale string) (*TokenResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if identityID == "" {
		return nil, ErrIdentityNotFound
	}

	locale = e.localeOrDefault(locale, localeFromContext(ctx))
	result := e.flows.Issue(ctx, identityID, locale)
	if result.Failure != flows.IssueFailureNone {
		e.emitAudit(ctx, auditEventTokenIssued, false, identityID, result.TokenID, result.Err, nil)
		return nil, e.issueError(result)
	}

	e.metricInc(MetricIssueSuccess)
	e.emitAudit(ctx, auditEventTokenIssued, true, identityID, result.TokenID, nil, nil)

	return tokenResultFromPair(result.Pair), nil
}

// Validate runs the per-request replay-guard check on an access token. The
// token must be well-formed, carry a valid signature, be inside its time
// window, and its token id must still be present in the registry. A registry
// miss fails with [ErrTokenRevoked] whether the entry lapsed or was
// explicitly removed.
//
// This is the single enforcement point for revocation and must run on every
// authenticated request.
func (e *Engine) Validate(ctx context.Context, tokenStr string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	result := e.flows.Validate(ctx, tokenStr)

	switch result.Failure {
	case flows.ValidateFailureNone:
		e.metricInc(MetricValidateSuccess)
		return authResultFromClaims(result), nil

	case flows.ValidateFailureDecode:
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", "", result.Err, nil)
		if errors.Is(result.Err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid

	case flows.ValidateFailureNoTokenID:
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", "", ErrTokenInvalid, nil)
		return nil, ErrTokenInvalid

	case flows.ValidateFailureRevoked:
		e.metricInc(MetricValidateFailure)
		e.metricInc(MetricReplayDetected)
		e.emitAudit(ctx, auditEventReplayDetected, false, result.Claims.Subject, result.Claims.ID, ErrTokenRevoked, nil)
		return nil, ErrTokenRevoked

	case flows.ValidateFailureCache:
		e.metricInc(MetricValidateFailure)
		e.metricInc(MetricCacheUnavailable)
		e.emitAudit(ctx, auditEventValidateFailure, false, result.Claims.Subject, result.Claims.ID, result.Err, nil)
		return nil, ErrCacheUnavailable

	case flows.ValidateFailurePermissions:
		e.metricInc(MetricValidateFailure)
		return nil, result.Err
	}

	return nil, ErrEngineNotReady
}

func (e *Engine) issueError(issue flows.IssueResult) error {
	e.metricInc(MetricIssueFailure)
	switch issue.Failure {
	case flows.IssueFailureJtiWrite, flows.IssueFailureRefreshWrite:
		e.metricInc(MetricCacheUnavailable)
		return ErrCacheUnavailable
	default:
		return issue.Err
	}
}

func tokenResultFromPair(pair *flows.TokenPair) *TokenResult {
	if pair == nil {
		return nil
	}
	return &TokenResult{
		AccessToken:                 pair.AccessToken,
		AccessTokenExpiresAt:        pair.AccessTokenExpiresAt,
		AccessTokenLifetimeMinutes:  pair.AccessLifetimeMinutes,
		RefreshToken:                pair.RefreshToken,
		RefreshTokenExpiresAt:       pair.RefreshTokenExpiresAt,
		RefreshTokenLifetimeMinutes: pair.RefreshLifetimeMinutes,
	}
}

func authResultFromClaims(result flows.ValidateResult) *AuthResult {
	out := &AuthResult{
		IdentityID:  result.Claims.Subject,
		TokenID:     result.Claims.ID,
		Locale:      result.Claims.Locale,
		Permissions: result.Permissions,
	}
	if result.Claims.ExpiresAt != nil {
		out.ExpiresAt = result.Claims.ExpiresAt.Time
	}
	return out
}
