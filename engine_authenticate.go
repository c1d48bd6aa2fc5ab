package tokengate

import (
	"context"

	"github.com/mverell/tokengate/internal/flows"
)

// Authenticate validates client credentials and mints the first access/
// refresh pair for the identity. locale may be empty; the context locale and
// then [Config.DefaultLocale] are used as fallbacks.
func (e *Engine) Authenticate(ctx context.Context, clientID, secret, locale string) (*TokenResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	locale = e.localeOrDefault(locale, localeFromContext(ctx))
	result := e.flows.Authenticate(ctx, clientID, secret, locale)

	switch result.Failure {
	case flows.AuthenticateFailureNone:
		e.metricInc(MetricAuthSuccess)
		e.metricInc(MetricIssueSuccess)
		e.emitAudit(ctx, auditEventAuthenticateSuccess, true, result.IdentityID, result.Issue.TokenID, nil, func() map[string]string {
			return map[string]string{
				"locale": locale,
			}
		})
		return tokenResultFromPair(result.Issue.Pair), nil

	case flows.AuthenticateFailureMissingCredentials:
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthenticateFailure, false, "", "", ErrCredentialsRequired, nil)
		return nil, ErrCredentialsRequired

	case flows.AuthenticateFailureInvalidCredentials:
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthenticateFailure, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"client_id": clientID,
			}
		})
		return nil, ErrInvalidCredentials

	case flows.AuthenticateFailureBlocked:
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthenticateFailure, false, result.IdentityID, "", ErrIdentityBlocked, nil)
		return nil, ErrIdentityBlocked

	case flows.AuthenticateFailureIssue:
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthenticateFailure, false, result.IdentityID, "", result.Err, nil)
		return nil, e.issueError(result.Issue)
	}

	return nil, ErrEngineNotReady
}
