package flows

import "context"

// AuthenticateFailureKind classifies credential authentication failures.
type AuthenticateFailureKind int

const (
	AuthenticateFailureNone AuthenticateFailureKind = iota
	AuthenticateFailureMissingCredentials
	AuthenticateFailureInvalidCredentials
	AuthenticateFailureBlocked
	AuthenticateFailureIssue
)

// AuthenticateResult carries either the issued pair or failure metadata.
type AuthenticateResult struct {
	Failure    AuthenticateFailureKind
	Err        error
	IdentityID string
	Issue      IssueResult
}

// AuthenticateDeps captures credential authentication dependencies.
type AuthenticateDeps struct {
	ValidateCredentials func(ctx context.Context, clientID, secret string) (*IdentityRecord, error)
	DefaultLocale       func() string
	Issue               func(ctx context.Context, identityID, locale string) IssueResult
}

// RunAuthenticate validates client credentials against the identity store
// and mints the first token pair for the session.
func RunAuthenticate(ctx context.Context, clientID, secret, locale string, deps AuthenticateDeps) AuthenticateResult {
	if clientID == "" || secret == "" {
		return AuthenticateResult{Failure: AuthenticateFailureMissingCredentials}
	}

	identity, err := deps.ValidateCredentials(ctx, clientID, secret)
	if err != nil || identity == nil {
		return AuthenticateResult{
			Failure: AuthenticateFailureInvalidCredentials,
			Err:     err,
		}
	}
	if identity.Blocked {
		return AuthenticateResult{
			Failure:    AuthenticateFailureBlocked,
			IdentityID: identity.ID,
		}
	}

	if locale == "" {
		locale = deps.DefaultLocale()
	}

	issue := deps.Issue(ctx, identity.ID, locale)
	if issue.Failure != IssueFailureNone {
		return AuthenticateResult{
			Failure:    AuthenticateFailureIssue,
			Err:        issue.Err,
			IdentityID: identity.ID,
			Issue:      issue,
		}
	}

	return AuthenticateResult{
		Failure:    AuthenticateFailureNone,
		IdentityID: identity.ID,
		Issue:      issue,
	}
}
