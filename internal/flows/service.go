package flows

import "context"

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Validate.ParseAccess != nil
}

func (s Service) Authenticate(ctx context.Context, clientID, secret, locale string) AuthenticateResult {
	return RunAuthenticate(ctx, clientID, secret, locale, s.deps.Authenticate)
}

func (s Service) Issue(ctx context.Context, identityID, locale string) IssueResult {
	return RunIssue(ctx, identityID, locale, s.deps.Issue)
}

func (s Service) Validate(ctx context.Context, tokenStr string) ValidateResult {
	return RunValidate(ctx, tokenStr, s.deps.Validate)
}

func (s Service) Refresh(ctx context.Context, accessToken, refreshToken string) RefreshResult {
	return RunRefresh(ctx, accessToken, refreshToken, s.deps.Refresh)
}

func (s Service) Revoke(ctx context.Context, tokenStr string) RevokeResult {
	return RunRevoke(ctx, tokenStr, s.deps.Revoke)
}
