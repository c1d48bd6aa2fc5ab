package tokengate

import (
	"context"
	"time"
)

const (
	auditEventAuthenticateSuccess = "authenticate_success"
	auditEventAuthenticateFailure = "authenticate_failure"
	auditEventTokenIssued         = "token_issued"
	auditEventValidateFailure     = "validate_failure"
	auditEventReplayDetected      = "replay_detected"
	auditEventRefreshSuccess      = "refresh_success"
	auditEventRefreshFailure      = "refresh_failure"
	auditEventRevokeSuccess       = "revoke_success"
	auditEventRevokeFailure       = "revoke_failure"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	identityID, tokenID string,
	failure error,
	metadata func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:  time.Now(),
		EventType:  eventType,
		IdentityID: identityID,
		TokenID:    tokenID,
		IP:         clientIPFromContext(ctx),
		Success:    success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
