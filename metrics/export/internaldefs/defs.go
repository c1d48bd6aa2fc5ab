package internaldefs

import (
	"github.com/mverell/tokengate"
)

// CounterDef names one engine counter for export. Both exporters read from
// the same definitions so metric names stay identical across backends.
type CounterDef struct {
	ID   tokengate.MetricID
	Name string
	Help string
}

// CounterDefs maps every engine counter to its exported name.
var CounterDefs = []CounterDef{
	{ID: tokengate.MetricAuthSuccess, Name: "tokengate_auth_success_total", Help: "Successful credential authentications."},
	{ID: tokengate.MetricAuthFailure, Name: "tokengate_auth_failure_total", Help: "Rejected credential authentications."},
	{ID: tokengate.MetricIssueSuccess, Name: "tokengate_issue_success_total", Help: "Issued token pairs."},
	{ID: tokengate.MetricIssueFailure, Name: "tokengate_issue_failure_total", Help: "Failed issuance attempts."},
	{ID: tokengate.MetricValidateSuccess, Name: "tokengate_validate_success_total", Help: "Access tokens accepted by the replay guard."},
	{ID: tokengate.MetricValidateFailure, Name: "tokengate_validate_failure_total", Help: "Access tokens rejected at validation."},
	{ID: tokengate.MetricReplayDetected, Name: "tokengate_replay_detected_total", Help: "Registry misses for otherwise valid tokens."},
	{ID: tokengate.MetricRefreshSuccess, Name: "tokengate_refresh_success_total", Help: "Successful refresh exchanges."},
	{ID: tokengate.MetricRefreshFailure, Name: "tokengate_refresh_failure_total", Help: "Rejected refresh exchanges."},
	{ID: tokengate.MetricRevokeSuccess, Name: "tokengate_revoke_success_total", Help: "Successful revocations."},
	{ID: tokengate.MetricRevokeFailure, Name: "tokengate_revoke_failure_total", Help: "Failed revocations."},
	{ID: tokengate.MetricCacheUnavailable, Name: "tokengate_cache_unavailable_total", Help: "Registry infrastructure failures."},
}

// AuditDroppedName is the exported name of the audit backpressure counter.
// It is not a MetricID; the dispatcher tracks it separately.
const AuditDroppedName = "tokengate_audit_dropped_total"

// AuditDroppedHelp documents the audit backpressure counter.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
