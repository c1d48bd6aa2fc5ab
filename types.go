package tokengate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/mverell/tokengate/internal/audit"
	internalmetrics "github.com/mverell/tokengate/internal/metrics"
)

// Identity is the minimal identity record the engine consumes. Credential
// storage, roles, and profile data stay behind the [IdentityStore].
type Identity struct {
	ID      string
	Blocked bool
}

// IdentityStore is the interface callers must implement to integrate
// tokengate with their identity database. It is constructor-injected; the
// engine never resolves identities through package-level state.
//
// ValidateCredentials returns the identity when id/secret match and an error
// otherwise. GetByID returns an error when the identity does not exist.
type IdentityStore interface {
	ValidateCredentials(ctx context.Context, clientID, secret string) (*Identity, error)
	GetByID(ctx context.Context, identityID string) (*Identity, error)
}

// PermissionResolver returns the permission names granted to an identity.
// It is optional; when set, [Engine.Validate] attaches the resolved names to
// the [AuthResult].
type PermissionResolver func(ctx context.Context, identityID string) ([]string, error)

// TokenResult is the issuance/refresh response. It is transient: the engine
// returns it to the caller and never stores it as a unit.
type TokenResult struct {
	AccessToken                 string
	AccessTokenExpiresAt        time.Time
	AccessTokenLifetimeMinutes  int
	RefreshToken                string
	RefreshTokenExpiresAt       time.Time
	RefreshTokenLifetimeMinutes int
}

// AuthResult is returned by [Engine.Validate]. It carries the authenticated
// identity, the token id used for revocation tracking, the locale the token
// was issued with, and optionally the resolved permission names.
type AuthResult struct {
	IdentityID  string
	TokenID     string
	Locale      string
	ExpiresAt   time.Time
	Permissions []string
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricAuthSuccess counts successful credential authentications.
	MetricAuthSuccess = internalmetrics.MetricAuthSuccess
	// MetricAuthFailure counts rejected credential authentications.
	MetricAuthFailure = internalmetrics.MetricAuthFailure
	// MetricIssueSuccess counts issued token pairs.
	MetricIssueSuccess = internalmetrics.MetricIssueSuccess
	// MetricIssueFailure counts failed issuance attempts.
	MetricIssueFailure = internalmetrics.MetricIssueFailure
	// MetricValidateSuccess counts access tokens accepted by the replay guard.
	MetricValidateSuccess = internalmetrics.MetricValidateSuccess
	// MetricValidateFailure counts access tokens rejected at validation.
	MetricValidateFailure = internalmetrics.MetricValidateFailure
	// MetricReplayDetected counts registry misses for otherwise valid tokens.
	MetricReplayDetected = internalmetrics.MetricReplayDetected
	// MetricRefreshSuccess counts successful refresh exchanges.
	MetricRefreshSuccess = internalmetrics.MetricRefreshSuccess
	// MetricRefreshFailure counts rejected refresh exchanges.
	MetricRefreshFailure = internalmetrics.MetricRefreshFailure
	// MetricRevokeSuccess counts successful revocations.
	MetricRevokeSuccess = internalmetrics.MetricRevokeSuccess
	// MetricRevokeFailure counts failed revocations.
	MetricRevokeFailure = internalmetrics.MetricRevokeFailure
	// MetricCacheUnavailable counts registry infrastructure failures.
	MetricCacheUnavailable = internalmetrics.MetricCacheUnavailable
)

// Metrics holds the engine's atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled: cfg.Enabled,
	})
}
