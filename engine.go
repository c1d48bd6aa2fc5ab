package tokengate

import (
	"github.com/mverell/tokengate/cache"
	"github.com/mverell/tokengate/internal/flows"
	"github.com/mverell/tokengate/jwt"
)

// Engine is the token issuance, validation, refresh, and revocation engine.
//
// Engine instances are built once through [Builder], hold no mutable state
// of their own, and are safe for concurrent use; the cache registry is the
// only shared resource.
type Engine struct {
	config      Config
	codec       *jwt.Manager
	store       cache.Store
	identities  IdentityStore
	permissions PermissionResolver
	flows       flows.Service
	audit       *auditDispatcher
	metrics     *Metrics
}

// Close stops background workers. It must be called when the engine is no
// longer needed; queued audit events are drained first.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) ready() bool {
	return e != nil && e.codec != nil && e.store != nil && e.flows.Initialized()
}

// localeOrDefault resolves the effective locale for an issuance: explicit
// argument first, then context, then the configured default.
func (e *Engine) localeOrDefault(locale, ctxLocale string) string {
	if locale != "" {
		return locale
	}
	if ctxLocale != "" {
		return ctxLocale
	}
	return e.config.DefaultLocale
}
