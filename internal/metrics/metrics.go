package metrics

import "sync/atomic"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID uint16

const (
	MetricAuthSuccess MetricID = iota
	MetricAuthFailure
	MetricIssueSuccess
	MetricIssueFailure
	MetricValidateSuccess
	MetricValidateFailure
	MetricReplayDetected
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricRevokeSuccess
	MetricRevokeFailure
	MetricCacheUnavailable

	// MetricIDCount is the number of defined metric ids.
	MetricIDCount
)

// Config controls metrics collection.
type Config struct {
	Enabled bool
}

// Metrics holds atomic counters. When disabled, all operations are no-ops.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]atomic.Uint64
}

// New creates a Metrics instance from cfg.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the counter for id. Unknown ids are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Get returns the current value of the counter for id.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot is a point-in-time copy of all non-zero counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		if v := m.counters[id].Load(); v > 0 {
			snap.Counters[id] = v
		}
	}
	return snap
}
