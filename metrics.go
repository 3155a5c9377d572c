package goCred

import "sync/atomic"

// MetricID identifies one counter in the in-process metrics system.
type MetricID uint16

const (
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts registrations rejected because the
	// username was taken.
	MetricRegisterDuplicate
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts logins rejected as invalid credentials.
	MetricLoginFailure
	// MetricTokenRejected counts bearer tokens that failed verification.
	MetricTokenRejected
	// MetricSecretRotated counts signing-secret rotations (revocations).
	MetricSecretRotated
	// MetricUpdateSuccess counts successful credential updates.
	MetricUpdateSuccess
	// MetricUpdateConflict counts renames rejected because the target
	// username was taken.
	MetricUpdateConflict
	// MetricDeleteSuccess counts account deletions.
	MetricDeleteSuccess
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters, one per [MetricID]. When disabled, all
// operations are no-ops. Safe for concurrent use.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters [metricIDCount]uint64
}

// NewMetrics creates a Metrics instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc adds 1 to the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current value of the counter identified by id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a consistent-enough copy of all counters. Each counter
// is read atomically; the set as a whole is not a single atomic read.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var snap MetricsSnapshot
	if m == nil {
		return snap
	}
	for i := MetricID(0); i < metricIDCount; i++ {
		snap.Counters[i] = atomic.LoadUint64(&m.counters[i].value)
	}
	return snap
}
