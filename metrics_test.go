package goCred

import (
	"sync"
	"testing"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricSecretRotated)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("Value = %d, want 2", got)
	}
	if got := m.Value(MetricSecretRotated); got != 1 {
		t.Fatalf("Value = %d, want 1", got)
	}
	if got := m.Value(MetricDeleteSuccess); got != 0 {
		t.Fatalf("Value = %d, want 0", got)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled counter = %d, want 0", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("nil Value = %d, want 0", got)
	}

	snap := m.Snapshot()
	for i, v := range snap.Counters {
		if v != 0 {
			t.Fatalf("nil snapshot counter %d = %d, want 0", i, v)
		}
	}
}

func TestMetricsOutOfRangeID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(metricIDCount)
	m.Inc(MetricID(10000))

	if got := m.Value(metricIDCount); got != 0 {
		t.Fatalf("out-of-range Value = %d, want 0", got)
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const (
		goroutines = 8
		perG       = 1000
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				m.Inc(MetricTokenRejected)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricTokenRejected); got != goroutines*perG {
		t.Fatalf("Value = %d, want %d", got, goroutines*perG)
	}
}
