package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects cell pool and windowing counters.
type Metrics struct {
	// Pool metrics
	CellsCreated   atomic.Int64
	CellsReused    atomic.Int64
	CellsDestroyed atomic.Int64

	// Active set metrics
	Admissions atomic.Int64
	Evictions  atomic.Int64
	Binds      atomic.Int64

	// Windowing metrics
	Deltas    atomic.Int64
	Debounced atomic.Int64
	Jumps     atomic.Int64
	Rebuilds  atomic.Int64
	Refreshes atomic.Int64

	// Custom metrics
	customMetrics sync.Map // map[string]*atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordAcquire records a cell handed out by the pool. reused reports
// whether it came from the free list rather than the factory.
func (m *Metrics) RecordAcquire(reused bool) {
	if reused {
		m.CellsReused.Add(1)
		return
	}
	m.CellsCreated.Add(1)
}

// RecordDestroy records cells destroyed by a pool reset.
func (m *Metrics) RecordDestroy(n int) {
	m.CellsDestroyed.Add(int64(n))
}

// RecordAdmit records an entry admitted into the active set and bound.
func (m *Metrics) RecordAdmit() {
	m.Admissions.Add(1)
	m.Binds.Add(1)
}

// RecordEvict records an entry moved back to the free list.
func (m *Metrics) RecordEvict() {
	m.Evictions.Add(1)
}

// RecordDelta records a continuous scroll update. debounced reports whether
// it was ignored for moving less than the minimum distance.
func (m *Metrics) RecordDelta(debounced bool) {
	m.Deltas.Add(1)
	if debounced {
		m.Debounced.Add(1)
	}
}

// RecordJump records a discontinuous window recomputation.
func (m *Metrics) RecordJump() {
	m.Jumps.Add(1)
}

// RecordRebuild records a data-changed rebuild.
func (m *Metrics) RecordRebuild() {
	m.Rebuilds.Add(1)
}

// RecordRefresh records a rebind of n visible entries.
func (m *Metrics) RecordRefresh(n int) {
	m.Refreshes.Add(1)
	m.Binds.Add(int64(n))
}

// IncrementCustomMetric increments a custom metric
func (m *Metrics) IncrementCustomMetric(name string) {
	if val, ok := m.customMetrics.Load(name); ok {
		if counter, ok := val.(*atomic.Int64); ok {
			counter.Add(1)
		}
	} else {
		counter := &atomic.Int64{}
		counter.Add(1)
		m.customMetrics.Store(name, counter)
	}
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() map[string]interface{} {
	uptime := time.Since(m.startTime)

	snapshot := map[string]interface{}{
		"uptime_seconds":  uptime.Seconds(),
		"cells_created":   m.CellsCreated.Load(),
		"cells_reused":    m.CellsReused.Load(),
		"cells_destroyed": m.CellsDestroyed.Load(),
		"admissions":      m.Admissions.Load(),
		"evictions":       m.Evictions.Load(),
		"binds":           m.Binds.Load(),
		"deltas":          m.Deltas.Load(),
		"debounced":       m.Debounced.Load(),
		"jumps":           m.Jumps.Load(),
		"rebuilds":        m.Rebuilds.Load(),
		"refreshes":       m.Refreshes.Load(),
	}

	// Calculate reuse rate
	if reused := m.CellsReused.Load(); reused > 0 {
		total := reused + m.CellsCreated.Load()
		snapshot["reuse_rate"] = float64(reused) / float64(total)
	}

	// Add custom metrics
	m.customMetrics.Range(func(key, value interface{}) bool {
		if counter, ok := value.(*atomic.Int64); ok {
			snapshot[key.(string)] = counter.Load()
		}
		return true
	})

	return snapshot
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.CellsCreated.Store(0)
	m.CellsReused.Store(0)
	m.CellsDestroyed.Store(0)
	m.Admissions.Store(0)
	m.Evictions.Store(0)
	m.Binds.Store(0)
	m.Deltas.Store(0)
	m.Debounced.Store(0)
	m.Jumps.Store(0)
	m.Rebuilds.Store(0)
	m.Refreshes.Store(0)

	m.customMetrics.Range(func(key, value interface{}) bool {
		m.customMetrics.Delete(key)
		return true
	})

	m.startTime = time.Now()
}
