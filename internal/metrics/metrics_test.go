package metrics

import (
	"testing"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	// Test pool recording
	m.RecordAcquire(false)
	m.RecordAcquire(true)
	m.RecordAcquire(true)
	m.RecordAcquire(true)
	m.RecordDestroy(4)

	// Test active set recording
	m.RecordAdmit()
	m.RecordAdmit()
	m.RecordEvict()
	m.RecordRefresh(3)

	// Test windowing recording
	m.RecordDelta(false)
	m.RecordDelta(true)
	m.RecordJump()
	m.RecordRebuild()

	// Test custom metric
	m.IncrementCustomMetric("test_metric")
	m.IncrementCustomMetric("test_metric")

	// Get snapshot
	snapshot := m.GetSnapshot()

	// Verify counts
	if snapshot["cells_created"] != int64(1) {
		t.Errorf("Expected cells created 1, got %v", snapshot["cells_created"])
	}

	if snapshot["cells_reused"] != int64(3) {
		t.Errorf("Expected cells reused 3, got %v", snapshot["cells_reused"])
	}

	if snapshot["cells_destroyed"] != int64(4) {
		t.Errorf("Expected cells destroyed 4, got %v", snapshot["cells_destroyed"])
	}

	if snapshot["binds"] != int64(5) {
		t.Errorf("Expected binds 5, got %v", snapshot["binds"])
	}

	if snapshot["evictions"] != int64(1) {
		t.Errorf("Expected evictions 1, got %v", snapshot["evictions"])
	}

	if snapshot["deltas"] != int64(2) || snapshot["debounced"] != int64(1) {
		t.Errorf("Expected 2 deltas with 1 debounced, got %v/%v", snapshot["deltas"], snapshot["debounced"])
	}

	if snapshot["test_metric"] != int64(2) {
		t.Errorf("Expected test metric 2, got %v", snapshot["test_metric"])
	}

	// Verify reuse rate
	if rate, ok := snapshot["reuse_rate"].(float64); ok {
		expected := 3.0 / 4.0
		if rate != expected {
			t.Errorf("Expected reuse rate %f, got %f", expected, rate)
		}
	} else {
		t.Error("reuse_rate not found or not a float")
	}

	// Test reset
	m.Reset()
	snapshotAfterReset := m.GetSnapshot()

	if snapshotAfterReset["cells_created"] != int64(0) {
		t.Error("Expected cells created to be 0 after reset")
	}
	if _, ok := snapshotAfterReset["test_metric"]; ok {
		t.Error("Expected custom metrics to be cleared after reset")
	}
}
