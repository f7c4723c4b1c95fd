package metrics

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(4, 2*time.Millisecond, 1*time.Millisecond, 1.5)
	w.Record(4, 1*time.Millisecond, 2*time.Millisecond, 0.75)
	if w.Units() != 2 {
		t.Fatalf("expected 2 units, got %d", w.Units())
	}
	snap := w.Snapshot()
	if math.Abs(snap.SamplesPerSec-1333.3333) > 1 {
		t.Fatalf("unexpected throughput %.2f", snap.SamplesPerSec)
	}
	if math.Abs(snap.AvgUpdateMS-1.5) > 1e-9 || math.Abs(snap.AvgEvalMS-1.5) > 1e-9 {
		t.Fatalf("unexpected averages update=%.3f eval=%.3f", snap.AvgUpdateMS, snap.AvgEvalMS)
	}
	if w.samples != 0 || w.units != 0 {
		t.Fatalf("window was not reset")
	}
	if snap.LastError != 0.75 {
		t.Fatalf("expected last error 0.75, got %.2f", snap.LastError)
	}
}

func TestEmptyWindow(t *testing.T) {
	var w Window
	snap := w.Snapshot()
	if snap.SamplesPerSec != 0 || snap.AvgUpdateMS != 0 || snap.Units != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestWindowTracksBestError(t *testing.T) {
	var w Window
	w.Start(2)
	w.Record(1, time.Millisecond, time.Millisecond, 2)
	w.Record(1, time.Millisecond, time.Millisecond, 1)
	w.Record(1, time.Millisecond, time.Millisecond, 1.5)
	w.Record(1, time.Millisecond, time.Millisecond, 0.5)
	snap := w.Snapshot()
	if snap.BestError != 0.5 || snap.Improvements != 2 {
		t.Fatalf("expected best 0.5 after 2 improvements, got %+v", snap)
	}

	w.Record(1, time.Millisecond, time.Millisecond, 0.75)
	snap = w.Snapshot()
	if snap.BestError != 0.5 {
		t.Fatalf("best error should survive a snapshot, got %.2f", snap.BestError)
	}
	if snap.Improvements != 0 {
		t.Fatalf("expected no improvements in second window, got %d", snap.Improvements)
	}
}

func TestWindowWithoutStart(t *testing.T) {
	var w Window
	w.Record(4, time.Millisecond, time.Millisecond, 3)
	w.Record(4, time.Millisecond, time.Millisecond, 2)
	snap := w.Snapshot()
	if snap.BestError != 2 || snap.Improvements != 1 {
		t.Fatalf("expected best 2 after 1 improvement, got %+v", snap)
	}
}
