package metrics

import "time"

// Window accumulates timing and error stats across training units. The best
// error persists across snapshots; everything else resets.
type Window struct {
	samples      int
	update       time.Duration
	eval         time.Duration
	units        int
	lastError    float64
	best         float64
	hasBest      bool
	improvements int
}

// Start seeds the best error with the score of the starting weights so the
// first unit only counts as an improvement if it beats them.
func (w *Window) Start(initial float64) {
	w.best = initial
	w.hasBest = true
}

// Record adds one unit of work: the number of samples it updated on, the
// time spent updating weights, the time spent scoring the full dataset and
// the resulting error.
func (w *Window) Record(samples int, updateTime, evalTime time.Duration, err float64) {
	w.samples += samples
	w.update += updateTime
	w.eval += evalTime
	w.units++
	w.lastError = err
	switch {
	case !w.hasBest:
		w.best, w.hasBest = err, true
	case err < w.best:
		w.best = err
		w.improvements++
	}
}

// Units returns the number of units recorded since the last Snapshot.
func (w *Window) Units() int {
	return w.units
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Units: w.units}
	total := w.update + w.eval
	if total > 0 {
		snap.SamplesPerSec = float64(w.samples) / total.Seconds()
	}
	if w.units > 0 {
		snap.AvgUpdateMS = (w.update.Seconds() * 1000) / float64(w.units)
		snap.AvgEvalMS = (w.eval.Seconds() * 1000) / float64(w.units)
	}
	snap.LastError = w.lastError
	snap.BestError = w.best
	snap.Improvements = w.improvements

	w.samples = 0
	w.update = 0
	w.eval = 0
	w.units = 0
	w.improvements = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Units         int
	SamplesPerSec float64
	AvgUpdateMS   float64
	AvgEvalMS     float64
	LastError     float64
	// BestError is the lowest error seen since Start.
	BestError float64
	// Improvements counts units in this window that lowered BestError.
	Improvements int
}
