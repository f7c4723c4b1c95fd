package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"perceptron-forge/internal/evaluate"
	"perceptron-forge/internal/model"
)

// State is the lifecycle position of a run.
type State int

const (
	// Running is the state of a run that has not stopped yet.
	Running State = iota
	// Converged means the perceptron reached zero error.
	Converged
	// PerfectClassification means every sample is on the right side of the
	// multilayer decision boundary.
	PerfectClassification
	// IterationCapReached means the step or epoch budget ran out.
	IterationCapReached
	// Cancelled means the context was done before the run finished.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case PerfectClassification:
		return "perfect_classification"
	case IterationCapReached:
		return "iteration_cap_reached"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Progress is handed to the caller after every unit of work: one update
// for the perceptron, one epoch for the multilayer network.
type Progress struct {
	RunID uuid.UUID
	Model model.Kind
	// Index is the 1-based step or epoch number.
	Index int
	// Weights is a copy of the live weights; the caller may keep it.
	Weights model.Weights
	// Error is the full-dataset error of Weights.
	Error float64
	// Final is set when the run stops right after this yield because it
	// converged or ran out of budget. Cancellation is only seen at the next
	// check, so a cancelled run never reports Final.
	Final bool
}

// ProgressFunc receives progress snapshots on the trainer's goroutine.
type ProgressFunc func(Progress)

// Result describes a finished run.
type Result struct {
	RunID   uuid.UUID
	Dataset string
	Model   model.Kind
	// Weights are the best weights seen during the run.
	Weights   model.Weights
	Steps     int
	Error     float64
	ErrorKind evaluate.Kind
	State     State
	Elapsed   time.Duration
}

// Summary renders the result as a short human-readable report.
func (r *Result) Summary() string {
	var lines []string
	unit := "Steps"
	errText := fmt.Sprintf("%g", r.Error)
	if r.Model == model.Multilayer {
		unit = "Epochs"
		errText = fmt.Sprintf("%.6f", r.Error)
	}
	lines = append(lines,
		fmt.Sprintf("%s: %d", unit, r.Steps),
		fmt.Sprintf("Final error: %s", errText),
		fmt.Sprintf("Elapsed: %.5f s.", r.Elapsed.Seconds()),
	)
	switch r.State {
	case Converged:
		lines = append(lines, "Converged.")
	case PerfectClassification:
		lines = append(lines, "Perfect classification.")
	case Cancelled:
		lines = append(lines, "Stopped manually.")
	case IterationCapReached:
		if r.Model == model.Perceptron {
			lines = append(lines, "Did not converge (problem is not linearly separable).")
		} else {
			lines = append(lines, "Iteration cap reached.")
		}
	}
	return strings.Join(lines, "\n")
}
