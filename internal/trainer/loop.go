package trainer

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"perceptron-forge/internal/activation"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/evaluate"
	"perceptron-forge/internal/metrics"
	"perceptron-forge/internal/model"
)

// RunConfig captures the knobs required by the training loops.
type RunConfig struct {
	// Eta is the learning rate.
	Eta float64
	// IterationCap bounds perceptron steps or multilayer epochs.
	IterationCap int
	// Seed drives weight initialization and sampling. Zero picks a
	// time-based seed.
	Seed int64
	// Beta is the tanh steepness. Zero means activation.DefaultBeta.
	Beta float64
	// Hidden is the hidden layer width. Zero means model.DefaultHidden.
	Hidden int
	// Initial overrides the starting weights. It is cloned, never mutated.
	Initial model.Weights
	// LogEvery is the progress logging period in steps or epochs.
	LogEvery int
	Logger   *slog.Logger
}

// Request selects what Train runs.
type Request struct {
	Dataset string
	Model   model.Kind
	RunConfig
}

// Train looks the dataset up in reg and runs the requested trainer. The
// returned error is only set for configuration faults and dimension
// mismatches; every other outcome is reported through Result.State.
func Train(ctx context.Context, reg dataset.Registry, req Request, onProgress ProgressFunc) (*Result, error) {
	set, err := reg.Lookup(req.Dataset)
	if err != nil {
		return nil, err
	}
	switch req.Model {
	case model.Perceptron:
		return Perceptron(ctx, set, req.RunConfig, onProgress)
	case model.Multilayer:
		return Multilayer(ctx, set, req.RunConfig, onProgress)
	}
	return nil, errors.Wrapf(model.ErrUnknownKind, "model %d", int(req.Model))
}

func (c RunConfig) withDefaults() (RunConfig, error) {
	if !(c.Eta > 0) || math.IsInf(c.Eta, 0) {
		return c, errors.Errorf("trainer: eta must be finite and > 0 (got %g)", c.Eta)
	}
	if c.IterationCap < 0 {
		return c, errors.Errorf("trainer: iteration cap must be >= 0 (got %d)", c.IterationCap)
	}
	if c.Beta < 0 || math.IsNaN(c.Beta) || math.IsInf(c.Beta, 0) {
		return c, errors.Errorf("trainer: beta must be finite and >= 0 (got %g)", c.Beta)
	}
	if c.Beta == 0 {
		c.Beta = activation.DefaultBeta
	}
	if c.Hidden <= 0 {
		c.Hidden = model.DefaultHidden
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c, nil
}

// run holds the per-invocation bookkeeping shared by both trainers.
type run struct {
	id         uuid.UUID
	kind       model.Kind
	cfg        RunConfig
	rng        *rand.Rand
	log        *slog.Logger
	onProgress ProgressFunc
	window     metrics.Window
	start      time.Time
}

func newRun(set *dataset.Set, kind model.Kind, cfg RunConfig, onProgress ProgressFunc) (*run, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if cfg.Initial != nil && cfg.Initial.Kind() != kind {
		return nil, errors.Errorf("trainer: initial weights are %s, want %s", cfg.Initial.Kind(), kind)
	}
	id := uuid.New()
	r := &run{
		id:         id,
		kind:       kind,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		onProgress: onProgress,
		start:      time.Now(),
		log: cfg.Logger.With(
			"run_id", id.String(),
			"dataset", set.Name(),
			"model", kind.String(),
		),
	}
	r.log.Info("training started",
		"eta", cfg.Eta,
		"iteration_cap", cfg.IterationCap,
		"seed", cfg.Seed,
		"samples", set.Len(),
		"dim", set.Dim(),
	)
	return r, nil
}

// yield records metrics for one unit, hands a snapshot to the caller and
// logs every LogEvery units.
func (r *run) yield(index, samples int, updateTime, evalTime time.Duration, w model.Weights, current float64, final bool) {
	r.window.Record(samples, updateTime, evalTime, current)
	if r.onProgress != nil {
		r.onProgress(Progress{
			RunID:   r.id,
			Model:   r.kind,
			Index:   index,
			Weights: w.Clone(),
			Error:   current,
			Final:   final,
		})
	}
	if index%r.cfg.LogEvery == 0 {
		snap := r.window.Snapshot()
		r.log.Info("progress",
			"step", index,
			"error", snap.LastError,
			"samples_per_sec", snap.SamplesPerSec,
			"update_ms", snap.AvgUpdateMS,
			"eval_ms", snap.AvgEvalMS,
			"best_error", snap.BestError,
			"improvements", snap.Improvements,
		)
	}
}

func (r *run) finish(set *dataset.Set, best model.Weights, bestErr float64, steps int, state State) *Result {
	res := &Result{
		RunID:     r.id,
		Dataset:   set.Name(),
		Model:     r.kind,
		Weights:   best,
		Steps:     steps,
		Error:     bestErr,
		ErrorKind: evaluate.KindOf(r.kind),
		State:     state,
		Elapsed:   time.Since(r.start),
	}
	r.log.Info("training finished",
		"state", state.String(),
		"steps", steps,
		"error", bestErr,
		"elapsed", res.Elapsed,
	)
	return res
}
