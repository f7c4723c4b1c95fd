package trainer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"perceptron-forge/internal/activation"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/evaluate"
	"perceptron-forge/internal/model"
)

// Perceptron trains a single sign neuron with the perceptron rule, one
// randomly drawn sample per step. It stops on zero error, after
// cfg.IterationCap steps, or when ctx is done, and returns the lowest-error
// weights seen.
func Perceptron(ctx context.Context, set *dataset.Set, cfg RunConfig, onProgress ProgressFunc) (*Result, error) {
	r, err := newRun(set, model.Perceptron, cfg, onProgress)
	if err != nil {
		return nil, err
	}

	w := model.NewPerceptron(set.Dim())
	if r.cfg.Initial != nil {
		w = r.cfg.Initial.Clone().(model.PerceptronWeights)
	}
	if err := w.Validate(set.Dim()); err != nil {
		return nil, errors.Wrap(err, "trainer: perceptron")
	}

	ext := set.Extended()
	sampler := dataset.NewSampler(set.Len(), r.rng)

	current, err := evaluate.PerceptronError(ext, set, w)
	if err != nil {
		return nil, err
	}
	best, bestErr := w.Clone(), current
	r.window.Start(bestErr)

	step := 0
	for {
		var state State
		switch {
		case current == 0:
			state = Converged
		case step >= r.cfg.IterationCap:
			state = IterationCapReached
		case ctx.Err() != nil:
			state = Cancelled
		}
		if state != Running {
			return r.finish(set, best, bestErr, step, state), nil
		}

		startUpdate := time.Now()
		idx := sampler.Pick()
		x := ext[idx]
		h, err := w.Net(x)
		if err != nil {
			return nil, err
		}
		diff := set.Target(idx) - activation.Sign(h)
		for j := range w {
			w[j] += r.cfg.Eta * diff * x[j]
		}
		updateTime := time.Since(startUpdate)

		startEval := time.Now()
		current, err = evaluate.PerceptronError(ext, set, w)
		if err != nil {
			return nil, err
		}
		evalTime := time.Since(startEval)
		step++

		if current < bestErr {
			best, bestErr = w.Clone(), current
			r.log.Debug("new best", "step", step, "error", current)
		}
		r.yield(step, 1, updateTime, evalTime, w, current, current == 0 || step >= r.cfg.IterationCap)
	}
}
