package trainer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"perceptron-forge/internal/activation"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/evaluate"
	"perceptron-forge/internal/linalg"
	"perceptron-forge/internal/model"
)

// Multilayer trains a one-hidden-layer tanh network with online
// backpropagation over shuffled epochs. It stops as soon as every sample
// is classified correctly, after cfg.IterationCap epochs, or when ctx is
// done.
//
// Unless cfg.Initial is set, the starting weights are the first draws from
// the seeded source, so model.NewMultilayer with the same seed reproduces
// them.
func Multilayer(ctx context.Context, set *dataset.Set, cfg RunConfig, onProgress ProgressFunc) (*Result, error) {
	r, err := newRun(set, model.Multilayer, cfg, onProgress)
	if err != nil {
		return nil, err
	}

	var w model.MultilayerWeights
	if r.cfg.Initial != nil {
		w = r.cfg.Initial.Clone().(model.MultilayerWeights)
	} else {
		w = model.NewMultilayer(set.Dim(), r.cfg.Hidden, r.rng)
	}
	if err := w.Validate(set.Dim()); err != nil {
		return nil, errors.Wrap(err, "trainer: multilayer")
	}

	ext := set.Extended()
	sampler := dataset.NewSampler(set.Len(), r.rng)

	bestErr, err := evaluate.MultilayerError(ext, set, w, r.cfg.Beta)
	if err != nil {
		return nil, err
	}
	best := w.Clone()
	r.window.Start(bestErr)

	epoch := 0
	for {
		if epoch >= r.cfg.IterationCap {
			return r.finish(set, best, bestErr, epoch, IterationCapReached), nil
		}
		if ctx.Err() != nil {
			return r.finish(set, best, bestErr, epoch, Cancelled), nil
		}

		startUpdate := time.Now()
		processed := 0
		interrupted := false
		for _, idx := range sampler.Epoch() {
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			if err := backpropagate(&w, ext[idx], set.Target(idx), r.cfg.Eta, r.cfg.Beta); err != nil {
				return nil, errors.Wrapf(err, "trainer: epoch %d sample %d", epoch+1, idx)
			}
			processed++
		}
		if processed == 0 {
			return r.finish(set, best, bestErr, epoch, Cancelled), nil
		}
		epoch++
		updateTime := time.Since(startUpdate)

		startEval := time.Now()
		current, err := evaluate.MultilayerError(ext, set, w, r.cfg.Beta)
		if err != nil {
			return nil, err
		}
		if current < bestErr {
			best, bestErr = w.Clone(), current
			r.log.Debug("new best", "epoch", epoch, "error", current)
		}
		perfect, err := evaluate.AllCorrect(ext, set, w, r.cfg.Beta)
		if err != nil {
			return nil, err
		}
		evalTime := time.Since(startEval)

		state := Running
		switch {
		case perfect:
			best, bestErr = w.Clone(), current
			state = PerfectClassification
		case interrupted:
			state = Cancelled
		case epoch >= r.cfg.IterationCap:
			state = IterationCapReached
		}
		r.yield(epoch, processed, updateTime, evalTime, w, current, state == PerfectClassification || state == IterationCapReached)
		if state != Running {
			return r.finish(set, best, bestErr, epoch, state), nil
		}
	}
}

// backpropagate applies one online update for a single extended input.
// Hidden deltas are taken from the hidden-to-output weights before they are
// updated, and the bias row of those weights does not feed back into the
// hidden layer.
func backpropagate(w *model.MultilayerWeights, x []float64, target, eta, beta float64) error {
	p, err := w.Forward(x, beta)
	if err != nil {
		return err
	}
	hidden := len(p.HiddenPre)

	outDelta := linalg.ToColumnVector([]float64{
		activation.GDerivative(p.OutputPre, beta) * (target - p.Output),
	})
	back, err := linalg.MatMul(outDelta, linalg.Transpose(w.HiddenOutput[:hidden]))
	if err != nil {
		return err
	}
	hiddenDelta := make([]float64, hidden)
	for j, h := range p.HiddenPre {
		hiddenDelta[j] = activation.GDerivative(h, beta) * back[0][j]
	}

	gradHO, err := linalg.MatMul(linalg.Transpose(linalg.ToRowVector(p.Hidden)), outDelta)
	if err != nil {
		return err
	}
	ho, err := linalg.MatAdd(w.HiddenOutput, linalg.ScalarMul(eta, gradHO))
	if err != nil {
		return err
	}

	gradIH, err := linalg.MatMul(linalg.ToColumnVector(hiddenDelta), linalg.ToRowVector(p.Input))
	if err != nil {
		return err
	}
	ih, err := linalg.MatAdd(w.InputHidden, linalg.Transpose(linalg.ScalarMul(eta, gradIH)))
	if err != nil {
		return err
	}

	w.HiddenOutput, w.InputHidden = ho, ih
	return nil
}
