// Package evaluate scores a weight set against a whole sample set.
package evaluate

import (
	"math"

	"github.com/pkg/errors"

	"perceptron-forge/internal/activation"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/model"
)

// Kind tags an error value with its scale. Values of different kinds are
// not comparable.
type Kind int

const (
	// AbsoluteCount is the sum of |target - sign(output)|, two per
	// misclassified sample.
	AbsoluteCount Kind = iota + 1
	// SquaredError is the sum of 0.5*(target - output)^2.
	SquaredError
)

func (k Kind) String() string {
	switch k {
	case AbsoluteCount:
		return "absolute"
	case SquaredError:
		return "squared"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf returns the error kind reported for a model.
func KindOf(m model.Kind) Kind {
	if m == model.Perceptron {
		return AbsoluteCount
	}
	return SquaredError
}

// ComputeError returns the total error of w over set.
func ComputeError(set *dataset.Set, w model.Weights, beta float64) (float64, error) {
	switch w := w.(type) {
	case model.PerceptronWeights:
		return PerceptronError(set.Extended(), set, w)
	case model.MultilayerWeights:
		return MultilayerError(set.Extended(), set, w, beta)
	}
	return 0, errors.Wrapf(model.ErrUnknownKind, "weights %T", w)
}

// PerceptronError is ComputeError for an already extended input table.
func PerceptronError(ext [][]float64, set *dataset.Set, w model.PerceptronWeights) (float64, error) {
	total := 0.0
	for i, x := range ext {
		h, err := w.Net(x)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		total += math.Abs(set.Target(i) - activation.Sign(h))
	}
	return total, nil
}

// MultilayerError is ComputeError for an already extended input table.
func MultilayerError(ext [][]float64, set *dataset.Set, w model.MultilayerWeights, beta float64) (float64, error) {
	total := 0.0
	for i, x := range ext {
		p, err := w.Forward(x, beta)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		diff := set.Target(i) - p.Output
		total += 0.5 * diff * diff
	}
	return total, nil
}

// AllClassifiedCorrectly reports whether sign(output) equals the target for
// every sample. It stops at the first mismatch.
func AllClassifiedCorrectly(set *dataset.Set, w model.MultilayerWeights, beta float64) (bool, error) {
	return AllCorrect(set.Extended(), set, w, beta)
}

// AllCorrect is AllClassifiedCorrectly for an already extended input table.
func AllCorrect(ext [][]float64, set *dataset.Set, w model.MultilayerWeights, beta float64) (bool, error) {
	for i, x := range ext {
		p, err := w.Forward(x, beta)
		if err != nil {
			return false, errors.Wrapf(err, "sample %d", i)
		}
		if activation.Sign(p.Output) != set.Target(i) {
			return false, nil
		}
	}
	return true, nil
}
