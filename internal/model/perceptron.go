package model

import (
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/linalg"
)

// PerceptronWeights holds one weight per extended-input dimension; the
// last entry multiplies the bias constant.
type PerceptronWeights []float64

// NewPerceptron returns the starting weights for a dim-input perceptron:
// zero for every input and 1 for the bias.
func NewPerceptron(dim int) PerceptronWeights {
	w := make(PerceptronWeights, dim+1)
	w[dim] = 1
	return w
}

func (w PerceptronWeights) Kind() Kind { return Perceptron }

func (w PerceptronWeights) Clone() Weights {
	return append(PerceptronWeights(nil), w...)
}

func (w PerceptronWeights) Validate(dim int) error {
	if len(w) != dim+1 {
		return linalg.Mismatch("perceptron weights",
			linalg.Shape{Rows: 1, Cols: dim + 1},
			linalg.Shape{Rows: 1, Cols: len(w)})
	}
	return nil
}

// Predict returns the pre-activation dot(extended input, w).
func (w PerceptronWeights) Predict(input []float64, _ float64) (float64, error) {
	return w.Net(dataset.Extend(input))
}

// Net returns dot(ext, w) for an already extended input.
func (w PerceptronWeights) Net(ext []float64) (float64, error) {
	return linalg.Dot(ext, w)
}
