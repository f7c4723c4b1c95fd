package model

import (
	"math/rand"

	"perceptron-forge/internal/activation"
	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/linalg"
)

// DefaultHidden is the hidden layer width.
const DefaultHidden = 2

// MultilayerWeights holds the two weight matrices of a one-hidden-layer
// network. InputHidden is (D+1)xH and HiddenOutput is (H+1)x1; the last row
// of each multiplies a bias constant.
type MultilayerWeights struct {
	InputHidden  linalg.Matrix `json:"input_hidden"`
	HiddenOutput linalg.Matrix `json:"hidden_output"`
}

// NewMultilayer draws every weight uniformly from [-1, 1).
func NewMultilayer(dim, hidden int, rng *rand.Rand) MultilayerWeights {
	uniform := func(rows, cols int) linalg.Matrix {
		m := linalg.Zeros(rows, cols)
		for i := range m {
			for j := range m[i] {
				m[i][j] = rng.Float64()*2 - 1
			}
		}
		return m
	}
	ih := uniform(dim+1, hidden)
	ho := uniform(hidden+1, 1)
	return MultilayerWeights{InputHidden: ih, HiddenOutput: ho}
}

func (w MultilayerWeights) Kind() Kind { return Multilayer }

func (w MultilayerWeights) Clone() Weights {
	return MultilayerWeights{
		InputHidden:  w.InputHidden.Clone(),
		HiddenOutput: w.HiddenOutput.Clone(),
	}
}

// Hidden returns the hidden layer width H.
func (w MultilayerWeights) Hidden() int {
	return w.InputHidden.Shape().Cols
}

func (w MultilayerWeights) Validate(dim int) error {
	if err := w.InputHidden.Validate(); err != nil {
		return err
	}
	if err := w.HiddenOutput.Validate(); err != nil {
		return err
	}
	ih, ho := w.InputHidden.Shape(), w.HiddenOutput.Shape()
	if ih.Rows != dim+1 || ih.Cols == 0 {
		return linalg.Mismatch("input-hidden weights", linalg.Shape{Rows: dim + 1, Cols: ih.Cols}, ih)
	}
	if ho.Rows != ih.Cols+1 || ho.Cols != 1 {
		return linalg.Mismatch("hidden-output weights", linalg.Shape{Rows: ih.Cols + 1, Cols: 1}, ho)
	}
	return nil
}

// Pass records the intermediate values of one forward pass.
type Pass struct {
	// Input is the extended input.
	Input []float64
	// HiddenPre are the hidden pre-activations (length H).
	HiddenPre []float64
	// Hidden are the hidden activations with the bias constant appended
	// (length H+1).
	Hidden []float64
	// OutputPre is the output pre-activation.
	OutputPre float64
	// Output is g(OutputPre), in (-1, 1).
	Output float64
}

// Forward runs the network on an extended input.
func (w MultilayerWeights) Forward(ext []float64, beta float64) (Pass, error) {
	hiddenPre, err := linalg.MatMul(linalg.ToRowVector(ext), w.InputHidden)
	if err != nil {
		return Pass{}, err
	}
	pre := hiddenPre[0]
	hidden := make([]float64, len(pre)+1)
	for j, h := range pre {
		hidden[j] = activation.G(h, beta)
	}
	hidden[len(pre)] = 1

	out, err := linalg.MatMul(linalg.ToRowVector(hidden), w.HiddenOutput)
	if err != nil {
		return Pass{}, err
	}
	if s := out.Shape(); s.Cols != 1 {
		return Pass{}, linalg.Mismatch("output layer", linalg.Shape{Rows: 1, Cols: 1}, s)
	}
	outPre := out[0][0]
	return Pass{
		Input:     ext,
		HiddenPre: pre,
		Hidden:    hidden,
		OutputPre: outPre,
		Output:    activation.G(outPre, beta),
	}, nil
}

// Predict returns the network output for a raw input.
func (w MultilayerWeights) Predict(input []float64, beta float64) (float64, error) {
	p, err := w.Forward(dataset.Extend(input), beta)
	if err != nil {
		return 0, err
	}
	return p.Output, nil
}
