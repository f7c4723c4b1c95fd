// Package model defines the weight layouts of the two classifiers and their
// forward passes.
package model

import (
	"strings"

	"github.com/pkg/errors"

	"perceptron-forge/internal/activation"
)

// Kind selects a classifier.
type Kind int

const (
	// Perceptron is a single sign-activated neuron.
	Perceptron Kind = iota + 1
	// Multilayer is a tanh network with one hidden layer and one output.
	Multilayer
)

// ErrUnknownKind is returned when a model name cannot be parsed.
var ErrUnknownKind = errors.New("unknown model kind")

func (k Kind) String() string {
	switch k {
	case Perceptron:
		return "perceptron"
	case Multilayer:
		return "multilayer"
	default:
		return "unknown"
	}
}

// ParseKind accepts the canonical names plus the "simple" and "mlp" aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perceptron", "simple":
		return Perceptron, nil
	case "multilayer", "mlp":
		return Multilayer, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "model %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Perceptron && k != Multilayer {
		return nil, errors.Wrapf(ErrUnknownKind, "model %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Weights is a trained or in-training parameter set.
type Weights interface {
	Kind() Kind
	// Clone returns a deep copy that shares no memory with the receiver.
	Clone() Weights
	// Validate checks the layout against an input dimension.
	Validate(dim int) error
	// Predict returns the continuous model output for a raw input vector
	// (without the bias term).
	Predict(input []float64, beta float64) (float64, error)
}

// Classify returns the predicted label of input in {-1, +1}.
func Classify(w Weights, input []float64, beta float64) (float64, error) {
	out, err := w.Predict(input, beta)
	if err != nil {
		return 0, err
	}
	return activation.Sign(out), nil
}
