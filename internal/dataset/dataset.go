// Package dataset holds labelled sample sets for binary classification and
// the registry the trainers read them from.
package dataset

import (
	"github.com/pkg/errors"
)

// Sample pairs an input vector with a target label in {-1, +1}.
type Sample struct {
	Input  []float64 `json:"input" yaml:"input"`
	Target float64   `json:"target" yaml:"target"`
}

// Set is an immutable, ordered sample set. All inputs share one dimension.
type Set struct {
	name    string
	dim     int
	samples []Sample
}

// New validates and copies samples into a Set.
func New(name string, samples []Sample) (*Set, error) {
	if len(samples) == 0 {
		return nil, errors.Errorf("dataset %q: no samples", name)
	}
	dim := len(samples[0].Input)
	if dim == 0 {
		return nil, errors.Errorf("dataset %q: empty input vector", name)
	}
	copied := make([]Sample, len(samples))
	for i, s := range samples {
		if len(s.Input) != dim {
			return nil, errors.Errorf("dataset %q: sample %d has dimension %d, want %d", name, i, len(s.Input), dim)
		}
		if s.Target != 1 && s.Target != -1 {
			return nil, errors.Errorf("dataset %q: sample %d target %v not in {-1, +1}", name, i, s.Target)
		}
		copied[i] = Sample{Input: append([]float64(nil), s.Input...), Target: s.Target}
	}
	return &Set{name: name, dim: dim, samples: copied}, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(name string, samples []Sample) *Set {
	s, err := New(name, samples)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the registry name of the set.
func (s *Set) Name() string { return s.name }

// Len returns the number of samples.
func (s *Set) Len() int { return len(s.samples) }

// Dim returns the input dimension D.
func (s *Set) Dim() int { return s.dim }

// At returns a copy of sample i.
func (s *Set) At(i int) Sample {
	src := s.samples[i]
	return Sample{Input: append([]float64(nil), src.Input...), Target: src.Target}
}

// Samples returns a copy of every sample.
func (s *Set) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	for i := range s.samples {
		out[i] = s.At(i)
	}
	return out
}

// Target returns the label of sample i.
func (s *Set) Target(i int) float64 { return s.samples[i].Target }

// Extended returns every input with a trailing bias constant of 1. The
// result is freshly allocated on each call.
func (s *Set) Extended() [][]float64 {
	out := make([][]float64, len(s.samples))
	for i, sample := range s.samples {
		ext := make([]float64, s.dim+1)
		copy(ext, sample.Input)
		ext[s.dim] = 1
		out[i] = ext
	}
	return out
}

// Extend appends the bias constant to a single input vector.
func Extend(input []float64) []float64 {
	ext := make([]float64, len(input)+1)
	copy(ext, input)
	ext[len(input)] = 1
	return ext
}
