// Package activation provides the neuron transfer functions.
package activation

import "math"

// DefaultBeta is the steepness used when none is configured.
const DefaultBeta = 1.0

// Sign returns +1 for h >= 0 and -1 otherwise. It is only used for final
// class decisions since it has no useful derivative.
func Sign(h float64) float64 {
	if h >= 0 {
		return 1
	}
	return -1
}

// G is the hyperbolic tangent activation tanh(beta*h).
func G(h, beta float64) float64 {
	return math.Tanh(beta * h)
}

// GDerivative is dG/dh evaluated at the pre-activation h.
func GDerivative(h, beta float64) float64 {
	g := G(h, beta)
	return beta * (1 - g*g)
}
