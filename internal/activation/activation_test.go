package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(0))
	assert.Equal(t, 1.0, Sign(0.3))
	assert.Equal(t, -1.0, Sign(-1e-9))
}

func TestGDerivativeMatchesNumerical(t *testing.T) {
	for _, beta := range []float64{DefaultBeta, 0.5, 2} {
		g := func(h float64) float64 { return G(h, beta) }
		for h := -5.0; h <= 5.0; h += 0.25 {
			want := fd.Derivative(g, h, &fd.Settings{Formula: fd.Central})
			assert.InDelta(t, want, GDerivative(h, beta), 1e-6, "beta=%v h=%v", beta, h)
		}
	}
}

func TestGBounds(t *testing.T) {
	assert.Equal(t, 0.0, G(0, DefaultBeta))
	assert.Less(t, G(10, DefaultBeta), 1.0+1e-12)
	assert.Greater(t, G(-10, DefaultBeta), -1.0-1e-12)
	assert.Equal(t, DefaultBeta, GDerivative(0, DefaultBeta))
}
