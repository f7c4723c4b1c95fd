// Package render draws a model's decision surface as text.
package render

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/model"
)

// Cell glyphs.
const (
	Positive       = '+'
	Negative       = '-'
	Blank          = '.'
	PositiveSample = 'O'
	NegativeSample = 'X'
)

// Options sizes the grid. Range is the side of the square, centred on the
// origin, that the grid covers.
type Options struct {
	Width  int
	Height int
	Range  float64
	Beta   float64
}

// DefaultOptions covers [-3.5, 3.5] on both axes.
func DefaultOptions() Options {
	return Options{Width: 42, Height: 21, Range: 7, Beta: 1}
}

// Surface samples w at the centre of every cell and overlays the samples of
// set. A nil w renders only the samples.
func Surface(out io.Writer, set *dataset.Set, w model.Weights, opt Options) error {
	if set.Dim() != 2 {
		return errors.Errorf("render: need 2-dimensional inputs, dataset %q has %d", set.Name(), set.Dim())
	}
	if opt.Width <= 0 || opt.Height <= 0 || opt.Range <= 0 {
		return errors.Errorf("render: invalid grid %dx%d over %g", opt.Width, opt.Height, opt.Range)
	}
	stepX := opt.Range / float64(opt.Width)
	stepY := opt.Range / float64(opt.Height)
	half := opt.Range / 2

	grid := make([][]byte, opt.Height)
	for iy := range grid {
		grid[iy] = make([]byte, opt.Width)
		py := half - (float64(iy)+0.5)*stepY
		for ix := range grid[iy] {
			if w == nil {
				grid[iy][ix] = Blank
				continue
			}
			px := -half + (float64(ix)+0.5)*stepX
			v, err := w.Predict([]float64{px, py}, opt.Beta)
			if err != nil {
				return err
			}
			if v >= 0 {
				grid[iy][ix] = Positive
			} else {
				grid[iy][ix] = Negative
			}
		}
	}

	for _, s := range set.Samples() {
		ix := clamp(int((s.Input[0]+half)/stepX), opt.Width)
		iy := clamp(int((half-s.Input[1])/stepY), opt.Height)
		if s.Target > 0 {
			grid[iy][ix] = PositiveSample
		} else {
			grid[iy][ix] = NegativeSample
		}
	}

	bw := bufio.NewWriter(out)
	for _, row := range grid {
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
