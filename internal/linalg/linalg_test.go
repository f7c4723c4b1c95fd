package linalg

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomMatrix(rng *rand.Rand, rows, cols int) Matrix {
	m := Zeros(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.Float64()*2 - 1
		}
	}
	return m
}

func dense(m Matrix) *mat.Dense {
	s := m.Shape()
	data := make([]float64, 0, s.Rows*s.Cols)
	for _, row := range m {
		data = append(data, row...)
	}
	return mat.NewDense(s.Rows, s.Cols, data)
}

func TestDot(t *testing.T) {
	v, err := Dot([]float64{1, 2, 3}, []float64{4, -5, 6})
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	_, err = Dot([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	var dm *DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, "dot", dm.Op)
	assert.Equal(t, Shape{Rows: 1, Cols: 2}, dm.Left)
	assert.Equal(t, Shape{Rows: 1, Cols: 3}, dm.Right)
}

func TestMatMulMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		r, k, c := 1+rng.Intn(4), 1+rng.Intn(4), 1+rng.Intn(4)
		a := randomMatrix(rng, r, k)
		b := randomMatrix(rng, k, c)

		got, err := MatMul(a, b)
		require.NoError(t, err)

		var want mat.Dense
		want.Mul(dense(a), dense(b))
		assert.True(t, mat.EqualApprox(dense(got), &want, 1e-12), "trial %d: %v", trial, got)
	}
}

func TestMatMulTransposeIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		r, k, c := 1+rng.Intn(4), 1+rng.Intn(4), 1+rng.Intn(4)
		a := randomMatrix(rng, r, k)
		b := randomMatrix(rng, k, c)

		ab, err := MatMul(a, b)
		require.NoError(t, err)
		btat, err := MatMul(Transpose(b), Transpose(a))
		require.NoError(t, err)

		lhs := Transpose(ab)
		require.Equal(t, lhs.Shape(), btat.Shape())
		for i := range lhs {
			assert.InDeltaSlice(t, lhs[i], btat[i], 1e-12)
		}
	}
}

func TestMatMulMismatch(t *testing.T) {
	_, err := MatMul(Zeros(1, 3), Zeros(2, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Contains(t, err.Error(), "1x3 vs 2x2")

	_, err = MatMul(Matrix{{1, 2}, {3}}, Zeros(2, 1))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestTranspose(t *testing.T) {
	assert.Equal(t, Matrix{{}}, Transpose(nil))
	assert.Equal(t, Matrix{{}}, Transpose(Matrix{{}}))
	assert.Equal(t, Matrix{{1}, {2}, {3}}, Transpose(Matrix{{1, 2, 3}}))
	assert.Equal(t, Matrix{{1, 3}, {2, 4}}, Transpose(Matrix{{1, 2}, {3, 4}}))
}

func TestScalarMulAndMatAdd(t *testing.T) {
	m := Matrix{{1, -2}, {3, 0.5}}
	assert.Equal(t, Matrix{{2, -4}, {6, 1}}, ScalarMul(2, m))
	assert.Equal(t, Matrix{{1, -2}, {3, 0.5}}, m)

	sum, err := MatAdd(m, Matrix{{1, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, Matrix{{2, -1}, {4, 1.5}}, sum)

	_, err = MatAdd(m, Zeros(2, 3))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestVectorPromotion(t *testing.T) {
	v := []float64{1, 2, 3}
	row := ToRowVector(v)
	col := ToColumnVector(v)
	assert.Equal(t, Shape{Rows: 1, Cols: 3}, row.Shape())
	assert.Equal(t, Shape{Rows: 3, Cols: 1}, col.Shape())

	row[0][0] = 99
	assert.Equal(t, 1.0, v[0])
}

func TestClone(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	c := m.Clone()
	c[0][0] = 42
	assert.Equal(t, 1.0, m[0][0])
}
