// Package linalg holds the small dense vector and matrix helpers used by the
// trainers. Matrices are row-major slices of rows; every operation allocates
// its result and leaves its operands untouched.
package linalg

import (
	"gonum.org/v1/gonum/floats"
)

// Matrix is a dense row-major matrix.
type Matrix [][]float64

// Shape is the number of rows and columns of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// Shape reports the matrix dimensions. An empty matrix is 0x0. Ragged
// matrices report the length of their first row; use Validate to reject them.
func (m Matrix) Shape() Shape {
	if len(m) == 0 {
		return Shape{}
	}
	return Shape{Rows: len(m), Cols: len(m[0])}
}

// Validate fails with a dimension mismatch when rows differ in length.
func (m Matrix) Validate() error {
	s := m.Shape()
	for _, row := range m {
		if len(row) != s.Cols {
			return Mismatch("ragged rows", Shape{Rows: 1, Cols: s.Cols}, Shape{Rows: 1, Cols: len(row)})
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Zeros allocates a rows x cols matrix of zeros.
func Zeros(rows, cols int) Matrix {
	out := make(Matrix, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}

// Dot returns the sum of elementwise products of a and b.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, Mismatch("dot", Shape{Rows: 1, Cols: len(a)}, Shape{Rows: 1, Cols: len(b)})
	}
	return floats.Dot(a, b), nil
}

// MatMul returns the product a x b.
func MatMul(a, b Matrix) (Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	sa, sb := a.Shape(), b.Shape()
	if sa.Cols != sb.Rows {
		return nil, Mismatch("matmul", sa, sb)
	}
	out := Zeros(sa.Rows, sb.Cols)
	for i := 0; i < sa.Rows; i++ {
		for j := 0; j < sb.Cols; j++ {
			for k := 0; k < sa.Cols; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out, nil
}

// Transpose swaps rows and columns. An empty input yields a single empty row.
func Transpose(m Matrix) Matrix {
	if len(m) == 0 || len(m[0]) == 0 {
		return Matrix{{}}
	}
	s := m.Shape()
	out := Zeros(s.Cols, s.Rows)
	for i, row := range m {
		for j := 0; j < s.Cols && j < len(row); j++ {
			out[j][i] = row[j]
		}
	}
	return out
}

// ScalarMul returns k*m.
func ScalarMul(k float64, m Matrix) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		floats.ScaleTo(out[i], k, row)
	}
	return out
}

// MatAdd returns a+b. Both operands must have the same shape.
func MatAdd(a, b Matrix) (Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	sa, sb := a.Shape(), b.Shape()
	if sa != sb {
		return nil, Mismatch("matadd", sa, sb)
	}
	out := make(Matrix, len(a))
	for i := range a {
		out[i] = make([]float64, sa.Cols)
		floats.AddTo(out[i], a[i], b[i])
	}
	return out, nil
}

// ToRowVector wraps v as a 1xN matrix. The row is a copy of v.
func ToRowVector(v []float64) Matrix {
	return Matrix{append([]float64(nil), v...)}
}

// ToColumnVector wraps v as an Nx1 matrix.
func ToColumnVector(v []float64) Matrix {
	out := make(Matrix, len(v))
	for i, x := range v {
		out[i] = []float64{x}
	}
	return out
}
