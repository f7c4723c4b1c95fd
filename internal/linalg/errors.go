package linalg

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDimensionMismatch matches every *DimensionMismatchError via errors.Is.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError reports the operation and the offending shapes.
type DimensionMismatchError struct {
	Op    string
	Left  Shape
	Right Shape
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("linalg: %s: dimension mismatch %s vs %s", e.Op, e.Left, e.Right)
}

// Is makes errors.Is(err, ErrDimensionMismatch) hold for any mismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Mismatch builds a stack-annotated *DimensionMismatchError.
func Mismatch(op string, left, right Shape) error {
	return errors.WithStack(&DimensionMismatchError{Op: op, Left: left, Right: right})
}
