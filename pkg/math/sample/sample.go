package sample

import (
	"fmt"
	"io"

	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func readBits(rand io.Reader, buf []byte) error {
	var err error
	for i := 0; i < maxIterations; i++ {
		if _, err = io.ReadFull(rand, buf); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrMaxIterations, err)
}

// ScalarBytes reads 32 byte candidates from rand until one is a valid non-zero
// scalar of the group, and returns its big-endian encoding.
//
// Each candidate is passed through condense first, when it is non-nil.
func ScalarBytes(rand io.Reader, group curve.Curve, condense func([]byte) []byte) ([]byte, error) {
	buf := make([]byte, group.SafeScalarBytes())
	for i := 0; i < maxIterations; i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		candidate := buf
		if condense != nil {
			candidate = condense(buf)
		}
		if _, err := curve.ScalarFromBytes(group, candidate); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrMaxIterations
}

// Scalar returns a uniformly random non-zero scalar.
func Scalar(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	data, err := ScalarBytes(rand, group, nil)
	if err != nil {
		return nil, err
	}
	return curve.ScalarFromBytes(group, data)
}
