package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

func TestScalar(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.SM2{}, curve.P256{}} {
		s, err := Scalar(rand.Reader, group)
		require.NoError(t, err)
		assert.False(t, s.IsZero())
	}
}

func TestScalarBytesRejects(t *testing.T) {
	group := curve.Secp256k1{}
	// an all-zero and an all-0xff candidate are both rejected before a valid one
	stream := append(make([]byte, 32), bytes.Repeat([]byte{0xff}, 32)...)
	stream = append(stream, bytes.Repeat([]byte{0x01}, 32)...)
	data, err := ScalarBytes(bytes.NewReader(stream), group, nil)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, 32), data)
}

func TestScalarBytesCondense(t *testing.T) {
	group := curve.Secp256k1{}
	calls := 0
	condense := func(b []byte) []byte {
		calls++
		return bytes.Repeat([]byte{0x02}, 32)
	}
	data, err := ScalarBytes(bytes.NewReader(make([]byte, 32)), group, condense)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, bytes.Repeat([]byte{0x02}, 32), data)
}

func TestExhaustedReader(t *testing.T) {
	_, err := ScalarBytes(bytes.NewReader(nil), curve.SM2{}, nil)
	assert.ErrorIs(t, err, ErrMaxIterations)
}
