package base58check

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 33)
	for name, c := range map[string]Checksum{
		"double sha256": DoubleSHA256,
		"ripemd160":     RIPEMD160,
		"tagged K1":     Tagged("K1"),
		"tagged SM2":    Tagged("SM2"),
	} {
		t.Run(name, func(t *testing.T) {
			s := Encode(payload, c)
			got, err := Decode(s, c)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestTagChangesChecksum(t *testing.T) {
	payload := []byte("payload")
	s := Encode(payload, Tagged("K1"))
	_, err := Decode(s, Tagged("R1"))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	_, err = Decode(s, RIPEMD160)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("0OIl", RIPEMD160)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = Decode(base58.Encode([]byte{1, 2, 3, 4}), RIPEMD160)
	assert.ErrorIs(t, err, ErrTooShort)

	s := Encode([]byte("hello"), DoubleSHA256)
	raw, err := base58.Decode(s)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 1
	_, err = Decode(base58.Encode(raw), DoubleSHA256)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestLegacyPrivateKeyLayout(t *testing.T) {
	// 0x80 ∥ SHA-256("") with a double SHA-256 checksum is the WIF of the empty seed.
	payload := append([]byte{0x80}, []byte{
		0xe3, 0xb0, 0xc4, 0x42, 0x98, 0xfc, 0x1c, 0x14, 0x9a, 0xfb, 0xf4, 0xc8, 0x99, 0x6f, 0xb9, 0x24,
		0x27, 0xae, 0x41, 0xe4, 0x64, 0x9b, 0x93, 0x4c, 0xa4, 0x95, 0x99, 0x1b, 0x78, 0x52, 0xb8, 0x55,
	}...)
	assert.Equal(t, "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss", Encode(payload, DoubleSHA256))
}
