// Package base58check encodes payloads as base58 followed by a 4 byte checksum.
//
// Three checksum rules are in use:
//
//   - DoubleSHA256: first 4 bytes of SHA-256(SHA-256(payload)), for legacy private keys.
//   - RIPEMD160: first 4 bytes of RIPEMD-160(payload), for legacy public keys.
//   - Tagged(tag): first 4 bytes of RIPEMD-160(payload ∥ tag), for typed keys and signatures.
package base58check

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/digest"
)

type Error string

const (
	ErrChecksumMismatch Error = "base58check: checksum mismatch"
	ErrInvalidEncoding  Error = "base58check: invalid base58 string"
	ErrTooShort         Error = "base58check: decoded data is too short"
)

func (err Error) Error() string {
	return string(err)
}

// Checksum computes the checksum bytes appended to a payload.
type Checksum func(payload []byte) []byte

// DoubleSHA256 is the checksum of legacy private keys.
func DoubleSHA256(payload []byte) []byte {
	return digest.DoubleSHA256(payload)[:params.BytesChecksum]
}

// RIPEMD160 is the checksum of legacy public keys.
func RIPEMD160(payload []byte) []byte {
	return digest.RIPEMD160(payload)[:params.BytesChecksum]
}

// Tagged returns the checksum of typed keys and signatures for the given key type tag.
func Tagged(tag string) Checksum {
	return func(payload []byte) []byte {
		return digest.RIPEMD160(payload, []byte(tag))[:params.BytesChecksum]
	}
}

// Encode returns base58(payload ∥ checksum(payload)).
func Encode(payload []byte, checksum Checksum) string {
	buf := make([]byte, 0, len(payload)+params.BytesChecksum)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return base58.Encode(buf)
}

// Decode reverses Encode, returning the payload once its checksum is verified.
func Decode(s string, checksum Checksum) ([]byte, error) {
	buf, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(buf) <= params.BytesChecksum {
		return nil, ErrTooShort
	}
	payload := buf[:len(buf)-params.BytesChecksum]
	if !bytes.Equal(buf[len(payload):], checksum(payload)) {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}
