package ecdsa

import (
	"bytes"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

// GenerateNonce derives a nonce k from the private scalar d and the digest
// following RFC 6979 with HMAC-SHA256.
//
// When extra is non-empty the digest is first replaced by SHA-256(digest ∥ extra).
// Candidates are drawn until one satisfies 0 < k < n and accept(k);
// a nil accept takes the first candidate in range.
func GenerateNonce(group curve.Curve, hash []byte, d curve.Scalar, extra []byte, accept func(k curve.Scalar) bool) (curve.Scalar, error) {
	if len(extra) > 0 {
		buf := make([]byte, 0, len(hash)+len(extra))
		buf = append(buf, hash...)
		buf = append(buf, extra...)
		hash = digest.SHA256(buf)
	}
	if len(hash) != params.BytesScalar {
		return nil, ErrInvalidDigestLength
	}

	x, err := d.MarshalBinary()
	if err != nil {
		return nil, err
	}

	// Step B
	v := bytes.Repeat([]byte{0x01}, 32)
	// Step C
	k := make([]byte, 32)
	// Step D
	k = digest.HMACSHA256(k, v, []byte{0x00}, x, hash)
	// Step E
	v = digest.HMACSHA256(k, v)
	// Step F
	k = digest.HMACSHA256(k, v, []byte{0x01}, x, hash)
	// Step G
	v = digest.HMACSHA256(k, v)

	order := group.Order()
	for {
		// Step H
		v = digest.HMACSHA256(k, v)
		t := new(saferith.Nat).SetBytes(v)
		if _, _, lt := t.CmpMod(order); lt == 1 && t.EqZero() != 1 {
			candidate := group.NewScalar().SetNat(t)
			if accept == nil || accept(candidate) {
				return candidate, nil
			}
		}
		k = digest.HMACSHA256(k, v, []byte{0x00})
		v = digest.HMACSHA256(k, v)
	}
}
