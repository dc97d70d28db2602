package ecdsa

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

// Signature is a raw (r, s) pair, both in [1, n-1] once validated.
type Signature struct {
	R curve.Scalar
	S curve.Scalar
}

// EmptySignature returns a new signature with a given curve, ready to be unmarshalled.
func EmptySignature(group curve.Curve) Signature {
	return Signature{R: group.NewScalar(), S: group.NewScalar()}
}

// SignatureFromBytes parses r ∥ s, each 32 bytes big-endian.
func SignatureFromBytes(group curve.Curve, data []byte) (*Signature, error) {
	if len(data) != 2*params.BytesScalar {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignatureComponent, 2*params.BytesScalar, len(data))
	}
	r, err := curve.ScalarFromBytes(group, data[:params.BytesScalar])
	if err != nil {
		return nil, fmt.Errorf("%w: r: %v", ErrInvalidSignatureComponent, err)
	}
	s, err := curve.ScalarFromBytes(group, data[params.BytesScalar:])
	if err != nil {
		return nil, fmt.Errorf("%w: s: %v", ErrInvalidSignatureComponent, err)
	}
	return &Signature{R: r, S: s}, nil
}

// Curve returns the curve the signature components belong to.
func (sig Signature) Curve() curve.Curve {
	return sig.R.Curve()
}

// Bytes returns r ∥ s.
func (sig Signature) Bytes() []byte {
	r, _ := sig.R.MarshalBinary()
	s, _ := sig.S.MarshalBinary()
	out := make([]byte, 0, 2*params.BytesScalar)
	out = append(out, r...)
	return append(out, s...)
}

// IsLowS returns true if s ≤ n/2.
func (sig Signature) IsLowS() bool {
	return !sig.S.IsOverHalfOrder()
}

func (sig Signature) Equal(other Signature) bool {
	return sig.R.Equal(other.R) && sig.S.Equal(other.S)
}

type signatureCBOR struct {
	R []byte `cbor:"1,keyasint"`
	S []byte `cbor:"2,keyasint"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (sig Signature) MarshalBinary() ([]byte, error) {
	r, err := sig.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	s, err := sig.S.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureCBOR{R: r, S: s})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The signature must have been created with EmptySignature.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	var raw signatureCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ecdsa.Signature: %w", err)
	}
	if err := sig.R.UnmarshalBinary(raw.R); err != nil {
		return fmt.Errorf("ecdsa.Signature: r: %w", err)
	}
	if err := sig.S.UnmarshalBinary(raw.S); err != nil {
		return fmt.Errorf("ecdsa.Signature: s: %w", err)
	}
	return nil
}
