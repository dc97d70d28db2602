package ecdsa

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

// Scheme is a deterministic signature scheme bound to a single curve.
//
// Digests passed to Sign must be exactly 32 bytes; the other methods reduce
// whatever they are given to a scalar.
type Scheme interface {
	Name() string
	Curve() curve.Curve
	// Hash is the digest function applied to messages before signing.
	Hash(data []byte) []byte
	// Sign returns the signature of hash by d, the nonce being derived with
	// the optional extra entropy.
	Sign(hash []byte, d curve.Scalar, extra []byte) (*Signature, error)
	Verify(hash []byte, sig *Signature, Q curve.Point) bool
	// RecoverPublicKey reconstructs the public key from a signature and a
	// recovery param i ∈ [0, 3]: bit 0 is the parity of R.y, bit 1 is set when
	// R.x overflowed the group order.
	RecoverPublicKey(hash []byte, sig *Signature, i byte) (curve.Point, error)
	// RecoveryParam finds the smallest i for which RecoverPublicKey yields Q.
	RecoveryParam(hash []byte, sig *Signature, Q curve.Point) (byte, error)
}

func recoveryParam(s Scheme, hash []byte, sig *Signature, Q curve.Point) (byte, error) {
	for i := byte(0); i < 4; i++ {
		candidate, err := s.RecoverPublicKey(hash, sig, i)
		if err != nil {
			continue
		}
		if candidate.Equal(Q) {
			return i, nil
		}
	}
	return 0, ErrRecoveryParamNotFound
}

func checkComponents(sig *Signature) error {
	if sig == nil || sig.R == nil || sig.S == nil || sig.R.IsZero() || sig.S.IsZero() {
		return ErrInvalidSignatureComponent
	}
	return nil
}

// liftR reconstructs the nonce point R from its reduced x coordinate x₀ ∈ ℤₙ.
//
// When the second bit of i is set, the x coordinate is taken to be x₀ + n.
func liftR(group curve.Curve, x0 curve.Scalar, i byte) (curve.Point, error) {
	if i > 3 {
		return nil, ErrInvalidRecoveryParam
	}
	xBytes, err := x0.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if i&2 != 0 {
		x := new(saferith.Nat).SetBytes(xBytes)
		x.Add(x, group.Order().Nat(), 8*params.BytesScalar+1)
		if x.TrueLen() > 8*params.BytesScalar {
			return nil, fmt.Errorf("%w: x + n does not fit in a field element", curve.ErrInvalidPoint)
		}
		xBytes = x.FillBytes(make([]byte, params.BytesScalar))
	}
	R, err := group.LiftX(xBytes, i&1 != 0)
	if err != nil {
		return nil, err
	}
	if !curve.InPrimeOrderSubgroup(R) {
		return nil, ErrInvalidRValue
	}
	return R, nil
}
