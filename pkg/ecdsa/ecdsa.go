package ecdsa

import (
	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

// ECDSA is the SEC1 signature scheme with SHA-256 digests and low-s signatures.
type ECDSA struct {
	group curve.Curve
}

// NewECDSA returns the ECDSA scheme over the given curve.
func NewECDSA(group curve.Curve) *ECDSA {
	return &ECDSA{group: group}
}

func (*ECDSA) Name() string {
	return "ecdsa"
}

func (e *ECDSA) Curve() curve.Curve {
	return e.group
}

func (*ECDSA) Hash(data []byte) []byte {
	return digest.SHA256(data)
}

// Sign computes r = (k⋅G).x mod n and s = k⁻¹(e + d⋅r) mod n, and replaces s by
// n - s when s > n/2.
func (e *ECDSA) Sign(hash []byte, d curve.Scalar, extra []byte) (*Signature, error) {
	group := e.group
	m := curve.FromHash(group, hash)
	var r, s curve.Scalar
	_, err := GenerateNonce(group, hash, d, extra, func(k curve.Scalar) bool {
		R := k.ActOnBase()
		if R.IsIdentity() {
			return false
		}
		r = R.XScalar()
		if r.IsZero() {
			return false
		}
		kInv := group.NewScalar().Set(k).Invert()
		s = group.NewScalar().Set(d).Mul(r).Add(m).Mul(kInv)
		return !s.IsZero()
	})
	if err != nil {
		return nil, err
	}
	if s.IsOverHalfOrder() {
		s.Negate()
	}
	return &Signature{R: r, S: s}, nil
}

// Verify checks that (e⋅s⁻¹)⋅G + (r⋅s⁻¹)⋅Q has an x coordinate equal to r mod n.
func (e *ECDSA) Verify(hash []byte, sig *Signature, Q curve.Point) bool {
	if checkComponents(sig) != nil || Q == nil || Q.IsIdentity() {
		return false
	}
	group := e.group
	m := curve.FromHash(group, hash)
	sInv := group.NewScalar().Set(sig.S).Invert()
	u1 := m.Mul(sInv)
	u2 := group.NewScalar().Set(sig.R).Mul(sInv)
	R := u1.ActOnBase().Add(u2.Act(Q))
	if R.IsIdentity() {
		return false
	}
	return R.XScalar().Equal(sig.R)
}

// RecoverPublicKey computes Q = r⁻¹(s⋅R - e⋅G).
func (e *ECDSA) RecoverPublicKey(hash []byte, sig *Signature, i byte) (curve.Point, error) {
	if i > 3 {
		return nil, ErrInvalidRecoveryParam
	}
	if err := checkComponents(sig); err != nil {
		return nil, err
	}
	group := e.group
	R, err := liftR(group, sig.R, i)
	if err != nil {
		return nil, err
	}
	eNeg := curve.FromHash(group, hash).Negate()
	rInv := group.NewScalar().Set(sig.R).Invert()
	Q := rInv.Act(sig.S.Act(R).Add(eNeg.ActOnBase()))
	if Q.IsIdentity() {
		return nil, curve.ErrInvalidPoint
	}
	return Q, nil
}

func (e *ECDSA) RecoveryParam(hash []byte, sig *Signature, Q curve.Point) (byte, error) {
	return recoveryParam(e, hash, sig, Q)
}
