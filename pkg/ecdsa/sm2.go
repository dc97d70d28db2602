package ecdsa

import (
	"fmt"

	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

// SM2 is the GB/T 32918 signature scheme, applied directly to an SM3 digest.
//
// Signatures are not normalized to low-s.
type SM2 struct {
	group curve.Curve
}

// NewSM2 returns the SM2 scheme over the given curve.
func NewSM2(group curve.Curve) *SM2 {
	return &SM2{group: group}
}

func (*SM2) Name() string {
	return "sm2"
}

func (e *SM2) Curve() curve.Curve {
	return e.group
}

func (*SM2) Hash(data []byte) []byte {
	return digest.SM3(data)
}

// Sign computes r = (e + (k⋅G).x) mod n and s = (1 + d)⁻¹(k - r⋅d) mod n.
func (e *SM2) Sign(hash []byte, d curve.Scalar, extra []byte) (*Signature, error) {
	group := e.group
	m := curve.FromHash(group, hash)
	dPlusOneInv := curve.ScalarFromUint64(group, 1).Add(d)
	if dPlusOneInv.IsZero() {
		return nil, fmt.Errorf("%w: d = n - 1 cannot sign with sm2", curve.ErrInvalidScalar)
	}
	dPlusOneInv.Invert()
	var r, s curve.Scalar
	_, err := GenerateNonce(group, hash, d, extra, func(k curve.Scalar) bool {
		R := k.ActOnBase()
		if R.IsIdentity() {
			return false
		}
		r = R.XScalar().Add(m)
		if r.IsZero() {
			return false
		}
		// r + k = n
		if group.NewScalar().Set(r).Add(k).IsZero() {
			return false
		}
		rd := group.NewScalar().Set(r).Mul(d)
		s = group.NewScalar().Set(k).Sub(rd).Mul(dPlusOneInv)
		return !s.IsZero()
	})
	if err != nil {
		return nil, err
	}
	return &Signature{R: r, S: s}, nil
}

// Verify computes t = r + s and R = s⋅G + t⋅Q, and checks (R.x + e) mod n = r.
func (e *SM2) Verify(hash []byte, sig *Signature, Q curve.Point) bool {
	if checkComponents(sig) != nil || Q == nil || Q.IsIdentity() {
		return false
	}
	group := e.group
	t := group.NewScalar().Set(sig.R).Add(sig.S)
	if t.IsZero() {
		return false
	}
	R := sig.S.ActOnBase().Add(t.Act(Q))
	if R.IsIdentity() {
		return false
	}
	m := curve.FromHash(group, hash)
	return R.XScalar().Add(m).Equal(sig.R)
}

// RecoverPublicKey computes Q = (s + r)⁻¹⋅R - (s + r)⁻¹⋅s⋅G where R.x = r - e.
func (e *SM2) RecoverPublicKey(hash []byte, sig *Signature, i byte) (curve.Point, error) {
	if i > 3 {
		return nil, ErrInvalidRecoveryParam
	}
	if err := checkComponents(sig); err != nil {
		return nil, err
	}
	group := e.group
	m := curve.FromHash(group, hash)
	x := group.NewScalar().Set(sig.R).Sub(m)
	R, err := liftR(group, x, i)
	if err != nil {
		return nil, err
	}
	u1 := group.NewScalar().Set(sig.S).Add(sig.R)
	if u1.IsZero() {
		return nil, ErrInvalidSignatureComponent
	}
	u1.Invert()
	u2 := group.NewScalar().Set(sig.S).Negate().Mul(u1)
	Q := u1.Act(R).Add(u2.ActOnBase())
	if Q.IsIdentity() {
		return nil, curve.ErrInvalidPoint
	}
	return Q, nil
}

func (e *SM2) RecoveryParam(hash []byte, sig *Signature, Q curve.Point) (byte, error) {
	return recoveryParam(e, hash, sig, Q)
}
