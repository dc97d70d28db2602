package curve

import (
	"crypto/elliptic"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ecckey/internal/params"
)

// weierstrass holds the parameters of a curve y² = x³ - 3x + b whose point
// arithmetic is provided by an elliptic.Curve.
//
// The identity is never handed to the underlying implementation, which
// represents it as (0, 0).
type weierstrass struct {
	group     Curve
	curve     elliptic.Curve
	params    *elliptic.CurveParams
	order     *saferith.Modulus
	halfOrder *big.Int
}

func newWeierstrass(group Curve, c elliptic.Curve) *weierstrass {
	cp := c.Params()
	return &weierstrass{
		group:     group,
		curve:     c,
		params:    cp,
		order:     saferith.ModulusFromBytes(cp.N.Bytes()),
		halfOrder: new(big.Int).Rsh(cp.N, 1),
	}
}

func (w *weierstrass) newPoint() *WeierstrassPoint {
	return &WeierstrassPoint{w: w}
}

func (w *weierstrass) newBasePoint() *WeierstrassPoint {
	return w.fromAffine(new(big.Int).Set(w.params.Gx), new(big.Int).Set(w.params.Gy))
}

func (w *weierstrass) newScalar() *WeierstrassScalar {
	out := &WeierstrassScalar{w: w}
	out.value.SetUint64(0)
	return out
}

// fromAffine maps the (0, 0) encoding of the identity back to our representation.
func (w *weierstrass) fromAffine(x, y *big.Int) *WeierstrassPoint {
	if x.Sign() == 0 && y.Sign() == 0 {
		return w.newPoint()
	}
	return &WeierstrassPoint{w: w, x: x, y: y}
}

func (w *weierstrass) liftX(data []byte, odd bool) (*WeierstrassPoint, error) {
	if len(data) != 32 {
		return nil, fmt.Errorf("%w: x coordinate must be 32 bytes", ErrInvalidPoint)
	}
	p := w.params.P
	x := new(big.Int).SetBytes(data)
	if x.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: x >= field prime", ErrInvalidPoint)
	}
	// y² = x³ - 3x + b
	y2 := new(big.Int).Mul(x, x)
	y2.Mul(y2, x)
	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	y2.Sub(y2, threeX)
	y2.Add(y2, w.params.B)
	y2.Mod(y2, p)
	y := new(big.Int).ModSqrt(y2, p)
	if y == nil {
		return nil, fmt.Errorf("%w: x is not on the %s curve", ErrInvalidPoint, w.group.Name())
	}
	if (y.Bit(0) == 1) != odd {
		y.Sub(p, y)
		y.Mod(y, p)
	}
	if !w.curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: x is not on the %s curve", ErrInvalidPoint, w.group.Name())
	}
	return w.fromAffine(x, y), nil
}

type WeierstrassScalar struct {
	w     *weierstrass
	value saferith.Nat
}

func (s *WeierstrassScalar) cast(generic Scalar) *WeierstrassScalar {
	out, ok := generic.(*WeierstrassScalar)
	if !ok || out.w != s.w {
		panic(fmt.Sprintf("failed to convert to %s scalar: %v", s.w.group.Name(), generic))
	}
	return out
}

func (s *WeierstrassScalar) Curve() Curve {
	return s.w.group
}

func (s *WeierstrassScalar) bytes() []byte {
	return s.value.Big().FillBytes(make([]byte, 32))
}

func (s *WeierstrassScalar) MarshalBinary() ([]byte, error) {
	return s.bytes(), nil
}

func (s *WeierstrassScalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("%w: invalid length for %s scalar: %d", ErrInvalidScalar, s.w.group.Name(), len(data))
	}
	x := new(saferith.Nat).SetBytes(data)
	if _, _, lt := x.CmpMod(s.w.order); lt != 1 {
		return fmt.Errorf("%w: %s scalar >= n", ErrInvalidScalar, s.w.group.Name())
	}
	s.value.Mod(x, s.w.order)
	return nil
}

func (s *WeierstrassScalar) Add(that Scalar) Scalar {
	other := s.cast(that)
	s.value.ModAdd(&s.value, &other.value, s.w.order)
	return s
}

func (s *WeierstrassScalar) Sub(that Scalar) Scalar {
	other := s.cast(that)
	s.value.ModSub(&s.value, &other.value, s.w.order)
	return s
}

func (s *WeierstrassScalar) Mul(that Scalar) Scalar {
	other := s.cast(that)
	s.value.ModMul(&s.value, &other.value, s.w.order)
	return s
}

func (s *WeierstrassScalar) Invert() Scalar {
	s.value.ModInverse(&s.value, s.w.order)
	return s
}

func (s *WeierstrassScalar) Negate() Scalar {
	s.value.ModNeg(&s.value, s.w.order)
	return s
}

func (s *WeierstrassScalar) Equal(that Scalar) bool {
	other := s.cast(that)
	return s.value.Eq(&other.value) == 1
}

func (s *WeierstrassScalar) IsZero() bool {
	return s.value.EqZero() == 1
}

func (s *WeierstrassScalar) IsOverHalfOrder() bool {
	return s.value.Big().Cmp(s.w.halfOrder) > 0
}

func (s *WeierstrassScalar) Set(that Scalar) Scalar {
	other := s.cast(that)
	s.value.SetNat(&other.value)
	return s
}

func (s *WeierstrassScalar) SetNat(x *saferith.Nat) Scalar {
	s.value.Mod(x, s.w.order)
	return s
}

func (s *WeierstrassScalar) Act(that Point) Point {
	other := s.w.castPoint(that)
	if other.IsIdentity() || s.IsZero() {
		return s.w.newPoint()
	}
	return s.w.fromAffine(s.w.curve.ScalarMult(other.x, other.y, s.bytes()))
}

func (s *WeierstrassScalar) ActOnBase() Point {
	if s.IsZero() {
		return s.w.newPoint()
	}
	return s.w.fromAffine(s.w.curve.ScalarBaseMult(s.bytes()))
}

// WeierstrassPoint is an affine point; x == nil denotes the identity.
type WeierstrassPoint struct {
	w    *weierstrass
	x, y *big.Int
}

func (w *weierstrass) castPoint(generic Point) *WeierstrassPoint {
	out, ok := generic.(*WeierstrassPoint)
	if !ok || out.w != w {
		panic(fmt.Sprintf("failed to convert to %s point: %v", w.group.Name(), generic))
	}
	return out
}

func (p *WeierstrassPoint) Curve() Curve {
	return p.w.group
}

func (p *WeierstrassPoint) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: tried to marshal identity", ErrInvalidPoint)
	}
	out := make([]byte, params.BytesPoint)
	out[0] = byte(p.y.Bit(0)) + 2
	p.x.FillBytes(out[1:])
	return out, nil
}

func (p *WeierstrassPoint) MarshalUncompressed() ([]byte, error) {
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: tried to marshal identity", ErrInvalidPoint)
	}
	out := make([]byte, params.BytesPointUncompressed)
	out[0] = 4
	p.x.FillBytes(out[1 : 1+params.BytesScalar])
	p.y.FillBytes(out[1+params.BytesScalar:])
	return out, nil
}

func (p *WeierstrassPoint) UnmarshalBinary(data []byte) error {
	switch {
	case len(data) == params.BytesPoint && (data[0] == 2 || data[0] == 3):
		q, err := p.w.liftX(data[1:], data[0] == 3)
		if err != nil {
			return err
		}
		p.x, p.y = q.x, q.y
		return nil
	case len(data) == params.BytesPointUncompressed && data[0] == 4:
		x := new(big.Int).SetBytes(data[1 : 1+params.BytesScalar])
		y := new(big.Int).SetBytes(data[1+params.BytesScalar:])
		if x.Cmp(p.w.params.P) >= 0 || y.Cmp(p.w.params.P) >= 0 || !p.w.curve.IsOnCurve(x, y) {
			return fmt.Errorf("%w: point is not on the %s curve", ErrInvalidPoint, p.w.group.Name())
		}
		p.x, p.y = x, y
		return nil
	default:
		return fmt.Errorf("%w: malformed %s point encoding", ErrInvalidPoint, p.w.group.Name())
	}
}

func (p *WeierstrassPoint) Add(that Point) Point {
	other := p.w.castPoint(that)
	switch {
	case p.IsIdentity():
		return p.w.newPoint().Set(other)
	case other.IsIdentity():
		return p.w.newPoint().Set(p)
	}
	return p.w.fromAffine(p.w.curve.Add(p.x, p.y, other.x, other.y))
}

func (p *WeierstrassPoint) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *WeierstrassPoint) Set(that Point) Point {
	other := p.w.castPoint(that)
	if other.IsIdentity() {
		p.x, p.y = nil, nil
		return p
	}
	p.x = new(big.Int).Set(other.x)
	p.y = new(big.Int).Set(other.y)
	return p
}

func (p *WeierstrassPoint) Negate() Point {
	if p.IsIdentity() {
		return p.w.newPoint()
	}
	y := new(big.Int).Sub(p.w.params.P, p.y)
	y.Mod(y, p.w.params.P)
	return &WeierstrassPoint{w: p.w, x: new(big.Int).Set(p.x), y: y}
}

func (p *WeierstrassPoint) Equal(that Point) bool {
	other := p.w.castPoint(that)
	if p.IsIdentity() || other.IsIdentity() {
		return p.IsIdentity() && other.IsIdentity()
	}
	return p.x.Cmp(other.x) == 0 && p.y.Cmp(other.y) == 0
}

func (p *WeierstrassPoint) IsIdentity() bool {
	return p.x == nil
}

func (p *WeierstrassPoint) XScalar() Scalar {
	out := p.w.newScalar()
	if p.IsIdentity() {
		return out
	}
	out.SetNat(new(saferith.Nat).SetBytes(p.x.Bytes()))
	return out
}

func (p *WeierstrassPoint) XBytes() []byte {
	if p.IsIdentity() {
		return make([]byte, 32)
	}
	return p.x.FillBytes(make([]byte, 32))
}

func (p *WeierstrassPoint) HasEvenY() bool {
	return p.IsIdentity() || p.y.Bit(0) == 0
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func modulusFromHex(s string) *saferith.Modulus {
	return saferith.ModulusFromBytes(mustDecodeHex(s))
}
