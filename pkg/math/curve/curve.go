package curve

import (
	"encoding"

	"github.com/cronokirby/saferith"
)

type Error string

const (
	ErrInvalidPoint  Error = "curve: invalid curve point"
	ErrInvalidScalar Error = "curve: invalid scalar"
)

func (err Error) Error() string {
	return string(err)
}

// Curve represents the prime order group of a short Weierstrass curve.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	NewBasePoint() Point
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	Name() string
	SafeScalarBytes() int
	Order() *saferith.Modulus
	// LiftX returns the point with the given big-endian x coordinate and y parity.
	//
	// An error is returned if x is not a field element, or if no such point exists.
	LiftX(x []byte, odd bool) (Point, error)
}

// Scalar is an element of ℤₙ, n being the order of the curve.
//
// Arithmetic methods modify the receiver and return it.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Negate() Scalar
	Equal(Scalar) bool
	IsZero() bool
	// IsOverHalfOrder returns true if the scalar is > n/2.
	IsOverHalfOrder() bool
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	Act(Point) Point
	ActOnBase() Point
}

// Point is an element of the curve group.
//
// MarshalBinary produces the 33 byte compressed SEC1 encoding; UnmarshalBinary
// accepts both compressed and uncompressed encodings.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
	// XScalar returns the x coordinate reduced modulo the group order.
	XScalar() Scalar
	// XBytes returns the 32 byte big-endian x coordinate.
	XBytes() []byte
	HasEvenY() bool
	// MarshalUncompressed returns 0x04 ∥ x ∥ y.
	MarshalUncompressed() ([]byte, error)
}

// FromHash converts a hash value to a Scalar.
//
// There is some disagreement about how this should be done.
// [NSA] suggests that this is done in the obvious
// manner, but [SECG] truncates the hash to the bit-length of the curve order
// first. We follow [SECG] because that's what OpenSSL does. Additionally,
// OpenSSL right shifts excess bits from the number if the hash is too large
// and we mirror that too.
//
// Taken from crypto/ecdsa.
func FromHash(group Curve, h []byte) Scalar {
	order := group.Order()
	orderBits := order.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(h) > orderBytes {
		h = h[:orderBytes]
	}
	s := new(saferith.Nat).SetBytes(h)
	excess := len(h)*8 - orderBits
	if excess > 0 {
		s.Rsh(s, uint(excess), -1)
	}
	return group.NewScalar().SetNat(s)
}

// ScalarFromBytes decodes a 32 byte big-endian scalar, failing if it is not
// strictly between 0 and the group order.
func ScalarFromBytes(group Curve, data []byte) (Scalar, error) {
	s := group.NewScalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if s.IsZero() {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// ScalarFromUint64 returns x mod n as a scalar of the group.
func ScalarFromUint64(group Curve, x uint64) Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

// PointFromBytes decodes a compressed or uncompressed SEC1 point, rejecting the identity.
func PointFromBytes(group Curve, data []byte) (Point, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// InPrimeOrderSubgroup returns true if n⋅p = 0, n being the group order.
//
// The check is done as (n-1)⋅p + p, since n itself is not a valid scalar.
func InPrimeOrderSubgroup(p Point) bool {
	group := p.Curve()
	nMinusOne := ScalarFromUint64(group, 1).Negate()
	return nMinusOne.Act(p).Add(p).IsIdentity()
}
