package curve

import (
	"crypto/elliptic"
	"sync"

	"github.com/cronokirby/saferith"
)

var (
	p256Once   sync.Once
	p256Params *weierstrass
)

func p256Curve() *weierstrass {
	p256Once.Do(func() {
		p256Params = newWeierstrass(P256{}, elliptic.P256())
	})
	return p256Params
}

// P256 is the NIST secp256r1 curve, with arithmetic from crypto/elliptic.
type P256 struct{}

func (P256) NewPoint() Point {
	return p256Curve().newPoint()
}

func (P256) NewBasePoint() Point {
	return p256Curve().newBasePoint()
}

func (P256) NewScalar() Scalar {
	return p256Curve().newScalar()
}

func (P256) Name() string {
	return "secp256r1"
}

func (P256) SafeScalarBytes() int {
	return 32
}

func (P256) Order() *saferith.Modulus {
	return p256Curve().order
}

func (P256) LiftX(x []byte, odd bool) (Point, error) {
	p, err := p256Curve().liftX(x, odd)
	if err != nil {
		return nil, err
	}
	return p, nil
}
