package curve

import (
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/emmansun/gmsm/sm2/sm2ec"
)

var (
	sm2Once   sync.Once
	sm2Params *weierstrass
)

func sm2Curve() *weierstrass {
	sm2Once.Do(func() {
		sm2Params = newWeierstrass(SM2{}, sm2ec.P256())
	})
	return sm2Params
}

// SM2 is the sm2p256v1 curve of GB/T 32918, with arithmetic from gmsm.
type SM2 struct{}

func (SM2) NewPoint() Point {
	return sm2Curve().newPoint()
}

func (SM2) NewBasePoint() Point {
	return sm2Curve().newBasePoint()
}

func (SM2) NewScalar() Scalar {
	return sm2Curve().newScalar()
}

func (SM2) Name() string {
	return "sm2"
}

func (SM2) SafeScalarBytes() int {
	return 32
}

func (SM2) Order() *saferith.Modulus {
	return sm2Curve().order
}

func (SM2) LiftX(x []byte, odd bool) (Point, error) {
	p, err := sm2Curve().liftX(x, odd)
	if err != nil {
		return nil, err
	}
	return p, nil
}
