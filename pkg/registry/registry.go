// Package registry describes the curves keys and signatures can be bound to.
//
// The table is built once and never modified, so descriptors can be shared
// freely between goroutines.
package registry

import (
	"fmt"
	"strings"

	"github.com/taurusgroup/ecckey/pkg/ecdsa"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
)

type Error string

const (
	ErrUnknownCurve      Error = "registry: unknown curve"
	ErrUnsupportedFormat Error = "registry: unsupported key format"
)

func (err Error) Error() string {
	return string(err)
}

// Format is a text encoding of keys.
type Format string

const (
	// Legacy is the WIF private key / prefixed public key encoding, only
	// defined for secp256k1.
	Legacy Format = "WIF"
	// Typed is the PVT_<tag>_ / PUB_<tag>_ encoding.
	Typed Format = "KTP"
)

// ParseFormat accepts the short names WIF and KTP, as well as LEGACY and TYPED.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "WIF", "LEGACY":
		return Legacy, nil
	case "KTP", "TYPED":
		return Typed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Info describes a registered curve.
type Info struct {
	// Name is the canonical curve name, e.g. "secp256k1".
	Name string
	// KeyType is the tag used in typed encodings, e.g. "K1".
	KeyType string
	Formats []Format
	Curve   curve.Curve
	Scheme  ecdsa.Scheme
}

const (
	Secp256k1 = "secp256k1"
	SM2       = "sm2"
	Secp256r1 = "secp256r1"
)

// DefaultCurve is used when no curve is named.
const DefaultCurve = Secp256k1

var table = []*Info{
	{
		Name:    Secp256k1,
		KeyType: "K1",
		Formats: []Format{Legacy, Typed},
		Curve:   curve.Secp256k1{},
		Scheme:  ecdsa.NewECDSA(curve.Secp256k1{}),
	},
	{
		Name:    SM2,
		KeyType: "SM2",
		Formats: []Format{Typed},
		Curve:   curve.SM2{},
		Scheme:  ecdsa.NewSM2(curve.SM2{}),
	},
	{
		Name:    Secp256r1,
		KeyType: "R1",
		Formats: []Format{Typed},
		Curve:   curve.P256{},
		Scheme:  ecdsa.NewECDSA(curve.P256{}),
	},
}

// ByName returns the descriptor of a curve; an empty name selects DefaultCurve.
func ByName(name string) (*Info, error) {
	if name == "" {
		name = DefaultCurve
	}
	for _, info := range table {
		if info.Name == name {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// ByKeyType returns the descriptor of the curve with the given tag.
func ByKeyType(keyType string) (*Info, error) {
	for _, info := range table {
		if info.KeyType == keyType {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: key type %q", ErrUnknownCurve, keyType)
}

// Names lists the registered curves.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, info := range table {
		names = append(names, info.Name)
	}
	return names
}

// Supports returns true if keys on this curve can be written in format f.
func (info *Info) Supports(f Format) bool {
	for _, g := range info.Formats {
		if g == f {
			return true
		}
	}
	return false
}

// CheckFormat returns ErrUnsupportedFormat if f is not supported.
func (info *Info) CheckFormat(f Format) error {
	if !info.Supports(f) {
		return fmt.Errorf("%w: %s keys cannot be encoded as %s", ErrUnsupportedFormat, info.Name, f)
	}
	return nil
}

func (info *Info) String() string {
	return info.Name
}
