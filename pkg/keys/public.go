package keys

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/base58check"
	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
	"github.com/taurusgroup/ecckey/pkg/registry"
)

var publicKeyPattern = regexp.MustCompile(`^PUB_([A-Za-z0-9]+)_([A-Za-z0-9]+)$`)

// PublicKey is a point Q ≠ 0 bound to a registered curve.
type PublicKey struct {
	q    curve.Point
	info *registry.Info
}

// NewPublicKey binds a point to the curve it belongs to.
func NewPublicKey(q curve.Point) (*PublicKey, error) {
	info, err := registry.ByName(q.Curve().Name())
	if err != nil {
		return nil, err
	}
	if q.IsIdentity() {
		return nil, curve.ErrInvalidPoint
	}
	return &PublicKey{q: info.Curve.NewPoint().Set(q), info: info}, nil
}

// PublicKeyFromBytes decodes a compressed or uncompressed SEC1 point.
func PublicKeyFromBytes(data []byte, curveName string) (*PublicKey, error) {
	info, err := registry.ByName(curveName)
	if err != nil {
		return nil, err
	}
	return newPublicKey(data, info)
}

func newPublicKey(data []byte, info *registry.Info) (*PublicKey, error) {
	q, err := curve.PointFromBytes(info.Curve, data)
	if err != nil {
		return nil, fmt.Errorf("keys.PublicKey: %w", err)
	}
	return &PublicKey{q: q, info: info}, nil
}

// PublicKeyFromHex decodes a hex encoded SEC1 point.
func PublicKeyFromHex(s, curveName string) (*PublicKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return PublicKeyFromBytes(data, curveName)
}

// ParsePublicKey parses a PUB_<tag>_ key, or a legacy secp256k1 key with an
// optional prefix, "EOS" when empty.
func ParsePublicKey(text, prefix string) (*PublicKey, error) {
	if prefix == "" {
		prefix = params.DefaultPublicKeyPrefix
	}
	if match := publicKeyPattern.FindStringSubmatch(text); match != nil {
		keyType, payload := match[1], match[2]
		info, err := registry.ByKeyType(keyType)
		if err != nil {
			return nil, err
		}
		data, err := base58check.Decode(payload, base58check.Tagged(keyType))
		if err != nil {
			return nil, fmt.Errorf("keys.ParsePublicKey: %w", err)
		}
		return newPublicKey(data, info)
	}

	text = strings.TrimPrefix(text, prefix)
	data, err := base58check.Decode(text, base58check.RIPEMD160)
	if err != nil {
		return nil, fmt.Errorf("keys.ParsePublicKey: %w", err)
	}
	info, _ := registry.ByName(registry.Secp256k1)
	return newPublicKey(data, info)
}

// PublicKeyFromString is ParsePublicKey returning nil on failure.
func PublicKeyFromString(text, prefix string) *PublicKey {
	pub, err := ParsePublicKey(text, prefix)
	if err != nil {
		return nil
	}
	return pub
}

// IsValidPublicKey returns true if text parses as a public key, on curveName
// when it is not empty.
func IsValidPublicKey(text, curveName, prefix string) bool {
	pub, err := ParsePublicKey(text, prefix)
	if err != nil {
		return false
	}
	return curveName == "" || pub.info.Name == curveName
}

// Curve returns the descriptor of the curve the key is bound to.
func (p *PublicKey) Curve() *registry.Info {
	return p.info
}

// Point returns a copy of Q.
func (p *PublicKey) Point() curve.Point {
	return p.info.Curve.NewPoint().Set(p.q)
}

// Bytes returns the 33 byte compressed encoding.
func (p *PublicKey) Bytes() []byte {
	data, _ := p.q.MarshalBinary()
	return data
}

// UncompressedBytes returns the 65 byte uncompressed encoding.
func (p *PublicKey) UncompressedBytes() []byte {
	data, _ := p.q.MarshalUncompressed()
	return data
}

func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

// Format encodes the key in the given text format.
//
// Legacy keys are prefix ∥ base58(Q ∥ checksum), typed keys PUB_<tag>_base58(Q ∥ checksum).
func (p *PublicKey) Format(format registry.Format, prefix string) (string, error) {
	if err := p.info.CheckFormat(format); err != nil {
		return "", err
	}
	if format == registry.Legacy {
		if prefix == "" {
			prefix = params.DefaultPublicKeyPrefix
		}
		return prefix + base58check.Encode(p.Bytes(), base58check.RIPEMD160), nil
	}
	return "PUB_" + p.info.KeyType + "_" + base58check.Encode(p.Bytes(), base58check.Tagged(p.info.KeyType)), nil
}

// String returns the legacy "EOS" encoding when the curve has one, the typed one otherwise.
func (p *PublicKey) String() string {
	format := registry.Typed
	if p.info.Supports(registry.Legacy) {
		format = registry.Legacy
	}
	s, _ := p.Format(format, params.DefaultPublicKeyPrefix)
	return s
}

// Child returns Q + c⋅G where c = SHA-256(Q ∥ offset).
//
// Deprecated: kept for compatibility with keys derived by older wallets.
func (p *PublicKey) Child(offset [32]byte) (*PublicKey, error) {
	group := p.info.Curve
	c := digest.SHA256(append(p.Bytes(), offset[:]...))
	if _, _, lt := new(saferith.Nat).SetBytes(c).CmpMod(group.Order()); lt != 1 {
		return nil, ErrChildOutOfRange
	}
	cScalar := group.NewScalar().SetNat(new(saferith.Nat).SetBytes(c))
	q := p.q.Add(cScalar.ActOnBase())
	if q.IsIdentity() {
		return nil, ErrChildInfinity
	}
	return &PublicKey{q: q, info: p.info}, nil
}

// Equal returns true if both keys are the same point on the same curve.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return p.info == other.info && p.q.Equal(other.q)
}
