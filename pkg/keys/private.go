package keys

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/base58check"
	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/math/curve"
	"github.com/taurusgroup/ecckey/pkg/registry"
)

var privateKeyPattern = regexp.MustCompile(`^PVT_([A-Za-z0-9]+)_([A-Za-z0-9]+)$`)

// PrivateKey is a scalar d ∈ [1, n-1] bound to a registered curve.
type PrivateKey struct {
	d    curve.Scalar
	info *registry.Info
	// pub caches d⋅G; concurrent first calls may both compute it.
	pub atomic.Pointer[PublicKey]
}

// NewPrivateKey creates a key from a 32 byte big-endian scalar.
//
// A 33rd byte equal to 0x01 (the compression flag of WIF payloads) is dropped.
func NewPrivateKey(data []byte, curveName string) (*PrivateKey, error) {
	info, err := registry.ByName(curveName)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(data, info)
}

func newPrivateKey(data []byte, info *registry.Info) (*PrivateKey, error) {
	if len(data) == params.BytesScalar+1 && data[params.BytesScalar] == params.CompressedFlag {
		data = data[:params.BytesScalar]
	}
	if len(data) != params.BytesScalar {
		return nil, fmt.Errorf("%w: expecting %d bytes, instead got %d", ErrMalformedKey, params.BytesScalar, len(data))
	}
	d, err := curve.ScalarFromBytes(info.Curve, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return &PrivateKey{d: d, info: info}, nil
}

// PrivateKeyFromScalar binds an existing non-zero scalar to the curve it belongs to.
func PrivateKeyFromScalar(d curve.Scalar) (*PrivateKey, error) {
	info, err := registry.ByName(d.Curve().Name())
	if err != nil {
		return nil, err
	}
	if d.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrMalformedKey)
	}
	return &PrivateKey{d: info.Curve.NewScalar().Set(d), info: info}, nil
}

// PrivateKeyFromHex decodes a hex encoded 32 byte scalar.
func PrivateKeyFromHex(s, curveName string) (*PrivateKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return NewPrivateKey(data, curveName)
}

// PrivateKeyFromSeed derives d = SHA-256(seed).
//
// The same seed always produces the same key; it should carry at least 128
// bits of entropy.
func PrivateKeyFromSeed(seed, curveName string) (*PrivateKey, error) {
	return NewPrivateKey(digest.SHA256([]byte(seed)), curveName)
}

// ParsePrivateKey parses a PVT_<tag>_ or a legacy WIF private key.
func ParsePrivateKey(text string) (*PrivateKey, error) {
	key, _, err := ParsePrivateKeyFormat(text)
	return key, err
}

// ParsePrivateKeyFormat is ParsePrivateKey, also returning the detected format.
func ParsePrivateKeyFormat(text string) (*PrivateKey, registry.Format, error) {
	if match := privateKeyPattern.FindStringSubmatch(text); match != nil {
		keyType, payload := match[1], match[2]
		info, err := registry.ByKeyType(keyType)
		if err != nil {
			return nil, "", err
		}
		data, err := base58check.Decode(payload, base58check.Tagged(keyType))
		if err != nil {
			return nil, "", fmt.Errorf("keys.ParsePrivateKey: %w", err)
		}
		key, err := newPrivateKey(data, info)
		if err != nil {
			return nil, "", err
		}
		return key, registry.Typed, nil
	}

	data, err := base58check.Decode(text, base58check.DoubleSHA256)
	if err != nil {
		return nil, "", fmt.Errorf("keys.ParsePrivateKey: %w", err)
	}
	if data[0] != params.PrivateKeyVersion {
		return nil, "", fmt.Errorf("%w: expected %#x, instead got %#x", ErrInvalidVersion, params.PrivateKeyVersion, data[0])
	}
	info, _ := registry.ByName(registry.Secp256k1)
	key, err := newPrivateKey(data[1:], info)
	if err != nil {
		return nil, "", err
	}
	return key, registry.Legacy, nil
}

// IsValidPrivateKey returns true if text parses as a private key.
func IsValidPrivateKey(text string) bool {
	_, err := ParsePrivateKey(text)
	return err == nil
}

// IsWIF returns true if text is a valid legacy private key.
func IsWIF(text string) bool {
	_, format, err := ParsePrivateKeyFormat(text)
	return err == nil && format == registry.Legacy
}

// Curve returns the descriptor of the curve the key is bound to.
func (k *PrivateKey) Curve() *registry.Info {
	return k.info
}

// Scalar returns a copy of d.
func (k *PrivateKey) Scalar() curve.Scalar {
	return k.info.Curve.NewScalar().Set(k.d)
}

// Bytes returns the 32 byte big-endian scalar.
func (k *PrivateKey) Bytes() []byte {
	data, _ := k.d.MarshalBinary()
	return data
}

func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

// Format encodes the key in the given text format.
//
// Legacy keys are base58(0x80 ∥ d ∥ checksum), typed keys PVT_<tag>_base58(d ∥ checksum).
func (k *PrivateKey) Format(format registry.Format) (string, error) {
	if err := k.info.CheckFormat(format); err != nil {
		return "", err
	}
	if format == registry.Legacy {
		payload := make([]byte, 0, 1+params.BytesScalar)
		payload = append(payload, params.PrivateKeyVersion)
		payload = append(payload, k.Bytes()...)
		return base58check.Encode(payload, base58check.DoubleSHA256), nil
	}
	return "PVT_" + k.info.KeyType + "_" + base58check.Encode(k.Bytes(), base58check.Tagged(k.info.KeyType)), nil
}

// String returns the legacy encoding when the curve has one, the typed one otherwise.
func (k *PrivateKey) String() string {
	format := registry.Typed
	if k.info.Supports(registry.Legacy) {
		format = registry.Legacy
	}
	s, _ := k.Format(format)
	return s
}

// Public returns d⋅G.
func (k *PrivateKey) Public() *PublicKey {
	if pub := k.pub.Load(); pub != nil {
		return pub
	}
	pub := &PublicKey{q: k.d.ActOnBase(), info: k.info}
	k.pub.CompareAndSwap(nil, pub)
	return k.pub.Load()
}

// SharedSecret returns SHA-512 of the x coordinate of d⋅Q, Q being the peer's key.
func (k *PrivateKey) SharedSecret(peer *PublicKey) ([]byte, error) {
	if peer.info != k.info {
		return nil, fmt.Errorf("%w: %s and %s", ErrCurveMismatch, k.info.Name, peer.info.Name)
	}
	P := k.d.Act(peer.q)
	if P.IsIdentity() {
		return nil, curve.ErrInvalidPoint
	}
	return digest.SHA512(P.XBytes()), nil
}

// ChildKey derives the key SHA-256(d ∥ name) on the same curve.
//
// This is not BIP-32 nor any other standard derivation.
func (k *PrivateKey) ChildKey(name string) (*PrivateKey, error) {
	buf := make([]byte, 0, params.BytesScalar+len(name))
	buf = append(buf, k.Bytes()...)
	buf = append(buf, name...)
	return newPrivateKey(digest.SHA256(buf), k.info)
}

// WithCurve returns a key with the same scalar on another registered curve.
func (k *PrivateKey) WithCurve(curveName string) (*PrivateKey, error) {
	if curveName == "" || curveName == k.info.Name {
		return k, nil
	}
	return NewPrivateKey(k.Bytes(), curveName)
}

// Equal returns true if both keys hold the same scalar on the same curve.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	return k.info == other.info && k.d.Equal(other.d)
}
