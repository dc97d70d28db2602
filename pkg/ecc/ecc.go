// Package ecc exposes key generation, conversion, signing and recovery
// over text encoded keys and signatures.
//
// Private keys are accepted in any encoding keys.ParsePrivateKey understands,
// public keys in any encoding keys.ParsePublicKey understands, and signatures
// either as SIG_<tag>_ strings or as the hex encoding of the compact form.
//
// Wherever a curve name is accepted, the empty string keeps the curve the
// input was encoded with (or secp256k1 for new keys). Wherever a format is
// accepted, the empty string selects the legacy encoding when the curve has
// one and the typed encoding otherwise.
package ecc

import (
	"encoding/hex"
	"fmt"

	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/keys"
	"github.com/taurusgroup/ecckey/pkg/registry"
)

// Initialize runs the self test and gathers CPU entropy for the default
// generator. It only does work the first time it succeeds.
func Initialize() error {
	return keys.Initialize()
}

// UnsafeRandomKey returns a new private key without gathering CPU entropy first.
func UnsafeRandomKey(curveName string, format registry.Format) (string, error) {
	k, err := keys.UnsafeRandomKey(curveName)
	if err != nil {
		return "", err
	}
	return formatPrivate(k, format)
}

// RandomKey returns a new private key, gathering cpuEntropyBits of additional
// CPU entropy first.
func RandomKey(cpuEntropyBits int, curveName string, format registry.Format) (string, error) {
	k, err := keys.RandomKey(curveName, cpuEntropyBits)
	if err != nil {
		return "", err
	}
	return formatPrivate(k, format)
}

// SeedPrivate derives the private key SHA-256(seed). The same seed always
// yields the same key, so it should hold at least 128 bits of entropy.
func SeedPrivate(seed, curveName string, format registry.Format) (string, error) {
	k, err := keys.PrivateKeyFromSeed(seed, curveName)
	if err != nil {
		return "", err
	}
	return formatPrivate(k, format)
}

// PrivateToPublic returns the public key of a private key.
func PrivateToPublic(private string, format registry.Format, prefix string) (string, error) {
	k, err := keys.ParsePrivateKey(private)
	if err != nil {
		return "", err
	}
	return formatPublic(k.Public(), format, prefix)
}

// IsValidPublic returns true if pub is a public key, on curveName when not empty.
func IsValidPublic(pub, curveName, prefix string) bool {
	return keys.IsValidPublicKey(pub, curveName, prefix)
}

// IsValidPrivate returns true if private is a private key in any encoding.
func IsValidPrivate(private string) bool {
	return keys.IsValidPrivateKey(private)
}

// Sign signs data with a private key, moved to curveName when it is not empty.
func Sign(data []byte, private, curveName string, opts ...keys.Option) (string, error) {
	k, err := signingKey(private, curveName)
	if err != nil {
		return "", err
	}
	sig, err := keys.Sign(data, k, opts...)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// SignHash signs a hex encoded 32 byte digest.
func SignHash(hexDigest, private, curveName string, opts ...keys.Option) (string, error) {
	hash, err := decodeDigest(hexDigest)
	if err != nil {
		return "", err
	}
	k, err := signingKey(private, curveName)
	if err != nil {
		return "", err
	}
	sig, err := keys.SignHash(hash, k, opts...)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// Verify returns true if sig is a signature of data by pub.
//
// An error is returned only when sig or pub cannot be parsed.
func Verify(sig string, data []byte, pub, curveName string) (bool, error) {
	s, p, err := parseSignatureAndKey(sig, pub, curveName)
	if err != nil {
		return false, err
	}
	return s.Verify(data, p), nil
}

// VerifyHash is Verify over a hex encoded digest.
func VerifyHash(sig, hexDigest, pub, curveName string) (bool, error) {
	hash, err := decodeDigest(hexDigest)
	if err != nil {
		return false, err
	}
	s, p, err := parseSignatureAndKey(sig, pub, curveName)
	if err != nil {
		return false, err
	}
	return s.VerifyHash(hash, p), nil
}

// Recover returns the public key that signed data.
func Recover(sig string, data []byte, curveName string, format registry.Format) (string, error) {
	s, err := keys.ParseSignatureOrHex(sig, curveName)
	if err != nil {
		return "", err
	}
	pub, err := s.Recover(data)
	if err != nil {
		return "", err
	}
	return formatPublic(pub, format, "")
}

// RecoverHash returns the public key that signed a hex encoded digest.
func RecoverHash(sig, hexDigest, curveName string, format registry.Format) (string, error) {
	hash, err := decodeDigest(hexDigest)
	if err != nil {
		return "", err
	}
	s, err := keys.ParseSignatureOrHex(sig, curveName)
	if err != nil {
		return "", err
	}
	pub, err := s.RecoverHash(hash)
	if err != nil {
		return "", err
	}
	return formatPublic(pub, format, "")
}

// SHA256 returns the hex encoded SHA-256 digest of data.
func SHA256(data []byte) string {
	return hex.EncodeToString(digest.SHA256(data))
}

// SM3 returns the hex encoded SM3 digest of data.
func SM3(data []byte) string {
	return hex.EncodeToString(digest.SM3(data))
}

// CurveNameByKeyType maps a key type tag such as "K1" to its curve name.
func CurveNameByKeyType(keyType string) (string, error) {
	info, err := registry.ByKeyType(keyType)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

func formatPrivate(k *keys.PrivateKey, format registry.Format) (string, error) {
	if format == "" {
		return k.String(), nil
	}
	return k.Format(format)
}

func formatPublic(pub *keys.PublicKey, format registry.Format, prefix string) (string, error) {
	if format == "" {
		if pub.Curve().Supports(registry.Legacy) {
			format = registry.Legacy
		} else {
			format = registry.Typed
		}
	}
	return pub.Format(format, prefix)
}

func signingKey(private, curveName string) (*keys.PrivateKey, error) {
	k, err := keys.ParsePrivateKey(private)
	if err != nil {
		return nil, err
	}
	return k.WithCurve(curveName)
}

func parseSignatureAndKey(sig, pub, curveName string) (*keys.Signature, *keys.PublicKey, error) {
	s, err := keys.ParseSignatureOrHex(sig, curveName)
	if err != nil {
		return nil, nil, err
	}
	p, err := keys.ParsePublicKey(pub, "")
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}

func decodeDigest(hexDigest string) ([]byte, error) {
	hash, err := hex.DecodeString(hexDigest)
	if err != nil {
		return nil, fmt.Errorf("ecc: digest is not hex: %w", err)
	}
	return hash, nil
}
