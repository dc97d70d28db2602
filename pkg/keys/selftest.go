package keys

import (
	"fmt"

	"github.com/taurusgroup/ecckey/pkg/registry"
)

const (
	knownLegacyPrivate = "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss"
	knownTypedPrivate  = "PVT_K1_2jH3nnhxhR3zPUcsKaWWZC9ZmZAnKm3GAnFD1xynGJE1Znuvjd"
	knownLegacyPublic  = "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM"
	knownTypedPublic   = "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX"
)

// SelfTest checks key encodings against the known key derived from the empty seed.
func SelfTest() error {
	pvt, err := PrivateKeyFromSeed("", registry.Secp256k1)
	if err != nil {
		return err
	}
	pub := pvt.Public()

	checks := []struct {
		what string
		got  func() (string, error)
		want string
	}{
		{"legacy private key", func() (string, error) { return pvt.Format(registry.Legacy) }, knownLegacyPrivate},
		{"typed private key", func() (string, error) { return pvt.Format(registry.Typed) }, knownTypedPrivate},
		{"legacy public key", func() (string, error) { return pub.Format(registry.Legacy, "") }, knownLegacyPublic},
		{"typed public key", func() (string, error) { return pub.Format(registry.Typed, "") }, knownTypedPublic},
	}
	for _, c := range checks {
		got, err := c.got()
		if err != nil {
			return fmt.Errorf("keys.SelfTest: %s: %w", c.what, err)
		}
		if got != c.want {
			return fmt.Errorf("%w: %s: got %s", ErrSelfTestMismatch, c.what, got)
		}
	}

	for _, s := range []string{knownLegacyPrivate, knownTypedPrivate} {
		parsed, err := ParsePrivateKey(s)
		if err != nil {
			return fmt.Errorf("keys.SelfTest: converting known private key from string: %w", err)
		}
		if !parsed.Equal(pvt) {
			return fmt.Errorf("%w: parsed %s", ErrSelfTestMismatch, s)
		}
	}
	for _, s := range []string{knownLegacyPublic, knownTypedPublic} {
		parsed, err := ParsePublicKey(s, "")
		if err != nil {
			return fmt.Errorf("keys.SelfTest: converting known public key from string: %w", err)
		}
		if !parsed.Equal(pub) {
			return fmt.Errorf("%w: parsed %s", ErrSelfTestMismatch, s)
		}
	}
	return nil
}
