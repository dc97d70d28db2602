package keys

import (
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/base58check"
	"github.com/taurusgroup/ecckey/pkg/ecdsa"
	"github.com/taurusgroup/ecckey/pkg/registry"
	"go.uber.org/zap"
)

var signaturePattern = regexp.MustCompile(`^SIG_([A-Za-z0-9]+)_([A-Za-z0-9]+)$`)

// canonicalWarnEvery is how many signing attempts pass between warnings.
const canonicalWarnEvery = 10

// Signature is a compact, recoverable signature: i ∥ r ∥ s where i is the
// recovery param offset by 31.
type Signature struct {
	raw   ecdsa.Signature
	recid byte
	info  *registry.Info
}

// Sign hashes data with the digest function of the key's curve and signs it.
func Sign(data []byte, key *PrivateKey, opts ...Option) (*Signature, error) {
	return SignHash(key.info.Scheme.Hash(data), key, opts...)
}

// SignHash signs a 32 byte digest.
//
// The nonce is perturbed with an increasing number of zero bytes until both r
// and s have a 32 byte DER encoding, which is what EOSIO nodes accept.
func SignHash(hash []byte, key *PrivateKey, opts ...Option) (*Signature, error) {
	if len(hash) != params.BytesScalar {
		return nil, ecdsa.ErrInvalidDigestLength
	}
	cfg := newConfig(opts)
	scheme := key.info.Scheme
	for attempt := 0; ; attempt++ {
		var extra []byte
		if attempt > 0 {
			extra = make([]byte, attempt)
		}
		raw, err := scheme.Sign(hash, key.d, extra)
		if err != nil {
			return nil, err
		}
		if isCanonical(raw) {
			recid, err := scheme.RecoveryParam(hash, raw, key.Public().q)
			if err != nil {
				return nil, err
			}
			return &Signature{raw: *raw, recid: recid, info: key.info}, nil
		}
		if (attempt+1)%canonicalWarnEvery == 0 {
			cfg.logger.Warn("still looking for a canonical signature", zap.Int("attempts", attempt+1), zap.String("curve", key.info.Name))
		}
	}
}

// isCanonical returns true if r and s both have a 32 byte DER encoding,
// that is 2²⁴⁸ ≤ x < 2²⁵⁵.
func isCanonical(sig *ecdsa.Signature) bool {
	raw := sig.Bytes()
	for _, x := range [][]byte{raw[:params.BytesScalar], raw[params.BytesScalar:]} {
		bits := new(saferith.Nat).SetBytes(x).TrueLen()
		if bits < 249 || bits > 255 {
			return false
		}
	}
	return true
}

// NewSignature builds a signature from its raw components.
func NewSignature(raw ecdsa.Signature, recid byte, curveName string) (*Signature, error) {
	info, err := registry.ByName(curveName)
	if err != nil {
		return nil, err
	}
	if recid > 3 {
		return nil, ecdsa.ErrInvalidRecoveryParam
	}
	if raw.Curve().Name() != info.Name {
		return nil, fmt.Errorf("%w: signature is on %s", ErrCurveMismatch, raw.Curve().Name())
	}
	return &Signature{raw: raw, recid: recid, info: info}, nil
}

// SignatureFromBytes decodes the 65 byte compact form.
func SignatureFromBytes(data []byte, curveName string) (*Signature, error) {
	info, err := registry.ByName(curveName)
	if err != nil {
		return nil, err
	}
	return signatureFromBytes(data, info)
}

func signatureFromBytes(data []byte, info *registry.Info) (*Signature, error) {
	if len(data) != params.BytesSignature {
		return nil, fmt.Errorf("%w: expecting %d bytes, instead got %d", ErrMalformedSig, params.BytesSignature, len(data))
	}
	i := int(data[0]) - 27
	if i < 0 || i != i&7 {
		return nil, fmt.Errorf("%w: invalid recovery byte %#x", ErrMalformedSig, data[0])
	}
	raw, err := ecdsa.SignatureFromBytes(info.Curve, data[1:])
	if err != nil {
		return nil, err
	}
	return &Signature{raw: *raw, recid: byte(i & 3), info: info}, nil
}

// SignatureFromHex decodes the hex encoded 65 byte compact form.
func SignatureFromHex(s, curveName string) (*Signature, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSig, err)
	}
	return SignatureFromBytes(data, curveName)
}

// ParseSignature parses SIG_<tag>_base58(i ∥ r ∥ s ∥ checksum).
func ParseSignature(text string) (*Signature, error) {
	match := signaturePattern.FindStringSubmatch(text)
	if match == nil {
		return nil, fmt.Errorf("%w: expecting signature like SIG_K1_base58signature", ErrMalformedSig)
	}
	keyType, payload := match[1], match[2]
	info, err := registry.ByKeyType(keyType)
	if err != nil {
		return nil, err
	}
	data, err := base58check.Decode(payload, base58check.Tagged(keyType))
	if err != nil {
		return nil, fmt.Errorf("keys.ParseSignature: %w", err)
	}
	return signatureFromBytes(data, info)
}

// ParseSignatureOrHex accepts either a SIG_ string or a hex encoded compact
// signature on curveName.
func ParseSignatureOrHex(text, curveName string) (*Signature, error) {
	if signaturePattern.MatchString(text) {
		return ParseSignature(text)
	}
	return SignatureFromHex(text, curveName)
}

// Curve returns the descriptor of the curve the signature was made on.
func (sig *Signature) Curve() *registry.Info {
	return sig.info
}

// Raw returns the (r, s) pair.
func (sig *Signature) Raw() ecdsa.Signature {
	return sig.raw
}

// RecoveryParam returns i ∈ [0, 3].
func (sig *Signature) RecoveryParam() byte {
	return sig.recid
}

// Bytes returns the 65 byte compact form.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, params.BytesSignature)
	out = append(out, sig.recid+params.RecoveryOffset)
	return append(out, sig.raw.Bytes()...)
}

func (sig *Signature) Hex() string {
	return hex.EncodeToString(sig.Bytes())
}

func (sig *Signature) String() string {
	return "SIG_" + sig.info.KeyType + "_" + base58check.Encode(sig.Bytes(), base58check.Tagged(sig.info.KeyType))
}

// Verify hashes data with the digest function of the curve and verifies it.
func (sig *Signature) Verify(data []byte, pub *PublicKey) bool {
	return sig.VerifyHash(sig.info.Scheme.Hash(data), pub)
}

// VerifyHash returns true if sig is a valid signature of hash by pub.
func (sig *Signature) VerifyHash(hash []byte, pub *PublicKey) bool {
	if pub == nil || pub.info != sig.info || len(hash) != params.BytesScalar {
		return false
	}
	return sig.info.Scheme.Verify(hash, &sig.raw, pub.q)
}

// Recover hashes data with the digest function of the curve and returns the signer.
func (sig *Signature) Recover(data []byte) (*PublicKey, error) {
	return sig.RecoverHash(sig.info.Scheme.Hash(data))
}

// RecoverHash returns the public key that produced this signature of hash.
func (sig *Signature) RecoverHash(hash []byte) (*PublicKey, error) {
	if len(hash) != params.BytesScalar {
		return nil, ecdsa.ErrInvalidDigestLength
	}
	q, err := sig.info.Scheme.RecoverPublicKey(hash, &sig.raw, sig.recid)
	if err != nil {
		return nil, err
	}
	return &PublicKey{q: q, info: sig.info}, nil
}

// Equal returns true if both signatures have the same components and recovery param.
func (sig *Signature) Equal(other *Signature) bool {
	return sig.info == other.info && sig.recid == other.recid && sig.raw.Equal(other.raw)
}

type signatureCBOR struct {
	KeyType string `cbor:"1,keyasint"`
	RecID   byte   `cbor:"2,keyasint"`
	Raw     []byte `cbor:"3,keyasint"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is a CBOR map of the key type tag, the recovery param and the
// CBOR encoded (r, s) pair.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	raw, err := sig.raw.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureCBOR{KeyType: sig.info.KeyType, RecID: sig.recid, Raw: raw})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler; the curve is read
// from the encoding, so sig may be the zero value.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	var decoded signatureCBOR
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSig, err)
	}
	info, err := registry.ByKeyType(decoded.KeyType)
	if err != nil {
		return err
	}
	if decoded.RecID > 3 {
		return ecdsa.ErrInvalidRecoveryParam
	}
	raw := ecdsa.EmptySignature(info.Curve)
	if err := raw.UnmarshalBinary(decoded.Raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSig, err)
	}
	if raw.R.IsZero() || raw.S.IsZero() {
		return ecdsa.ErrInvalidSignatureComponent
	}
	sig.raw, sig.recid, sig.info = raw, decoded.RecID, info
	return nil
}
