package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BytesScalar is the size of a serialized private scalar, and of every
	// digest the signing code accepts.
	BytesScalar = SecBytes // = 32
	// BytesPoint is the size of a SEC1 compressed point.
	BytesPoint = BytesScalar + 1 // = 33
	// BytesPointUncompressed is the size of a SEC1 uncompressed point.
	BytesPointUncompressed = 2*BytesScalar + 1 // = 65
	// BytesSignature is the size of a binary compact signature: i ∥ r ∥ s.
	BytesSignature = 2*BytesScalar + 1 // = 65

	// BytesChecksum is the length of every base58check checksum.
	BytesChecksum = 4

	// PrivateKeyVersion prefixes the payload of a legacy (WIF) private key.
	PrivateKeyVersion byte = 0x80
	// CompressedFlag may trail a 32-byte private scalar.
	CompressedFlag byte = 0x01

	// DefaultPublicKeyPrefix is prepended to legacy public keys.
	DefaultPublicKeyPrefix = "EOS"

	// RecoveryOffset is added to the recovery index in the first byte of a
	// compact signature (27 for "uncompressed", +4 for "compressed").
	RecoveryOffset = 27 + 4

	// MinEntropyBits is the amount of entropy the pool must have
	// gathered before random keys may be produced.
	MinEntropyBits = 128
)
