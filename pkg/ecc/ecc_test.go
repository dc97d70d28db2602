package ecc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ecckey/pkg/registry"
)

const (
	seedWIF       = "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss"
	seedPublic    = "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM"
	seedSigK1     = "SIG_K1_K3CbJh3JGdumz6zkfEUhmr8VgF8nYJMzCkN1K2e52CEprWYJw2P4CaLP8qQjXhLuZfddZ6HKGJ7pzeTgZUFdTrHiFdokD2"
	seedSigSM2    = "SIG_SM2_KBrHAPtN4XrYREbx4qjT8fq7gnMriXYBz42mp7z2eu2zdiMh4nykRuU8ig31cTruWC7X4SMVCx5eQnawVdWJzjfcJcVUWa"
	sha256OfHi    = "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4"
	seedPublicSM2 = "PUB_SM2_8gP74otXtG6GudaKuSyBVLFP6UGYU53rdCxxAu3tor8PH8wNc7"
)

func TestSeedPrivate(t *testing.T) {
	wif, err := SeedPrivate("", "", "")
	require.NoError(t, err)
	assert.Equal(t, seedWIF, wif)

	typed, err := SeedPrivate("", registry.Secp256k1, registry.Typed)
	require.NoError(t, err)
	assert.Equal(t, "PVT_K1_2jH3nnhxhR3zPUcsKaWWZC9ZmZAnKm3GAnFD1xynGJE1Znuvjd", typed)

	sm, err := SeedPrivate("", registry.SM2, "")
	require.NoError(t, err)
	assert.Equal(t, "PVT_SM2_2jH3nnhxhR3zPUcsKaWWZC9ZmZAnKm3GAnFD1xynGJE1azUK8D", sm)

	_, err = SeedPrivate("", registry.SM2, registry.Legacy)
	assert.ErrorIs(t, err, registry.ErrUnsupportedFormat)
}

func TestPrivateToPublic(t *testing.T) {
	pub, err := PrivateToPublic(seedWIF, "", "")
	require.NoError(t, err)
	assert.Equal(t, seedPublic, pub)

	pub, err = PrivateToPublic(seedWIF, registry.Legacy, "PUB")
	require.NoError(t, err)
	assert.Equal(t, "PUB859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", pub)

	pub, err = PrivateToPublic(seedWIF, registry.Typed, "")
	require.NoError(t, err)
	assert.Equal(t, "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX", pub)

	pub, err = PrivateToPublic("PVT_SM2_2jH3nnhxhR3zPUcsKaWWZC9ZmZAnKm3GAnFD1xynGJE1azUK8D", "", "")
	require.NoError(t, err)
	assert.Equal(t, seedPublicSM2, pub)

	_, err = PrivateToPublic("nope", "", "")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValidPublic(seedPublic, "", ""))
	assert.True(t, IsValidPublic(seedPublicSM2, registry.SM2, ""))
	assert.False(t, IsValidPublic(seedPublicSM2, registry.Secp256k1, ""))
	assert.False(t, IsValidPublic("MMM859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", "", ""))
	assert.True(t, IsValidPublic("PUB859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", "", "PUB"))

	assert.True(t, IsValidPrivate(seedWIF))
	assert.False(t, IsValidPrivate(seedPublic))
}

func TestRandomKeys(t *testing.T) {
	require.NoError(t, Initialize())
	for _, name := range registry.Names() {
		k, err := RandomKey(0, name, registry.Typed)
		require.NoError(t, err)
		assert.True(t, IsValidPrivate(k))

		u, err := UnsafeRandomKey(name, "")
		require.NoError(t, err)
		assert.True(t, IsValidPrivate(u))
		assert.NotEqual(t, k, u)
	}
	_, err := UnsafeRandomKey("p384", "")
	assert.ErrorIs(t, err, registry.ErrUnknownCurve)
}

func TestSignVerifyRecover(t *testing.T) {
	sig, err := Sign([]byte("hi"), seedWIF, "")
	require.NoError(t, err)
	assert.Equal(t, seedSigK1, sig)

	sig, err = SignHash(sha256OfHi, seedWIF, "")
	require.NoError(t, err)
	assert.Equal(t, seedSigK1, sig)

	ok, err := Verify(seedSigK1, []byte("hi"), seedPublic, "")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = Verify(seedSigK1, []byte("hello"), seedPublic, "")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = VerifyHash(seedSigK1, sha256OfHi, seedPublic, "")
	require.NoError(t, err)
	assert.True(t, ok)

	pub, err := Recover(seedSigK1, []byte("hi"), "", "")
	require.NoError(t, err)
	assert.Equal(t, seedPublic, pub)
	pub, err = RecoverHash(seedSigK1, sha256OfHi, "", registry.Typed)
	require.NoError(t, err)
	assert.Equal(t, "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX", pub)
}

func TestSign_OtherCurve(t *testing.T) {
	sig, err := Sign([]byte("hi"), seedWIF, registry.SM2)
	require.NoError(t, err)
	assert.Equal(t, seedSigSM2, sig)

	ok, err := Verify(sig, []byte("hi"), seedPublicSM2, "")
	require.NoError(t, err)
	assert.True(t, ok)

	// a signature never verifies against a key on another curve
	ok, err = Verify(sig, []byte("hi"), seedPublic, "")
	require.NoError(t, err)
	assert.False(t, ok)

	pub, err := Recover(sig, []byte("hi"), "", "")
	require.NoError(t, err)
	assert.Equal(t, seedPublicSM2, pub)
}

func TestHexSignature(t *testing.T) {
	sig, err := Sign([]byte("hex"), seedWIF, "")
	require.NoError(t, err)
	pub, err := Recover(sig, []byte("hex"), "", "")
	require.NoError(t, err)
	assert.Equal(t, seedPublic, pub)

	_, err = Recover("1f00", []byte("hex"), "", "")
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	_, err := SignHash("zz", seedWIF, "")
	assert.Error(t, err)
	_, err = SignHash("abcd", seedWIF, "")
	assert.Error(t, err)
	_, err = Sign([]byte("hi"), seedWIF, "ed25519")
	assert.ErrorIs(t, err, registry.ErrUnknownCurve)
	_, err = Verify("SIG_K1_bad", []byte("hi"), seedPublic, "")
	assert.Error(t, err)
	_, err = Verify(seedSigK1, []byte("hi"), "EOSbad", "")
	assert.Error(t, err)
	_, err = VerifyHash(seedSigK1, "not hex", seedPublic, "")
	assert.Error(t, err)
	_, err = RecoverHash(seedSigK1, "00", "", "")
	assert.Error(t, err)
}

func TestDigests(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256(nil))
	assert.Equal(t, sha256OfHi, SHA256([]byte("hi")))
	assert.Equal(t, "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0", SM3([]byte("abc")))
}

func TestCurveNameByKeyType(t *testing.T) {
	for tag, name := range map[string]string{"K1": registry.Secp256k1, "SM2": registry.SM2, "R1": registry.Secp256r1} {
		got, err := CurveNameByKeyType(tag)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
	_, err := CurveNameByKeyType("K2")
	assert.ErrorIs(t, err, registry.ErrUnknownCurve)
}
