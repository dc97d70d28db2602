package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSeedAndPublic(t *testing.T) {
	out, err := run(t, "seed", "")
	require.NoError(t, err)
	assert.Equal(t, "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss", out)

	out, err = run(t, "seed", "", "--curve", "sm2")
	require.NoError(t, err)
	assert.Equal(t, "PVT_SM2_2jH3nnhxhR3zPUcsKaWWZC9ZmZAnKm3GAnFD1xynGJE1azUK8D", out)

	out, err = run(t, "public", "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss", "--format", "typed")
	require.NoError(t, err)
	assert.Equal(t, "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX", out)

	out, err = run(t, "public", "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss", "--curve", "sm2")
	require.NoError(t, err)
	assert.Equal(t, "PUB_SM2_8gP74otXtG6GudaKuSyBVLFP6UGYU53rdCxxAu3tor8PH8wNc7", out)

	_, err = run(t, "seed", "", "--format", "pem")
	assert.Error(t, err)
}

func TestSignVerifyRecover(t *testing.T) {
	const wif = "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss"
	sig, err := run(t, "sign", wif, "hi")
	require.NoError(t, err)
	assert.Equal(t, "SIG_K1_K3CbJh3JGdumz6zkfEUhmr8VgF8nYJMzCkN1K2e52CEprWYJw2P4CaLP8qQjXhLuZfddZ6HKGJ7pzeTgZUFdTrHiFdokD2", sig)

	digest, err := run(t, "hash", "hi")
	require.NoError(t, err)
	sigFromDigest, err := run(t, "sign", wif, digest, "--digest")
	require.NoError(t, err)
	assert.Equal(t, sig, sigFromDigest)

	out, err := run(t, "verify", sig, "6869", "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", "--hex")
	require.NoError(t, err)
	assert.Equal(t, "OK", out)

	_, err = run(t, "verify", sig, "ho", "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM")
	assert.Error(t, err)

	out, err = run(t, "recover", sig, digest, "--digest", "--format", "KTP")
	require.NoError(t, err)
	assert.Equal(t, "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX", out)
}

func TestSignVerifyRecover_CBOR(t *testing.T) {
	const wif = "5KYZdUEo39z3FPrtuX2QbbwGnNP5zTd7yyr2SC1j299sBCnWjss"
	sig, err := run(t, "sign", wif, "hi", "--cbor")
	require.NoError(t, err)
	assert.NotContains(t, sig, "SIG_")
	_, err = hex.DecodeString(sig)
	require.NoError(t, err)

	out, err := run(t, "verify", sig, "hi", "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", "--cbor")
	require.NoError(t, err)
	assert.Equal(t, "OK", out)

	out, err = run(t, "recover", sig, "hi", "--cbor", "--format", "KTP")
	require.NoError(t, err)
	assert.Equal(t, "PUB_K1_859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2Ht7beeX", out)

	_, err = run(t, "verify", "SIG_K1_K3CbJh3JGdumz6zkfEUhmr8VgF8nYJMzCkN1K2e52CEprWYJw2P4CaLP8qQjXhLuZfddZ6HKGJ7pzeTgZUFdTrHiFdokD2", "hi", "EOS859gxfnXyUriMgUeThh1fWv3oqcpLFyHa3TfFYC4PK2HqhToVM", "--cbor")
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	out, err := run(t, "random", "--curve", "secp256r1", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Private key: PVT_R1_")
	assert.Contains(t, out, "Public key:  PUB_R1_")

	out, err = run(t, "random", "--unsafe")
	require.NoError(t, err)
	assert.Contains(t, out, "Public key:  EOS")
}

func TestCurvesAndHash(t *testing.T) {
	out, err := run(t, "curves")
	require.NoError(t, err)
	for _, name := range []string{"secp256k1", "sm2", "secp256r1"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, "hash", "abc", "--curve", "sm2")
	require.NoError(t, err)
	assert.Equal(t, "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0", out)

	_, err = run(t, "curves", "--log-level", "loud")
	assert.Error(t, err)
}
