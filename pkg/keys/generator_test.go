package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/entropy"
	"github.com/taurusgroup/ecckey/pkg/registry"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"
)

func TestSelfTest(t *testing.T) {
	require.NoError(t, SelfTest())
}

func TestGenerator_InitializeOnce(t *testing.T) {
	gen := NewGenerator(WithLogger(zaptest.NewLogger(t)))
	assert.False(t, gen.Initialized())

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		eg.Go(gen.Initialize)
	}
	require.NoError(t, eg.Wait())
	assert.True(t, gen.Initialized())
	assert.Equal(t, params.MinEntropyBits, gen.Pool().Count())

	require.NoError(t, gen.Initialize())
	assert.Equal(t, params.MinEntropyBits, gen.Pool().Count())
}

func TestGenerator_InsufficientEntropy(t *testing.T) {
	pool := entropy.NewPool()
	gen := NewGenerator(WithPool(pool), WithMinEntropyBits(3*params.MinEntropyBits))
	assert.Same(t, pool, gen.Pool())

	err := gen.Initialize()
	assert.ErrorIs(t, err, entropy.ErrInsufficientEntropy)
	assert.False(t, gen.Initialized())

	_, err = gen.RandomKey(registry.Secp256k1, 0)
	assert.ErrorIs(t, err, entropy.ErrInsufficientEntropy)

	// every failed initialization still fed the pool, so the third attempt succeeds
	require.NoError(t, gen.Initialize())
	assert.True(t, gen.Initialized())
}

func TestGenerator_CallerEntropy(t *testing.T) {
	pool := entropy.NewPool()
	pool.AddBytes(bytes.Repeat([]byte{0x42}, 16))
	gen := NewGenerator(WithPool(pool), WithMinEntropyBits(params.MinEntropyBits+128))
	require.NoError(t, gen.Initialize())
}

func TestGenerator_RandomKey(t *testing.T) {
	gen := NewGenerator()
	seen := make(map[string]bool)
	for _, name := range registry.Names() {
		k, err := gen.RandomKey(name, 16)
		require.NoError(t, err)
		assert.Equal(t, name, k.Curve().Name)
		assert.False(t, seen[k.Hex()])
		seen[k.Hex()] = true
	}
	assert.Equal(t, params.MinEntropyBits+16*len(registry.Names()), gen.Pool().Count())

	_, err := gen.RandomKey("ed25519", 0)
	assert.ErrorIs(t, err, registry.ErrUnknownCurve)
}

func TestGenerator_Deterministic(t *testing.T) {
	pool := entropy.NewPool()
	random := bytes.Repeat([]byte{7}, 64)
	a, err := NewGenerator(WithPool(pool), WithRandom(bytes.NewReader(random))).UnsafeRandomKey(registry.Secp256k1)
	require.NoError(t, err)
	b, err := NewGenerator(WithPool(pool), WithRandom(bytes.NewReader(random))).UnsafeRandomKey(registry.Secp256k1)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	pool.Add(1)
	c, err := NewGenerator(WithPool(pool), WithRandom(bytes.NewReader(random))).UnsafeRandomKey(registry.Secp256k1)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestGenerator_Default(t *testing.T) {
	assert.Same(t, DefaultGenerator(), DefaultGenerator())
	k, err := UnsafeRandomKey("")
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultCurve, k.Curve().Name)

	require.NoError(t, Initialize())
	k, err = RandomKey(registry.SM2, 0)
	require.NoError(t, err)
	assert.Equal(t, registry.SM2, k.Curve().Name)
}
