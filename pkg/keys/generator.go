package keys

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/digest"
	"github.com/taurusgroup/ecckey/pkg/entropy"
	"github.com/taurusgroup/ecckey/pkg/math/sample"
	"github.com/taurusgroup/ecckey/pkg/registry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Generator creates random private keys from crypto/rand mixed with an entropy pool.
//
// Initialize must succeed before RandomKey hands out keys. Concurrent calls to
// Initialize share a single execution; once it has succeeded it is never run again.
type Generator struct {
	cfg   *config
	pool  *entropy.Pool
	group singleflight.Group
	ready atomic.Bool
}

// NewGenerator returns an uninitialized Generator.
func NewGenerator(opts ...Option) *Generator {
	cfg := newConfig(opts)
	pool := cfg.pool
	if pool == nil {
		pool = entropy.NewPool()
	}
	return &Generator{cfg: cfg, pool: pool}
}

var (
	defaultGeneratorOnce sync.Once
	defaultGenerator     *Generator
)

// DefaultGenerator returns the process wide Generator.
func DefaultGenerator() *Generator {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// Pool returns the entropy pool the generator draws from.
func (g *Generator) Pool() *entropy.Pool {
	return g.pool
}

// Initialized reports whether Initialize has succeeded.
func (g *Generator) Initialized() bool {
	return g.ready.Load()
}

// Initialize runs the known answer self test and gathers CPU entropy.
//
// It fails with entropy.ErrInsufficientEntropy if the pool still holds fewer
// bits than required afterwards; a failed initialization may be retried.
func (g *Generator) Initialize() error {
	if g.ready.Load() {
		return nil
	}
	_, err, _ := g.group.Do("initialize", func() (interface{}, error) {
		if g.ready.Load() {
			return nil, nil
		}
		if err := SelfTest(); err != nil {
			g.cfg.logger.Error("self test failed", zap.Error(err))
			return nil, err
		}
		g.pool.Gather(params.MinEntropyBits)
		if err := g.pool.Require(g.cfg.minEntropyBits); err != nil {
			g.cfg.logger.Error("insufficient entropy",
				zap.Int("bits", g.pool.Count()), zap.Int("required", g.cfg.minEntropyBits))
			return nil, fmt.Errorf("keys.Initialize: %w", err)
		}
		g.ready.Store(true)
		g.cfg.logger.Info("key generator initialized", zap.Int("entropy_bits", g.pool.Count()))
		return nil, nil
	})
	return err
}

// RandomKey initializes the generator if needed and returns a fresh key.
//
// cpuEntropyBits additional samples of CPU entropy are gathered first; this
// already happens once during initialization so 0 is fine.
func (g *Generator) RandomKey(curveName string, cpuEntropyBits int) (*PrivateKey, error) {
	if err := g.Initialize(); err != nil {
		return nil, err
	}
	return g.randomKey(curveName, cpuEntropyBits)
}

// UnsafeRandomKey returns a fresh key without running Initialize; meant for tests.
func (g *Generator) UnsafeRandomKey(curveName string) (*PrivateKey, error) {
	return g.randomKey(curveName, 0)
}

// randomKey hashes 32 random bytes with the pool digest: SHA-256(rand ∥ pool).
func (g *Generator) randomKey(curveName string, cpuEntropyBits int) (*PrivateKey, error) {
	info, err := registry.ByName(curveName)
	if err != nil {
		return nil, err
	}
	if cpuEntropyBits > 0 {
		g.pool.Gather(cpuEntropyBits)
	}
	poolDigest := g.pool.Digest()
	data, err := sample.ScalarBytes(g.cfg.rand, info.Curve, func(random []byte) []byte {
		buf := make([]byte, 0, len(random)+len(poolDigest))
		buf = append(buf, random...)
		buf = append(buf, poolDigest...)
		return digest.SHA256(buf)
	})
	if err != nil {
		return nil, fmt.Errorf("keys.RandomKey: %w", err)
	}
	return newPrivateKey(data, info)
}

// Initialize initializes the default generator.
func Initialize() error {
	return DefaultGenerator().Initialize()
}

// RandomKey returns a random key from the default generator.
func RandomKey(curveName string, cpuEntropyBits int) (*PrivateKey, error) {
	return DefaultGenerator().RandomKey(curveName, cpuEntropyBits)
}

// UnsafeRandomKey returns a random key from the default generator, skipping initialization.
func UnsafeRandomKey(curveName string) (*PrivateKey, error) {
	return DefaultGenerator().UnsafeRandomKey(curveName)
}
