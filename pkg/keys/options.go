package keys

import (
	"crypto/rand"
	"io"

	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/taurusgroup/ecckey/pkg/entropy"
	"go.uber.org/zap"
)

type config struct {
	logger         *zap.Logger
	pool           *entropy.Pool
	rand           io.Reader
	minEntropyBits int
}

// Option configures a Generator or a signing call.
type Option func(*config)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPool makes the Generator draw from, and feed, an existing entropy pool.
func WithPool(p *entropy.Pool) Option {
	return func(c *config) {
		if p != nil {
			c.pool = p
		}
	}
}

// WithRandom replaces crypto/rand as the source of random bytes.
func WithRandom(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithMinEntropyBits sets how many bits the pool must hold after initialization.
func WithMinEntropyBits(bits int) Option {
	return func(c *config) {
		c.minEntropyBits = bits
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:         zap.NewNop(),
		rand:           rand.Reader,
		minEntropyBits: params.MinEntropyBits,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
