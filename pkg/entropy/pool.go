// Package entropy accumulates randomness contributed by callers and by CPU
// timing jitter, and keeps count of how many bits were contributed.
package entropy

import (
	"sync"

	"github.com/taurusgroup/ecckey/internal/hash"
)

type Error string

const ErrInsufficientEntropy Error = "entropy: insufficient entropy"

func (err Error) Error() string {
	return string(err)
}

const domain = "ecckey entropy pool"

// Pool is safe for concurrent use.
//
// Every integer added counts as one bit, and every byte as eight; the counter
// is a lower bound estimate and is never decremented.
type Pool struct {
	mu    sync.Mutex
	h     *hash.Hash
	count int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{h: hash.New(domain)}
}

// Add mixes integer samples into the pool.
func (p *Pool) Add(values ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range values {
		_ = p.h.WriteAny(v)
	}
	p.count += len(values)
}

// AddBytes mixes caller supplied bytes into the pool.
func (p *Pool) AddBytes(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.h.WriteAny(b)
	p.count += 8 * len(b)
}

// Count returns the number of bits contributed so far.
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Digest returns the 32 byte condensed state of the pool.
func (p *Pool) Digest() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.Sum()
}

// Require returns ErrInsufficientEntropy if fewer than bits were contributed.
func (p *Pool) Require(bits int) error {
	if p.Count() < bits {
		return ErrInsufficientEntropy
	}
	return nil
}
