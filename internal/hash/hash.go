package hash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/taurusgroup/ecckey/internal/params"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.SecBytes // 32

// Hash accumulates entropy contributions of various types.
//
// Internally, this is a wrapper around blake3.Hasher, whose extendable output
// lets callers read as many condensed bytes as they need.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash whose state is separated by the given domain.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = writeWithDomain(hash.h, "domain", []byte(domain))
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This does not finalize the state: further writes are still possible.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - int, int64, uint64
//
// Each value is framed as `(<domain><data>)` so that adjacent values of
// different types cannot collide.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, "[]byte", t)
		case string:
			err = writeWithDomain(hash.h, "string", []byte(t))
		case int:
			err = writeWithDomain(hash.h, "int", binary.BigEndian.AppendUint64(nil, uint64(t)))
		case int64:
			err = writeWithDomain(hash.h, "int", binary.BigEndian.AppendUint64(nil, uint64(t)))
		case uint64:
			err = writeWithDomain(hash.h, "uint", binary.BigEndian.AppendUint64(nil, t))
		default:
			return fmt.Errorf("hash.Hash: unsupported type %T", d)
		}
		if err != nil {
			return fmt.Errorf("hash.Hash: write %T: %w", d, err)
		}
	}
	return nil
}

func writeWithDomain(w io.Writer, domain string, data []byte) error {
	if _, err := w.Write([]byte("(")); err != nil {
		return err
	}
	if _, err := w.Write([]byte(domain)); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte(")")); err != nil {
		return err
	}
	return nil
}
