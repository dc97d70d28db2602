// Package digest collects the hash functions used by key encodings and
// signature schemes.
package digest

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/emmansun/gmsm/sm3"
	"golang.org/x/crypto/ripemd160"
)

// SHA256 returns the 32 byte SHA-256 digest of data.
func SHA256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleSHA256 returns SHA-256(SHA-256(data)).
func DoubleSHA256(data []byte) []byte {
	return SHA256(SHA256(data))
}

// SHA512 returns the 64 byte SHA-512 digest of data.
func SHA512(data []byte) []byte {
	h := sha512.Sum512(data)
	return h[:]
}

// SM3 returns the 32 byte SM3 digest of data.
func SM3(data []byte) []byte {
	h := sm3.Sum(data)
	return h[:]
}

// RIPEMD160 returns the 20 byte RIPEMD-160 digest of the concatenation of parts.
func RIPEMD160(parts ...[]byte) []byte {
	h := ripemd160.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)
}

// HMACSHA256 returns HMAC-SHA256 keyed with key over the concatenation of parts.
func HMACSHA256(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, p := range parts {
		_, _ = mac.Write(p)
	}
	return mac.Sum(nil)
}
