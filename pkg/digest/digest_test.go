package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownAnswers(t *testing.T) {
	tests := []struct {
		name string
		f    func([]byte) []byte
		in   string
		want string
	}{
		{"sha256 empty", SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha256 abc", SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sm3 empty", SM3, "", "1ab21d8355cfa17f8e61194831e81a8f22bec8c728fefb747ed035eb5082aa2b"},
		{"sm3 abc", SM3, "abc", "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0"},
		{"ripemd160 empty", func(b []byte) []byte { return RIPEMD160(b) }, "", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(tt.f([]byte(tt.in))))
		})
	}
}

func TestSHA512Length(t *testing.T) {
	assert.Len(t, SHA512([]byte("x")), 64)
	assert.Equal(t, SHA256(SHA256([]byte("x"))), DoubleSHA256([]byte("x")))
}

func TestRIPEMD160Concatenates(t *testing.T) {
	assert.Equal(t, RIPEMD160([]byte("abc")), RIPEMD160([]byte("a"), []byte("bc")))
}

func TestHMACSHA256(t *testing.T) {
	// RFC 4231 test case 2
	got := HMACSHA256([]byte("Jefe"), []byte("what do ya want "), []byte("for nothing?"))
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", hex.EncodeToString(got))
}
