package ecdsa

type Error string

const (
	ErrInvalidDigestLength       Error = "ecdsa: digest must be 32 bytes"
	ErrInvalidRecoveryParam      Error = "ecdsa: recovery param must be in [0, 3]"
	ErrInvalidSignatureComponent Error = "ecdsa: signature component out of range"
	ErrInvalidRValue             Error = "ecdsa: n⋅R is not the point at infinity"
	ErrRecoveryParamNotFound     Error = "ecdsa: unable to find a valid recovery param"
)

func (err Error) Error() string {
	return string(err)
}
