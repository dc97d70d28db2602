package keys

type Error string

const (
	ErrMalformedKey     Error = "keys: malformed key"
	ErrInvalidVersion   Error = "keys: invalid private key version"
	ErrCurveMismatch    Error = "keys: keys are on different curves"
	ErrChildOutOfRange  Error = "keys: child offset went out of bounds"
	ErrChildInfinity    Error = "keys: child offset derived to the point at infinity"
	ErrMalformedSig     Error = "keys: malformed signature"
	ErrSelfTestMismatch Error = "keys: self test failed on a known key"
)

func (err Error) Error() string {
	return string(err)
}
