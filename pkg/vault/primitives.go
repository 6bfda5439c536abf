package vault

import (
	"errors"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

// ComputeHMAC returns the keyed MAC of data.
func (v *Vault) ComputeHMAC(data, key []byte, alg backend.Algorithm) ([]byte, error) {
	mac, err := v.backend.HMAC(data, key, alg)
	if err != nil {
		return nil, errors.Join(ErrHMACFailed, err)
	}
	return mac, nil
}

// VerifyHMAC recomputes the MAC and compares it in constant time.
func (v *Vault) VerifyHMAC(data, key, mac []byte, alg backend.Algorithm) bool {
	expected, err := v.backend.HMAC(data, key, alg)
	if err != nil {
		return false
	}
	return v.backend.SecureCompare(expected, mac)
}

// RandomBytes returns n bytes from a cryptographically secure source.
func (v *Vault) RandomBytes(n int) ([]byte, error) {
	b, err := v.backend.RandomBytes(n)
	if err != nil {
		return nil, errors.Join(ErrRandomFailed, err)
	}
	return b, nil
}

// RandomInt returns a uniform integer in [min, max).
func (v *Vault) RandomInt(min, max int) (int, error) {
	n, err := v.backend.RandomInt(min, max)
	if err != nil {
		return 0, errors.Join(ErrRandomFailed, err)
	}
	return n, nil
}
