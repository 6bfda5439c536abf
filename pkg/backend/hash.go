package backend

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
)

func (n *Native) Hash(data []byte, alg Algorithm) ([]byte, error) {
	h, err := hashFunc(alg)
	if err != nil {
		return nil, err
	}
	d := h()
	d.Write(data)
	return d.Sum(nil), nil
}

func (n *Native) HMAC(data, key []byte, alg Algorithm) ([]byte, error) {
	h, err := hashFunc(alg)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(h, key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// SecureCompare compares in constant time with respect to content.
func (n *Native) SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

func (n *Native) EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func (n *Native) DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidBase64, err)
	}
	return b, nil
}

func hashFunc(alg Algorithm) (func() hash.Hash, error) {
	switch alg {
	case SHA1:
		return sha1.New, nil
	case SHA256, "":
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}
