package backend

import "errors"

var (
	ErrUnavailable          = errors.New("primitive backend unavailable")
	ErrInvalidSecret        = errors.New("invalid base32 secret")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrUnsupportedKDF       = errors.New("unsupported key derivation function")
	ErrUnsupportedCipher    = errors.New("unsupported cipher")
	ErrInvalidKeyParams     = errors.New("invalid key derivation parameters")
	ErrInvalidKeyLength     = errors.New("invalid key length")
	ErrInvalidIV            = errors.New("invalid initialization vector")
	ErrKeyDerivation        = errors.New("key derivation failed")
	ErrEncryption           = errors.New("encryption failed")
	ErrAuthenticationFailed = errors.New("message authentication failed")
	ErrRandom               = errors.New("failed to read random bytes")
	ErrInvalidRange         = errors.New("invalid random range")
	ErrInvalidBase64        = errors.New("invalid base64 data")
)
