package vault

import "errors"

var (
	// Envelope errors
	ErrEmptyPassword       = errors.New("password must not be empty")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrEncryptionFailed    = errors.New("encryption failed")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrInvalidEnvelope     = errors.New("invalid envelope format")

	// Generator errors
	ErrInvalidPasswordLength        = errors.New("invalid password length")
	ErrNoCharacterClass             = errors.New("at least one character class must be enabled")
	ErrRandomFailed                 = errors.New("failed to read random data")
	ErrInvalidRecoveryCodeCount     = errors.New("invalid recovery code count, must be greater than 0")
	ErrFailedToGenerateRecoveryCode = errors.New("failed to generate recovery code")
	ErrHMACFailed                   = errors.New("hmac computation failed")
)
