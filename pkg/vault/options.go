package vault

import (
	"log/slog"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/logger"
)

// Option configures a Vault.
type Option func(*Vault)

// WithBackend replaces the crypto primitives.
func WithBackend(b backend.Crypto) Option {
	return func(v *Vault) {
		if b != nil {
			v.backend = b
		}
	}
}

// WithLogger sets the logger. Secrets and passwords are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(v *Vault) {
		if l != nil {
			v.log = l.With(logger.Component("vault"))
		}
	}
}

type encryptOptions struct {
	algorithm  backend.Cipher
	kdf        backend.KDF
	iterations int
	aad        []byte
}

// EncryptOption overrides the configured defaults for one envelope.
type EncryptOption func(*encryptOptions)

// WithAlgorithm selects the AEAD cipher.
func WithAlgorithm(c backend.Cipher) EncryptOption {
	return func(o *encryptOptions) { o.algorithm = c }
}

// WithKDF selects the key derivation function. Unless WithIterations is
// also given, the KDF's own default cost is used.
func WithKDF(k backend.KDF) EncryptOption {
	return func(o *encryptOptions) { o.kdf = k }
}

// WithIterations sets the KDF cost: PBKDF2 rounds, argon2id time or scrypt N.
func WithIterations(n int) EncryptOption {
	return func(o *encryptOptions) { o.iterations = n }
}

// WithAAD binds the envelope to caller context, such as a credential ID.
// The data is stored in the envelope and authenticated, not encrypted.
func WithAAD(aad []byte) EncryptOption {
	return func(o *encryptOptions) { o.aad = aad }
}
