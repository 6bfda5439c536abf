package vault

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/logger"
)

// Upper bounds on stored KDF parameters. Envelopes asking for more are
// rejected before any derivation work is done.
const (
	maxPBKDF2Iterations = 10_000_000
	maxArgon2Time       = 16
	maxArgon2MemoryKB   = 4 * 1024 * 1024
	maxArgon2Threads    = 16
	maxScryptMemory     = 1 << 30
	maxScryptP          = 16
)

// Vault encrypts secrets under a password and exposes the supporting
// primitives. It is safe for concurrent use.
type Vault struct {
	cfg     Config
	backend backend.Crypto
	log     *slog.Logger
}

// New creates a Vault. Zero fields in cfg take DefaultConfig values.
func New(cfg Config, opts ...Option) *Vault {
	v := &Vault{
		cfg:     cfg.withDefaults(),
		backend: backend.NewNative(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Config returns the effective configuration.
func (v *Vault) Config() Config { return v.cfg }

func (v *Vault) keyParams(o encryptOptions) backend.KeyParams {
	p := backend.KeyParams{
		KDF:        o.kdf,
		Iterations: o.iterations,
		KeyLength:  backend.DefaultKeyLength,
		SaltLength: v.cfg.SaltLength,
	}
	// Configured cost parameters only apply to the configured KDF.
	if o.kdf == v.cfg.KDF {
		if p.Iterations == 0 {
			p.Iterations = v.cfg.Iterations
		}
		p.MemoryKB = v.cfg.MemoryKB
		p.Parallelism = v.cfg.Parallelism
	}
	return p.WithDefaults()
}

// EncryptWithPassword derives a key from password with a fresh salt and
// seals plaintext with a fresh IV. The returned envelope carries every
// parameter needed to decrypt it.
func (v *Vault) EncryptWithPassword(plaintext []byte, password string, opts ...EncryptOption) (*Envelope, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	o := encryptOptions{algorithm: v.cfg.Algorithm, kdf: v.cfg.KDF}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.algorithm.Supported() {
		return nil, errors.Join(ErrEncryptionFailed, backend.ErrUnsupportedCipher)
	}
	if !o.kdf.Supported() {
		return nil, errors.Join(ErrKeyDerivationFailed, backend.ErrUnsupportedKDF)
	}

	params := v.keyParams(o)
	if !withinCost(params) {
		return nil, errors.Join(ErrKeyDerivationFailed, backend.ErrInvalidKeyParams)
	}
	key, salt, err := v.backend.DeriveKey(password, params)
	if err != nil {
		v.log.Warn("key derivation failed", logger.Error(err))
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	defer backend.Wipe(key)

	env := &Envelope{
		Version:     EnvelopeVersion,
		Algorithm:   o.algorithm,
		KDF:         params.KDF,
		Iterations:  params.Iterations,
		MemoryKB:    params.MemoryKB,
		Parallelism: params.Parallelism,
		Salt:        salt,
		AAD:         o.aad,
	}
	if params.KDF != backend.Argon2id && params.KDF != backend.Scrypt {
		env.MemoryKB, env.Parallelism = 0, 0
	}

	sealed, err := v.backend.Encrypt(plaintext, key, backend.CipherParams{
		Algorithm: o.algorithm,
		AAD:       env.header(),
	})
	if err != nil {
		v.log.Warn("encryption failed", logger.Error(err))
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	env.IV = sealed.IV
	env.Tag = sealed.Tag
	env.Ciphertext = sealed.Ciphertext

	v.log.Debug("envelope sealed",
		slog.String("algorithm", string(env.Algorithm)),
		slog.String("kdf", string(env.KDF)),
		slog.Int("iterations", env.Iterations),
	)
	return env, nil
}

// DecryptWithPassword opens env using only its stored parameters. Every
// failure, whether a wrong password, a tampered field or an unknown
// algorithm, is reported as ErrDecryptionFailed.
func (v *Vault) DecryptWithPassword(env *Envelope, password string) ([]byte, error) {
	if !v.openable(env) || password == "" {
		v.log.Debug("envelope rejected")
		return nil, ErrDecryptionFailed
	}

	key, err := v.backend.DeriveKeyWithSalt(password, env.Salt, env.keyParams())
	if err != nil {
		v.log.Debug("envelope rejected")
		return nil, ErrDecryptionFailed
	}
	defer backend.Wipe(key)

	plaintext, err := v.backend.Decrypt(backend.Sealed{
		Ciphertext: env.Ciphertext,
		IV:         env.IV,
		Tag:        env.Tag,
	}, key, backend.CipherParams{
		Algorithm: env.Algorithm,
		AAD:       env.header(),
	})
	if err != nil {
		v.log.Debug("envelope rejected")
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (v *Vault) openable(env *Envelope) bool {
	if env == nil || env.Version != EnvelopeVersion {
		return false
	}
	if !env.Algorithm.Supported() || !env.KDF.Supported() {
		return false
	}
	if !withinCost(env.keyParams()) {
		return false
	}
	return len(env.Salt) > 0 && len(env.IV) > 0
}

// withinCost reports whether deriving a key with p stays inside the
// per-KDF work and memory limits.
func withinCost(p backend.KeyParams) bool {
	if p.Iterations < 1 {
		return false
	}
	switch p.KDF {
	case backend.PBKDF2SHA256, backend.PBKDF2SHA512:
		return p.Iterations <= maxPBKDF2Iterations
	case backend.Argon2id:
		return p.Iterations <= maxArgon2Time &&
			p.MemoryKB >= 1 && p.MemoryKB <= maxArgon2MemoryKB &&
			p.Parallelism >= 1 && p.Parallelism <= maxArgon2Threads
	case backend.Scrypt:
		n := p.Iterations
		if n < 2 || n&(n-1) != 0 {
			return false
		}
		return int64(128*backend.ScryptBlockSize)*int64(n) <= maxScryptMemory &&
			p.Parallelism >= 1 && p.Parallelism <= maxScryptP
	}
	return false
}

// EncryptString seals plaintext and returns the envelope as JSON text.
func (v *Vault) EncryptString(plaintext, password string, opts ...EncryptOption) (string, error) {
	env, err := v.EncryptWithPassword([]byte(plaintext), password, opts...)
	if err != nil {
		return "", err
	}
	data, err := env.Marshal()
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	return string(data), nil
}

// DecryptString reverses EncryptString.
func (v *Vault) DecryptString(data, password string) (string, error) {
	env, err := ParseEnvelope([]byte(data))
	if err != nil {
		return "", ErrDecryptionFailed
	}
	plaintext, err := v.DecryptWithPassword(env, password)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
