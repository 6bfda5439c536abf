package backend

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultPBKDF2Iterations = 100_000
	DefaultArgon2Time       = 3
	DefaultArgon2MemoryKB   = 64 * 1024
	DefaultArgon2Threads    = 4
	DefaultScryptN          = 1 << 15
	ScryptBlockSize         = 8
	defaultScryptP          = 1
)

// DefaultIterations returns the iteration count used when KeyParams leaves
// Iterations at zero.
func (k KDF) DefaultIterations() int {
	switch k {
	case Argon2id:
		return DefaultArgon2Time
	case Scrypt:
		return DefaultScryptN
	default:
		return DefaultPBKDF2Iterations
	}
}

// Supported reports whether the backend knows k.
func (k KDF) Supported() bool {
	switch k {
	case PBKDF2SHA256, PBKDF2SHA512, Argon2id, Scrypt:
		return true
	}
	return false
}

// WithDefaults fills zero-valued fields.
func (p KeyParams) WithDefaults() KeyParams {
	if p.KDF == "" {
		p.KDF = PBKDF2SHA256
	}
	if p.Iterations == 0 {
		p.Iterations = p.KDF.DefaultIterations()
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultKeyLength
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultSaltLength
	}
	switch p.KDF {
	case Argon2id:
		if p.MemoryKB == 0 {
			p.MemoryKB = DefaultArgon2MemoryKB
		}
		if p.Parallelism == 0 {
			p.Parallelism = DefaultArgon2Threads
		}
	case Scrypt:
		if p.Parallelism == 0 {
			p.Parallelism = defaultScryptP
		}
	}
	return p
}

// DeriveKey draws a fresh random salt and derives a key from password.
func (n *Native) DeriveKey(password string, params KeyParams) ([]byte, []byte, error) {
	params = params.WithDefaults()
	if params.SaltLength < 8 {
		return nil, nil, errors.Join(ErrKeyDerivation, ErrInvalidKeyParams)
	}
	salt, err := n.RandomBytes(params.SaltLength)
	if err != nil {
		return nil, nil, errors.Join(ErrKeyDerivation, err)
	}
	key, err := n.DeriveKeyWithSalt(password, salt, params)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}

// DeriveKeyWithSalt re-derives a key from a stored salt.
func (n *Native) DeriveKeyWithSalt(password string, salt []byte, params KeyParams) ([]byte, error) {
	params = params.WithDefaults()
	if len(salt) == 0 || params.Iterations < 1 || params.KeyLength < 16 {
		return nil, errors.Join(ErrKeyDerivation, ErrInvalidKeyParams)
	}

	pw := norm.NFKC.Bytes([]byte(password))
	defer Wipe(pw)

	switch params.KDF {
	case PBKDF2SHA256:
		return pbkdf2.Key(pw, salt, params.Iterations, params.KeyLength, sha256.New), nil
	case PBKDF2SHA512:
		return pbkdf2.Key(pw, salt, params.Iterations, params.KeyLength, sha512.New), nil
	case Argon2id:
		return argon2.IDKey(pw, salt, uint32(params.Iterations), params.MemoryKB, params.Parallelism, uint32(params.KeyLength)), nil
	case Scrypt:
		key, err := scrypt.Key(pw, salt, params.Iterations, ScryptBlockSize, int(params.Parallelism), params.KeyLength)
		if err != nil {
			return nil, errors.Join(ErrKeyDerivation, ErrInvalidKeyParams, err)
		}
		return key, nil
	default:
		return nil, errors.Join(ErrKeyDerivation, fmt.Errorf("%w: %q", ErrUnsupportedKDF, params.KDF))
	}
}
