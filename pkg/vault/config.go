package vault

import "github.com/dmitrymomot/otpkit/pkg/backend"

// Config holds the defaults applied to new envelopes. Existing envelopes
// always decrypt with their own stored parameters.
type Config struct {
	Algorithm   backend.Cipher
	KDF         backend.KDF
	Iterations  int
	MemoryKB    uint32
	Parallelism uint8
	SaltLength  int
}

// DefaultConfig is AES-256-GCM with PBKDF2-SHA256 at 100 000 iterations.
func DefaultConfig() Config {
	return Config{
		Algorithm:  backend.AES256GCM,
		KDF:        backend.PBKDF2SHA256,
		Iterations: backend.DefaultPBKDF2Iterations,
		SaltLength: backend.DefaultSaltLength,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Algorithm == "" {
		c.Algorithm = d.Algorithm
	}
	if c.KDF == "" {
		c.KDF = d.KDF
	}
	if c.SaltLength == 0 {
		c.SaltLength = d.SaltLength
	}
	return c
}
