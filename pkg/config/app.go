package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/otp"
	"github.com/dmitrymomot/otpkit/pkg/ratelimiter"
	"github.com/dmitrymomot/otpkit/pkg/vault"
)

// Config is the otpkit runtime configuration. Every variable carries the
// OTPKIT_ prefix.
type Config struct {
	LogLevel  string `env:"OTPKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"OTPKIT_LOG_FORMAT" envDefault:"text"`

	CacheTTL      time.Duration `env:"OTPKIT_CACHE_TTL" envDefault:"5s"`
	CacheDisabled bool          `env:"OTPKIT_CACHE_DISABLED" envDefault:"false"`
	VerifyWindow  int           `env:"OTPKIT_VERIFY_WINDOW" envDefault:"1"`

	// Verification budget per credential; zero attempts disables limiting.
	VerifyMaxAttempts int           `env:"OTPKIT_VERIFY_MAX_ATTEMPTS" envDefault:"5"`
	VerifyRefill      time.Duration `env:"OTPKIT_VERIFY_REFILL" envDefault:"30s"`

	Cipher string `env:"OTPKIT_VAULT_CIPHER" envDefault:"aes-256-gcm"`
	KDF    string `env:"OTPKIT_VAULT_KDF" envDefault:"pbkdf2-sha256"`

	// Zero cost settings select the defaults of the chosen KDF.
	Iterations  int    `env:"OTPKIT_VAULT_ITERATIONS"`
	MemoryKB    uint32 `env:"OTPKIT_VAULT_MEMORY_KB"`
	Parallelism uint8  `env:"OTPKIT_VAULT_PARALLELISM"`
	SaltLength  int    `env:"OTPKIT_VAULT_SALT_LENGTH" envDefault:"16"`

	MetricsAddr string `env:"OTPKIT_METRICS_ADDR"`
}

// LoadConfig parses and validates Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoadConfig works like LoadConfig but panics on failure.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	invalid := func(name string, value any) {
		errs = append(errs, fmt.Errorf("%w: %s=%v", ErrInvalidValue, name, value))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		invalid("OTPKIT_LOG_LEVEL", c.LogLevel)
	}
	if f := logger.Format(c.LogFormat); f != logger.FormatText && f != logger.FormatJSON {
		invalid("OTPKIT_LOG_FORMAT", c.LogFormat)
	}
	if c.CacheTTL < 0 {
		invalid("OTPKIT_CACHE_TTL", c.CacheTTL)
	}
	if c.VerifyWindow < 0 {
		invalid("OTPKIT_VERIFY_WINDOW", c.VerifyWindow)
	}
	if c.VerifyMaxAttempts < 0 {
		invalid("OTPKIT_VERIFY_MAX_ATTEMPTS", c.VerifyMaxAttempts)
	}
	if c.VerifyMaxAttempts > 0 && c.VerifyRefill <= 0 {
		invalid("OTPKIT_VERIFY_REFILL", c.VerifyRefill)
	}
	if !backend.Cipher(c.Cipher).Supported() {
		invalid("OTPKIT_VAULT_CIPHER", c.Cipher)
	}
	if !backend.KDF(c.KDF).Supported() {
		invalid("OTPKIT_VAULT_KDF", c.KDF)
	}
	if c.Iterations < 0 {
		invalid("OTPKIT_VAULT_ITERATIONS", c.Iterations)
	}
	// scrypt N must be a power of two greater than one.
	if backend.KDF(c.KDF) == backend.Scrypt && c.Iterations != 0 && (c.Iterations < 2 || c.Iterations&(c.Iterations-1) != 0) {
		invalid("OTPKIT_VAULT_ITERATIONS", c.Iterations)
	}
	if c.SaltLength < 8 {
		invalid("OTPKIT_VAULT_SALT_LENGTH", c.SaltLength)
	}

	return errors.Join(errs...)
}

// LoggerOptions translates the log settings for logger.New.
func (c Config) LoggerOptions() []logger.Option {
	level, _ := logger.ParseLevel(c.LogLevel)
	format := logger.FormatText
	if logger.Format(c.LogFormat) == logger.FormatJSON {
		format = logger.FormatJSON
	}
	return []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}
}

// EngineOptions translates the cache and verification settings for
// otp.NewEngine.
func (c Config) EngineOptions() ([]otp.Option, error) {
	opts := []otp.Option{otp.WithCacheTTL(c.CacheTTL)}
	if c.CacheDisabled {
		opts[0] = otp.WithoutCache()
	}

	if c.VerifyMaxAttempts > 0 {
		limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
			Capacity:       c.VerifyMaxAttempts,
			RefillRate:     1,
			RefillInterval: c.VerifyRefill,
		})
		if err != nil {
			return nil, errors.Join(ErrInvalidValue, err)
		}
		opts = append(opts, otp.WithAttemptLimiter(limiter))
	}
	return opts, nil
}

// Vault translates the envelope defaults for vault.New.
func (c Config) Vault() vault.Config {
	return vault.Config{
		Algorithm:   backend.Cipher(c.Cipher),
		KDF:         backend.KDF(c.KDF),
		Iterations:  c.Iterations,
		MemoryKB:    c.MemoryKB,
		Parallelism: c.Parallelism,
		SaltLength:  c.SaltLength,
	}
}
