// Package config loads otpkit settings from the environment.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// an optional `.env` file is read on first use, then env-tagged structs are
// parsed and cached per type, so repeated calls do not re-parse.
//
// # Runtime configuration
//
// Config describes the settings every otpkit binary understands, all under
// the OTPKIT_ prefix:
//
//	OTPKIT_LOG_LEVEL            debug, info, warn, error (default info)
//	OTPKIT_LOG_FORMAT           text or json (default text)
//	OTPKIT_CACHE_TTL            code reuse window (default 5s)
//	OTPKIT_CACHE_DISABLED       turn the code cache off
//	OTPKIT_VERIFY_WINDOW        accepted slot skew for verification (default 1)
//	OTPKIT_VERIFY_MAX_ATTEMPTS  verification budget per credential, 0 to disable (default 5)
//	OTPKIT_VERIFY_REFILL        one attempt returns after this long (default 30s)
//	OTPKIT_VAULT_CIPHER         aes-256-gcm, chacha20-poly1305, xchacha20-poly1305
//	OTPKIT_VAULT_KDF            pbkdf2-sha256, pbkdf2-sha512, argon2id, scrypt
//	OTPKIT_VAULT_ITERATIONS     KDF cost, zero for the KDF default
//	OTPKIT_VAULT_MEMORY_KB      argon2id memory
//	OTPKIT_VAULT_PARALLELISM    argon2id threads or scrypt p
//	OTPKIT_VAULT_SALT_LENGTH    salt bytes (default 16)
//	OTPKIT_METRICS_ADDR         Prometheus listen address, empty to disable
//
// Usage:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	l := logger.New(cfg.LoggerOptions()...)
//	opts, err := cfg.EngineOptions()
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine := otp.NewEngine(append(opts, otp.WithLogger(l))...)
//	v := vault.New(cfg.Vault(), vault.WithLogger(l))
//
// # Custom structs
//
// Load works with any env-tagged struct:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var srv ServerConfig
//	config.MustLoad(&srv)
//
// LoadEnv reads explicit .env files, later files overriding earlier ones.
// ForceReloadConfig and ResetCache drop cached values, mainly for tests.
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrInvalidValue: a Config setting is unknown or out of range.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: Load was given a nil pointer.
//   - ErrConfigNotLoaded: the value was not found in the cache.
package config
