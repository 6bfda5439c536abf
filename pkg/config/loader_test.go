package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"OTPKIT_TEST_DEFAULT_NAME" envDefault:"otpkit"`
	Workers int    `env:"OTPKIT_TEST_DEFAULT_WORKERS" envDefault:"4"`
	Enabled bool   `env:"OTPKIT_TEST_DEFAULT_ENABLED" envDefault:"true"`
}

type overrideConfig struct {
	Name    string `env:"OTPKIT_TEST_OVERRIDE_NAME" envDefault:"otpkit"`
	Workers int    `env:"OTPKIT_TEST_OVERRIDE_WORKERS" envDefault:"4"`
}

type cachedConfig struct {
	Value string `env:"OTPKIT_TEST_CACHED"`
}

type requiredConfig struct {
	Value string `env:"OTPKIT_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Value string   `env:"OTPKIT_TEST_FILE_VALUE"`
	Only  string   `env:"OTPKIT_TEST_FILE_ONLY"`
	List  []string `env:"OTPKIT_TEST_FILE_LIST" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "otpkit", cfg.Name)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("OTPKIT_TEST_OVERRIDE_NAME", "custom")
	t.Setenv("OTPKIT_TEST_OVERRIDE_WORKERS", "16")

	var cfg overrideConfig
	require.NoError(t, config.ForceReloadConfig(&cfg))

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 16, cfg.Workers)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("OTPKIT_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.ForceReloadConfig(&first))

	t.Setenv("OTPKIT_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	require.NoError(t, config.ForceReloadConfig(&second))
	assert.Equal(t, "second", second.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("OTPKIT_TEST_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })

	// A failed parse is not cached.
	t.Setenv("OTPKIT_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoadEnv_Files(t *testing.T) {
	t.Setenv("OTPKIT_TEST_FILE_VALUE", "")
	t.Setenv("OTPKIT_TEST_FILE_ONLY", "")
	t.Setenv("OTPKIT_TEST_FILE_LIST", "")

	require.NoError(t, config.LoadEnv("testdata/.env.base"))

	var cfg fileConfig
	require.NoError(t, config.ForceReloadConfig(&cfg))
	assert.Equal(t, "base", cfg.Value)
	assert.Equal(t, "quoted value", cfg.Only)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))
	require.NoError(t, config.ForceReloadConfig(&cfg))
	assert.Equal(t, "override", cfg.Value)
	assert.Equal(t, "quoted value", cfg.Only)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoadEnv("testdata/does-not-exist.env") })
	assert.NotPanics(t, func() { config.MustLoadEnv("testdata/.env.override") })
}
