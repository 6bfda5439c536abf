package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/config"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/metrics"
	"github.com/dmitrymomot/otpkit/pkg/otp"
	"github.com/dmitrymomot/otpkit/pkg/vault"
)

// app holds the services shared by every subcommand. It is populated in
// the root PersistentPreRunE.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	engine   *otp.Engine
	vault    *vault.Vault
	prompt   *prompter
}

type appOption func(*app)

func newRootCmd(opts ...appOption) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}
	var (
		logLevel string
		envFile  string
	)

	cmd := &cobra.Command{
		Use:   "otpctl",
		Short: "Generate one-time codes and manage encrypted secrets",
		Long: `otpctl generates TOTP, HOTP, mOTP and Steam Guard codes from otpauth URIs,
builds URIs and QR codes for new credentials, and seals secrets in
password-encrypted envelopes.

Settings are read from OTPKIT_* environment variables and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := config.LoadEnv(envFile); err != nil {
					return err
				}
				config.ResetCache()
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return a.setup(cmd, cfg)
		},
	}
	cmd.Version = version

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load settings from this .env file")

	cmd.AddCommand(
		newCodeCmd(a),
		newVerifyCmd(a),
		newURICmd(a),
		newSecretCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
		newPasswordCmd(a),
		newStrengthCmd(a),
		newRecoveryCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, cfg config.Config) error {
	a.cfg = cfg
	a.log = logger.New(append(cfg.LoggerOptions(),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithAttr(logger.Command(cmd.Name())),
	)...)

	a.registry = prometheus.NewRegistry()
	obs, err := metrics.NewObserver(a.registry)
	if err != nil {
		return err
	}

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	a.engine = otp.NewEngine(append(engineOpts,
		otp.WithLogger(a.log),
		otp.WithObserver(obs),
	)...)
	a.vault = vault.New(cfg.Vault(), vault.WithLogger(a.log))
	if a.prompt == nil {
		a.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	return nil
}
