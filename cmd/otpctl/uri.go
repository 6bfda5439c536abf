package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/otp"
	"github.com/dmitrymomot/otpkit/pkg/secret"
)

func newURICmd(_ *app) *cobra.Command {
	var (
		typ       string
		issuer    string
		account   string
		sec       string
		algorithm string
		digits    int
		period    int
		counter   uint64
		qrFile    string
		qrSize    int
	)

	cmd := &cobra.Command{
		Use:   "uri",
		Short: "Build an otpauth URI for a new credential",
		Long: `Builds an otpauth URI from flags. A random secret is generated when --secret
is omitted. Use --qr to also write the URI as a PNG QR code for
authenticator apps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := otp.ParseType(typ)
			if err != nil {
				return err
			}
			if sec == "" {
				s, err := secret.Generate(secret.DefaultSize)
				if err != nil {
					return err
				}
				sec = s.Unpadded()
			}

			c := otp.Credential{
				Name:      account,
				Issuer:    issuer,
				Secret:    sec,
				Type:      t,
				Algorithm: backend.Algorithm(algorithm),
				Digits:    digits,
				Period:    period,
				Counter:   counter,
			}
			uri, err := c.URI()
			if err != nil {
				return err
			}

			if qrFile != "" {
				png, err := c.QRCode(qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrFile, png, 0o600); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(otp.TimeBased), "credential type: totp, hotp, motp, steam")
	cmd.Flags().StringVar(&issuer, "issuer", "", "issuer shown by authenticator apps")
	cmd.Flags().StringVar(&account, "account", "", "account name (required)")
	cmd.Flags().StringVar(&sec, "secret", "", "Base32 secret (random when empty)")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(otp.DefaultAlgorithm), "HMAC algorithm: SHA1, SHA256, SHA512")
	cmd.Flags().IntVar(&digits, "digits", otp.DefaultDigits, "code length")
	cmd.Flags().IntVar(&period, "period", 0, "window in seconds (type default when zero)")
	cmd.Flags().Uint64Var(&counter, "counter", 0, "initial HOTP counter")
	cmd.Flags().StringVar(&qrFile, "qr", "", "also write a PNG QR code to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", otp.DefaultQRSize, "QR code size in pixels")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newSecretCmd(_ *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random Base32 secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := secret.Generate(size)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Unpadded())
			return err
		},
	}

	cmd.Flags().IntVar(&size, "size", secret.DefaultSize, "secret size in bytes")
	return cmd
}
