package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/otpkit/pkg/backend"
	"github.com/dmitrymomot/otpkit/pkg/vault"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var errUnknownFormat = errors.New("unknown output format, use json or yaml")

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func newEncryptCmd(a *app) *cobra.Command {
	var (
		in          string
		passwordEnv string
		format      string
		cipher      string
		kdf         string
		iterations  int
		aad         string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Seal a secret in a password-encrypted envelope",
		Long: `Reads plaintext from --in or stdin and prints a self-describing envelope.
The envelope records the cipher, KDF and its parameters, so it can be opened
later with only the password. Defaults come from OTPKIT_VAULT_* settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatYAML {
				return errUnknownFormat
			}
			plaintext, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			defer backend.Wipe(plaintext)
			plaintext = bytes.TrimRight(plaintext, "\r\n")

			pw, err := a.prompt.newPassword(passwordEnv)
			if err != nil {
				return err
			}

			var opts []vault.EncryptOption
			if cipher != "" {
				opts = append(opts, vault.WithAlgorithm(backend.Cipher(cipher)))
			}
			if kdf != "" {
				opts = append(opts, vault.WithKDF(backend.KDF(kdf)))
			}
			if iterations > 0 {
				opts = append(opts, vault.WithIterations(iterations))
			}
			if aad != "" {
				opts = append(opts, vault.WithAAD([]byte(aad)))
			}

			env, err := a.vault.EncryptWithPassword(plaintext, pw, opts...)
			if err != nil {
				return err
			}
			return writeEnvelope(cmd.OutOrStdout(), env, format)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "read plaintext from this file (stdin when empty)")
	cmd.Flags().StringVar(&passwordEnv, "password-env", "", "read the password from this environment variable")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&cipher, "cipher", "", "override the cipher")
	cmd.Flags().StringVar(&kdf, "kdf", "", "override the KDF")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "override the KDF cost")
	cmd.Flags().StringVar(&aad, "aad", "", "bind the envelope to this context string")
	return cmd
}

func writeEnvelope(w io.Writer, env *vault.Envelope, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}
}

// readEnvelope accepts JSON or YAML.
func readEnvelope(data []byte) (*vault.Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return vault.ParseEnvelope(trimmed)
	}
	var env vault.Envelope
	if err := yaml.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.Join(vault.ErrInvalidEnvelope, err)
	}
	return &env, nil
}

func newDecryptCmd(a *app) *cobra.Command {
	var (
		in          string
		passwordEnv string
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Open a password-encrypted envelope",
		Long: `Reads a JSON or YAML envelope from --in or stdin and prints the plaintext.
Only the parameters stored in the envelope are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			env, err := readEnvelope(data)
			if err != nil {
				return err
			}

			pw, err := a.prompt.password("Password", passwordEnv)
			if err != nil {
				return err
			}
			plaintext, err := a.vault.DecryptWithPassword(env, pw)
			if err != nil {
				return err
			}
			defer backend.Wipe(plaintext)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(plaintext))
			return err
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "read the envelope from this file (stdin when empty)")
	cmd.Flags().StringVar(&passwordEnv, "password-env", "", "read the password from this environment variable")
	return cmd
}

func newPasswordCmd(a *app) *cobra.Command {
	var (
		length       int
		noSymbols    bool
		noAmbiguous  bool
		digitsOnly   bool
		showStrength bool
	)

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := vault.DefaultPasswordOptions()
			opts.Symbols = !noSymbols
			opts.ExcludeAmbiguous = noAmbiguous
			if digitsOnly {
				opts = vault.PasswordOptions{Digits: true}
			}

			pw, err := a.vault.GeneratePassword(length, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, pw); err != nil {
				return err
			}
			if showStrength {
				return printStrength(cmd.ErrOrStderr(), vault.PasswordStrength(pw))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", vault.DefaultPasswordLength, "password length")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	cmd.Flags().BoolVar(&noAmbiguous, "no-ambiguous", false, "leave out look-alike characters such as 0, O, 1 and l")
	cmd.Flags().BoolVar(&digitsOnly, "digits-only", false, "digits only, for PINs")
	cmd.Flags().BoolVar(&showStrength, "strength", false, "also print the strength assessment to stderr")
	return cmd
}

func printStrength(w io.Writer, s vault.Strength) error {
	verdict := "weak"
	if s.Strong {
		verdict = "strong"
	}
	if _, err := fmt.Fprintf(w, "score %d/%d (%s)\n", s.Score, vault.MaxStrengthScore, verdict); err != nil {
		return err
	}
	for _, hint := range s.Suggestions {
		if _, err := fmt.Fprintf(w, "  - %s\n", hint); err != nil {
			return err
		}
	}
	return nil
}

func newStrengthCmd(a *app) *cobra.Command {
	var passwordEnv string

	cmd := &cobra.Command{
		Use:   "strength",
		Short: "Assess a password",
		Long: `Scores a password from 0 to 6: one point each for 8+ characters, 12+
characters, lowercase, uppercase, digits and symbols. Four or more is strong.
The password is read from --password-env, a terminal prompt, or one line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := a.prompt.password("Password", passwordEnv)
			if errors.Is(err, errNoPassword) {
				pw, err = a.prompt.line()
			}
			if err != nil {
				return err
			}
			if strings.TrimSpace(pw) == "" {
				return errNoPassword
			}
			return printStrength(cmd.OutOrStdout(), vault.PasswordStrength(pw))
		},
	}

	cmd.Flags().StringVar(&passwordEnv, "password-env", "", "read the password from this environment variable")
	return cmd
}

func newRecoveryCmd(a *app) *cobra.Command {
	var (
		count      int
		withHashes bool
	)

	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Generate one-time recovery codes",
		Long: `Prints recovery codes, one per line. With --hashes each code is followed by
the SHA-256 hash to store server-side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := a.vault.GenerateRecoveryCodes(count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, code := range codes {
				line := code
				if withHashes {
					line += "  " + a.vault.HashRecoveryCode(code)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of codes")
	cmd.Flags().BoolVar(&withHashes, "hashes", false, "print the storage hash next to each code")
	return cmd
}
