package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/metrics"
	"github.com/dmitrymomot/otpkit/pkg/otp"
)

var errInvalidCode = errors.New("code is not valid")

type credentialFlags struct {
	pin     string
	pinEnv  string
	counter int64
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pin, "pin", "", "mOTP PIN")
	cmd.Flags().StringVar(&f.pinEnv, "pin-env", "", "read the mOTP PIN from this environment variable")
	cmd.Flags().Int64Var(&f.counter, "counter", -1, "override the HOTP counter")
}

func (f *credentialFlags) credential(a *app, uri string) (otp.Credential, error) {
	c, err := otp.ParseURI(uri)
	if err != nil {
		return otp.Credential{}, err
	}
	if f.counter >= 0 {
		c.Counter = uint64(f.counter)
	}
	if c.Type == otp.MobileOTP {
		switch {
		case f.pin != "":
			c.PIN = f.pin
		case f.pinEnv != "":
			pin, err := a.prompt.password("", f.pinEnv)
			if err != nil {
				return otp.Credential{}, err
			}
			c.PIN = pin
		}
	}
	return c, nil
}

func newCodeCmd(a *app) *cobra.Command {
	var (
		cf           credentialFlags
		watch        bool
		asJSON       bool
		serveMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "code <uri>",
		Short: "Print the current code for an otpauth URI",
		Long: `Prints the current one-time code and the seconds remaining in its window.
Codes that could not be derived from the secret are marked degraded and will
not be accepted by the issuing service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.credential(a, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !watch {
				return printCode(out, c, a.engine.Generate(c), asJSON)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if serveMetrics && a.cfg.MetricsAddr != "" {
				srv := metrics.NewServer(a.registry,
					metrics.WithAddr(a.cfg.MetricsAddr),
					metrics.WithLogger(a.log))
				go func() {
					if err := srv.Run(ctx); err != nil {
						a.log.Error("metrics server failed", logger.Error(err))
					}
				}()
			}
			return watchCode(ctx, out, a.engine, c, asJSON)
		},
	}

	cf.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep printing codes until interrupted")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&serveMetrics, "metrics", true, "serve Prometheus metrics on OTPKIT_METRICS_ADDR while watching")
	return cmd
}

func watchCode(ctx context.Context, w io.Writer, e *otp.Engine, c otp.Credential, asJSON bool) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	last := ""
	for {
		code := e.Generate(c)
		if code.Code != last || c.Type == otp.CounterBased {
			if err := printCode(w, c, code, asJSON); err != nil {
				return err
			}
			last = code.Code
		}
		if c.Type == otp.CounterBased {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

type codeOutput struct {
	Type          string `json:"type"`
	Code          string `json:"code"`
	TimeRemaining int    `json:"time_remaining"`
	Period        int    `json:"period"`
	Degraded      bool   `json:"degraded,omitempty"`
}

func printCode(w io.Writer, c otp.Credential, code otp.GeneratedCode, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(codeOutput{
			Type:          string(c.Type),
			Code:          code.Code,
			TimeRemaining: code.TimeRemaining,
			Period:        code.Period,
			Degraded:      code.Degraded,
		})
	}

	line := fmt.Sprintf("%s  (%ds)", code.Code, code.TimeRemaining)
	if c.Type == otp.CounterBased {
		line = fmt.Sprintf("%s  (counter %d)", code.Code, c.Counter)
	}
	if code.Degraded {
		line += "  [degraded]"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		cf     credentialFlags
		window int
	)

	cmd := &cobra.Command{
		Use:   "verify <uri> <code>",
		Short: "Check a code against an otpauth URI",
		Long: `Checks a code against the current window and up to --window windows on
either side (look-ahead only for HOTP). Exits non-zero when the code is not valid.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.credential(a, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("window") {
				window = a.cfg.VerifyWindow
			}
			ok, err := a.engine.VerifyAttempt(c, args[1], window)
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidCode
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}

	cf.register(cmd)
	cmd.Flags().IntVar(&window, "window", 1, "accepted window skew (default OTPKIT_VERIFY_WINDOW)")
	return cmd
}
