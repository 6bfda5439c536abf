// Package otp is the code generation engine: it turns a Credential and the
// wall clock into a display-ready GeneratedCode for four families of
// one-time codes.
//
//   - TimeBased (RFC 6238): slot = floor(now / period), default period 30.
//   - CounterBased (RFC 4226): slot = the stored counter; the countdown is
//     reported as the period for display uniformity.
//   - MobileOTP: PIN-mixed MD5 codes, default period 10, lower-cased.
//   - SteamGuard: 5 characters from the Steam alphabet, period fixed at 30.
//
// # Architecture
//
// Engine.Generate reads the clock once, computes the slot, and consults a
// short-lived per-credential cache. On a miss the secret is normalized with
// pkg/secret and handed to a backend.OTP. When the secret is unusable, the
// backend fails or returns a blank string, the engine routes to pkg/fallback
// with the same slot so the placeholder rolls over at the real cadence. The
// result is therefore total: callers always get something to render.
//
// Only codes of exactly six characters are split as "123 456".
//
// The cache keeps a code for 5 seconds. A hit returns the same code string
// with the countdown recomputed against the current time; a slot change is
// always a miss so a stale code is never shown after a rollover.
//
// # Usage
//
//	engine := otp.NewEngine(otp.WithLogger(log))
//
//	c, err := otp.ParseURI("otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP")
//	if err != nil {
//	    // handle error
//	}
//	code := engine.Generate(c)
//	fmt.Println(code.Code, code.TimeRemaining)
//
// Enrollment helpers render credentials back to otpauth URIs (Credential.URI)
// and QR codes (Credential.QRCode).
//
// # Error Handling
//
// Generate never returns an error. URI parsing and rendering return
// sentinels such as ErrInvalidURI, ErrMissingSecret or ErrInvalidParameter.
package otp
