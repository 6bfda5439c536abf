package otp

import (
	"strings"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

// Type is the closed set of one-time code families.
// Every switch over Type lists all four values.
type Type string

const (
	TimeBased    Type = "totp"
	CounterBased Type = "hotp"
	MobileOTP    Type = "motp"
	SteamGuard   Type = "steam"
)

// Types lists every supported family.
var Types = []Type{TimeBased, CounterBased, MobileOTP, SteamGuard}

// Valid reports whether t is one of the supported families.
func (t Type) Valid() bool {
	switch t {
	case TimeBased, CounterBased, MobileOTP, SteamGuard:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// ParseType accepts the otpauth host form (totp, hotp, motp, steam) in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnsupportedType
	}
	return t, nil
}

// Algorithm is the HMAC hash for TimeBased and CounterBased credentials.
type Algorithm = backend.Algorithm

const (
	SHA1   = backend.SHA1
	SHA256 = backend.SHA256
	SHA512 = backend.SHA512
)

const (
	DefaultDigits     = 6
	DefaultPeriod     = 30
	DefaultMOTPPeriod = 10
	SteamPeriod       = 30
	SteamDigits       = backend.SteamDigits
	MinDigits         = 4
	MaxDigits         = 8
	DefaultAlgorithm  = SHA1
)

// Credential is an externally owned one-time code account.
// Period drives TimeBased, MobileOTP and SteamGuard; Counter drives
// CounterBased. Algorithm and Digits are ignored by SteamGuard and MobileOTP.
type Credential struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
	Secret    string    `json:"secret"`
	Type      Type      `json:"type"`
	Algorithm Algorithm `json:"algorithm,omitempty"`
	Digits    int       `json:"digits,omitempty"`
	Period    int       `json:"period,omitempty"`
	Counter   uint64    `json:"counter,omitempty"`
	PIN       string    `json:"pin,omitempty"`
}

// EffectiveDigits returns the code length the credential produces.
func (c Credential) EffectiveDigits() int {
	switch c.Type {
	case SteamGuard:
		return SteamDigits
	case MobileOTP:
		return backend.MOTPDigits
	case TimeBased, CounterBased:
	}
	switch {
	case c.Digits == 0:
		return DefaultDigits
	case c.Digits < MinDigits:
		return MinDigits
	case c.Digits > MaxDigits:
		return MaxDigits
	}
	return c.Digits
}

// EffectivePeriod returns the divisor used for the countdown.
func (c Credential) EffectivePeriod() int {
	switch c.Type {
	case SteamGuard:
		return SteamPeriod
	case MobileOTP:
		if c.Period <= 0 {
			return DefaultMOTPPeriod
		}
		return c.Period
	case TimeBased, CounterBased:
	}
	if c.Period <= 0 {
		return DefaultPeriod
	}
	return c.Period
}

// EffectiveAlgorithm returns the hash, defaulting to SHA1.
func (c Credential) EffectiveAlgorithm() Algorithm {
	if c.Algorithm == "" {
		return DefaultAlgorithm
	}
	return Algorithm(strings.ToUpper(string(c.Algorithm)))
}

// identity is the stable fallback seed used when the secret is blank.
func (c Credential) identity() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Issuer + ":" + c.Name
	}
	return c.ID
}

// GeneratedCode is a display-ready code with its countdown.
type GeneratedCode struct {
	Code          string `json:"code"`
	TimeRemaining int    `json:"time_remaining"`
	Period        int    `json:"period"`
	// Degraded is set when the code came from the fallback generator.
	Degraded bool `json:"degraded,omitempty"`
}

// Reason explains why generation degraded to the fallback generator.
type Reason string

const (
	ReasonInvalidSecret      Reason = "invalid_secret"
	ReasonBackendUnavailable Reason = "backend_unavailable"
	ReasonEmptyBackendResult Reason = "empty_backend_result"
	ReasonMissingPIN         Reason = "missing_pin"
	ReasonUnknownType        Reason = "unknown_type"
)
