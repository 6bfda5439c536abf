package otp

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpkit/pkg/secret"
)

const (
	schemeOTPAuth = "otpauth"
	schemeSteam   = "steam"
)

// ParseURI reads an otpauth:// URI (totp, hotp, motp or steam) or the
// steam://SECRET shorthand. The label may be "issuer:account"; an issuer
// query parameter takes precedence over the label prefix. Digits default
// to 6, period to 30 (10 for motp); steam always uses period 30 and 5
// characters. The returned credential gets a fresh random ID.
func ParseURI(raw string) (Credential, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(raw), schemeSteam+"://") {
		return parseSteamShorthand(raw[len(schemeSteam+"://"):])
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Credential{}, errors.Join(ErrInvalidURI, err)
	}
	if !strings.EqualFold(u.Scheme, schemeOTPAuth) {
		return Credential{}, fmt.Errorf("%w: scheme %q", ErrInvalidURI, u.Scheme)
	}

	typ, err := ParseType(u.Host)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %q", err, u.Host)
	}

	q := u.Query()
	if strings.EqualFold(q.Get("encoder"), schemeSteam) {
		typ = SteamGuard
	}

	c := Credential{ID: uuid.NewString(), Type: typ}
	c.Issuer, c.Name = splitLabel(strings.TrimPrefix(u.Path, "/"))
	if issuer := strings.TrimSpace(q.Get("issuer")); issuer != "" {
		c.Issuer = issuer
	}

	c.Secret = strings.TrimSpace(q.Get("secret"))
	if c.Secret == "" {
		return Credential{}, ErrMissingSecret
	}
	if typ != MobileOTP && !secret.Valid(c.Secret) {
		return Credential{}, ErrInvalidSecret
	}

	if alg := q.Get("algorithm"); alg != "" {
		switch a := Algorithm(strings.ToUpper(alg)); a {
		case SHA1, SHA256, SHA512:
			c.Algorithm = a
		default:
			return Credential{}, fmt.Errorf("%w: algorithm %q", ErrInvalidParameter, alg)
		}
	} else {
		c.Algorithm = DefaultAlgorithm
	}

	c.Digits = DefaultDigits
	if v := q.Get("digits"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < MinDigits || d > MaxDigits {
			return Credential{}, fmt.Errorf("%w: digits %q", ErrInvalidParameter, v)
		}
		c.Digits = d
	}

	c.Period = DefaultPeriod
	if typ == MobileOTP {
		c.Period = DefaultMOTPPeriod
	}
	if v := q.Get("period"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return Credential{}, fmt.Errorf("%w: period %q", ErrInvalidParameter, v)
		}
		c.Period = p
	}

	if v := q.Get("counter"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Credential{}, fmt.Errorf("%w: counter %q", ErrInvalidParameter, v)
		}
		c.Counter = n
	}

	c.PIN = q.Get("pin")

	if typ == SteamGuard {
		c.Period = SteamPeriod
		c.Digits = SteamDigits
		c.Algorithm = SHA1
	}

	return c, nil
}

func parseSteamShorthand(s string) (Credential, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Credential{}, ErrMissingSecret
	}
	if !secret.Valid(s) {
		return Credential{}, ErrInvalidSecret
	}
	return Credential{
		ID:        uuid.NewString(),
		Type:      SteamGuard,
		Secret:    s,
		Algorithm: SHA1,
		Digits:    SteamDigits,
		Period:    SteamPeriod,
	}, nil
}

func splitLabel(label string) (issuer, account string) {
	if i := strings.Index(label, ":"); i >= 0 {
		return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i+1:])
	}
	return "", strings.TrimSpace(label)
}

// URI renders c in the Key Uri Format understood by authenticator apps:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
// The mOTP PIN is never written.
func (c Credential) URI() (string, error) {
	if !c.Type.Valid() {
		return "", ErrUnsupportedType
	}
	if strings.TrimSpace(c.Secret) == "" {
		return "", ErrMissingSecret
	}
	if c.Name == "" {
		return "", ErrMissingAccountName
	}

	sec := strings.TrimSpace(c.Secret)
	if c.Type != MobileOTP {
		s, ok := secret.Normalize(sec)
		if !ok {
			return "", ErrInvalidSecret
		}
		sec = s.Unpadded()
	}

	label := url.PathEscape(c.Name)
	if c.Issuer != "" {
		label = url.PathEscape(c.Issuer) + ":" + label
	}

	query := url.Values{}
	query.Set("secret", sec)
	if c.Issuer != "" {
		query.Set("issuer", c.Issuer)
	}

	switch c.Type {
	case TimeBased:
		query.Set("algorithm", string(c.EffectiveAlgorithm()))
		query.Set("digits", strconv.Itoa(c.EffectiveDigits()))
		query.Set("period", strconv.Itoa(c.EffectivePeriod()))
	case CounterBased:
		query.Set("algorithm", string(c.EffectiveAlgorithm()))
		query.Set("digits", strconv.Itoa(c.EffectiveDigits()))
		query.Set("counter", strconv.FormatUint(c.Counter, 10))
	case MobileOTP:
		query.Set("period", strconv.Itoa(c.EffectivePeriod()))
	case SteamGuard:
	}

	return fmt.Sprintf("otpauth://%s/%s?%s", c.Type, label, query.Encode()), nil
}
