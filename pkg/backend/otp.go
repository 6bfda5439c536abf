package backend

import (
	"crypto/md5"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/dmitrymomot/otpkit/pkg/secret"
)

// GenerateTOTP derives a time-step code. The caller computes the slot.
func (n *Native) GenerateTOTP(secret string, timeSlot uint64, digits int, alg Algorithm) (string, error) {
	return n.GenerateHOTP(secret, timeSlot, digits, alg)
}

// GenerateHOTP implements RFC 4226 for SHA1, SHA256 and SHA512.
func (n *Native) GenerateHOTP(secret string, counter uint64, digits int, alg Algorithm) (string, error) {
	a, err := otpAlgorithm(alg)
	if err != nil {
		return "", err
	}
	key, err := canonical(secret)
	if err != nil {
		return "", err
	}
	code, err := hotp.GenerateCodeCustom(key, counter, hotp.ValidateOpts{
		Digits:    otp.Digits(digits),
		Algorithm: a,
	})
	if err != nil {
		return "", errors.Join(ErrInvalidSecret, err)
	}
	return code, nil
}

// GenerateSteamGuard derives a 5 character Steam Guard code from a
// 30 second slot using the Steam alphabet.
func (n *Native) GenerateSteamGuard(secret string, timeSlot uint64) (string, error) {
	key, err := canonical(secret)
	if err != nil {
		return "", err
	}
	code, err := hotp.GenerateCodeCustom(key, timeSlot, hotp.ValidateOpts{
		Digits:    otp.Digits(SteamDigits),
		Algorithm: otp.AlgorithmSHA1,
		Encoder:   otp.EncoderSteam,
	})
	if err != nil {
		return "", errors.Join(ErrInvalidSecret, err)
	}
	return code, nil
}

// GenerateMOTP derives a Mobile-OTP code: the first six hex digits of
// MD5(slot || secret || pin). mOTP init-secrets are used verbatim.
func (n *Native) GenerateMOTP(secret, pin string, timeSlot uint64) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", ErrInvalidSecret
	}
	sum := md5.Sum([]byte(fmt.Sprintf("%d%s%s", timeSlot, secret, pin)))
	return hex.EncodeToString(sum[:])[:MOTPDigits], nil
}

// GenerateMOTPWithPeriod computes the slot from a unix timestamp and period.
func (n *Native) GenerateMOTPWithPeriod(secret, pin string, unix int64, period int) (string, error) {
	if period <= 0 || unix < 0 {
		return "", ErrInvalidKeyParams
	}
	return n.GenerateMOTP(secret, pin, uint64(unix/int64(period)))
}

// ValidateSecret reports whether s decodes as Base32 after normalization.
func (n *Native) ValidateSecret(s string) bool {
	_, err := n.Base32Decode(s)
	return err == nil
}

func (n *Native) Base32Decode(s string) ([]byte, error) {
	key, err := canonical(s)
	if err != nil {
		return nil, err
	}
	b, err := base32.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	if len(b) == 0 {
		return nil, ErrInvalidSecret
	}
	return b, nil
}

func (n *Native) Base32Encode(data []byte) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(data)
}

func canonical(raw string) (string, error) {
	s, ok := secret.Normalize(raw)
	if !ok {
		return "", ErrInvalidSecret
	}
	return s.String(), nil
}

func otpAlgorithm(alg Algorithm) (otp.Algorithm, error) {
	switch alg {
	case SHA1, "":
		return otp.AlgorithmSHA1, nil
	case SHA256:
		return otp.AlgorithmSHA256, nil
	case SHA512:
		return otp.AlgorithmSHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}
