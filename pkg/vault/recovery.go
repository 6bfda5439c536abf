package vault

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

// GenerateRecoveryCodes creates one-time backup codes for account recovery.
// Each code carries 64 bits of entropy formatted as XXXX-XXXX-XXXX-XXXX.
func (v *Vault) GenerateRecoveryCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidRecoveryCodeCount
	}

	codes := make([]string, count)
	for i := range count {
		b, err := v.backend.RandomBytes(8)
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		raw := strings.ToUpper(hex.EncodeToString(b))
		codes[i] = raw[0:4] + "-" + raw[4:8] + "-" + raw[8:12] + "-" + raw[12:16]
	}
	return codes, nil
}

func canonicalRecoveryCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(code)))
}

// HashRecoveryCode returns the hex SHA-256 of the canonical code for
// storage. Dashes, spaces and case are ignored.
func (v *Vault) HashRecoveryCode(code string) string {
	sum, err := v.backend.Hash([]byte(canonicalRecoveryCode(code)), backend.SHA256)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(sum)
}

// VerifyRecoveryCode compares code against a stored hash in constant time.
func (v *Vault) VerifyRecoveryCode(code, hashed string) bool {
	computed := v.HashRecoveryCode(code)
	if computed == "" {
		return false
	}
	return v.backend.SecureCompare([]byte(computed), []byte(strings.ToLower(hashed)))
}
