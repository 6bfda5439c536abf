package vault

import (
	"errors"
	"strings"
)

const (
	DefaultPasswordLength = 20
	MinPasswordLength     = 4
	MaxPasswordLength     = 1024

	charsLower   = "abcdefghijklmnopqrstuvwxyz"
	charsUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsDigits  = "0123456789"
	charsSymbols = "!@#$%^&*()-_=+[]{};:,.?/"
	ambiguous    = "0O1lI|"
)

// PasswordOptions selects the character classes of a generated password.
type PasswordOptions struct {
	Lower            bool
	Upper            bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// DefaultPasswordOptions enables every class.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{Lower: true, Upper: true, Digits: true, Symbols: true}
}

func (o PasswordOptions) classes() []string {
	var out []string
	add := func(enabled bool, set string) {
		if !enabled {
			return
		}
		if o.ExcludeAmbiguous {
			set = strings.Map(func(r rune) rune {
				if strings.ContainsRune(ambiguous, r) {
					return -1
				}
				return r
			}, set)
		}
		out = append(out, set)
	}
	add(o.Lower, charsLower)
	add(o.Upper, charsUpper)
	add(o.Digits, charsDigits)
	add(o.Symbols, charsSymbols)
	return out
}

// GeneratePassword returns a random password containing at least one
// character from every enabled class.
func (v *Vault) GeneratePassword(length int, opts PasswordOptions) (string, error) {
	if length < MinPasswordLength || length > MaxPasswordLength {
		return "", ErrInvalidPasswordLength
	}
	classes := opts.classes()
	if len(classes) == 0 {
		return "", ErrNoCharacterClass
	}

	all := strings.Join(classes, "")
	out := make([]byte, length)
	for i := range out {
		set := all
		if i < len(classes) {
			set = classes[i]
		}
		n, err := v.backend.RandomInt(0, len(set))
		if err != nil {
			return "", errors.Join(ErrRandomFailed, err)
		}
		out[i] = set[n]
	}

	// Fisher-Yates so the guaranteed characters are not always first.
	for i := len(out) - 1; i > 0; i-- {
		j, err := v.backend.RandomInt(0, i+1)
		if err != nil {
			return "", errors.Join(ErrRandomFailed, err)
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
