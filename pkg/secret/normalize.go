package secret

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// blockSize is the Base32 quantum: 8 symbols encode 5 bytes.
const blockSize = 8

// Normalized is Base32 text that passed Normalize.
type Normalized string

func (n Normalized) String() string { return string(n) }

// Unpadded returns the secret without trailing '=' padding.
func (n Normalized) Unpadded() string {
	return strings.TrimRight(string(n), "=")
}

// Normalize folds compatibility characters (NFKC, so full-width letters and
// digits become ASCII), strips whitespace, upper-cases, drops every
// character outside [A-Z2-7=] and right-pads the result with '=' to a
// multiple of 8. It reports false when nothing usable is left.
func Normalize(raw string) (Normalized, bool) {
	raw = norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(raw) + blockSize)

	symbols := 0
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		r = unicode.ToUpper(r)
		switch {
		case r >= 'A' && r <= 'Z', r >= '2' && r <= '7':
			symbols++
			b.WriteRune(r)
		case r == '=':
			b.WriteRune(r)
		}
	}

	if symbols == 0 {
		return "", false
	}

	if rem := b.Len() % blockSize; rem != 0 {
		b.WriteString(strings.Repeat("=", blockSize-rem))
	}

	return Normalized(b.String()), true
}

// Valid reports whether raw normalizes to a usable secret.
func Valid(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}
