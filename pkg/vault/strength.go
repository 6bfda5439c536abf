package vault

import "unicode"

// Score bounds of PasswordStrength.
const (
	MaxStrengthScore = 6
	StrongScore      = 4
)

// Strength is an advisory password assessment.
type Strength struct {
	Score       int      `json:"score"`
	Strong      bool     `json:"strong"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// PasswordStrength scores pw one point each for: at least 8 characters,
// at least 12 characters, a lowercase letter, an uppercase letter, a digit
// and a symbol.
func PasswordStrength(pw string) Strength {
	var lower, upper, digit, symbol bool
	n := 0
	for _, r := range pw {
		n++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r) && !unicode.IsLetter(r):
			symbol = true
		}
	}

	var s Strength
	check := func(ok bool, hint string) {
		if ok {
			s.Score++
			return
		}
		s.Suggestions = append(s.Suggestions, hint)
	}
	check(n >= 8, "use at least 8 characters")
	check(n >= 12, "use 12 or more characters")
	check(lower, "add lowercase letters")
	check(upper, "add uppercase letters")
	check(digit, "add digits")
	check(symbol, "add symbols")

	s.Strong = s.Score >= StrongScore
	return s
}
