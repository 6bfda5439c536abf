package otp

import "strings"

// Format renders a raw code for display. Only codes of exactly six
// characters are split as "NNN NNN"; everything else passes through.
func Format(raw string) string {
	if len(raw) != 6 {
		return raw
	}
	return raw[:3] + " " + raw[3:]
}

// display applies the per-family casing rule before formatting.
func display(t Type, raw string) string {
	switch t {
	case MobileOTP:
		raw = strings.ToLower(raw)
	case SteamGuard:
		raw = strings.ToUpper(raw)
	case TimeBased, CounterBased:
	}
	return Format(raw)
}

// compact strips display separators from user input.
func compact(t Type, input string) string {
	input = strings.Join(strings.Fields(input), "")
	switch t {
	case MobileOTP:
		return strings.ToLower(input)
	case SteamGuard:
		return strings.ToUpper(input)
	case TimeBased, CounterBased:
	}
	return input
}
