// Package fallback produces deterministic placeholder codes when a real
// one-time code cannot be derived.
//
// The output keeps an authenticator screen populated and stable while the
// primitive backend is unavailable or a secret is unusable. It is NOT a
// one-time password: the hash is a plain 31-multiplier string hash with no
// cryptographic strength and must never be used to protect anything.
package fallback

import (
	"strconv"
	"strings"
)

// SteamAlphabet is the 26 symbol set used by Steam Guard codes.
const SteamAlphabet = "23456789BCDFGHJKMNPQRTVWXY"

const (
	codeDigits = 6
	steamChars = 5
	modulus    = 1_000_000
)

// Seed picks the fallback seed: the secret when it has any non-space
// content, otherwise the stable credential identity.
func Seed(secret, identity string) string {
	if strings.TrimSpace(secret) != "" {
		return secret
	}
	return identity
}

// Code returns a 6 digit placeholder for seed and slot.
func Code(seed string, slot uint64) string {
	v := uint64(hash(seed, slot)) % modulus
	s := strconv.FormatUint(v, 10)
	if len(s) < codeDigits {
		s = strings.Repeat("0", codeDigits-len(s)) + s
	}
	return s
}

// SteamCode returns a 5 character placeholder drawn from SteamAlphabet.
func SteamCode(seed string, slot uint64) string {
	v := hash(seed, slot)
	out := make([]byte, steamChars)
	for i := range out {
		out[i] = SteamAlphabet[v%uint32(len(SteamAlphabet))]
		v /= uint32(len(SteamAlphabet))
	}
	return string(out)
}

// hash folds "seed:slot" through h = 31*h + c with int32 wraparound and
// returns the absolute value.
func hash(seed string, slot uint64) uint32 {
	var h int32
	for _, c := range seed + ":" + strconv.FormatUint(slot, 10) {
		h = 31*h + int32(c)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}
