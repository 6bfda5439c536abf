package otp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/otpkit/pkg/otp"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"123456":   "123 456",
		"AB23C":    "AB23C",
		"12345678": "12345678",
		"1234":     "1234",
		"":         "",
		"a1b2c3":   "a1b 2c3",
	}
	for in, want := range tests {
		assert.Equal(t, want, otp.Format(in), in)
	}
}
