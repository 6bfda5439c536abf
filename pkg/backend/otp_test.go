package backend_test

import (
	"crypto/md5"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

func b32(s string) string {
	return base32.StdEncoding.EncodeToString([]byte(s))
}

func TestNative_GenerateHOTP_RFC4226(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	secret := b32("12345678901234567890")

	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}
	for counter, code := range want {
		got, err := n.GenerateHOTP(secret, uint64(counter), 6, backend.SHA1)
		require.NoError(t, err)
		assert.Equal(t, code, got, "counter %d", counter)
	}
}

func TestNative_GenerateTOTP_RFC6238(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	secrets := map[backend.Algorithm]string{
		backend.SHA1:   b32("12345678901234567890"),
		backend.SHA256: b32("12345678901234567890123456789012"),
		backend.SHA512: b32("1234567890123456789012345678901234567890123456789012345678901234"),
	}

	tests := []struct {
		unix int64
		alg  backend.Algorithm
		want string
	}{
		{59, backend.SHA1, "94287082"},
		{59, backend.SHA256, "46119246"},
		{59, backend.SHA512, "90693936"},
		{1111111109, backend.SHA1, "07081804"},
		{1111111109, backend.SHA256, "68084774"},
		{1111111109, backend.SHA512, "25091201"},
		{1111111111, backend.SHA1, "14050471"},
		{1234567890, backend.SHA1, "89005924"},
		{1234567890, backend.SHA256, "91819424"},
		{2000000000, backend.SHA1, "69279037"},
		{2000000000, backend.SHA512, "38618901"},
		{20000000000, backend.SHA1, "65353130"},
		{20000000000, backend.SHA256, "77737706"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.alg, tt.unix), func(t *testing.T) {
			t.Parallel()
			got, err := n.GenerateTOTP(secrets[tt.alg], uint64(tt.unix/30), 8, tt.alg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNative_GenerateHOTP_Errors(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	_, err := n.GenerateHOTP("", 0, 6, backend.SHA1)
	assert.ErrorIs(t, err, backend.ErrInvalidSecret)

	_, err = n.GenerateHOTP(b32("12345678901234567890"), 0, 6, "MD4")
	assert.ErrorIs(t, err, backend.ErrUnsupportedAlgorithm)
}

func TestNative_GenerateHOTP_LowerCaseUnpadded(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	upper := b32("12345678901234567890")

	want, err := n.GenerateHOTP(upper, 1, 6, backend.SHA1)
	require.NoError(t, err)
	got, err := n.GenerateHOTP(strings.ToLower(upper), 1, 6, backend.SHA1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNative_GenerateSteamGuard(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	secret := b32("12345678901234567890")
	const alphabet = "23456789BCDFGHJKMNPQRTVWXY"

	code, err := n.GenerateSteamGuard(secret, 12345)
	require.NoError(t, err)
	require.Len(t, code, 5)
	for _, r := range code {
		assert.Contains(t, alphabet, string(r))
	}

	again, err := n.GenerateSteamGuard(secret, 12345)
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestNative_GenerateMOTP(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	sum := md5.Sum([]byte("1234567" + "0123456789abcdef" + "1234"))
	want := hex.EncodeToString(sum[:])[:6]

	got, err := n.GenerateMOTP("0123456789abcdef", "1234", 1234567)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	withPeriod, err := n.GenerateMOTPWithPeriod("0123456789abcdef", "1234", 12345675, 10)
	require.NoError(t, err)
	assert.Equal(t, want, withPeriod)

	_, err = n.GenerateMOTP("  ", "1234", 1)
	assert.ErrorIs(t, err, backend.ErrInvalidSecret)

	_, err = n.GenerateMOTPWithPeriod("abc", "1", 10, 0)
	assert.ErrorIs(t, err, backend.ErrInvalidKeyParams)
}

func TestNative_Base32(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	enc := n.Base32Encode([]byte("hello"))
	assert.Equal(t, "NBSWY3DP", enc)

	dec, err := n.Base32Decode("nbsw y3dp")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), dec)

	assert.True(t, n.ValidateSecret("JBSWY3DPEHPK3PXP"))
	assert.False(t, n.ValidateSecret(""))
	assert.False(t, n.ValidateSecret("ABC"))
}

func TestUnavailable(t *testing.T) {
	t.Parallel()
	var u backend.Unavailable

	_, err := u.GenerateTOTP("JBSWY3DPEHPK3PXP", 1, 6, backend.SHA1)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	_, err = u.GenerateSteamGuard("JBSWY3DPEHPK3PXP", 1)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.False(t, u.ValidateSecret("JBSWY3DPEHPK3PXP"))
}
