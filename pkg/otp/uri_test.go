package otp_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/otp"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want otp.Credential
	}{
		{
			name: "totp with defaults",
			uri:  "otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP",
			want: otp.Credential{Name: "alice", Issuer: "GitHub", Secret: "JBSWY3DPEHPK3PXP", Type: otp.TimeBased, Algorithm: otp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "issuer parameter wins",
			uri:  "otpauth://totp/Old%20Name:alice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme%20Corp",
			want: otp.Credential{Name: "alice@example.com", Issuer: "Acme Corp", Secret: "JBSWY3DPEHPK3PXP", Type: otp.TimeBased, Algorithm: otp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "label without issuer",
			uri:  "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme&algorithm=sha256&digits=8&period=60",
			want: otp.Credential{Name: "alice", Issuer: "Acme", Secret: "JBSWY3DPEHPK3PXP", Type: otp.TimeBased, Algorithm: otp.SHA256, Digits: 8, Period: 60},
		},
		{
			name: "hotp counter",
			uri:  "otpauth://HOTP/Acme:bob?secret=JBSWY3DPEHPK3PXP&counter=42&algorithm=SHA512",
			want: otp.Credential{Name: "bob", Issuer: "Acme", Secret: "JBSWY3DPEHPK3PXP", Type: otp.CounterBased, Algorithm: otp.SHA512, Digits: 6, Period: 30, Counter: 42},
		},
		{
			name: "steam forces period and digits",
			uri:  "otpauth://steam/Steam:gaben?secret=JBSWY3DPEHPK3PXP&period=60&digits=8",
			want: otp.Credential{Name: "gaben", Issuer: "Steam", Secret: "JBSWY3DPEHPK3PXP", Type: otp.SteamGuard, Algorithm: otp.SHA1, Digits: 5, Period: 30},
		},
		{
			name: "totp with steam encoder",
			uri:  "otpauth://totp/Steam:gaben?secret=JBSWY3DPEHPK3PXP&encoder=steam",
			want: otp.Credential{Name: "gaben", Issuer: "Steam", Secret: "JBSWY3DPEHPK3PXP", Type: otp.SteamGuard, Algorithm: otp.SHA1, Digits: 5, Period: 30},
		},
		{
			name: "steam shorthand",
			uri:  "steam://JBSWY3DPEHPK3PXP",
			want: otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Type: otp.SteamGuard, Algorithm: otp.SHA1, Digits: 5, Period: 30},
		},
		{
			name: "motp default period and pin",
			uri:  "otpauth://motp/Corp:carol?secret=0123456789abcdef&pin=1234",
			want: otp.Credential{Name: "carol", Issuer: "Corp", Secret: "0123456789abcdef", Type: otp.MobileOTP, Algorithm: otp.SHA1, Digits: 6, Period: 10, PIN: "1234"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := otp.ParseURI(tt.uri)
			require.NoError(t, err)

			_, err = uuid.Parse(got.ID)
			require.NoError(t, err)

			got.ID = ""
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURI_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want error
	}{
		{"wrong scheme", "https://totp/alice?secret=JBSWY3DPEHPK3PXP", otp.ErrInvalidURI},
		{"unparseable", "otpauth://totp/%zz?secret=A", otp.ErrInvalidURI},
		{"unknown type", "otpauth://yubi/alice?secret=JBSWY3DPEHPK3PXP", otp.ErrUnsupportedType},
		{"missing secret", "otpauth://totp/alice", otp.ErrMissingSecret},
		{"invalid secret", "otpauth://totp/alice?secret=!!!!", otp.ErrInvalidSecret},
		{"bad algorithm", "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&algorithm=MD5", otp.ErrInvalidParameter},
		{"bad digits", "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&digits=12", otp.ErrInvalidParameter},
		{"bad period", "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&period=-5", otp.ErrInvalidParameter},
		{"bad counter", "otpauth://hotp/alice?secret=JBSWY3DPEHPK3PXP&counter=x", otp.ErrInvalidParameter},
		{"empty steam shorthand", "steam://", otp.ErrMissingSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := otp.ParseURI(tt.uri)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCredential_URI(t *testing.T) {
	t.Parallel()

	t.Run("totp", func(t *testing.T) {
		t.Parallel()
		c := otp.Credential{Secret: "ABCDEFGHIJKLMNOP", Name: "test@example.com", Issuer: "TestApp", Type: otp.TimeBased}
		uri, err := c.URI()
		require.NoError(t, err)
		assert.Equal(t, "otpauth://totp/TestApp:test@example.com?algorithm=SHA1&digits=6&issuer=TestApp&period=30&secret=ABCDEFGHIJKLMNOP", uri)
	})

	t.Run("special characters", func(t *testing.T) {
		t.Parallel()
		c := otp.Credential{Secret: "abcd efgh ijkl mnop", Name: "test+user@example.com", Issuer: "Test & App", Type: otp.TimeBased}
		uri, err := c.URI()
		require.NoError(t, err)
		assert.Equal(t, "otpauth://totp/Test%20&%20App:test+user@example.com?algorithm=SHA1&digits=6&issuer=Test+%26+App&period=30&secret=ABCDEFGHIJKLMNOP", uri)
	})

	t.Run("hotp", func(t *testing.T) {
		t.Parallel()
		c := otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Name: "bob", Type: otp.CounterBased, Counter: 7, Digits: 8}
		uri, err := c.URI()
		require.NoError(t, err)
		assert.Equal(t, "otpauth://hotp/bob?algorithm=SHA1&counter=7&digits=8&secret=JBSWY3DPEHPK3PXP", uri)
	})

	t.Run("motp never writes pin", func(t *testing.T) {
		t.Parallel()
		c := otp.Credential{Secret: "0123456789abcdef", Name: "carol", Type: otp.MobileOTP, PIN: "1234"}
		uri, err := c.URI()
		require.NoError(t, err)
		assert.NotContains(t, uri, "pin")
		assert.Contains(t, uri, "secret=0123456789abcdef")
		assert.Contains(t, uri, "period=10")
	})

	t.Run("steam", func(t *testing.T) {
		t.Parallel()
		c := otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Name: "gaben", Issuer: "Steam", Type: otp.SteamGuard}
		uri, err := c.URI()
		require.NoError(t, err)
		assert.Equal(t, "otpauth://steam/Steam:gaben?issuer=Steam&secret=JBSWY3DPEHPK3PXP", uri)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		_, err := otp.Credential{Name: "a", Type: otp.TimeBased}.URI()
		assert.ErrorIs(t, err, otp.ErrMissingSecret)

		_, err = otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Type: otp.TimeBased}.URI()
		assert.ErrorIs(t, err, otp.ErrMissingAccountName)

		_, err = otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Name: "a", Type: "x"}.URI()
		assert.ErrorIs(t, err, otp.ErrUnsupportedType)

		_, err = otp.Credential{Secret: "!!", Name: "a", Type: otp.TimeBased}.URI()
		assert.ErrorIs(t, err, otp.ErrInvalidSecret)
	})
}

func TestURI_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, typ := range otp.Types {
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()
			in := otp.Credential{
				Name:      "alice@example.com",
				Issuer:    "Acme",
				Secret:    "JBSWY3DPEHPK3PXP",
				Type:      typ,
				Algorithm: otp.SHA1,
				Digits:    6,
				Period:    30,
			}
			switch typ {
			case otp.CounterBased:
				in.Counter = 5
			case otp.MobileOTP:
				in.Period = 10
			case otp.SteamGuard:
				in.Digits = 5
			case otp.TimeBased:
			}

			uri, err := in.URI()
			require.NoError(t, err)
			out, err := otp.ParseURI(uri)
			require.NoError(t, err)
			out.ID = ""
			assert.Equal(t, in, out)
		})
	}
}

func TestCredential_QRCode(t *testing.T) {
	t.Parallel()
	c := otp.Credential{Secret: "JBSWY3DPEHPK3PXP", Name: "alice", Issuer: "Acme", Type: otp.TimeBased}

	data, err := c.QRCode(128)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	uri, err := c.QRCodeDataURI(0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, otp.DefaultQRSize, img.Bounds().Dx())

	_, err = otp.Credential{Type: otp.TimeBased}.QRCode(128)
	assert.ErrorIs(t, err, otp.ErrMissingSecret)
}

func TestParseType(t *testing.T) {
	t.Parallel()
	typ, err := otp.ParseType(" TOTP ")
	require.NoError(t, err)
	assert.Equal(t, otp.TimeBased, typ)

	_, err = otp.ParseType("sms")
	assert.ErrorIs(t, err, otp.ErrUnsupportedType)
}

func TestCredential_Effective(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 6, otp.Credential{Type: otp.TimeBased}.EffectiveDigits())
	assert.Equal(t, 4, otp.Credential{Type: otp.TimeBased, Digits: 2}.EffectiveDigits())
	assert.Equal(t, 8, otp.Credential{Type: otp.TimeBased, Digits: 10}.EffectiveDigits())
	assert.Equal(t, 5, otp.Credential{Type: otp.SteamGuard, Digits: 8}.EffectiveDigits())
	assert.Equal(t, 6, otp.Credential{Type: otp.MobileOTP, Digits: 8}.EffectiveDigits())

	assert.Equal(t, 30, otp.Credential{Type: otp.TimeBased}.EffectivePeriod())
	assert.Equal(t, 10, otp.Credential{Type: otp.MobileOTP}.EffectivePeriod())
	assert.Equal(t, 30, otp.Credential{Type: otp.SteamGuard, Period: 90}.EffectivePeriod())
	assert.Equal(t, 45, otp.Credential{Type: otp.CounterBased, Period: 45}.EffectivePeriod())

	assert.Equal(t, otp.SHA256, otp.Credential{Algorithm: "sha256"}.EffectiveAlgorithm())
	assert.Equal(t, otp.SHA1, otp.Credential{}.EffectiveAlgorithm())
}
