package backend_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/backend"
)

func TestNative_DeriveKey(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	kdfs := []backend.KeyParams{
		{KDF: backend.PBKDF2SHA256, Iterations: 1000},
		{KDF: backend.PBKDF2SHA512, Iterations: 1000},
		{KDF: backend.Argon2id, Iterations: 1, MemoryKB: 8 * 1024, Parallelism: 1},
		{KDF: backend.Scrypt, Iterations: 1 << 10},
	}

	for _, params := range kdfs {
		t.Run(string(params.KDF), func(t *testing.T) {
			t.Parallel()
			key, salt, err := n.DeriveKey("correct horse", params)
			require.NoError(t, err)
			assert.Len(t, key, backend.DefaultKeyLength)
			assert.Len(t, salt, backend.DefaultSaltLength)

			again, err := n.DeriveKeyWithSalt("correct horse", salt, params)
			require.NoError(t, err)
			assert.Equal(t, key, again)

			other, err := n.DeriveKeyWithSalt("battery staple", salt, params)
			require.NoError(t, err)
			assert.NotEqual(t, key, other)

			_, salt2, err := n.DeriveKey("correct horse", params)
			require.NoError(t, err)
			assert.NotEqual(t, salt, salt2)
		})
	}
}

func TestNative_DeriveKey_NFKC(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	salt := []byte("0123456789abcdef")
	params := backend.KeyParams{Iterations: 10}

	// "é" precomposed vs decomposed
	a, err := n.DeriveKeyWithSalt("caf\u00e9", salt, params)
	require.NoError(t, err)
	b, err := n.DeriveKeyWithSalt("cafe\u0301", salt, params)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNative_DeriveKey_Errors(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	_, err := n.DeriveKeyWithSalt("pw", nil, backend.KeyParams{})
	assert.ErrorIs(t, err, backend.ErrKeyDerivation)

	_, err = n.DeriveKeyWithSalt("pw", []byte("salt"), backend.KeyParams{KDF: "bcrypt"})
	assert.ErrorIs(t, err, backend.ErrUnsupportedKDF)

	_, err = n.DeriveKeyWithSalt("pw", []byte("salt"), backend.KeyParams{KDF: backend.Scrypt, Iterations: 1000})
	assert.ErrorIs(t, err, backend.ErrInvalidKeyParams)

	_, _, err = n.DeriveKey("pw", backend.KeyParams{SaltLength: 4})
	assert.ErrorIs(t, err, backend.ErrInvalidKeyParams)
}

func TestKeyParams_WithDefaults(t *testing.T) {
	t.Parallel()

	p := backend.KeyParams{}.WithDefaults()
	assert.Equal(t, backend.PBKDF2SHA256, p.KDF)
	assert.Equal(t, backend.DefaultPBKDF2Iterations, p.Iterations)

	a := backend.KeyParams{KDF: backend.Argon2id}.WithDefaults()
	assert.Equal(t, backend.DefaultArgon2Time, a.Iterations)
	assert.Equal(t, uint32(backend.DefaultArgon2MemoryKB), a.MemoryKB)
	assert.Equal(t, uint8(backend.DefaultArgon2Threads), a.Parallelism)
}

func TestNative_EncryptDecrypt(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	for _, c := range []backend.Cipher{backend.AES256GCM, backend.ChaCha20Poly1305, backend.XChaCha20Poly1305} {
		t.Run(string(c), func(t *testing.T) {
			t.Parallel()
			params := backend.CipherParams{Algorithm: c, AAD: []byte("header")}

			sealed, err := n.Encrypt([]byte("JBSWY3DPEHPK3PXP"), key, params)
			require.NoError(t, err)
			assert.Len(t, sealed.Tag, 16)
			assert.Len(t, sealed.Ciphertext, 16)
			assert.NotEmpty(t, sealed.IV)

			plain, err := n.Decrypt(sealed, key, params)
			require.NoError(t, err)
			assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), plain)

			tampered := sealed
			tampered.Tag = append([]byte(nil), sealed.Tag...)
			tampered.Tag[0] ^= 0xff
			_, err = n.Decrypt(tampered, key, params)
			assert.ErrorIs(t, err, backend.ErrAuthenticationFailed)

			_, err = n.Decrypt(sealed, key, backend.CipherParams{Algorithm: c, AAD: []byte("other")})
			assert.ErrorIs(t, err, backend.ErrAuthenticationFailed)
		})
	}
}

func TestNative_Encrypt_Errors(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	_, err := n.Encrypt([]byte("x"), make([]byte, 16), backend.CipherParams{})
	assert.ErrorIs(t, err, backend.ErrInvalidKeyLength)

	_, err = n.Encrypt([]byte("x"), make([]byte, 32), backend.CipherParams{Algorithm: "des"})
	assert.ErrorIs(t, err, backend.ErrUnsupportedCipher)

	_, err = n.Encrypt([]byte("x"), make([]byte, 32), backend.CipherParams{IV: []byte("short")})
	assert.ErrorIs(t, err, backend.ErrInvalidIV)
}

func TestNative_Encrypt_FreshIV(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()
	key := make([]byte, 32)

	a, err := n.Encrypt([]byte("same"), key, backend.CipherParams{})
	require.NoError(t, err)
	b, err := n.Encrypt([]byte("same"), key, backend.CipherParams{})
	require.NoError(t, err)
	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestNative_HashAndHMAC(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	digest, err := n.Hash([]byte("abc"), backend.SHA256)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(digest))

	mac, err := n.HMAC([]byte("data"), []byte("key"), backend.SHA256)
	require.NoError(t, err)
	h := hmac.New(sha256.New, []byte("key"))
	h.Write([]byte("data"))
	assert.Equal(t, h.Sum(nil), mac)

	_, err = n.HMAC([]byte("data"), []byte("key"), "SHA3")
	assert.ErrorIs(t, err, backend.ErrUnsupportedAlgorithm)

	assert.True(t, n.SecureCompare(mac, h.Sum(nil)))
	assert.False(t, n.SecureCompare(mac, mac[:4]))
}

func TestNative_Random(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	b, err := n.RandomBytes(24)
	require.NoError(t, err)
	assert.Len(t, b, 24)

	for range 100 {
		v, err := n.RandomInt(5, 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 5)
		assert.Less(t, v, 10)
	}

	_, err = n.RandomInt(3, 3)
	assert.ErrorIs(t, err, backend.ErrInvalidRange)
}

func TestNative_Base64(t *testing.T) {
	t.Parallel()
	n := backend.NewNative()

	s := n.EncodeBase64([]byte{0, 1, 2, 250})
	b, err := n.DecodeBase64(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 250}, b)

	_, err = n.DecodeBase64("!!!")
	assert.ErrorIs(t, err, backend.ErrInvalidBase64)
}
