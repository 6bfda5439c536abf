package backend

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Supported reports whether the backend knows c.
func (c Cipher) Supported() bool {
	switch c {
	case AES256GCM, ChaCha20Poly1305, XChaCha20Poly1305:
		return true
	}
	return false
}

func newAEAD(c Cipher, key []byte) (cipher.AEAD, error) {
	switch c {
	case AES256GCM, "":
		if len(key) != 32 {
			return nil, ErrInvalidKeyLength
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		if len(key) != chacha20poly1305.KeySize {
			return nil, ErrInvalidKeyLength
		}
		return chacha20poly1305.New(key)
	case XChaCha20Poly1305:
		if len(key) != chacha20poly1305.KeySize {
			return nil, ErrInvalidKeyLength
		}
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, c)
	}
}

// Encrypt seals plaintext and returns ciphertext, IV and tag separately.
func (n *Native) Encrypt(plaintext, key []byte, params CipherParams) (Sealed, error) {
	aead, err := newAEAD(params.Algorithm, key)
	if err != nil {
		return Sealed{}, errors.Join(ErrEncryption, err)
	}

	iv := params.IV
	if iv == nil {
		if iv, err = n.RandomBytes(aead.NonceSize()); err != nil {
			return Sealed{}, errors.Join(ErrEncryption, err)
		}
	}
	if len(iv) != aead.NonceSize() {
		return Sealed{}, errors.Join(ErrEncryption, ErrInvalidIV)
	}

	out := aead.Seal(nil, iv, plaintext, params.AAD)
	split := len(out) - aead.Overhead()

	return Sealed{
		Ciphertext: out[:split],
		IV:         iv,
		Tag:        out[split:],
	}, nil
}

// Decrypt opens a Sealed value. Any mismatch of key, IV, tag or AAD is
// reported as ErrAuthenticationFailed.
func (n *Native) Decrypt(sealed Sealed, key []byte, params CipherParams) ([]byte, error) {
	aead, err := newAEAD(params.Algorithm, key)
	if err != nil {
		return nil, err
	}
	if len(sealed.IV) != aead.NonceSize() {
		return nil, ErrInvalidIV
	}
	if len(sealed.Tag) != aead.Overhead() {
		return nil, ErrAuthenticationFailed
	}

	buf := make([]byte, 0, len(sealed.Ciphertext)+len(sealed.Tag))
	buf = append(buf, sealed.Ciphertext...)
	buf = append(buf, sealed.Tag...)

	plaintext, err := aead.Open(nil, sealed.IV, buf, params.AAD)
	if err != nil {
		return nil, errors.Join(ErrAuthenticationFailed, err)
	}
	return plaintext, nil
}
