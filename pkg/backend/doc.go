// Package backend defines the primitive cryptographic contract the code
// generation engine and the vault are built on, and ships Native, a default
// implementation backed by github.com/pquerna/otp and golang.org/x/crypto.
//
// The package deliberately knows nothing about credentials, caching or
// fallbacks. It exposes two narrow interfaces:
//
//   - OTP – raw TOTP/HOTP/mOTP/Steam Guard code derivation and Base32 helpers.
//   - Crypto – password based key derivation, AEAD sealing, hashing, HMAC,
//     constant-time comparison, CSPRNG access and Base64 helpers.
//
// Higher level packages accept these interfaces so tests can substitute
// failing or deterministic implementations. Unavailable is an OTP
// implementation that fails every call and is used to exercise degraded
// code paths.
//
// # Supported primitives
//
// Key derivation: pbkdf2-sha256 (default), pbkdf2-sha512, argon2id, scrypt.
// Passwords are NFKC-normalized before derivation so visually identical
// input produces the same key on every platform.
//
// Ciphers: aes-256-gcm (default), chacha20-poly1305, xchacha20-poly1305.
// The authentication tag is returned separately from the ciphertext.
//
// # Error Handling
//
// All failures wrap package sentinels such as ErrUnsupportedCipher,
// ErrAuthenticationFailed or ErrKeyDerivation with errors.Join.
package backend
