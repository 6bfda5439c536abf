// Package vault seals secrets under a password and provides the small set
// of crypto helpers an authenticator needs around it.
//
// Encryption produces a self-describing Envelope: the cipher, KDF, cost
// parameters, salt, IV and tag travel with the ciphertext, so an envelope
// can always be opened with nothing but the password, even after the
// configured defaults change. Decryption failures are deliberately opaque.
//
// Basic usage:
//
//	v := vault.New(vault.DefaultConfig())
//
//	env, err := v.EncryptWithPassword([]byte(secret), password)
//	if err != nil {
//		return err
//	}
//	data, _ := env.Marshal()
//
//	env, err = vault.ParseEnvelope(data)
//	plaintext, err := v.DecryptWithPassword(env, password)
//	if errors.Is(err, vault.ErrDecryptionFailed) {
//		// wrong password or tampered data
//	}
//
// Per-envelope overrides:
//
//	env, err := v.EncryptWithPassword(data, password,
//		vault.WithAlgorithm(backend.XChaCha20Poly1305),
//		vault.WithKDF(backend.Argon2id),
//		vault.WithAAD([]byte(credentialID)),
//	)
//
// The package also exposes HMAC helpers, random bytes and integers, a
// password generator, an advisory strength scorer and recovery codes.
package vault
