package backend

// Algorithm names the hash function behind HMAC based codes and digests.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// KDF names a password based key derivation function.
type KDF string

const (
	PBKDF2SHA256 KDF = "pbkdf2-sha256"
	PBKDF2SHA512 KDF = "pbkdf2-sha512"
	Argon2id     KDF = "argon2id"
	Scrypt       KDF = "scrypt"
)

// Cipher names an AEAD construction.
type Cipher string

const (
	AES256GCM         Cipher = "aes-256-gcm"
	ChaCha20Poly1305  Cipher = "chacha20-poly1305"
	XChaCha20Poly1305 Cipher = "xchacha20-poly1305"
)

const (
	DefaultKeyLength  = 32
	DefaultSaltLength = 16
	SteamDigits       = 5
	MOTPDigits        = 6
)

// KeyParams controls key derivation. Zero values select per-KDF defaults.
// Iterations is the PBKDF2 round count, the argon2id time cost or the
// scrypt N parameter depending on KDF.
type KeyParams struct {
	KDF         KDF
	Iterations  int
	MemoryKB    uint32 // argon2id only
	Parallelism uint8  // argon2id threads, scrypt p
	KeyLength   int
	SaltLength  int
}

// CipherParams controls a single AEAD operation. A nil IV on encryption
// asks the backend to generate a fresh random one.
type CipherParams struct {
	Algorithm Cipher
	IV        []byte
	AAD       []byte
}

// Sealed is the output of Encrypt and the input of Decrypt.
type Sealed struct {
	Ciphertext []byte
	IV         []byte
	Tag        []byte
}

// OTP derives raw one-time codes. Secrets are Base32 text.
type OTP interface {
	GenerateTOTP(secret string, timeSlot uint64, digits int, alg Algorithm) (string, error)
	GenerateHOTP(secret string, counter uint64, digits int, alg Algorithm) (string, error)
	GenerateMOTP(secret, pin string, timeSlot uint64) (string, error)
	GenerateMOTPWithPeriod(secret, pin string, unix int64, period int) (string, error)
	GenerateSteamGuard(secret string, timeSlot uint64) (string, error)
	ValidateSecret(secret string) bool
	Base32Decode(secret string) ([]byte, error)
	Base32Encode(data []byte) string
}

// Crypto provides the primitives the vault orchestrates.
type Crypto interface {
	DeriveKey(password string, params KeyParams) (key, salt []byte, err error)
	DeriveKeyWithSalt(password string, salt []byte, params KeyParams) ([]byte, error)
	Encrypt(plaintext, key []byte, params CipherParams) (Sealed, error)
	Decrypt(sealed Sealed, key []byte, params CipherParams) ([]byte, error)
	Hash(data []byte, alg Algorithm) ([]byte, error)
	HMAC(data, key []byte, alg Algorithm) ([]byte, error)
	SecureCompare(a, b []byte) bool
	RandomBytes(n int) ([]byte, error)
	RandomInt(min, max int) (int, error)
	EncodeBase64(data []byte) string
	DecodeBase64(s string) ([]byte, error)
}

// Native implements OTP and Crypto on top of third-party primitives.
// The zero value is ready to use.
type Native struct{}

// NewNative returns the default backend.
func NewNative() *Native { return &Native{} }

var (
	_ OTP    = (*Native)(nil)
	_ Crypto = (*Native)(nil)
	_ OTP    = Unavailable{}
)

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
