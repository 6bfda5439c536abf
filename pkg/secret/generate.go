package secret

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
)

// DefaultSize is 160 bits, the RFC 4226 recommendation.
const DefaultSize = 20

// Generate creates a new random secret of size bytes.
// A size of zero selects DefaultSize.
func Generate(size int) (Normalized, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < 10 {
		return "", ErrInvalidSize
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}

	s, _ := Normalize(base32.StdEncoding.EncodeToString(buf))
	return s, nil
}
