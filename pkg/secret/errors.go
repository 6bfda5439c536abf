package secret

import "errors"

var (
	ErrInvalidSize            = errors.New("secret size must be at least 10 bytes")
	ErrFailedToGenerateSecret = errors.New("failed to generate secret")
)
