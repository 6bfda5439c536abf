package otp

import "errors"

var (
	ErrInvalidURI         = errors.New("invalid otpauth URI")
	ErrUnsupportedType    = errors.New("unsupported credential type")
	ErrMissingSecret      = errors.New("missing secret")
	ErrInvalidSecret      = errors.New("invalid secret")
	ErrMissingAccountName = errors.New("missing account name")
	ErrInvalidParameter   = errors.New("invalid otpauth parameter")
	ErrFailedToGenerateQR = errors.New("failed to generate QR code")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
)
