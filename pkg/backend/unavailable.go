package backend

// Unavailable is an OTP backend whose every call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) GenerateTOTP(string, uint64, int, Algorithm) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GenerateHOTP(string, uint64, int, Algorithm) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GenerateMOTP(string, string, uint64) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GenerateMOTPWithPeriod(string, string, int64, int) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GenerateSteamGuard(string, uint64) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) ValidateSecret(string) bool { return false }

func (Unavailable) Base32Decode(string) ([]byte, error) { return nil, ErrUnavailable }

func (Unavailable) Base32Encode([]byte) string { return "" }
