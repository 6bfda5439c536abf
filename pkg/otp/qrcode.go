package otp

import (
	"encoding/base64"
	"errors"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 256

// QRCode renders the credential URI as a PNG QR code for enrollment.
func (c Credential) QRCode(size int) ([]byte, error) {
	uri, err := c.URI()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := skipqrcode.Encode(uri, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQR, err)
	}
	return png, nil
}

// QRCodeDataURI returns the QR code as a data:image/png;base64 URI.
func (c Credential) QRCodeDataURI(size int) (string, error) {
	png, err := c.QRCode(size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
