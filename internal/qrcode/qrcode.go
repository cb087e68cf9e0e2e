package qrcode

import qr "github.com/skip2/go-qrcode"

// DefaultSize is the image edge in pixels when none is configured.
const DefaultSize = 256

// Generate creates a QR code PNG image for the given URL.
func Generate(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(url, qr.Medium, size)
}
