package qrcode

import "errors"

var (
	ErrEmptyContent             = errors.New("qrcode: content cannot be empty")
	ErrFailedToGenerateQRCode   = errors.New("qrcode: failed to generate QR code")
	ErrFailedToWriteQRCodeImage = errors.New("qrcode: failed to write QR code image")
)
