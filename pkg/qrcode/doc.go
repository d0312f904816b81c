// Package qrcode renders provisioning URIs as QR code images that
// authenticator apps can scan.
//
// It wraps github.com/skip2/go-qrcode with functional options:
//
//	png, err := qrcode.Generate(uri, qrcode.WithSize(320))
//	src, err := qrcode.GenerateDataURI(uri, qrcode.WithRecoveryLevel(qrcode.High))
//	err := qrcode.WriteFile(uri, "enroll.png")
//
// Empty or whitespace-only content returns ErrEmptyContent.
package qrcode
