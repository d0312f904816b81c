package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the image width and height in pixels.
const DefaultSize = 256

// RecoveryLevel is the share of the symbol that can be damaged and still
// be read.
type RecoveryLevel int

const (
	Low     RecoveryLevel = iota // 7%
	Medium                       // 15%
	High                         // 25%
	Highest                      // 30%
)

func (l RecoveryLevel) skip() skipqrcode.RecoveryLevel {
	switch l {
	case Low:
		return skipqrcode.Low
	case High:
		return skipqrcode.High
	case Highest:
		return skipqrcode.Highest
	default:
		return skipqrcode.Medium
	}
}

type options struct {
	size     int
	level    RecoveryLevel
	noBorder bool
}

// Option configures image generation.
type Option func(*options)

// WithSize sets the image side in pixels. Non-positive values keep
// DefaultSize. Content that does not fit yields a larger image.
func WithSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.size = px
		}
	}
}

func WithRecoveryLevel(l RecoveryLevel) Option {
	return func(o *options) { o.level = l }
}

// WithoutBorder drops the quiet zone around the symbol.
func WithoutBorder() Option {
	return func(o *options) { o.noBorder = true }
}

func encoder(content string, opts []Option) (*skipqrcode.QRCode, options, error) {
	o := options{size: DefaultSize, level: Medium}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(content) == "" {
		return nil, o, ErrEmptyContent
	}

	q, err := skipqrcode.New(content, o.level.skip())
	if err != nil {
		return nil, o, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	q.DisableBorder = o.noBorder

	return q, o, nil
}

// Generate renders content as a PNG image.
func Generate(content string, opts ...Option) ([]byte, error) {
	q, o, err := encoder(content, opts)
	if err != nil {
		return nil, err
	}

	png, err := q.PNG(o.size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateDataURI renders content as a base64 PNG data URI for use in an
// <img src> attribute.
func GenerateDataURI(content string, opts ...Option) (string, error) {
	png, err := Generate(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// WriteFile renders content as a PNG image at path.
func WriteFile(content, path string, opts ...Option) error {
	q, o, err := encoder(content, opts)
	if err != nil {
		return err
	}
	if err := q.WriteFile(o.size, path); err != nil {
		return errors.Join(ErrFailedToWriteQRCodeImage, err)
	}
	return nil
}
