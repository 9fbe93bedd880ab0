// Package qrcode renders redemption addresses as scannable codes
package qrcode

import (
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultPNGSize is the edge length in pixels of PNG output
	DefaultPNGSize = 512
	// MinPNGSize and MaxPNGSize bound caller-supplied sizes
	MinPNGSize = 64
	MaxPNGSize = 2048
)

// ErrEmptyContent is returned when there is nothing to encode
var ErrEmptyContent = errors.New("qr content is empty")

// PNG encodes content as a PNG image of size x size pixels
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultPNGSize
	}
	if size > MaxPNGSize {
		size = MaxPNGSize
	}

	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// Terminal renders content with half-block characters, two modules per line
func Terminal(content string) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}

	q, err := goqrcode.New(content, goqrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
