// Package qr turns a text payload into a QR code for the terminal or as PNG.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	goqr "github.com/skip2/go-qrcode"
)

// FallbackGlyph is shown when a payload cannot be encoded.
const FallbackGlyph = "✕"

// Code is a generated QR code, or the fallback when generation failed.
type Code struct {
	payload string
	code    *goqr.QRCode
	err     error
}

// Generate encodes payload. It never fails; check Failed or Err instead.
func Generate(payload string) Code {
	c, err := goqr.New(payload, goqr.Medium)
	if err != nil {
		return Code{payload: payload, err: fmt.Errorf("generate qr: %w", err)}
	}
	return Code{payload: payload, code: c}
}

func (c Code) Payload() string { return c.payload }

func (c Code) Failed() bool { return c.code == nil }

func (c Code) Err() error { return c.err }

// String renders the code with half-block characters, two modules per line.
func (c Code) String() string {
	if c.Failed() {
		return FallbackGlyph
	}
	return c.code.ToSmallString(false)
}

// PNG renders a square image of the given size in pixels.
func (c Code) PNG(size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	if c.Failed() {
		return fallbackPNG(size)
	}
	return c.code.PNG(size)
}

// fallbackPNG draws a cross, the raster twin of FallbackGlyph.
func fallbackPNG(size int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	stroke := max(size/16, 1)
	for i := 0; i < size; i++ {
		for d := -stroke / 2; d <= stroke/2; d++ {
			img.SetGray(i, i+d, color.Gray{})
			img.SetGray(i, size-1-i+d, color.Gray{})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
