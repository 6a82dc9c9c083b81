// Package imaging handles screenshot bytes: downscaling for vision calls,
// debug annotation and pixel metrics for visual parity.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"

	"github.com/nfnt/resize"
)

// Decode reads a PNG or JPEG.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Encode writes img as PNG.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale shrinks a screenshot to at most maxWidth pixels wide, keeping
// the aspect ratio. Images already narrow enough are returned unchanged.
func Downscale(data []byte, maxWidth uint) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return data, nil
	}
	// Height 0 keeps the aspect ratio.
	return Encode(resize.Resize(maxWidth, 0, img, resize.Lanczos3))
}

// Base64 encodes image bytes for inline transport to a vision model.
func Base64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
