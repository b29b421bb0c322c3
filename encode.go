package quadrant

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG encodes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders the chart and returns it as PNG bytes. Wrapping
// the bytes into a transport envelope (base64, JSON, HTTP) is the
// caller's concern.
func RenderPNG(rects []Rectangle, point Point, opts *Options) ([]byte, error) {
	img, err := Render(rects, point, opts)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}
