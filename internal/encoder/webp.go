package encoder

import (
	"bytes"
	"image"

	"github.com/deepteams/webp"
)

// WebPEncoder writes lossless WebP through a pure-Go libwebp port, so no
// external cwebp binary is needed. Lossless suits pixel-art output: the
// rasters are tiny and hold few distinct colors.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 75
	}
	var buf bytes.Buffer
	opts := &webp.EncoderOptions{
		Lossless: true,
		Quality:  float32(quality),
	}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
