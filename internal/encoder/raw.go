package encoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zstd"
)

// Raw raster format: magic string, big-endian 32-bit width and height, one
// channel-count byte, then a zstd stream of row-major NRGBA bytes. Meant as
// a fast intermediate format for pipelines that post-process the reduced
// raster themselves.
const (
	rawMagic    = "PXR1\n"
	rawChannels = 4
)

// RawEncoder writes the zstd-compressed raw raster format.
type RawEncoder struct{}

func (e *RawEncoder) Format() string    { return "raw" }
func (e *RawEncoder) Extension() string { return "pxr" }
func (e *RawEncoder) Available() bool   { return true }

func (e *RawEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()

	var buf bytes.Buffer
	buf.WriteString(rawMagic)
	var head [9]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(w))
	binary.BigEndian.PutUint32(head[4:8], uint32(h))
	head[8] = rawChannels
	buf.Write(head[:])

	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		if _, err := zw.Write(n.Pix[y*n.Stride : y*n.Stride+w*rawChannels]); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRaw reads a raw raster stream back into an NRGBA image.
func DecodeRaw(r io.Reader) (*image.NRGBA, error) {
	head := make([]byte, len(rawMagic)+9)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("raw header: %w", err)
	}
	if string(head[:len(rawMagic)]) != rawMagic {
		return nil, fmt.Errorf("not a raw raster stream")
	}
	w := int(binary.BigEndian.Uint32(head[5:9]))
	h := int(binary.BigEndian.Uint32(head[9:13]))
	if c := head[13]; c != rawChannels {
		return nil, fmt.Errorf("unsupported raw channel count %d", c)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(zr, out.Pix[y*out.Stride:y*out.Stride+w*rawChannels]); err != nil {
			return nil, fmt.Errorf("raw pixels: %w", err)
		}
	}
	return out, nil
}
