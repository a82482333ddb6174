// Package raster holds the decoded source image as a flat, channel-interleaved
// byte buffer and hands out read-only rectangular views over it.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Raster is an 8-bit-per-channel pixel buffer in row-major,
// channel-interleaved order.
type Raster struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// New allocates a zero-filled raster.
func New(width, height, channels int) *Raster {
	return &Raster{
		Pix:      make([]byte, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// Load decodes the image at path, applying EXIF orientation, and normalizes
// it into a raster.
func Load(path string) (*Raster, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage normalizes img into an interleaved raster: 4 channels (NRGBA)
// when the image has transparency anywhere, 3 (RGB) when it is fully opaque.
func FromImage(img image.Image) *Raster {
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()

	if !n.Opaque() {
		r := New(w, h, 4)
		for y := 0; y < h; y++ {
			copy(r.Pix[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:y*n.Stride+w*4])
		}
		return r
	}

	r := New(w, h, 3)
	for y := 0; y < h; y++ {
		src := n.Pix[y*n.Stride:]
		dst := r.Pix[y*w*3:]
		for x := 0; x < w; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return r
}

// Image converts the raster back into an NRGBA image for encoding.
// Three-channel rasters get an opaque alpha; single-channel rasters are
// treated as grayscale.
func (r *Raster) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	switch r.Channels {
	case 4:
		for y := 0; y < r.Height; y++ {
			copy(out.Pix[y*out.Stride:], r.Pix[y*r.Width*4:(y+1)*r.Width*4])
		}
	case 3:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				s := (y*r.Width + x) * 3
				out.SetNRGBA(x, y, color.NRGBA{r.Pix[s], r.Pix[s+1], r.Pix[s+2], 0xff})
			}
		}
	default:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				g := r.Pix[(y*r.Width+x)*r.Channels]
				out.SetNRGBA(x, y, color.NRGBA{g, g, g, 0xff})
			}
		}
	}
	return out
}

// View returns a read-only view covering the whole raster.
func (r *Raster) View() View {
	return View{r: r, w: r.Width, h: r.Height}
}

// View is a read-only rectangular window over a raster. Views borrow the
// raster; concurrent reads through disjoint or overlapping views are safe as
// long as nobody mutates the underlying pixels.
type View struct {
	r    *Raster
	x, y int
	w, h int
}

// Width returns the view width in pixels.
func (v View) Width() int { return v.w }

// Height returns the view height in pixels.
func (v View) Height() int { return v.h }

// Channels returns the channel count of the underlying raster.
func (v View) Channels() int { return v.r.Channels }

// Sub returns the w×h window at (x, y) inside v. The window must lie fully
// within v; a window outside it is a caller bug.
func (v View) Sub(x, y, w, h int) View {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > v.w || y+h > v.h {
		panic(fmt.Sprintf("raster: sub-view %dx%d at (%d,%d) outside %dx%d view",
			w, h, x, y, v.w, v.h))
	}
	return View{r: v.r, x: v.x + x, y: v.y + y, w: w, h: h}
}

// CopyRect copies the w×h pixel block at (x, y) into dst in row-major,
// channel-interleaved order. dst must hold at least w*h*channels bytes.
func (v View) CopyRect(dst []byte, x, y, w, h int) {
	c := v.r.Channels
	for row := 0; row < h; row++ {
		src := ((v.y+y+row)*v.r.Width + v.x + x) * c
		copy(dst[row*w*c:(row+1)*w*c], v.r.Pix[src:src+w*c])
	}
}
