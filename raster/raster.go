// Package raster holds the canonical display raster produced by conversion.
//
// A Raster is 8 bits per channel, four bytes per pixel in B, G, R, A order,
// row major. Rows may be padded to a caller requested alignment; no other
// padding exists.
package raster

import (
	"image"
	"image/color"
)

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = 4

// Raster is a BGRA image.
type Raster struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// New allocates a tightly packed raster.
func New(width, height int) *Raster {
	return NewAligned(width, height, 1)
}

// NewAligned allocates a raster whose row stride is a multiple of align bytes.
func NewAligned(width, height, align int) *Raster {
	if align < 1 {
		align = 1
	}
	stride := (width*BytesPerPixel + align - 1) / align * align
	return &Raster{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}
}

// Offset returns the index of pixel (x, y) in Pix.
func (r *Raster) Offset(x, y int) int {
	return y*r.Stride + x*BytesPerPixel
}

// SetBGRA stores one pixel.
func (r *Raster) SetBGRA(x, y int, b, g, red, a uint8) {
	i := r.Offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = b, g, red, a
}

// SetGray stores an opaque grey pixel.
func (r *Raster) SetGray(x, y int, v uint8) {
	r.SetBGRA(x, y, v, v, v, 255)
}

// BGRA returns one pixel.
func (r *Raster) BGRA(x, y int) (b, g, red, a uint8) {
	i := r.Offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Fill sets every pixel to the same value.
func (r *Raster) Fill(b, g, red, a uint8) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			r.SetBGRA(x, y, b, g, red, a)
		}
	}
}

// Equal compares the visible pixels of two rasters, ignoring row padding.
func (r *Raster) Equal(o *Raster) bool {
	if r.Width != o.Width || r.Height != o.Height {
		return false
	}
	for y := 0; y < r.Height; y++ {
		a := r.Pix[y*r.Stride : y*r.Stride+r.Width*BytesPerPixel]
		b := o.Pix[y*o.Stride : y*o.Stride+o.Width*BytesPerPixel]
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(r.Bounds()) {
		return color.NRGBA{}
	}
	b, g, red, a := r.BGRA(x, y)
	return color.NRGBA{R: red, G: g, B: b, A: a}
}

// ToNRGBA converts the raster into a standard library image.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			b, g, red, a := r.BGRA(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = red, g, b, a
		}
	}
	return img
}
