package raster

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image/png"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/image/bmp"
)

// EncodeBMP writes the raster as a 32-bit BMP file.
func (r *Raster) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, r.ToNRGBA()); err != nil {
		return fmt.Errorf("bmp encode: %w", err)
	}
	return nil
}

// EncodePNG writes the raster as a PNG file.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.ToNRGBA()); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// Digest is a BLAKE2b-256 fingerprint of a raster's dimensions and visible pixels.
type Digest [blake2b.Size256]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Digest fingerprints the raster. Row padding does not take part, so equal
// images with different strides share a digest.
func (r *Raster) Digest() Digest {
	row := r.Width * BytesPerPixel
	buf := make([]byte, 8, 8+r.Height*row)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(r.Height))
	for y := 0; y < r.Height; y++ {
		buf = append(buf, r.Pix[y*r.Stride:y*r.Stride+row]...)
	}
	return blake2b.Sum256(buf)
}
