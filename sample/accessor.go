// Package sample reads and writes individual raw samples.
//
// Read and Write are the only place in the module that combines bytes into
// sample values. Everything above goes through them or through Plane, a
// bounds checked strided view over one component of a frame.
package sample

import (
	"encoding/binary"
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
)

// Read returns the sample stored at byteOffset. Depths up to 8 bits occupy one
// byte, 9 to 16 bits two bytes in the given byte order.
func Read(buf []byte, byteOffset, bitsPerSample int, endian pixfmt.Endianness) int {
	if bitsPerSample <= 8 {
		return int(buf[byteOffset])
	}
	if endian == pixfmt.BigEndian {
		return int(buf[byteOffset])<<8 | int(buf[byteOffset+1])
	}
	return int(buf[byteOffset]) | int(buf[byteOffset+1])<<8
}

// Write stores value at byteOffset using the same encoding as Read.
func Write(buf []byte, byteOffset, bitsPerSample int, endian pixfmt.Endianness, value int) {
	if bitsPerSample <= 8 {
		buf[byteOffset] = byte(value)
		return
	}
	hi, lo := byte(value>>8), byte(value)
	if endian == pixfmt.BigEndian {
		buf[byteOffset], buf[byteOffset+1] = hi, lo
		return
	}
	buf[byteOffset], buf[byteOffset+1] = lo, hi
}

// ReadBits returns the n-bit value starting at bitOffset, most significant bit
// first. Bit packed layouts store samples this way without byte alignment.
func ReadBits(buf []byte, bitOffset, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		bit := bitOffset + i
		v = v<<1 | int(buf[bit>>3]>>(7-uint(bit&7)))&1
	}
	return v
}

// ReadWord returns the little endian 32-bit word at byteOffset.
func ReadWord(buf []byte, byteOffset int) uint32 {
	return binary.LittleEndian.Uint32(buf[byteOffset:])
}

// Plane is a strided view of one component inside a raw buffer.
type Plane struct {
	data   []byte
	info   pixfmt.PlaneInfo
	bits   int
	endian pixfmt.Endianness
	size   int
}

// NewPlane checks that every sample described by info lies inside data.
func NewPlane(data []byte, info pixfmt.PlaneInfo, bitsPerSample int, endian pixfmt.Endianness) (Plane, error) {
	if bitsPerSample < 1 || bitsPerSample > pixfmt.MaxBitsPerSample {
		return Plane{}, fmt.Errorf("%w: %d bits per sample", pixfmt.ErrInvalidDescriptor, bitsPerSample)
	}
	if info.Width < 0 || info.Height < 0 || info.Offset < 0 {
		return Plane{}, fmt.Errorf("%w: negative plane geometry", pixfmt.ErrInvalidDescriptor)
	}
	size := pixfmt.BytesPerSample(bitsPerSample)
	if end := info.End(size); end > len(data) {
		return Plane{}, fmt.Errorf("%w: plane %s needs %d bytes, have %d",
			pixfmt.ErrBufferTooShort, info.Component, end, len(data))
	}
	return Plane{data: data, info: info, bits: bitsPerSample, endian: endian, size: size}, nil
}

// NewPlanes builds a view per PlaneInfo, failing on the first that does not fit.
func NewPlanes(data []byte, infos []pixfmt.PlaneInfo, bitsPerSample int, endian pixfmt.Endianness) (map[pixfmt.Component]Plane, error) {
	planes := make(map[pixfmt.Component]Plane, len(infos))
	for _, info := range infos {
		p, err := NewPlane(data, info, bitsPerSample, endian)
		if err != nil {
			return nil, err
		}
		planes[info.Component] = p
	}
	return planes, nil
}

// Alloc creates a tightly packed plane with its own backing buffer.
func Alloc(c pixfmt.Component, width, height, bitsPerSample int, endian pixfmt.Endianness) Plane {
	size := pixfmt.BytesPerSample(bitsPerSample)
	info := pixfmt.PlaneInfo{Component: c, Width: width, Height: height, Stride: width * size, Step: size}
	return Plane{
		data:   make([]byte, width*height*size),
		info:   info,
		bits:   bitsPerSample,
		endian: endian,
		size:   size,
	}
}

// Width returns the number of samples per row.
func (p Plane) Width() int { return p.info.Width }

// Height returns the number of rows.
func (p Plane) Height() int { return p.info.Height }

// BitsPerSample returns the sample depth.
func (p Plane) BitsPerSample() int { return p.bits }

// Component returns the component the plane holds.
func (p Plane) Component() pixfmt.Component { return p.info.Component }

// MaxValue returns the largest representable sample value.
func (p Plane) MaxValue() int { return 1<<p.bits - 1 }

// At returns sample (x, y). Coordinates outside the plane panic like a slice index would.
func (p Plane) At(x, y int) int {
	if uint(x) >= uint(p.info.Width) || uint(y) >= uint(p.info.Height) {
		panic(fmt.Sprintf("sample: (%d,%d) outside %dx%d plane", x, y, p.info.Width, p.info.Height))
	}
	return Read(p.data, p.info.Offset+y*p.info.Stride+x*p.info.Step, p.bits, p.endian)
}

// Set stores sample (x, y).
func (p Plane) Set(x, y, value int) {
	if uint(x) >= uint(p.info.Width) || uint(y) >= uint(p.info.Height) {
		panic(fmt.Sprintf("sample: (%d,%d) outside %dx%d plane", x, y, p.info.Width, p.info.Height))
	}
	Write(p.data, p.info.Offset+y*p.info.Stride+x*p.info.Step, p.bits, p.endian, value)
}

// AtClamped returns the sample nearest to (x, y) inside the plane.
func (p Plane) AtClamped(x, y int) int {
	return p.At(clamp(x, 0, p.info.Width-1), clamp(y, 0, p.info.Height-1))
}

// Row copies row y into dst as sample values and returns it.
func (p Plane) Row(y int, dst []int) []int {
	dst = dst[:0]
	for x := 0; x < p.info.Width; x++ {
		dst = append(dst, p.At(x, y))
	}
	return dst
}

// Bytes returns the backing buffer of a plane created by Alloc.
func (p Plane) Bytes() []byte { return p.data }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
