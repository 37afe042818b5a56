package conversion

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/sample"
)

// ToPlanar rewrites a frame into planar Y, U, V(, A) order.
//
// The result keeps subsampling, bit depth, endianness and chroma siting.
// V210 becomes planar 4:2:2 10-bit little endian. Buffers that already are
// planar in Y, U, V order are returned unchanged.
func ToPlanar(buf []byte, f pixfmt.YUVFormat, size pixfmt.Size) ([]byte, pixfmt.YUVFormat, error) {
	log := newLogger("ToPlanar").
		WithField("format", f.Name()).
		WithField("size", size.String()).
		WithBuffer("frame", buf)
	log.Entry("normalizing frame")
	defer log.Exit()

	need, err := f.BytesPerFrame(size)
	if err != nil {
		return nil, pixfmt.YUVFormat{}, err
	}
	if len(buf) < need {
		return nil, pixfmt.YUVFormat{}, fmt.Errorf("%w: %s %s needs %d bytes, have %d",
			pixfmt.ErrBufferTooShort, f.Name(), size, need, len(buf))
	}

	out := planarFormatFor(f)
	if f == out {
		return buf[:need], f, nil
	}

	outLen, err := out.BytesPerFrame(size)
	if err != nil {
		return nil, pixfmt.YUVFormat{}, err
	}
	dst := make([]byte, outLen)
	infos, err := out.Planes(size)
	if err != nil {
		return nil, pixfmt.YUVFormat{}, err
	}
	planes, err := sample.NewPlanes(dst, infos, out.BitsPerSample, out.Endianness)
	if err != nil {
		return nil, pixfmt.YUVFormat{}, err
	}

	switch {
	case f.Predefined == pixfmt.PredefinedV210:
		unpackV210(buf, size, planes)
	case f.Layout == pixfmt.LayoutPacked && f.BytePacking:
		unpackBits(buf, f, size, planes)
	default:
		srcInfos, err := f.Planes(size)
		if err != nil {
			return nil, pixfmt.YUVFormat{}, err
		}
		src, err := sample.NewPlanes(buf, srcInfos, f.BitsPerSample, f.Endianness)
		if err != nil {
			return nil, pixfmt.YUVFormat{}, err
		}
		for c, p := range src {
			copyPlane(planes[c], p)
		}
	}

	log.WithField("bytes", outLen).Debug("frame normalized")
	return dst, out, nil
}

func planarFormatFor(f pixfmt.YUVFormat) pixfmt.YUVFormat {
	order := pixfmt.PlaneOrderYUV
	if f.HasAlpha() {
		order = pixfmt.PlaneOrderYUVA
	}
	bits, endian := f.BitsPerSample, f.Endianness
	if f.Predefined == pixfmt.PredefinedV210 {
		bits, endian = 10, pixfmt.LittleEndian
	}
	return pixfmt.NewPlanarYUV(f.Subsampling, bits, order, endian).WithChromaOffset(f.ChromaOffset)
}

func copyPlane(dst, src sample.Plane) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
}

// unpackBits splits MSB-first bit packed groups. A 4:2:2 group holds two
// pixels, a 4:4:4 group one; each group starts on a byte boundary.
func unpackBits(buf []byte, f pixfmt.YUVFormat, size pixfmt.Size, dst map[pixfmt.Component]sample.Plane) {
	bits := f.BitsPerSample
	groupBytes := f.BitPackedGroupBytes()
	oy, ou, ov, oa := f.PackingOrder.Positions()
	at := func(group, position int) int {
		return sample.ReadBits(buf, group*groupBytes*8+position*bits, bits)
	}

	if f.Subsampling == pixfmt.Subsampling422 {
		groups := size.Width / 2
		for y := 0; y < size.Height; y++ {
			for g := 0; g < groups; g++ {
				n := y*groups + g
				dst[pixfmt.ComponentY].Set(2*g, y, at(n, oy))
				dst[pixfmt.ComponentY].Set(2*g+1, y, at(n, oy+2))
				dst[pixfmt.ComponentU].Set(g, y, at(n, ou))
				dst[pixfmt.ComponentV].Set(g, y, at(n, ov))
			}
		}
		return
	}

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			n := y*size.Width + x
			dst[pixfmt.ComponentY].Set(x, y, at(n, oy))
			dst[pixfmt.ComponentU].Set(x, y, at(n, ou))
			dst[pixfmt.ComponentV].Set(x, y, at(n, ov))
			if oa >= 0 {
				dst[pixfmt.ComponentA].Set(x, y, at(n, oa))
			}
		}
	}
}

// v210Fields lists, per word of a 16 byte block, the component and index
// (within the block's six luma or three chroma samples) of its three fields,
// lowest bits first.
var v210Fields = [4][3]struct {
	c     pixfmt.Component
	index int
}{
	{{pixfmt.ComponentU, 0}, {pixfmt.ComponentY, 0}, {pixfmt.ComponentV, 0}},
	{{pixfmt.ComponentY, 1}, {pixfmt.ComponentU, 1}, {pixfmt.ComponentY, 2}},
	{{pixfmt.ComponentV, 1}, {pixfmt.ComponentY, 3}, {pixfmt.ComponentU, 2}},
	{{pixfmt.ComponentY, 4}, {pixfmt.ComponentV, 2}, {pixfmt.ComponentY, 5}},
}

func unpackV210(buf []byte, size pixfmt.Size, dst map[pixfmt.Component]sample.Plane) {
	stride := pixfmt.V210Stride(size.Width)
	blocks := stride / 16
	for y := 0; y < size.Height; y++ {
		for b := 0; b < blocks; b++ {
			for w, fields := range v210Fields {
				word := sample.ReadWord(buf, y*stride+b*16+w*4)
				for i, field := range fields {
					value := int(word>>(10*uint(i))) & 0x3ff
					x := 6*b + field.index
					if field.c != pixfmt.ComponentY {
						x = 3*b + field.index
					}
					p := dst[field.c]
					if x < p.Width() {
						p.Set(x, y, value)
					}
				}
			}
		}
	}
}
