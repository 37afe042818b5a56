package conversion

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
	"github.com/opd-ai/rawview/sample"
)

// Convert dispatches on the colour model of f.
func Convert(buf []byte, f pixfmt.Format, size pixfmt.Size, s Settings) (*raster.Raster, error) {
	switch f := f.(type) {
	case pixfmt.YUVFormat:
		return ConvertYUV(buf, f, size, s)
	case pixfmt.RGBFormat:
		return ConvertRGB(buf, f, size, s)
	case nil:
		return nil, fmt.Errorf("%w: no format", pixfmt.ErrInvalidDescriptor)
	default:
		return nil, fmt.Errorf("%w: unknown format type %T", pixfmt.ErrInvalidDescriptor, f)
	}
}

// ComponentValue is one raw sample of a pixel.
type ComponentValue struct {
	Component pixfmt.Component
	Value     int
}

// PixelValueAt returns the raw samples of the pixel at luma position (x, y):
// Y, U, V(, A) for YUV, where chroma comes from the co-sited subsampled
// sample, and R, G, B(, A) for RGB.
func PixelValueAt(buf []byte, f pixfmt.Format, size pixfmt.Size, x, y int) ([]ComponentValue, error) {
	if x < 0 || y < 0 || x >= size.Width || y >= size.Height {
		return nil, fmt.Errorf("%w: (%d,%d) outside %s", pixfmt.ErrOutOfBounds, x, y, size)
	}

	var (
		planes map[pixfmt.Component]sample.Plane
		order  []pixfmt.Component
		sh, sv = 1, 1
	)
	switch f := f.(type) {
	case pixfmt.YUVFormat:
		p, nf, err := SamplePlanes(buf, f, size)
		if err != nil {
			return nil, err
		}
		planes, order = p, []pixfmt.Component{pixfmt.ComponentY, pixfmt.ComponentU, pixfmt.ComponentV, pixfmt.ComponentA}
		sh, sv = nf.Subsampling.Factors()
	case pixfmt.RGBFormat:
		need, err := f.BytesPerFrame(size)
		if err != nil {
			return nil, err
		}
		if len(buf) < need {
			return nil, fmt.Errorf("%w: %s %s needs %d bytes, have %d",
				pixfmt.ErrBufferTooShort, f.Name(), size, need, len(buf))
		}
		infos, err := f.Planes(size)
		if err != nil {
			return nil, err
		}
		if planes, err = sample.NewPlanes(buf, infos, f.BitsPerSample, f.Endianness); err != nil {
			return nil, err
		}
		order = []pixfmt.Component{pixfmt.ComponentR, pixfmt.ComponentG, pixfmt.ComponentB, pixfmt.ComponentA}
	default:
		return nil, fmt.Errorf("%w: unknown format type %T", pixfmt.ErrInvalidDescriptor, f)
	}

	values := make([]ComponentValue, 0, len(planes))
	for _, c := range order {
		p, ok := planes[c]
		if !ok {
			continue
		}
		px, py := x, y
		if c == pixfmt.ComponentU || c == pixfmt.ComponentV {
			px, py = x/sh, y/sv
		}
		values = append(values, ComponentValue{Component: c, Value: p.AtClamped(px, py)})
	}
	return values, nil
}
