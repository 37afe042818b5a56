package conversion

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
	"github.com/opd-ai/rawview/sample"
)

// ConvertYUV converts one YUV frame into a canonical raster.
func ConvertYUV(buf []byte, f pixfmt.YUVFormat, size pixfmt.Size, s Settings) (*raster.Raster, error) {
	log := newLogger("ConvertYUV").
		WithField("format", f.Name()).
		WithField("size", size.String()).
		WithField("display", s.Display.String()).
		WithBuffer("frame", buf)
	log.Entry("converting YUV frame")
	defer log.Exit()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := f.CanConvert(size); err != nil {
		log.WithError(err, "CanConvert").Debug("conversion rejected")
		return nil, err
	}
	planes, f, err := SamplePlanes(buf, f, size)
	if err != nil {
		return nil, err
	}

	r := raster.NewAligned(size.Width, size.Height, s.RowAlignment)
	if s.Display == DisplayAll && f.Subsampling.HasChroma() {
		convertColor(r, planes, f, size, s)
		return r, nil
	}

	c := pixfmt.ComponentY
	if s.Display != DisplayAll {
		c, _ = s.Display.component()
	}
	p, ok := planes[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s component", pixfmt.ErrUnsupportedCombination, f.Name(), c)
	}
	convertMonochrome(r, p, f, s)
	return r, nil
}

// SamplePlanes returns sample views of every component, unpacking packed
// layouts first.
func SamplePlanes(buf []byte, f pixfmt.YUVFormat, size pixfmt.Size) (map[pixfmt.Component]sample.Plane, pixfmt.YUVFormat, error) {
	need, err := f.BytesPerFrame(size)
	if err != nil {
		return nil, f, err
	}
	if len(buf) < need {
		return nil, f, fmt.Errorf("%w: %s %s needs %d bytes, have %d",
			pixfmt.ErrBufferTooShort, f.Name(), size, need, len(buf))
	}
	if f.Layout == pixfmt.LayoutPacked || f.Predefined != pixfmt.PredefinedNone {
		if buf, f, err = ToPlanar(buf, f, size); err != nil {
			return nil, f, err
		}
	}
	infos, err := f.Planes(size)
	if err != nil {
		return nil, f, err
	}
	planes, err := sample.NewPlanes(buf, infos, f.BitsPerSample, f.Endianness)
	if err != nil {
		return nil, f, err
	}
	return planes, f, nil
}

func convertColor(r *raster.Raster, planes map[pixfmt.Component]sample.Plane, f pixfmt.YUVFormat, size pixfmt.Size, s Settings) {
	luma := planes[pixfmt.ComponentY]
	u := resampleChroma(planes[pixfmt.ComponentU], f, size, s)
	v := resampleChroma(planes[pixfmt.ComponentV], f, size, s)
	bits := f.BitsPerSample

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			yv := s.LumaMath.Apply(luma.At(x, y), bits)
			red, green, blue := s.Matrix.yuvToRGB(yv, u.At(x, y), v.At(x, y), bits)
			r.SetBGRA(x, y, uint8(blue), uint8(green), uint8(red), 255)
		}
	}
}

// convertMonochrome shows one component as grey. Chroma is repeated over its
// subsampling block and limited range values are expanded for display.
func convertMonochrome(r *raster.Raster, p sample.Plane, f pixfmt.YUVFormat, s Settings) {
	bits := p.BitsPerSample()
	c := p.Component()
	sh, sv := 1, 1
	if c == pixfmt.ComponentU || c == pixfmt.ComponentV {
		sh, sv = f.Subsampling.Factors()
	}
	m := s.mathFor(c)
	if c == pixfmt.ComponentA {
		m = MathParameters{Scale: 1}
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := m.Apply(p.AtClamped(x/sh, y/sv), bits)
			v = clip(v>>(bits-8), 0, 255)
			if !s.Matrix.FullRange && c != pixfmt.ComponentA {
				v = ExpandRange(v)
			}
			r.SetGray(x, y, uint8(v))
		}
	}
}
