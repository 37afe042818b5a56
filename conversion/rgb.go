package conversion

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
	"github.com/opd-ai/rawview/sample"
)

var channelIndex = map[pixfmt.Component]int{
	pixfmt.ComponentR: 0,
	pixfmt.ComponentG: 1,
	pixfmt.ComponentB: 2,
	pixfmt.ComponentA: 3,
}

// ConvertRGB converts one RGB frame into a canonical raster.
//
// Every channel is reduced to 8 bits, then adjusted by its math parameters.
// Limited range expansion applies to colour channels only. Alpha reaches the
// raster only when IncludeAlpha is set; otherwise pixels are opaque.
func ConvertRGB(buf []byte, f pixfmt.RGBFormat, size pixfmt.Size, s Settings) (*raster.Raster, error) {
	log := newLogger("ConvertRGB").
		WithField("format", f.Name()).
		WithField("size", size.String()).
		WithField("display", s.Display.String()).
		WithBuffer("frame", buf)
	log.Entry("converting RGB frame")
	defer log.Exit()

	if err := s.Validate(); err != nil {
		return nil, err
	}
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
	planes, err := sample.NewPlanes(buf, infos, f.BitsPerSample, f.Endianness)
	if err != nil {
		return nil, err
	}

	shift := uint(f.BitsPerSample - 8)
	read := func(c pixfmt.Component, x, y int) int {
		return s.Channels[channelIndex[c]].Apply(planes[c].At(x, y)>>shift, 8)
	}

	r := raster.NewAligned(size.Width, size.Height, s.RowAlignment)
	if s.Display != DisplayAll {
		c, _ := s.Display.component()
		if _, ok := planes[c]; !ok {
			return nil, fmt.Errorf("%w: %s has no %s component", pixfmt.ErrUnsupportedCombination, f.Name(), c)
		}
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				v := read(c, x, y)
				if s.LimitedRange && c != pixfmt.ComponentA {
					v = ExpandRange(v)
				}
				r.SetGray(x, y, uint8(v))
			}
		}
		return r, nil
	}

	withAlpha := s.IncludeAlpha && f.HasAlpha()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			red, green, blue := read(pixfmt.ComponentR, x, y), read(pixfmt.ComponentG, x, y), read(pixfmt.ComponentB, x, y)
			if s.LimitedRange {
				red, green, blue = ExpandRange(red), ExpandRange(green), ExpandRange(blue)
			}
			alpha := 255
			if withAlpha {
				alpha = read(pixfmt.ComponentA, x, y)
				if s.PremultiplyAlpha {
					red, green, blue = red*alpha/255, green*alpha/255, blue*alpha/255
				}
			}
			r.SetBGRA(x, y, uint8(blue), uint8(green), uint8(red), uint8(alpha))
		}
	}
	return r, nil
}
