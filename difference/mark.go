package difference

import (
	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
	"github.com/opd-ai/rawview/sample"
)

// Marker intensities.
const (
	markDim    = 70
	markBright = 255
)

// markRaster paints where a centred difference frame deviates from zero.
//
// Equal pixels are black. A luma only difference is dim grey. Chroma
// differences light green (U) and blue (V), dim when luma is equal and
// bright when luma differs as well.
func markRaster(diff []byte, f pixfmt.YUVFormat, size pixfmt.Size) *raster.Raster {
	r := raster.New(size.Width, size.Height)
	infos, err := f.Planes(size)
	if err != nil {
		return r
	}
	planes, err := sample.NewPlanes(diff, infos, f.BitsPerSample, f.Endianness)
	if err != nil {
		return r
	}
	zero := 128 << (f.BitsPerSample - 8)
	sh, sv := f.Subsampling.Factors()
	luma := planes[pixfmt.ComponentY]
	cu, hasU := planes[pixfmt.ComponentU]
	cv, hasV := planes[pixfmt.ComponentV]

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			du := hasU && cu.At(x/sh, y/sv) != zero
			dv := hasV && cv.At(x/sh, y/sv) != zero
			var g, b uint8
			switch {
			case luma.At(x, y) == zero:
				if du {
					g = markDim
				}
				if dv {
					b = markDim
				}
			case !du && !dv:
				r.SetGray(x, y, markDim)
				continue
			default:
				if du {
					g = markBright
				}
				if dv {
					b = markBright
				}
			}
			r.SetBGRA(x, y, b, g, 0, 255)
		}
	}
	return r
}
