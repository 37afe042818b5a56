// Package difference compares two raw YUV frames sample by sample.
//
// Compute produces a signed difference frame centred on mid grey, per plane
// MSE and PSNR statistics and a display raster. Locate finds the first 4x4
// block that differs, in coding tree order.
package difference

import (
	"fmt"
	"math"

	"github.com/opd-ai/rawview/conversion"
	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
	"github.com/opd-ai/rawview/sample"
)

// Warnings attached to a still valid result.
const (
	WarnSizeDiffers     = "The size of the two items differs."
	WarnBitDepthDiffers = "The bit depth of the two items differs."
)

// Options controls a comparison.
type Options struct {
	// Amplification multiplies every signed difference before it is centred.
	Amplification int
	// MarkOnly renders a marker raster instead of the amplified difference.
	// The marker uses fixed levels, not the full sample range: a luma only
	// difference is grey 70, and chroma differences set green (U) or blue (V)
	// to 70, or to 255 when luma differs too. Differences are computed with
	// amplification 1.
	MarkOnly bool
	// Settings converts the difference frame. Math parameters are reset.
	// Settings without a colour matrix are replaced by conversion.DefaultSettings.
	Settings conversion.Settings
}

// DefaultOptions returns amplification 1 with default conversion settings.
func DefaultOptions() Options {
	return Options{Amplification: 1, Settings: conversion.DefaultSettings()}
}

// PlaneStats holds the error statistics of one component.
type PlaneStats struct {
	Component pixfmt.Component
	MSE       float64
	// PSNR is +Inf for identical planes.
	PSNR float64
}

// Result is the outcome of Compute.
type Result struct {
	// Diff is a planar big endian YUV frame of DiffFormat covering Size.
	Diff       []byte
	DiffFormat pixfmt.YUVFormat
	Size       pixfmt.Size
	Raster     *raster.Raster
	Planes     []PlaneStats
	AverageMSE float64
	Warnings   []string
}

// Item is one side of a comparison.
type Item struct {
	Buffer []byte
	Format pixfmt.YUVFormat
	Size   pixfmt.Size
}

// Compute compares a and b over their common top-left region.
//
// Both formats must share the subsampling. The lower depth side is shifted
// up to the higher depth before subtracting, and MSE is accumulated before
// amplification.
func Compute(a, b Item, opts Options) (*Result, error) {
	log := newLogger("Compute").
		WithField("format_a", a.Format.Name()).
		WithField("format_b", b.Format.Name()).
		WithField("amplification", opts.Amplification).
		WithField("mark_only", opts.MarkOnly).
		WithBuffer("frame_a", a.Buffer).
		WithBuffer("frame_b", b.Buffer)
	log.Entry("comparing frames")
	defer log.Exit()

	if a.Format.Subsampling != b.Format.Subsampling {
		return nil, fmt.Errorf("%w: subsampling %s and %s", pixfmt.ErrFormatMismatch,
			a.Format.Subsampling, b.Format.Subsampling)
	}
	if opts.Amplification < 1 {
		return nil, fmt.Errorf("%w: amplification %d", pixfmt.ErrInvalidDescriptor, opts.Amplification)
	}
	planesA, fa, err := conversion.SamplePlanes(a.Buffer, a.Format, a.Size)
	if err != nil {
		return nil, fmt.Errorf("first item: %w", err)
	}
	planesB, fb, err := conversion.SamplePlanes(b.Buffer, b.Format, b.Size)
	if err != nil {
		return nil, fmt.Errorf("second item: %w", err)
	}

	res := &Result{}
	if a.Size != b.Size {
		res.Warnings = append(res.Warnings, WarnSizeDiffers)
	}
	if fa.BitsPerSample != fb.BitsPerSample {
		res.Warnings = append(res.Warnings, WarnBitDepthDiffers)
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	sh, sv := fa.Subsampling.Factors()
	region := a.Size.Min(b.Size)
	region.Width -= region.Width % sh
	region.Height -= region.Height % sv
	if !region.Valid() {
		return nil, fmt.Errorf("%w: no common region of %s and %s", pixfmt.ErrSizeMismatch, a.Size, b.Size)
	}
	res.Size = region

	bits := fa.BitsPerSample
	if fb.BitsPerSample > bits {
		bits = fb.BitsPerSample
	}
	if bits < 8 {
		return nil, fmt.Errorf("%w: %d-bit difference", pixfmt.ErrUnsupportedCombination, bits)
	}
	res.DiffFormat = pixfmt.NewPlanarYUV(fa.Subsampling, bits, pixfmt.PlaneOrderYUV, pixfmt.BigEndian)
	n, err := res.DiffFormat.BytesPerFrame(region)
	if err != nil {
		return nil, err
	}
	res.Diff = make([]byte, n)
	infos, err := res.DiffFormat.Planes(region)
	if err != nil {
		return nil, err
	}

	d := differ{
		shiftA: bits - fa.BitsPerSample,
		shiftB: bits - fb.BitsPerSample,
		zero:   128 << (bits - 8),
		max:    1<<bits - 1,
		amp:    opts.Amplification,
	}
	if opts.MarkOnly {
		d.amp = 1
	}
	for _, info := range infos {
		out, err := sample.NewPlane(res.Diff, info, bits, pixfmt.BigEndian)
		if err != nil {
			return nil, err
		}
		sse := d.plane(out, planesA[info.Component], planesB[info.Component])
		res.Planes = append(res.Planes, newPlaneStats(info.Component, sse, info.Width*info.Height, d.max))
	}
	for _, p := range res.Planes {
		res.AverageMSE += p.MSE
	}
	res.AverageMSE /= float64(len(res.Planes))

	if opts.MarkOnly {
		res.Raster = markRaster(res.Diff, res.DiffFormat, region)
	} else {
		s := opts.Settings
		if s.Matrix.YScale == 0 {
			s = conversion.DefaultSettings()
		}
		s.LumaMath = conversion.DefaultSettings().LumaMath
		s.ChromaMath = conversion.DefaultSettings().ChromaMath
		r, err := conversion.ConvertYUV(res.Diff, res.DiffFormat, region, s)
		if err != nil {
			return nil, err
		}
		res.Raster = r
	}

	log.WithField("average_mse", res.AverageMSE).Debug("comparison complete")
	return res, nil
}

type differ struct {
	shiftA, shiftB int
	zero, max      int
	amp            int
}

// plane writes the centred difference of a and b into out and returns the
// sum of squared differences.
func (d differ) plane(out, a, b sample.Plane) int64 {
	var sse int64
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			diff := a.At(x, y)<<d.shiftA - b.At(x, y)<<d.shiftB
			sse += int64(diff) * int64(diff)
			v := diff*d.amp + d.zero
			if v < 0 {
				v = 0
			} else if v > d.max {
				v = d.max
			}
			out.Set(x, y, v)
		}
	}
	return sse
}

func newPlaneStats(c pixfmt.Component, sse int64, count, max int) PlaneStats {
	mse := float64(sse) / float64(count)
	return PlaneStats{Component: c, MSE: mse, PSNR: PSNR(mse, max)}
}

// PSNR returns 10*log10(max²/mse) in dB, +Inf when mse is zero.
func PSNR(mse float64, max int) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(float64(max)*float64(max)/mse)
}
