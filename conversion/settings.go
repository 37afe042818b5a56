package conversion

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
)

// Interpolation selects how missing chroma samples are synthesized.
type Interpolation int

const (
	// NearestNeighbor repeats each chroma sample over its block (sample and hold).
	NearestNeighbor Interpolation = iota
	// Bilinear averages neighbouring chroma samples and applies chroma siting correction.
	Bilinear
)

func (i Interpolation) String() string {
	switch i {
	case NearestNeighbor:
		return "nearest"
	case Bilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// ParseInterpolation accepts "nearest" or "bilinear".
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "nearest", "nn":
		return NearestNeighbor, nil
	case "bilinear", "linear":
		return Bilinear, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

// DisplayMode selects which components end up in the raster.
type DisplayMode int

const (
	DisplayAll DisplayMode = iota
	DisplayLuma
	DisplayCb
	DisplayCr
	DisplayAlpha
	DisplayRed
	DisplayGreen
	DisplayBlue
)

var displayNames = map[DisplayMode]string{
	DisplayAll:   "all",
	DisplayLuma:  "y",
	DisplayCb:    "u",
	DisplayCr:    "v",
	DisplayAlpha: "a",
	DisplayRed:   "r",
	DisplayGreen: "g",
	DisplayBlue:  "b",
}

func (d DisplayMode) String() string {
	return displayNames[d]
}

// ParseDisplayMode accepts the String form of a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for d, n := range displayNames {
		if n == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown display component %q", s)
}

// component maps a single-component mode to the component it shows.
func (d DisplayMode) component() (pixfmt.Component, bool) {
	switch d {
	case DisplayLuma:
		return pixfmt.ComponentY, true
	case DisplayCb:
		return pixfmt.ComponentU, true
	case DisplayCr:
		return pixfmt.ComponentV, true
	case DisplayAlpha:
		return pixfmt.ComponentA, true
	case DisplayRed:
		return pixfmt.ComponentR, true
	case DisplayGreen:
		return pixfmt.ComponentG, true
	case DisplayBlue:
		return pixfmt.ComponentB, true
	}
	return 0, false
}

// MathParameters is a per-component linear adjustment. YUV components are
// adjusted at source depth, RGB channels after reduction to 8 bits:
//
//	v' = offset + (v - offset) * scale      (invert: offset - (v - offset) * scale)
//
// Results are clipped to the representable range.
type MathParameters struct {
	Scale  int
	Offset int
	Invert bool
}

// Active reports whether applying the parameters changes any value.
func (m MathParameters) Active() bool {
	return m.Scale != 1 || m.Invert
}

// Apply adjusts one sample of the given depth.
func (m MathParameters) Apply(v, bits int) int {
	if !m.Active() {
		return v
	}
	if m.Invert {
		v = m.Offset - (v-m.Offset)*m.Scale
	} else {
		v = m.Offset + (v-m.Offset)*m.Scale
	}
	return clip(v, 0, 1<<bits-1)
}

// Settings carries every option of a raster conversion.
type Settings struct {
	Matrix        ColorMatrix
	Interpolation Interpolation
	Display       DisplayMode

	// YUV sources.
	LumaMath   MathParameters
	ChromaMath MathParameters

	// RGB sources. Channels are indexed R, G, B, A.
	Channels         [4]MathParameters
	LimitedRange     bool
	IncludeAlpha     bool
	PremultiplyAlpha bool

	// RowAlignment pads raster rows to a multiple of this many bytes.
	RowAlignment int
}

// DefaultSettings returns BT.709 limited range, bilinear chroma and all components.
func DefaultSettings() Settings {
	s := Settings{
		Matrix:        BT709Limited,
		Interpolation: Bilinear,
		Display:       DisplayAll,
		LumaMath:      MathParameters{Scale: 1, Offset: 125},
		ChromaMath:    MathParameters{Scale: 1, Offset: 128},
		RowAlignment:  1,
	}
	for i := range s.Channels {
		s.Channels[i] = MathParameters{Scale: 1, Offset: 128}
	}
	return s
}

// Validate checks the settings independently of any frame.
func (s Settings) Validate() error {
	if s.Matrix.YScale == 0 {
		return fmt.Errorf("%w: color matrix is not set", pixfmt.ErrInvalidDescriptor)
	}
	if s.Interpolation != NearestNeighbor && s.Interpolation != Bilinear {
		return fmt.Errorf("%w: unknown interpolation %d", pixfmt.ErrInvalidDescriptor, s.Interpolation)
	}
	if _, ok := displayNames[s.Display]; !ok {
		return fmt.Errorf("%w: unknown display mode %d", pixfmt.ErrInvalidDescriptor, s.Display)
	}
	if s.LumaMath.Scale < 1 || s.ChromaMath.Scale < 1 {
		return fmt.Errorf("%w: math scale must be at least 1", pixfmt.ErrInvalidDescriptor)
	}
	for i, c := range s.Channels {
		if c.Scale < 1 {
			return fmt.Errorf("%w: channel %d scale must be at least 1", pixfmt.ErrInvalidDescriptor, i)
		}
	}
	return nil
}

func (s Settings) mathFor(c pixfmt.Component) MathParameters {
	if c == pixfmt.ComponentU || c == pixfmt.ComponentV {
		return s.ChromaMath
	}
	return s.LumaMath
}
