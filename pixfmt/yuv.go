package pixfmt

import (
	"errors"
	"fmt"
)

// PlaneOrder is the order of planes in a planar YUV buffer.
type PlaneOrder int

const (
	PlaneOrderYUV PlaneOrder = iota
	PlaneOrderYVU
	PlaneOrderYUVA
	PlaneOrderYVUA
)

var planeOrderNames = map[PlaneOrder]string{
	PlaneOrderYUV:  "YUV",
	PlaneOrderYVU:  "YVU",
	PlaneOrderYUVA: "YUVA",
	PlaneOrderYVUA: "YVUA",
}

func (o PlaneOrder) String() string {
	return planeOrderNames[o]
}

// HasAlpha reports whether a full resolution alpha plane follows the chroma planes.
func (o PlaneOrder) HasAlpha() bool {
	return o == PlaneOrderYUVA || o == PlaneOrderYVUA
}

// VFirst reports whether the V plane precedes the U plane.
func (o PlaneOrder) VFirst() bool {
	return o == PlaneOrderYVU || o == PlaneOrderYVUA
}

// PackingOrder is the interleave pattern of a packed YUV buffer.
type PackingOrder int

const (
	// 4:4:4 patterns, one tuple per pixel.
	PackingYUV PackingOrder = iota
	PackingYVU
	PackingAYUV
	PackingYUVA
	PackingVUYA
	// 4:2:2 patterns, one group of four samples per two pixels.
	PackingUYVY
	PackingVYUY
	PackingYUYV
	PackingYVYU
)

var packingOrderNames = map[PackingOrder]string{
	PackingYUV:  "YUV",
	PackingYVU:  "YVU",
	PackingAYUV: "AYUV",
	PackingYUVA: "YUVA",
	PackingVUYA: "VUYA",
	PackingUYVY: "UYVY",
	PackingVYUY: "VYUY",
	PackingYUYV: "YUYV",
	PackingYVYU: "YVYU",
}

func (p PackingOrder) String() string {
	return packingOrderNames[p]
}

// Subsampling returns the only subsampling the pattern can describe.
func (p PackingOrder) Subsampling() Subsampling {
	if p >= PackingUYVY {
		return Subsampling422
	}
	return Subsampling444
}

// HasAlpha reports whether the pattern carries an alpha sample.
func (p PackingOrder) HasAlpha() bool {
	return p == PackingAYUV || p == PackingYUVA || p == PackingVUYA
}

// SamplesPerGroup returns the number of samples in one repeating group.
func (p PackingOrder) SamplesPerGroup() int {
	if p == PackingYUV || p == PackingYVU {
		return 3
	}
	return 4
}

// PackingOrdersFor lists the patterns defined for a subsampling.
func PackingOrdersFor(s Subsampling) []PackingOrder {
	switch s {
	case Subsampling444:
		return []PackingOrder{PackingYUV, PackingYVU, PackingAYUV, PackingYUVA, PackingVUYA}
	case Subsampling422:
		return []PackingOrder{PackingUYVY, PackingVYUY, PackingYUYV, PackingYVYU}
	default:
		return nil
	}
}

// Predefined identifies layouts that do not fit the generic descriptor fields.
type Predefined int

const (
	PredefinedNone Predefined = iota
	PredefinedV210
)

// Supported sample depths.
const (
	MinBitsPerSample = 7
	MaxBitsPerSample = 16
)

// YUVFormat describes one exact raw YUV layout. It is a value type;
// the With* methods return modified copies.
type YUVFormat struct {
	Subsampling   Subsampling
	BitsPerSample int
	Endianness    Endianness
	Layout        Layout
	PlaneOrder    PlaneOrder
	UVInterleaved bool
	PackingOrder  PackingOrder
	BytePacking   bool
	ChromaOffset  ChromaOffset
	Predefined    Predefined
}

// NewPlanarYUV creates a planar format with the default chroma siting.
func NewPlanarYUV(subsampling Subsampling, bits int, order PlaneOrder, endian Endianness) YUVFormat {
	return YUVFormat{
		Subsampling:   subsampling,
		BitsPerSample: bits,
		Endianness:    normalizeEndian(bits, endian),
		Layout:        LayoutPlanar,
		PlaneOrder:    order,
		ChromaOffset:  subsampling.DefaultChromaOffset(),
	}
}

// NewSemiPlanarYUV creates a planar format whose U and V samples share one plane (NV12 style).
func NewSemiPlanarYUV(subsampling Subsampling, bits int, order PlaneOrder, endian Endianness) YUVFormat {
	f := NewPlanarYUV(subsampling, bits, order, endian)
	f.UVInterleaved = true
	return f
}

// NewPackedYUV creates a packed format. The subsampling follows from the packing order.
func NewPackedYUV(packing PackingOrder, bits int, bytePacking bool, endian Endianness) YUVFormat {
	subsampling := packing.Subsampling()
	return YUVFormat{
		Subsampling:   subsampling,
		BitsPerSample: bits,
		Endianness:    normalizeEndian(bits, endian),
		Layout:        LayoutPacked,
		PackingOrder:  packing,
		BytePacking:   bytePacking,
		ChromaOffset:  subsampling.DefaultChromaOffset(),
	}
}

// V210 returns the 10-bit 4:2:2 format that stores six pixels in 16 bytes.
func V210() YUVFormat {
	return YUVFormat{
		Subsampling:   Subsampling422,
		BitsPerSample: 10,
		Layout:        LayoutPacked,
		PackingOrder:  PackingUYVY,
		Predefined:    PredefinedV210,
	}
}

// WithChromaOffset returns a copy with a different chroma siting.
func (f YUVFormat) WithChromaOffset(o ChromaOffset) YUVFormat {
	f.ChromaOffset = o
	return f
}

// WithBitsPerSample returns a copy with a different sample depth.
func (f YUVFormat) WithBitsPerSample(bits int) YUVFormat {
	f.BitsPerSample = bits
	f.Endianness = normalizeEndian(bits, f.Endianness)
	return f
}

// validateEndian rejects byte orders that a format name cannot carry:
// samples of up to 8 bits are always little endian.
func validateEndian(bits int, endian Endianness) error {
	if endian != LittleEndian && endian != BigEndian {
		return fmt.Errorf("%w: unknown endianness %d", ErrInvalidDescriptor, endian)
	}
	if bits <= 8 && endian != LittleEndian {
		return fmt.Errorf("%w: %d-bit samples have no byte order", ErrInvalidDescriptor, bits)
	}
	return nil
}

func normalizeEndian(bits int, endian Endianness) Endianness {
	if bits <= 8 {
		return LittleEndian
	}
	return endian
}

// Model implements Format.
func (f YUVFormat) Model() ColorModel { return ModelYUV }

// BitDepth implements Format.
func (f YUVFormat) BitDepth() int { return f.BitsPerSample }

// HasAlpha reports whether the format carries an alpha component.
func (f YUVFormat) HasAlpha() bool {
	if f.Predefined != PredefinedNone {
		return false
	}
	if f.Layout == LayoutPacked {
		return f.PackingOrder.HasAlpha()
	}
	return f.PlaneOrder.HasAlpha()
}

// IsPlanar reports whether samples are stored in separate planes.
func (f YUVFormat) IsPlanar() bool {
	return f.Layout == LayoutPlanar && f.Predefined == PredefinedNone
}

// BytesPerSample returns the byte size of one byte-aligned sample.
func (f YUVFormat) BytesPerSample() int {
	return BytesPerSample(f.BitsPerSample)
}

// Validate checks the descriptor invariants. Consumers call it on every use.
func (f YUVFormat) Validate() error {
	if f.Predefined == PredefinedV210 {
		return nil
	}
	if f.Predefined != PredefinedNone {
		return fmt.Errorf("%w: unknown predefined format %d", ErrInvalidDescriptor, f.Predefined)
	}
	if _, ok := subsamplingTable[f.Subsampling]; !ok {
		return fmt.Errorf("%w: unknown subsampling", ErrInvalidDescriptor)
	}
	if f.BitsPerSample < MinBitsPerSample || f.BitsPerSample > MaxBitsPerSample {
		return fmt.Errorf("%w: %d bits per sample outside [%d, %d]",
			ErrInvalidDescriptor, f.BitsPerSample, MinBitsPerSample, MaxBitsPerSample)
	}
	if err := validateEndian(f.BitsPerSample, f.Endianness); err != nil {
		return err
	}
	maxX, maxY := f.Subsampling.MaxChromaOffset()
	if f.ChromaOffset.X < 0 || f.ChromaOffset.X > maxX || f.ChromaOffset.Y < 0 || f.ChromaOffset.Y > maxY {
		return fmt.Errorf("%w: chroma offset (%d,%d) outside [0,%d]x[0,%d] for %s",
			ErrInvalidDescriptor, f.ChromaOffset.X, f.ChromaOffset.Y, maxX, maxY, f.Subsampling)
	}

	switch f.Layout {
	case LayoutPlanar:
		if _, ok := planeOrderNames[f.PlaneOrder]; !ok {
			return fmt.Errorf("%w: unknown plane order", ErrInvalidDescriptor)
		}
		if f.BytePacking {
			return fmt.Errorf("%w: bit packing requires a packed layout", ErrInvalidDescriptor)
		}
		if f.PackingOrder != PackingYUV {
			return fmt.Errorf("%w: packing order %s set on a planar layout", ErrInvalidDescriptor, f.PackingOrder)
		}
		if f.UVInterleaved && !f.Subsampling.HasChroma() {
			return fmt.Errorf("%w: 4:0:0 has no chroma to interleave", ErrInvalidDescriptor)
		}
	case LayoutPacked:
		if f.Subsampling != Subsampling422 && f.Subsampling != Subsampling444 {
			return fmt.Errorf("%w: packed layout for %s", ErrUnsupportedCombination, f.Subsampling)
		}
		if _, ok := packingOrderNames[f.PackingOrder]; !ok {
			return fmt.Errorf("%w: unknown packing order", ErrInvalidDescriptor)
		}
		if f.PackingOrder.Subsampling() != f.Subsampling {
			return fmt.Errorf("%w: packing %s cannot describe %s",
				ErrInvalidDescriptor, f.PackingOrder, f.Subsampling)
		}
		if f.UVInterleaved {
			return fmt.Errorf("%w: UV interleaving requires a planar layout", ErrInvalidDescriptor)
		}
		if f.PlaneOrder != PlaneOrderYUV {
			return fmt.Errorf("%w: plane order %s set on a packed layout", ErrInvalidDescriptor, f.PlaneOrder)
		}
	default:
		return fmt.Errorf("%w: unknown layout", ErrInvalidDescriptor)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (f YUVFormat) IsValid() bool {
	return f.Validate() == nil
}

// CanConvert checks every precondition of converting a frame of the given
// size. All violations are reported together.
func (f YUVFormat) CanConvert(size Size) error {
	cerr := &ConversionError{}
	if err := f.Validate(); err != nil {
		kind := ErrInvalidDescriptor
		if errors.Is(err, ErrUnsupportedCombination) {
			kind = ErrUnsupportedCombination
		}
		cerr.add(kind, fmt.Sprintf("The pixel format is not usable: %v.", err))
		return cerr
	}
	if f.BitsPerSample < 8 || f.BitsPerSample > 16 {
		cerr.add(ErrUnsupportedCombination,
			fmt.Sprintf("The bit depth %d is not supported for conversion.", f.BitsPerSample))
	}
	if !size.Valid() {
		cerr.add(ErrSizeMismatch, fmt.Sprintf("The item size %s is not valid.", size))
		return cerr
	}
	h, v := f.Subsampling.Factors()
	if size.Width%h != 0 {
		cerr.add(ErrSizeMismatch, fmt.Sprintf(
			"The item width %d must be divisible by the horizontal subsampling factor %d.", size.Width, h))
	}
	if size.Height%v != 0 {
		cerr.add(ErrSizeMismatch, fmt.Sprintf(
			"The item height %d must be divisible by the vertical subsampling factor %d.", size.Height, v))
	}
	if cerr.empty() {
		return nil
	}
	return cerr
}
