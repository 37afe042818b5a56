package pixfmt

import "fmt"

// ColorModel distinguishes YUV and RGB raw formats.
type ColorModel int

const (
	ModelYUV ColorModel = iota
	ModelRGB
)

func (m ColorModel) String() string {
	switch m {
	case ModelYUV:
		return "YUV"
	case ModelRGB:
		return "RGB"
	default:
		return "Unknown"
	}
}

// Endianness selects the byte order of samples wider than 8 bits.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "BE"
	}
	return "LE"
}

// Layout tells whether components live in separate planes or are interleaved.
type Layout int

const (
	LayoutPlanar Layout = iota
	LayoutPacked
)

func (l Layout) String() string {
	if l == LayoutPacked {
		return "packed"
	}
	return "planar"
}

// Size is a frame size in samples. For YUV formats it is the luma resolution.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Pixels returns Width*Height.
func (s Size) Pixels() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Min returns the top-left overlap of two sizes.
func (s Size) Min(o Size) Size {
	return Size{Width: minInt(s.Width, o.Width), Height: minInt(s.Height, o.Height)}
}

// Component names one sample plane of a frame.
type Component int

const (
	ComponentY Component = iota
	ComponentU
	ComponentV
	ComponentA
	ComponentR
	ComponentG
	ComponentB
)

func (c Component) String() string {
	return [...]string{"Y", "U", "V", "A", "R", "G", "B"}[c]
}

// Format is implemented by YUVFormat and RGBFormat.
type Format interface {
	Model() ColorModel
	Name() string
	BitDepth() int
	Validate() error
	BytesPerFrame(size Size) (int, error)
}

// PlaneInfo locates the samples of one component inside a raw buffer.
//
// Sample (x, y) starts at byte Offset + y*Stride + x*Step.
type PlaneInfo struct {
	Component Component
	Offset    int
	Width     int
	Height    int
	Stride    int
	Step      int
}

// End returns the byte offset just past the last sample of the plane.
func (p PlaneInfo) End(bytesPerSample int) int {
	if p.Width == 0 || p.Height == 0 {
		return p.Offset
	}
	return p.Offset + (p.Height-1)*p.Stride + (p.Width-1)*p.Step + bytesPerSample
}

// BytesPerSample returns the storage size of one sample of the given depth.
func BytesPerSample(bits int) int {
	if bits > 8 {
		return 2
	}
	return 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
