package pixfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChannelOrder is the order of the colour channels of an RGB format.
type ChannelOrder int

const (
	OrderRGB ChannelOrder = iota
	OrderRBG
	OrderGRB
	OrderGBR
	OrderBRG
	OrderBGR
)

var channelOrderNames = []string{"RGB", "RBG", "GRB", "GBR", "BRG", "BGR"}

func (o ChannelOrder) String() string {
	if o < 0 || int(o) >= len(channelOrderNames) {
		return ""
	}
	return channelOrderNames[o]
}

// AllChannelOrders lists every channel permutation.
var AllChannelOrders = []ChannelOrder{OrderRGB, OrderRBG, OrderGRB, OrderGBR, OrderBRG, OrderBGR}

// AlphaPosition places the alpha channel before or after the colour channels.
type AlphaPosition int

const (
	AlphaNone AlphaPosition = iota
	AlphaFirst
	AlphaLast
)

// RGBFormat describes a raw RGB layout.
type RGBFormat struct {
	BitsPerSample int
	Order         ChannelOrder
	Alpha         AlphaPosition
	Layout        Layout
	Endianness    Endianness
}

// NewRGB creates an RGB format.
func NewRGB(bits int, order ChannelOrder, alpha AlphaPosition, layout Layout, endian Endianness) RGBFormat {
	return RGBFormat{
		BitsPerSample: bits,
		Order:         order,
		Alpha:         alpha,
		Layout:        layout,
		Endianness:    normalizeEndian(bits, endian),
	}
}

// Model implements Format.
func (f RGBFormat) Model() ColorModel { return ModelRGB }

// BitDepth implements Format.
func (f RGBFormat) BitDepth() int { return f.BitsPerSample }

// HasAlpha reports whether the format carries an alpha channel.
func (f RGBFormat) HasAlpha() bool { return f.Alpha != AlphaNone }

// Channels returns 3 or 4.
func (f RGBFormat) Channels() int {
	if f.HasAlpha() {
		return 4
	}
	return 3
}

// Validate checks the descriptor invariants.
func (f RGBFormat) Validate() error {
	if f.BitsPerSample < 8 || f.BitsPerSample > MaxBitsPerSample {
		return fmt.Errorf("%w: %d bits per sample outside [8, %d]", ErrInvalidDescriptor, f.BitsPerSample, MaxBitsPerSample)
	}
	if err := validateEndian(f.BitsPerSample, f.Endianness); err != nil {
		return err
	}
	if f.Order < OrderRGB || f.Order > OrderBGR {
		return fmt.Errorf("%w: unknown channel order", ErrInvalidDescriptor)
	}
	if f.Alpha < AlphaNone || f.Alpha > AlphaLast {
		return fmt.Errorf("%w: unknown alpha position", ErrInvalidDescriptor)
	}
	if f.Layout != LayoutPlanar && f.Layout != LayoutPacked {
		return fmt.Errorf("%w: unknown layout", ErrInvalidDescriptor)
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (f RGBFormat) IsValid() bool {
	return f.Validate() == nil
}

// Position returns the index of a channel within a pixel (packed) or the
// plane index (planar), -1 when the format lacks the channel.
func (f RGBFormat) Position(c Component) int {
	if c == ComponentA {
		switch f.Alpha {
		case AlphaFirst:
			return 0
		case AlphaLast:
			return 3
		default:
			return -1
		}
	}
	letter := map[Component]byte{ComponentR: 'R', ComponentG: 'G', ComponentB: 'B'}[c]
	idx := strings.IndexByte(f.Order.String(), letter)
	if idx < 0 {
		return -1
	}
	if f.Alpha == AlphaFirst {
		idx++
	}
	return idx
}

// BytesPerFrame implements Format.
func (f RGBFormat) BytesPerFrame(size Size) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if !size.Valid() {
		return 0, fmt.Errorf("%w: frame size %s", ErrSizeMismatch, size)
	}
	return size.Pixels() * f.Channels() * BytesPerSample(f.BitsPerSample), nil
}

// Planes describes where every channel lives as a strided view.
func (f RGBFormat) Planes(size Size) ([]PlaneInfo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: frame size %s", ErrSizeMismatch, size)
	}
	bps := BytesPerSample(f.BitsPerSample)
	components := []Component{ComponentR, ComponentG, ComponentB}
	if f.HasAlpha() {
		components = append(components, ComponentA)
	}
	planes := make([]PlaneInfo, 0, len(components))
	for _, c := range components {
		pos := f.Position(c)
		p := PlaneInfo{Component: c, Width: size.Width, Height: size.Height}
		if f.Layout == LayoutPlanar {
			p.Offset = pos * size.Pixels() * bps
			p.Stride = size.Width * bps
			p.Step = bps
		} else {
			p.Offset = pos * bps
			p.Step = f.Channels() * bps
			p.Stride = size.Width * p.Step
		}
		planes = append(planes, p)
	}
	return planes, nil
}

var rgbNamePattern = regexp.MustCompile(`^(A?)([RGB]{3})(A?) ([0-9]{1,2})bit( planar)?( BE)?$`)

// Name returns the canonical name, e.g. "RGB 8bit" or "ARGB 10bit planar BE".
func (f RGBFormat) Name() string {
	if !f.IsValid() {
		return InvalidName
	}
	var b strings.Builder
	if f.Alpha == AlphaFirst {
		b.WriteString("A")
	}
	b.WriteString(f.Order.String())
	if f.Alpha == AlphaLast {
		b.WriteString("A")
	}
	fmt.Fprintf(&b, " %dbit", f.BitsPerSample)
	if f.Layout == LayoutPlanar {
		b.WriteString(" planar")
	}
	if f.BitsPerSample > 8 && f.Endianness == BigEndian {
		b.WriteString(" BE")
	}
	return b.String()
}

func (f RGBFormat) String() string {
	return f.Name()
}

// ParseRGB reconstructs an RGB descriptor from its canonical name.
func ParseRGB(name string) (RGBFormat, error) {
	m := rgbNamePattern.FindStringSubmatch(name)
	if m == nil || (m[1] != "" && m[3] != "") {
		return RGBFormat{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	order := -1
	for i, n := range channelOrderNames {
		if n == m[2] {
			order = i
		}
	}
	if order < 0 {
		return RGBFormat{}, fmt.Errorf("%w: unknown channel order %q", ErrInvalidName, m[2])
	}
	alpha := AlphaNone
	if m[1] != "" {
		alpha = AlphaFirst
	} else if m[3] != "" {
		alpha = AlphaLast
	}
	bits, _ := strconv.Atoi(m[4])
	layout := LayoutPacked
	if m[5] != "" {
		layout = LayoutPlanar
	}
	endian := LittleEndian
	if m[6] != "" {
		endian = BigEndian
	}
	f := NewRGB(bits, ChannelOrder(order), alpha, layout, endian)
	if err := f.Validate(); err != nil {
		return RGBFormat{}, fmt.Errorf("%w: %q: %v", ErrInvalidName, name, err)
	}
	return f, nil
}
