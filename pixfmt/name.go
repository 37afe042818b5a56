package pixfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// InvalidName is the name of every descriptor that fails validation.
const InvalidName = "Invalid"

const v210Name = "V210"

var yuvNamePattern = regexp.MustCompile(
	`^([YUVA]{3,6}(?:\(IL\))?) (4:[4210]:[4210]) ([0-9]{1,2})-bit(?: ([BL]E))?(?: (packed-B|packed))?(?: Cx([0-9]+))?(?: Cy([0-9]+))?$`)

// Name returns the canonical, round-trippable name, for example
// "YUV 4:2:0 8-bit", "UYVY 4:2:2 10-bit LE packed-B" or "YUV(IL) 4:2:0 8-bit Cy0".
func (f YUVFormat) Name() string {
	if !f.IsValid() {
		return InvalidName
	}
	if f.Predefined == PredefinedV210 {
		return v210Name
	}

	var b strings.Builder
	if f.Layout == LayoutPacked {
		b.WriteString(f.PackingOrder.String())
	} else {
		b.WriteString(f.PlaneOrder.String())
		if f.UVInterleaved {
			b.WriteString("(IL)")
		}
	}
	fmt.Fprintf(&b, " %s %d-bit", f.Subsampling, f.BitsPerSample)
	if f.BitsPerSample > 8 {
		b.WriteString(" " + f.Endianness.String())
	}
	if f.Layout == LayoutPacked {
		if f.BytePacking {
			b.WriteString(" packed-B")
		} else {
			b.WriteString(" packed")
		}
	}
	def := f.Subsampling.DefaultChromaOffset()
	if f.ChromaOffset.X != def.X {
		fmt.Fprintf(&b, " Cx%d", f.ChromaOffset.X)
	}
	if f.ChromaOffset.Y != def.Y {
		fmt.Fprintf(&b, " Cy%d", f.ChromaOffset.Y)
	}
	return b.String()
}

func (f YUVFormat) String() string {
	return f.Name()
}

// ParseYUV reconstructs a descriptor from its canonical name.
// Unparseable or invalid names yield ErrInvalidName; nothing is guessed.
func ParseYUV(name string) (YUVFormat, error) {
	if name == v210Name {
		return V210(), nil
	}
	m := yuvNamePattern.FindStringSubmatch(name)
	if m == nil {
		return YUVFormat{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	subsampling := ParseSubsampling(m[2])
	if subsampling == SubsamplingUnknown {
		return YUVFormat{}, fmt.Errorf("%w: unknown subsampling %q", ErrInvalidName, m[2])
	}
	bits, _ := strconv.Atoi(m[3])
	endian := LittleEndian
	if m[4] == "BE" {
		endian = BigEndian
	}

	var f YUVFormat
	order := m[1]
	if m[5] != "" {
		packing, ok := lookupPackingOrder(order)
		if !ok {
			return YUVFormat{}, fmt.Errorf("%w: unknown packing order %q", ErrInvalidName, order)
		}
		f = NewPackedYUV(packing, bits, m[5] == "packed-B", endian)
		f.Subsampling = subsampling
		f.ChromaOffset = subsampling.DefaultChromaOffset()
	} else {
		interleaved := strings.HasSuffix(order, "(IL)")
		order = strings.TrimSuffix(order, "(IL)")
		planeOrder, ok := lookupPlaneOrder(order)
		if !ok {
			return YUVFormat{}, fmt.Errorf("%w: unknown plane order %q", ErrInvalidName, order)
		}
		f = NewPlanarYUV(subsampling, bits, planeOrder, endian)
		f.UVInterleaved = interleaved
	}

	if m[6] != "" {
		f.ChromaOffset.X, _ = strconv.Atoi(m[6])
	}
	if m[7] != "" {
		f.ChromaOffset.Y, _ = strconv.Atoi(m[7])
	}
	if err := f.Validate(); err != nil {
		return YUVFormat{}, fmt.Errorf("%w: %q: %v", ErrInvalidName, name, err)
	}
	return f, nil
}

func lookupPlaneOrder(name string) (PlaneOrder, bool) {
	for o, n := range planeOrderNames {
		if n == name {
			return o, true
		}
	}
	return 0, false
}

func lookupPackingOrder(name string) (PackingOrder, bool) {
	for o, n := range packingOrderNames {
		if n == name {
			return o, true
		}
	}
	return 0, false
}

// Parse accepts either a YUV or an RGB format name.
func Parse(name string) (Format, error) {
	if f, err := ParseYUV(name); err == nil {
		return f, nil
	}
	if f, err := ParseRGB(name); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
}
