package pixfmt

import "fmt"

// V210 groups six pixels into 16 bytes and pads each row to 48 pixels.
const (
	v210PixelsPerGroup = 6
	v210BytesPerGroup  = 16
	v210RowAlignment   = 48
)

// BytesPerFrame returns the number of bytes one frame of the given size occupies.
func (f YUVFormat) BytesPerFrame(size Size) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if !size.Valid() {
		return 0, fmt.Errorf("%w: frame size %s", ErrSizeMismatch, size)
	}
	w, h := size.Width, size.Height

	if f.Predefined == PredefinedV210 {
		return V210Stride(w) * h, nil
	}

	if f.Layout == LayoutPacked && f.BytePacking {
		switch f.Subsampling {
		case Subsampling422:
			// Two pixels share one group of Y0 U Y1 V.
			return ceilDiv(4*f.BitsPerSample, 8) * (w / 2) * h, nil
		case Subsampling444:
			return ceilDiv(f.PackingOrder.SamplesPerGroup()*f.BitsPerSample, 8) * w * h, nil
		default:
			return 0, fmt.Errorf("%w: bit packing for %s", ErrUnsupportedCombination, f.Subsampling)
		}
	}

	bps := f.BytesPerSample()
	total := w * h * bps
	if f.Subsampling.HasChroma() {
		sh, sv := f.Subsampling.Factors()
		total += 2 * (w / sh) * (h / sv) * bps
	}
	if f.HasAlpha() {
		total += w * h * bps
	}
	return total, nil
}

// V210Stride returns the byte length of one V210 row of the given width.
func V210Stride(width int) int {
	padded := ceilDiv(width, v210RowAlignment) * v210RowAlignment
	return padded / v210PixelsPerGroup * v210BytesPerGroup
}

// BitPackedGroupBytes returns the byte length of one bit packed group.
func (f YUVFormat) BitPackedGroupBytes() int {
	if f.Subsampling == Subsampling422 {
		return ceilDiv(4*f.BitsPerSample, 8)
	}
	return ceilDiv(f.PackingOrder.SamplesPerGroup()*f.BitsPerSample, 8)
}

// Planes describes where every component of a byte aligned frame lives.
//
// Planar, semi-planar and byte aligned packed layouts are all expressible as
// strided views. Bit packed layouts and V210 are not and return
// ErrUnsupportedCombination; FormatNormalizer unpacks those.
func (f YUVFormat) Planes(size Size) ([]PlaneInfo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: frame size %s", ErrSizeMismatch, size)
	}
	if f.Predefined != PredefinedNone || (f.Layout == LayoutPacked && f.BytePacking) {
		return nil, fmt.Errorf("%w: %s has no byte aligned sample planes", ErrUnsupportedCombination, f.Name())
	}
	if f.Layout == LayoutPacked {
		return f.packedPlanes(size), nil
	}
	return f.planarPlanes(size), nil
}

func (f YUVFormat) planarPlanes(size Size) []PlaneInfo {
	bps := f.BytesPerSample()
	w, h := size.Width, size.Height
	planes := []PlaneInfo{{
		Component: ComponentY, Offset: 0, Width: w, Height: h, Stride: w * bps, Step: bps,
	}}
	offset := w * h * bps

	if f.Subsampling.HasChroma() {
		sh, sv := f.Subsampling.Factors()
		cw, ch := w/sh, h/sv
		first, second := ComponentU, ComponentV
		if f.PlaneOrder.VFirst() {
			first, second = ComponentV, ComponentU
		}
		if f.UVInterleaved {
			planes = append(planes,
				PlaneInfo{Component: first, Offset: offset, Width: cw, Height: ch, Stride: 2 * cw * bps, Step: 2 * bps},
				PlaneInfo{Component: second, Offset: offset + bps, Width: cw, Height: ch, Stride: 2 * cw * bps, Step: 2 * bps},
			)
		} else {
			planes = append(planes,
				PlaneInfo{Component: first, Offset: offset, Width: cw, Height: ch, Stride: cw * bps, Step: bps},
				PlaneInfo{Component: second, Offset: offset + cw*ch*bps, Width: cw, Height: ch, Stride: cw * bps, Step: bps},
			)
		}
		offset += 2 * cw * ch * bps
	}

	if f.PlaneOrder.HasAlpha() {
		planes = append(planes, PlaneInfo{
			Component: ComponentA, Offset: offset, Width: w, Height: h, Stride: w * bps, Step: bps,
		})
	}
	return planes
}

// Positions returns the sample index of Y, U, V and A inside one group,
// -1 when absent. For 4:2:2 the second luma sample sits two positions after the first.
func (p PackingOrder) Positions() (y, u, v, a int) {
	switch p {
	case PackingYUV:
		return 0, 1, 2, -1
	case PackingYVU:
		return 0, 2, 1, -1
	case PackingAYUV:
		return 1, 2, 3, 0
	case PackingYUVA:
		return 0, 1, 2, 3
	case PackingVUYA:
		return 2, 1, 0, 3
	case PackingUYVY:
		return 1, 0, 2, -1
	case PackingVYUY:
		return 1, 2, 0, -1
	case PackingYUYV:
		return 0, 1, 3, -1
	case PackingYVYU:
		return 0, 3, 1, -1
	}
	return -1, -1, -1, -1
}

func (f YUVFormat) packedPlanes(size Size) []PlaneInfo {
	bps := f.BytesPerSample()
	w, h := size.Width, size.Height
	groupLen := f.PackingOrder.SamplesPerGroup() * bps
	oy, ou, ov, oa := f.PackingOrder.Positions()

	if f.Subsampling == Subsampling422 {
		stride := (w / 2) * groupLen
		return []PlaneInfo{
			{Component: ComponentY, Offset: oy * bps, Width: w, Height: h, Stride: stride, Step: 2 * bps},
			{Component: ComponentU, Offset: ou * bps, Width: w / 2, Height: h, Stride: stride, Step: groupLen},
			{Component: ComponentV, Offset: ov * bps, Width: w / 2, Height: h, Stride: stride, Step: groupLen},
		}
	}

	stride := w * groupLen
	planes := []PlaneInfo{
		{Component: ComponentY, Offset: oy * bps, Width: w, Height: h, Stride: stride, Step: groupLen},
		{Component: ComponentU, Offset: ou * bps, Width: w, Height: h, Stride: stride, Step: groupLen},
		{Component: ComponentV, Offset: ov * bps, Width: w, Height: h, Stride: stride, Step: groupLen},
	}
	if oa >= 0 {
		planes = append(planes, PlaneInfo{
			Component: ComponentA, Offset: oa * bps, Width: w, Height: h, Stride: stride, Step: groupLen,
		})
	}
	return planes
}

// PlaneFor returns the plane of one component from a Planes result.
func PlaneFor(planes []PlaneInfo, c Component) (PlaneInfo, bool) {
	for _, p := range planes {
		if p.Component == c {
			return p, true
		}
	}
	return PlaneInfo{}, false
}
