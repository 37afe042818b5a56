package pixfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceChromaSize spells out the chroma plane size of every subsampling.
func referenceChromaSize(s Subsampling, w, h int) int {
	switch s {
	case Subsampling444:
		return w * h
	case Subsampling422:
		return (w / 2) * h
	case Subsampling420:
		return (w / 2) * (h / 2)
	case Subsampling440:
		return w * (h / 2)
	case Subsampling410:
		return (w / 4) * (h / 4)
	case Subsampling411:
		return (w / 4) * h
	default:
		return 0
	}
}

func referenceBytes(f YUVFormat, w, h int) int {
	bps := 1
	if f.BitsPerSample > 8 {
		bps = 2
	}
	luma := w * h * bps
	chroma := 2 * referenceChromaSize(f.Subsampling, w, h) * bps
	alpha := 0
	if f.HasAlpha() {
		alpha = w * h * bps
	}
	return luma + chroma + alpha
}

func TestBytesPerFrame_MatchesReferenceModel(t *testing.T) {
	sizes := []Size{{Width: 16, Height: 16}, {Width: 176, Height: 144}, {Width: 64, Height: 32}}

	for _, s := range AllSubsamplings {
		for _, bits := range []int{8, 10, 16} {
			for _, size := range sizes {
				f := NewPlanarYUV(s, bits, PlaneOrderYUV, LittleEndian)
				got, err := f.BytesPerFrame(size)
				require.NoError(t, err, f.Name())
				assert.Equal(t, referenceBytes(f, size.Width, size.Height), got, "%s %s", f.Name(), size)

				withAlpha := NewPlanarYUV(s, bits, PlaneOrderYVUA, BigEndian)
				got, err = withAlpha.BytesPerFrame(size)
				require.NoError(t, err)
				assert.Equal(t, referenceBytes(withAlpha, size.Width, size.Height), got, withAlpha.Name())

				for _, packing := range PackingOrdersFor(s) {
					packed := NewPackedYUV(packing, bits, false, LittleEndian)
					got, err := packed.BytesPerFrame(size)
					require.NoError(t, err)
					assert.Equal(t, referenceBytes(packed, size.Width, size.Height), got, packed.Name())
				}
			}
		}
	}
}

func TestBytesPerFrame_CIF420(t *testing.T) {
	f := NewPlanarYUV(Subsampling420, 8, PlaneOrderYUV, LittleEndian)
	got, err := f.BytesPerFrame(Size{Width: 176, Height: 144})
	require.NoError(t, err)
	assert.Equal(t, 176*144+2*(88*72), got)
	assert.Equal(t, 38016, got)
}

func TestBytesPerFrame_BitPacked(t *testing.T) {
	tests := []struct {
		name   string
		format YUVFormat
		size   Size
		want   int
	}{
		{"422 10-bit", NewPackedYUV(PackingUYVY, 10, true, LittleEndian), Size{Width: 4, Height: 2}, 5 * 2 * 2},
		{"422 12-bit", NewPackedYUV(PackingYUYV, 12, true, LittleEndian), Size{Width: 2, Height: 1}, 6},
		{"444 10-bit three samples", NewPackedYUV(PackingYUV, 10, true, LittleEndian), Size{Width: 2, Height: 2}, 4 * 4},
		{"444 10-bit four samples", NewPackedYUV(PackingAYUV, 10, true, LittleEndian), Size{Width: 2, Height: 2}, 5 * 4},
		{"444 8-bit degenerates to byte aligned", NewPackedYUV(PackingYVU, 8, true, LittleEndian), Size{Width: 3, Height: 3}, 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.format.BytesPerFrame(tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBytesPerFrame_V210(t *testing.T) {
	got, err := V210().BytesPerFrame(Size{Width: 1920, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, 2*(1920/6*16), got)

	// Rows are padded to 48 pixels.
	got, err = V210().BytesPerFrame(Size{Width: 50, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, 96/6*16, got)
}

func TestBytesPerFrame_Errors(t *testing.T) {
	packed420 := YUVFormat{Subsampling: Subsampling420, BitsPerSample: 8, Layout: LayoutPacked, BytePacking: true}
	_, err := packed420.BytesPerFrame(Size{Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	_, err = DefaultYUV().BytesPerFrame(Size{})
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = DefaultYUV().WithBitsPerSample(17).BytesPerFrame(Size{Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestPlanes_Planar(t *testing.T) {
	f := NewPlanarYUV(Subsampling420, 10, PlaneOrderYVU, LittleEndian)
	planes, err := f.Planes(Size{Width: 8, Height: 4})
	require.NoError(t, err)
	require.Len(t, planes, 3)

	y, _ := PlaneFor(planes, ComponentY)
	v, _ := PlaneFor(planes, ComponentV)
	u, _ := PlaneFor(planes, ComponentU)
	assert.Equal(t, PlaneInfo{Component: ComponentY, Offset: 0, Width: 8, Height: 4, Stride: 16, Step: 2}, y)
	assert.Equal(t, 64, v.Offset)
	assert.Equal(t, 64+16, u.Offset)
	assert.Equal(t, 8, u.Stride)

	total, _ := f.BytesPerFrame(Size{Width: 8, Height: 4})
	assert.Equal(t, total, u.End(2))
}

func TestPlanes_SemiPlanar(t *testing.T) {
	f := NewSemiPlanarYUV(Subsampling420, 8, PlaneOrderYUV, LittleEndian)
	planes, err := f.Planes(Size{Width: 4, Height: 4})
	require.NoError(t, err)

	u, _ := PlaneFor(planes, ComponentU)
	v, _ := PlaneFor(planes, ComponentV)
	assert.Equal(t, 16, u.Offset)
	assert.Equal(t, 17, v.Offset)
	assert.Equal(t, 2, u.Step)
	assert.Equal(t, 4, u.Stride)
	assert.Equal(t, 24, v.End(1))
}

func TestPlanes_Packed(t *testing.T) {
	tests := []struct {
		packing    PackingOrder
		y, u, v, a int
	}{
		{PackingUYVY, 1, 0, 2, -1},
		{PackingVYUY, 1, 2, 0, -1},
		{PackingYUYV, 0, 1, 3, -1},
		{PackingYVYU, 0, 3, 1, -1},
		{PackingYUV, 0, 1, 2, -1},
		{PackingYVU, 0, 2, 1, -1},
		{PackingAYUV, 1, 2, 3, 0},
		{PackingYUVA, 0, 1, 2, 3},
		{PackingVUYA, 2, 1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.packing.String(), func(t *testing.T) {
			f := NewPackedYUV(tt.packing, 8, false, LittleEndian)
			planes, err := f.Planes(Size{Width: 4, Height: 2})
			require.NoError(t, err)

			y, _ := PlaneFor(planes, ComponentY)
			u, _ := PlaneFor(planes, ComponentU)
			v, _ := PlaneFor(planes, ComponentV)
			assert.Equal(t, tt.y, y.Offset)
			assert.Equal(t, tt.u, u.Offset)
			assert.Equal(t, tt.v, v.Offset)
			a, ok := PlaneFor(planes, ComponentA)
			if tt.a < 0 {
				assert.False(t, ok)
			} else {
				assert.Equal(t, tt.a, a.Offset)
			}
		})
	}
}

func TestPlanes_RejectsBitPacked(t *testing.T) {
	_, err := NewPackedYUV(PackingUYVY, 10, true, LittleEndian).Planes(Size{Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	_, err = V210().Planes(Size{Width: 6, Height: 1})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}
