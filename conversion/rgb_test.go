package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
)

func TestConvertRGB(t *testing.T) {
	one := pixfmt.Size{Width: 1, Height: 1}

	tests := []struct {
		name     string
		format   pixfmt.RGBFormat
		buf      []byte
		settings func(*Settings)
		want     [4]uint8 // B, G, R, A
	}{
		{
			name:   "BGR packed",
			format: pixfmt.NewRGB(8, pixfmt.OrderBGR, pixfmt.AlphaNone, pixfmt.LayoutPacked, pixfmt.LittleEndian),
			buf:    []byte{10, 20, 30},
			want:   [4]uint8{10, 20, 30, 255},
		},
		{
			name:   "10-bit little endian reduced to 8 bits",
			format: pixfmt.NewRGB(10, pixfmt.OrderRGB, pixfmt.AlphaNone, pixfmt.LayoutPacked, pixfmt.LittleEndian),
			buf:    []byte{0xff, 0x03, 0x00, 0x02, 0x04, 0x00},
			want:   [4]uint8{1, 128, 255, 255},
		},
		{
			name:   "alpha ignored by default",
			format: pixfmt.NewRGB(8, pixfmt.OrderRGB, pixfmt.AlphaLast, pixfmt.LayoutPacked, pixfmt.LittleEndian),
			buf:    []byte{200, 100, 50, 0},
			want:   [4]uint8{50, 100, 200, 255},
		},
		{
			name:     "premultiplied alpha",
			format:   pixfmt.NewRGB(8, pixfmt.OrderRGB, pixfmt.AlphaFirst, pixfmt.LayoutPacked, pixfmt.LittleEndian),
			buf:      []byte{51, 200, 100, 50},
			settings: func(s *Settings) { s.IncludeAlpha, s.PremultiplyAlpha = true, true },
			want:     [4]uint8{10, 20, 40, 51},
		},
		{
			name:     "limited range",
			format:   pixfmt.DefaultRGB(),
			buf:      []byte{16, 235, 126},
			settings: func(s *Settings) { s.LimitedRange = true },
			want:     [4]uint8{128, 255, 0, 255},
		},
		{
			name:     "inverted red",
			format:   pixfmt.DefaultRGB(),
			buf:      []byte{100, 0, 0},
			settings: func(s *Settings) { s.Channels[0].Invert = true },
			want:     [4]uint8{0, 0, 156, 255},
		},
		{
			name:     "green grey display",
			format:   pixfmt.NewRGB(8, pixfmt.OrderGBR, pixfmt.AlphaNone, pixfmt.LayoutPlanar, pixfmt.LittleEndian),
			buf:      []byte{77, 1, 2},
			settings: func(s *Settings) { s.Display = DisplayGreen },
			want:     [4]uint8{77, 77, 77, 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			if tt.settings != nil {
				tt.settings(&s)
			}
			r, err := ConvertRGB(tt.buf, tt.format, one, s)
			require.NoError(t, err)
			b, g, red, a := r.BGRA(0, 0)
			assert.Equal(t, tt.want, [4]uint8{b, g, red, a})
		})
	}
}

func TestConvertRGB_PlanarLayout(t *testing.T) {
	size := pixfmt.Size{Width: 2, Height: 1}
	f := pixfmt.NewRGB(16, pixfmt.OrderRGB, pixfmt.AlphaNone, pixfmt.LayoutPlanar, pixfmt.BigEndian)
	buf := []byte{
		0x10, 0x00, 0x20, 0x00, // R
		0x30, 0x00, 0x40, 0x00, // G
		0x50, 0x00, 0x60, 0x00, // B
	}
	r, err := ConvertRGB(buf, f, size, DefaultSettings())
	require.NoError(t, err)

	b, g, red, _ := r.BGRA(1, 0)
	assert.Equal(t, [3]uint8{0x60, 0x40, 0x20}, [3]uint8{b, g, red})
}

func TestConvertRGB_Errors(t *testing.T) {
	size := pixfmt.Size{Width: 2, Height: 2}

	_, err := ConvertRGB(make([]byte, 11), pixfmt.DefaultRGB(), size, DefaultSettings())
	assert.ErrorIs(t, err, pixfmt.ErrBufferTooShort)

	s := DefaultSettings()
	s.Display = DisplayAlpha
	_, err = ConvertRGB(make([]byte, 12), pixfmt.DefaultRGB(), size, s)
	assert.ErrorIs(t, err, pixfmt.ErrUnsupportedCombination)

	_, err = ConvertRGB(make([]byte, 12), pixfmt.NewRGB(7, pixfmt.OrderRGB, pixfmt.AlphaNone, pixfmt.LayoutPacked, pixfmt.LittleEndian), size, DefaultSettings())
	assert.ErrorIs(t, err, pixfmt.ErrInvalidDescriptor)
}
