package difference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
)

func flipped(at pixfmt.Component, fx, fy int) func(pixfmt.Component, int, int) int {
	return func(c pixfmt.Component, x, y int) int {
		v := gradient(c, x, y)
		if c == at && x == fx && y == fy {
			v ^= 1
		}
		return v
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		size  pixfmt.Size
		fill  func(pixfmt.Component, int, int) int
		found bool
		want  Location
	}{
		{
			name: "identical",
			size: pixfmt.Size{Width: 64, Height: 64},
			fill: gradient,
		},
		{
			name:  "luma sample in first CTU",
			size:  pixfmt.Size{Width: 64, Height: 64},
			fill:  flipped(pixfmt.ComponentY, 10, 10),
			found: true,
			want:  Location{CTU: 0, X: 8, Y: 8, PartIndex: 12},
		},
		{
			name:  "luma sample in second CTU",
			size:  pixfmt.Size{Width: 128, Height: 64},
			fill:  flipped(pixfmt.ComponentY, 70, 3),
			found: true,
			want:  Location{CTU: 1, X: 68, Y: 0, PartIndex: 1},
		},
		{
			name:  "chroma sample marks its co-located block",
			size:  pixfmt.Size{Width: 64, Height: 64},
			fill:  flipped(pixfmt.ComponentU, 10, 10),
			found: true,
			want:  Location{CTU: 0, X: 20, Y: 20, PartIndex: 51},
		},
		{
			name:  "partial CTU at the frame edge",
			size:  pixfmt.Size{Width: 72, Height: 8},
			fill:  flipped(pixfmt.ComponentY, 71, 7),
			found: true,
			want:  Location{CTU: 1, X: 68, Y: 4, PartIndex: 3},
		},
		{
			name:  "blocks outside the frame keep their part index",
			size:  pixfmt.Size{Width: 8, Height: 16},
			fill:  flipped(pixfmt.ComponentY, 1, 9),
			found: true,
			want:  Location{CTU: 0, X: 0, Y: 8, PartIndex: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createTestFrame(t, yuv420, tt.size, gradient)
			b := createTestFrame(t, yuv420, tt.size, tt.fill)
			res, err := Compute(a, b, DefaultOptions())
			require.NoError(t, err)

			loc, found, err := res.FirstDifference()
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, loc)
			}
		})
	}
}

func TestLocate_Errors(t *testing.T) {
	size := pixfmt.Size{Width: 8, Height: 8}
	_, _, err := Locate(make([]byte, 10), yuv420, size)
	assert.ErrorIs(t, err, pixfmt.ErrBufferTooShort)

	packed := pixfmt.NewPackedYUV(pixfmt.PackingUYVY, 8, false, pixfmt.LittleEndian)
	_, _, err = Locate(make([]byte, 128), packed, size)
	assert.ErrorIs(t, err, pixfmt.ErrUnsupportedCombination)
}
