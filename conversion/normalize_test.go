package conversion

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/sample"
)

func planeRows(t *testing.T, buf []byte, f pixfmt.YUVFormat, size pixfmt.Size) map[pixfmt.Component][]int {
	t.Helper()
	infos, err := f.Planes(size)
	require.NoError(t, err)
	planes, err := sample.NewPlanes(buf, infos, f.BitsPerSample, f.Endianness)
	require.NoError(t, err)
	rows := make(map[pixfmt.Component][]int)
	for c, p := range planes {
		for y := 0; y < p.Height(); y++ {
			rows[c] = append(rows[c], p.Row(y, nil)...)
		}
	}
	return rows
}

func TestToPlanar_PackedUYVY(t *testing.T) {
	size := pixfmt.Size{Width: 4, Height: 1}
	f := pixfmt.NewPackedYUV(pixfmt.PackingUYVY, 8, false, pixfmt.LittleEndian)

	out, pf, err := ToPlanar([]byte{10, 20, 30, 40, 11, 21, 31, 41}, f, size)
	require.NoError(t, err)
	assert.True(t, pf.IsPlanar())
	assert.Equal(t, pixfmt.PlaneOrderYUV, pf.PlaneOrder)
	assert.Equal(t, []byte{20, 40, 21, 41, 10, 11, 30, 31}, out)
}

func TestToPlanar_Packed444Alpha(t *testing.T) {
	size := pixfmt.Size{Width: 2, Height: 1}
	f := pixfmt.NewPackedYUV(pixfmt.PackingAYUV, 8, false, pixfmt.LittleEndian)

	out, pf, err := ToPlanar([]byte{1, 2, 3, 4, 5, 6, 7, 8}, f, size)
	require.NoError(t, err)
	assert.Equal(t, pixfmt.PlaneOrderYUVA, pf.PlaneOrder)
	assert.Equal(t, []byte{2, 6, 3, 7, 4, 8, 1, 5}, out)
}

func TestToPlanar_BitPacked(t *testing.T) {
	size := pixfmt.Size{Width: 2, Height: 1}
	f := pixfmt.NewPackedYUV(pixfmt.PackingUYVY, 10, true, pixfmt.LittleEndian)

	// U=0x3ff Y0=0x001 V=0x200 Y1=0x155
	out, pf, err := ToPlanar([]byte{0xff, 0xc0, 0x18, 0x01, 0x55}, f, size)
	require.NoError(t, err)
	assert.Equal(t, 10, pf.BitsPerSample)

	rows := planeRows(t, out, pf, size)
	assert.Equal(t, []int{0x001, 0x155}, rows[pixfmt.ComponentY])
	assert.Equal(t, []int{0x3ff}, rows[pixfmt.ComponentU])
	assert.Equal(t, []int{0x200}, rows[pixfmt.ComponentV])
}

func TestToPlanar_BitPacked444(t *testing.T) {
	size := pixfmt.Size{Width: 1, Height: 1}
	// 10-bit Y U V: 30 bits rounded to a 4 byte group.
	f := pixfmt.NewPackedYUV(pixfmt.PackingYUV, 10, true, pixfmt.LittleEndian)
	word := uint32(0x3ff)<<22 | uint32(0x001)<<12 | uint32(0x200)<<2
	group := make([]byte, 4)
	binary.BigEndian.PutUint32(group, word)

	out, pf, err := ToPlanar(group, f, size)
	require.NoError(t, err)
	rows := planeRows(t, out, pf, size)
	assert.Equal(t, []int{0x3ff}, rows[pixfmt.ComponentY])
	assert.Equal(t, []int{0x001}, rows[pixfmt.ComponentU])
	assert.Equal(t, []int{0x200}, rows[pixfmt.ComponentV])
}

func TestToPlanar_V210(t *testing.T) {
	size := pixfmt.Size{Width: 6, Height: 2}
	stride := pixfmt.V210Stride(size.Width)
	buf := make([]byte, stride*size.Height)

	word := func(a, b, c uint32) uint32 { return a | b<<10 | c<<20 }
	for y := 0; y < size.Height; y++ {
		k := uint32(100 * y)
		row := buf[y*stride:]
		binary.LittleEndian.PutUint32(row[0:], word(k+1, k+2, k+3))
		binary.LittleEndian.PutUint32(row[4:], word(k+4, k+5, k+6))
		binary.LittleEndian.PutUint32(row[8:], word(k+7, k+8, k+9))
		binary.LittleEndian.PutUint32(row[12:], word(k+10, k+11, k+12))
	}

	out, pf, err := ToPlanar(buf, pixfmt.V210(), size)
	require.NoError(t, err)
	assert.Equal(t, "YUV 4:2:2 10-bit LE", pf.Name())

	rows := planeRows(t, out, pf, size)
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 102, 104, 106, 108, 110, 112}, rows[pixfmt.ComponentY])
	assert.Equal(t, []int{1, 5, 9, 101, 105, 109}, rows[pixfmt.ComponentU])
	assert.Equal(t, []int{3, 7, 11, 103, 107, 111}, rows[pixfmt.ComponentV])
}

func TestToPlanar_PlanarPassThrough(t *testing.T) {
	size := pixfmt.Size{Width: 2, Height: 2}
	f := pixfmt.NewPlanarYUV(pixfmt.Subsampling420, 8, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian)
	buf := []byte{1, 2, 3, 4, 5, 6, 99}

	out, pf, err := ToPlanar(buf, f, size)
	require.NoError(t, err)
	assert.Equal(t, f, pf)
	assert.Equal(t, buf[:6], out)
}

func TestToPlanar_Errors(t *testing.T) {
	size := pixfmt.Size{Width: 4, Height: 1}
	f := pixfmt.NewPackedYUV(pixfmt.PackingUYVY, 8, false, pixfmt.LittleEndian)

	_, _, err := ToPlanar(make([]byte, 7), f, size)
	assert.ErrorIs(t, err, pixfmt.ErrBufferTooShort)

	bad := f
	bad.Subsampling = pixfmt.Subsampling411
	_, _, err = ToPlanar(make([]byte, 64), bad, size)
	assert.ErrorIs(t, err, pixfmt.ErrUnsupportedCombination)
}
