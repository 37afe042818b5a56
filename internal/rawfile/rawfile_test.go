package rawfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
)

func sequence(frames, frameSize int) []byte {
	data := make([]byte, frames*frameSize)
	for i := range data {
		data[i] = byte(i / frameSize)
	}
	return data
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeCompressed(t *testing.T, name string, data []byte) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return writeFile(t, name, buf.Bytes())
}

func TestOpen(t *testing.T) {
	data := sequence(3, 384)
	tests := []struct {
		name       string
		path       string
		compressed bool
	}{
		{"mapped", writeFile(t, "clip_16x16.yuv", data), false},
		{"compressed", writeCompressed(t, "clip_16x16.yuv.zst", data), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Open(tt.path)
			require.NoError(t, err)
			defer f.Close()

			assert.Equal(t, int64(len(data)), f.Size())
			assert.Equal(t, data, f.Bytes())
			assert.Equal(t, 3, f.Frames(384))
			assert.Equal(t, "clip_16x16.yuv", filepath.Base(f.NamePath()))

			frame, err := f.Frame(2, 384)
			require.NoError(t, err)
			assert.Len(t, frame, 384)
			assert.Equal(t, byte(2), frame[0])
			assert.Equal(t, byte(2), frame[383])
		})
	}
}

func TestFrameOf(t *testing.T) {
	f, err := Open(writeFile(t, "clip.yuv", sequence(2, 384)))
	require.NoError(t, err)
	defer f.Close()

	size := pixfmt.Size{Width: 16, Height: 16}
	frame, err := f.FrameOf(pixfmt.DefaultYUV(), size, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(1), frame[0])

	_, err = f.FrameOf(pixfmt.DefaultYUV(), size, 2)
	assert.ErrorIs(t, err, ErrFrameOutOfRange)

	_, err = f.FrameOf(pixfmt.DefaultYUV(), pixfmt.Size{}, 0)
	assert.ErrorIs(t, err, pixfmt.ErrSizeMismatch)
}

func TestFrame_Errors(t *testing.T) {
	f, err := Open(writeFile(t, "clip.yuv", sequence(1, 100)))
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		name  string
		index int
		bpf   int
		want  error
	}{
		{"negative index", -1, 100, ErrFrameOutOfRange},
		{"past the end", 1, 100, ErrFrameOutOfRange},
		{"partial frame", 0, 101, ErrFrameOutOfRange},
		{"zero frame size", 0, 0, pixfmt.ErrSizeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Frame(tt.index, tt.bpf)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.Frames(0))
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(writeFile(t, "empty.yuv", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yuv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(writeFile(t, "broken.yuv.zst", []byte("not zstd")))
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	f, err := Open(writeFile(t, "clip.yuv", sequence(1, 16)))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Nil(t, f.Bytes())
	assert.NoError(t, f.Close())
}
