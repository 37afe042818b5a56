// Package rawfile gives the command line tool access to raw frame sequences.
//
// Uncompressed files are memory mapped read-only. Files ending in .zst are
// decompressed into memory when opened.
package rawfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/opd-ai/rawview/pixfmt"
)

// ErrEmptyFile indicates a raw file without any content.
var ErrEmptyFile = errors.New("raw file is empty")

// ErrFrameOutOfRange indicates a frame index past the end of the file.
var ErrFrameOutOfRange = errors.New("frame index out of range")

// CompressedSuffix marks zstd compressed raw sequences.
const CompressedSuffix = ".zst"

// File is an opened raw sequence. It is safe for concurrent readers; Close
// must not race with them.
type File struct {
	path       string
	data       []byte
	mapped     bool
	compressed bool
}

// Open maps or decompresses the file at path.
func Open(path string) (*File, error) {
	log := newLogger("Open").WithField("path", path)
	log.Entry("opening raw file")
	defer log.Exit()

	path = filepath.Clean(path)
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	f := &File{path: path}
	if strings.HasSuffix(strings.ToLower(path), CompressedSuffix) {
		f.compressed = true
		f.data, err = decompress(fh)
		if err != nil {
			log.WithError(err, "decompress").Error("failed to decompress raw file")
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		if len(f.data) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
		}
	} else {
		f.data, f.mapped, err = mapFile(fh, info.Size())
		if err != nil {
			log.WithError(err, "mmap").Error("failed to map raw file")
			return nil, fmt.Errorf("map %s: %w", path, err)
		}
	}

	log.WithField("size", len(f.data)).
		WithField("mapped", f.mapped).
		WithField("compressed", f.compressed).
		Debug("raw file opened")
	return f, nil
}

func decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// Path returns the cleaned path the file was opened with.
func (f *File) Path() string { return f.path }

// NamePath returns the path with a compression suffix removed, which is the
// name format guessing should look at.
func (f *File) NamePath() string {
	if f.compressed {
		return f.path[:len(f.path)-len(CompressedSuffix)]
	}
	return f.path
}

// Size returns the uncompressed length in bytes.
func (f *File) Size() int64 { return int64(len(f.data)) }

// Bytes returns the whole uncompressed content. The slice is invalid after Close.
func (f *File) Bytes() []byte { return f.data }

// Frames returns the number of whole frames of bytesPerFrame bytes.
func (f *File) Frames(bytesPerFrame int) int {
	if bytesPerFrame <= 0 {
		return 0
	}
	return len(f.data) / bytesPerFrame
}

// Frame returns frame index of bytesPerFrame bytes without copying.
func (f *File) Frame(index, bytesPerFrame int) ([]byte, error) {
	if bytesPerFrame <= 0 {
		return nil, fmt.Errorf("%w: %d bytes per frame", pixfmt.ErrSizeMismatch, bytesPerFrame)
	}
	n := f.Frames(bytesPerFrame)
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrFrameOutOfRange, index, n)
	}
	start := index * bytesPerFrame
	return f.data[start : start+bytesPerFrame], nil
}

// FrameOf returns frame index for a pixel format and frame size.
func (f *File) FrameOf(format pixfmt.Format, size pixfmt.Size, index int) ([]byte, error) {
	bpf, err := format.BytesPerFrame(size)
	if err != nil {
		return nil, err
	}
	return f.Frame(index, bpf)
}

// Close releases the mapping or buffer.
func (f *File) Close() error {
	log := newLogger("Close").WithField("path", f.path)
	if f.data == nil {
		return nil
	}
	var err error
	if f.mapped {
		err = unmap(f.data)
		if err != nil {
			log.WithError(err, "munmap").Warn("failed to unmap raw file")
		}
	}
	f.data = nil
	f.mapped = false
	return err
}
