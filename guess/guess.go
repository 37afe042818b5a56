package guess

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rawview/pixfmt"
)

// ErrUnknownSize is returned when no frame size was given and none could be
// read from the file or directory name.
var ErrUnknownSize = errors.New("frame size unknown")

// rgbExtensions select the RGB guesser.
var rgbExtensions = []string{"rgb", "rbg", "grb", "gbr", "brg", "bgr", "argb", "abgr", "rgba", "bgra", "cmyk"}

// Request describes a raw file to guess for. Size, BitDepth and Packed
// override what the name says when set.
type Request struct {
	Path     string
	FileSize int64
	Size     pixfmt.Size
	BitDepth int
	Packed   bool
}

// Result is a proposed interpretation of a raw file.
type Result struct {
	Format    pixfmt.Format
	Size      pixfmt.Size
	FrameRate int
	// Matched is false when Format is only the default for its colour model.
	Matched bool
}

// Frames returns how many whole frames a file of fileSize bytes holds.
func (r Result) Frames(fileSize int64) int {
	bpf, err := r.Format.BytesPerFrame(r.Size)
	if err != nil || bpf == 0 {
		return 0
	}
	return int(fileSize / int64(bpf))
}

// Format guesses the frame size and pixel format of a raw file.
func Format(req Request) (Result, error) {
	log := newLogger("Format").WithField("path", req.Path)
	log.Entry("guessing file format")
	defer log.Exit()

	hints := FromFilename(req.Path)
	res := Result{Size: req.Size, FrameRate: hints.FrameRate}
	if !res.Size.Valid() {
		res.Size = hints.Size
	}
	if !res.Size.Valid() {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownSize, req.Path)
	}
	bitDepth := req.BitDepth
	if bitDepth == 0 {
		bitDepth = hints.BitDepth
	}

	if IsRGBName(req.Path) {
		f, ok := GuessRGB(RGBRequest{Path: req.Path, Size: res.Size, FileSize: req.FileSize})
		res.Format, res.Matched = f, ok
	} else {
		f, ok := GuessYUV(YUVRequest{
			Path:     req.Path,
			Size:     res.Size,
			FileSize: req.FileSize,
			BitDepth: bitDepth,
			Packed:   req.Packed,
		})
		if !ok {
			f = pixfmt.DefaultYUV()
		}
		res.Format, res.Matched = f, ok
	}

	log.WithFields(logrus.Fields{
		"format":  res.Format.Name(),
		"size":    res.Size.String(),
		"matched": res.Matched,
	}).Info("file format guessed")
	return res, nil
}

// IsRGBName reports whether a path looks like an RGB file, either by its
// extension or by an RGB format name between delimiters.
func IsRGBName(path string) bool {
	if slices.Contains(rgbExtensions, extension(path)) {
		return true
	}
	name := baseName(path)
	return name != "" && rgbIndicator.MatchString(name)
}
