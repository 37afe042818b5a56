// Package guess derives likely frame sizes and pixel formats from file names.
//
// Everything here is best effort. Results are proposals for a user to
// confirm; the conversion packages never call into guess.
package guess

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rawview/pixfmt"
)

// Hints are the properties found in a file or directory name. Zero values
// mean nothing was found.
type Hints struct {
	Size      pixfmt.Size
	FrameRate int
	BitDepth  int
}

var (
	sizeRateDepthPattern = regexp.MustCompile(`([0-9]+)x([0-9]+)_([0-9]+)_([0-9]+)[\._]`)
	sizeRatePattern      = regexp.MustCompile(`([0-9]+)x([0-9]+)_([0-9]+)[\._]`)
	sizeOnlyPattern      = regexp.MustCompile(`([0-9]+)x([0-9]+)[\._]`)
	p1080Pattern         = regexp.MustCompile(`1080p([0-9]+)`)
	p720Pattern          = regexp.MustCompile(`720p([0-9]+)`)
	fpsPattern           = regexp.MustCompile(`(?i)([0-9]+)fps`)
	hzPattern            = regexp.MustCompile(`(?i)([0-9]+)HZ`)
)

// Resolution keywords, checked in order. The first three match case-insensitively.
var sizeKeywords = []struct {
	keyword string
	fold    bool
	size    pixfmt.Size
}{
	{"_cif", true, pixfmt.Size{Width: 352, Height: 288}},
	{"_qcif", true, pixfmt.Size{Width: 176, Height: 144}},
	{"_4cif", true, pixfmt.Size{Width: 704, Height: 576}},
	{"UHD", false, pixfmt.Size{Width: 3840, Height: 2160}},
	{"HD", false, pixfmt.Size{Width: 1920, Height: 1080}},
	{"1080p", false, pixfmt.Size{Width: 1920, Height: 1080}},
	{"720p", false, pixfmt.Size{Width: 1280, Height: 720}},
}

var hintBitDepths = []int{8, 9, 10, 12, 16}

// FromFilename inspects the file name of path first and its directory name
// second. A property found in the file name is never overridden.
func FromFilename(path string) Hints {
	log := newLogger("FromFilename").WithField("path", path)
	log.Entry("guessing from name")
	defer log.Exit()

	var h Hints
	for _, name := range []string{filepath.Base(path), dirName(path)} {
		if name == "" {
			continue
		}
		h.scan(name)
	}
	log.WithFields(logrus.Fields{
		"size":       h.Size.String(),
		"frame_rate": h.FrameRate,
		"bit_depth":  h.BitDepth,
	}).Debug("name hints")
	return h
}

func (h *Hints) scan(name string) {
	if !h.Size.Valid() {
		if m := sizeRateDepthPattern.FindStringSubmatch(name); m != nil {
			h.Size = pixfmt.Size{Width: atoi(m[1]), Height: atoi(m[2])}
			h.FrameRate = atoi(m[3])
			h.BitDepth = atoi(m[4])
		} else if m := sizeRatePattern.FindStringSubmatch(name); m != nil {
			h.Size = pixfmt.Size{Width: atoi(m[1]), Height: atoi(m[2])}
			h.FrameRate = atoi(m[3])
		} else if m := sizeOnlyPattern.FindStringSubmatch(name); m != nil {
			h.Size = pixfmt.Size{Width: atoi(m[1]), Height: atoi(m[2])}
		}
	}

	if !h.Size.Valid() {
		if m := p1080Pattern.FindStringSubmatch(name); m != nil {
			h.Size = pixfmt.Size{Width: 1920, Height: 1080}
			h.FrameRate = atoi(m[1])
		} else if m := p720Pattern.FindStringSubmatch(name); m != nil {
			h.Size = pixfmt.Size{Width: 1280, Height: 720}
			h.FrameRate = atoi(m[1])
		}
	}

	if !h.Size.Valid() {
		lower := strings.ToLower(name)
		for _, k := range sizeKeywords {
			if (k.fold && strings.Contains(lower, k.keyword)) || (!k.fold && strings.Contains(name, k.keyword)) {
				h.Size = k.size
				break
			}
		}
	}

	if !h.Size.Valid() {
		return
	}
	if h.FrameRate == 0 {
		if m := fpsPattern.FindStringSubmatch(name); m != nil {
			h.FrameRate = atoi(m[1])
		} else if m := hzPattern.FindStringSubmatch(name); m != nil {
			h.FrameRate = atoi(m[1])
		}
	}
	if h.BitDepth == 0 {
		lower := strings.ToLower(name)
		for _, bd := range hintBitDepths {
			if strings.Contains(lower, fmt.Sprintf("%dbit", bd)) || strings.Contains(lower, fmt.Sprintf("%d-bit", bd)) {
				h.BitDepth = bd
				break
			}
		}
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// dirName returns the name of the directory holding path.
func dirName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d := filepath.Base(filepath.Dir(abs))
	if d == "." || d == string(filepath.Separator) {
		return ""
	}
	return d
}

// baseName returns the file name up to its first dot, lower cased, with a
// trailing dot so delimiter patterns also match at the end.
func baseName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return ""
	}
	return strings.ToLower(name) + "."
}

// extension returns the lower cased text after the last dot of the file name.
func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// fits reports whether the file holds a whole number of frames.
func fits(f pixfmt.Format, size pixfmt.Size, fileSize int64) bool {
	bpf, err := f.BytesPerFrame(size)
	return err == nil && bpf > 0 && fileSize%int64(bpf) == 0
}
