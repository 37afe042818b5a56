package difference

import (
	"fmt"

	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/sample"
)

// Coding tree geometry in luma samples.
const (
	ctuSize      = 64
	minBlockSize = 4
)

// Location is the first differing 4x4 block of a difference frame.
type Location struct {
	// CTU is the raster scan index of the 64x64 coding tree unit.
	CTU int
	// X and Y are the luma position of the block's top-left sample.
	X, Y int
	// PartIndex is the Z-order index of the 4x4 block inside its CTU, as
	// used by HM style encoders: block (x, y) of the CTU always has the same
	// index, including in CTUs cut off by the frame edge. 4x4 blocks outside
	// the frame are counted, not skipped.
	PartIndex int
}

func (l Location) String() string {
	return fmt.Sprintf("CTU %d, block (%d,%d), part %d", l.CTU, l.X, l.Y, l.PartIndex)
}

// Locate searches a centred difference frame for the first sample that is
// not the zero point. CTUs are visited in raster order and each is split as a
// quad tree down to 4x4, top-left, top-right, bottom-left, bottom-right.
// Chroma samples count towards the luma block they are co-located with.
func Locate(diff []byte, f pixfmt.YUVFormat, size pixfmt.Size) (Location, bool, error) {
	if !f.IsPlanar() {
		return Location{}, false, fmt.Errorf("%w: difference frames are planar", pixfmt.ErrUnsupportedCombination)
	}
	if f.BitsPerSample < 8 {
		return Location{}, false, fmt.Errorf("%w: %d-bit difference", pixfmt.ErrUnsupportedCombination, f.BitsPerSample)
	}
	need, err := f.BytesPerFrame(size)
	if err != nil {
		return Location{}, false, err
	}
	if len(diff) < need {
		return Location{}, false, fmt.Errorf("%w: %s %s needs %d bytes, have %d",
			pixfmt.ErrBufferTooShort, f.Name(), size, need, len(diff))
	}
	infos, err := f.Planes(size)
	if err != nil {
		return Location{}, false, err
	}
	planes, err := sample.NewPlanes(diff, infos, f.BitsPerSample, f.Endianness)
	if err != nil {
		return Location{}, false, err
	}

	s := scanner{
		size: size,
		zero: 128 << (f.BitsPerSample - 8),
		luma: planes[pixfmt.ComponentY],
	}
	s.sh, s.sv = f.Subsampling.Factors()
	for _, c := range []pixfmt.Component{pixfmt.ComponentU, pixfmt.ComponentV} {
		if p, ok := planes[c]; ok {
			s.chroma = append(s.chroma, p)
		}
	}

	cols := (size.Width + ctuSize - 1) / ctuSize
	rows := (size.Height + ctuSize - 1) / ctuSize
	for ctu := 0; ctu < cols*rows; ctu++ {
		part := 0
		loc, found := s.search((ctu%cols)*ctuSize, (ctu/cols)*ctuSize, ctuSize, &part)
		if found {
			loc.CTU = ctu
			return loc, true, nil
		}
	}
	return Location{}, false, nil
}

// FirstDifference runs Locate on the difference frame of r.
func (r *Result) FirstDifference() (Location, bool, error) {
	return Locate(r.Diff, r.DiffFormat, r.Size)
}

type scanner struct {
	size   pixfmt.Size
	zero   int
	sh, sv int
	luma   sample.Plane
	chroma []sample.Plane
}

// search descends into the block at (x, y). part counts the 4x4 blocks
// already passed inside the current CTU, in or out of the frame.
func (s *scanner) search(x, y, size int, part *int) (Location, bool) {
	leaves := (size / minBlockSize) * (size / minBlockSize)
	if x >= s.size.Width || y >= s.size.Height || !s.differs(x, y, size) {
		*part += leaves
		return Location{}, false
	}
	if size == minBlockSize {
		return Location{X: x, Y: y, PartIndex: *part}, true
	}
	half := size / 2
	for _, off := range [4][2]int{{0, 0}, {half, 0}, {0, half}, {half, half}} {
		if loc, ok := s.search(x+off[0], y+off[1], half, part); ok {
			return loc, true
		}
	}
	return Location{}, false
}

func (s *scanner) differs(x0, y0, size int) bool {
	x1 := min(x0+size, s.size.Width)
	y1 := min(y0+size, s.size.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if s.luma.At(x, y) != s.zero {
				return true
			}
			for _, c := range s.chroma {
				if c.AtClamped(x/s.sh, y/s.sv) != s.zero {
					return true
				}
			}
		}
	}
	return false
}
