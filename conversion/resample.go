package conversion

import (
	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/sample"
)

// Grid is a dense plane of sample values in row-major order.
type Grid struct {
	Width  int
	Height int
	Values []int
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) Grid {
	return Grid{Width: width, Height: height, Values: make([]int, width*height)}
}

// GridFromPlane reads every sample of p, applying m at the plane's depth.
func GridFromPlane(p sample.Plane, m MathParameters) Grid {
	g := NewGrid(p.Width(), p.Height())
	bits := p.BitsPerSample()
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			g.Values[y*g.Width+x] = m.Apply(p.At(x, y), bits)
		}
	}
	return g
}

// At returns value (x, y).
func (g Grid) At(x, y int) int {
	return g.Values[y*g.Width+x]
}

// clamped returns the value nearest to (x, y) inside the grid.
func (g Grid) clamped(x, y int) int {
	if x >= g.Width {
		x = g.Width - 1
	}
	if y >= g.Height {
		y = g.Height - 1
	}
	return g.Values[y*g.Width+x]
}

func (g Grid) set(x, y, v int) {
	g.Values[y*g.Width+x] = v
}

// CorrectSiting shifts chroma samples onto the luma grid at native chroma
// resolution. Offsets are in eighths of a chroma sample; the horizontal pass
// runs first and the vertical pass reads its output. Each output sample is
//
//	(o*prev + (8-o)*cur + 4) >> 3
//
// and the first sample of every row or column is kept.
func CorrectSiting(g Grid, offsetX, offsetY int) Grid {
	if offsetX != 0 {
		out := NewGrid(g.Width, g.Height)
		for y := 0; y < g.Height; y++ {
			out.set(0, y, g.At(0, y))
			for x := 1; x < g.Width; x++ {
				out.set(x, y, sitingTap(g.At(x-1, y), g.At(x, y), offsetX))
			}
		}
		g = out
	}
	if offsetY != 0 {
		out := NewGrid(g.Width, g.Height)
		for x := 0; x < g.Width; x++ {
			out.set(x, 0, g.At(x, 0))
		}
		for y := 1; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				out.set(x, y, sitingTap(g.At(x, y-1), g.At(x, y), offsetY))
			}
		}
		g = out
	}
	return g
}

func sitingTap(prev, cur, eighths int) int {
	return (eighths*prev + (8-eighths)*cur + 4) >> 3
}

// Upsample brings a chroma grid to the luma resolution width x height.
//
// Nearest neighbour repeats every sample over its subsampling block. Bilinear
// uses one function per subsampling; edges repeat the last native sample.
func Upsample(g Grid, s pixfmt.Subsampling, width, height int, interp Interpolation) Grid {
	if s == pixfmt.Subsampling444 {
		return g
	}
	if interp == NearestNeighbor {
		return upsampleNearest(g, s, width, height)
	}
	switch s {
	case pixfmt.Subsampling422:
		return upsample422(g, width, height)
	case pixfmt.Subsampling440:
		return upsample440(g, width, height)
	case pixfmt.Subsampling420:
		return upsample420(g, width, height)
	case pixfmt.Subsampling411:
		return upsample411(g, width, height)
	case pixfmt.Subsampling410:
		return upsample410(g, width, height)
	}
	return upsampleNearest(g, s, width, height)
}

func half(a, b int) int {
	return (a + b + 1) >> 1
}

// quarter interpolates position k (0..3) between a and b.
func quarter(k, a, b int) int {
	switch k {
	case 1:
		return (3*a + b + 1) >> 2
	case 2:
		return (a + b + 1) >> 1
	case 3:
		return (a + 3*b + 1) >> 2
	}
	return a
}

func upsampleNearest(g Grid, s pixfmt.Subsampling, width, height int) Grid {
	sh, sv := s.Factors()
	out := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.set(x, y, g.clamped(x/sh, y/sv))
		}
	}
	return out
}

func upsample422(g Grid, width, height int) Grid {
	out := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; 2*x < width; x++ {
			a := g.At(x, y)
			out.set(2*x, y, a)
			if 2*x+1 < width {
				out.set(2*x+1, y, half(a, g.clamped(x+1, y)))
			}
		}
	}
	return out
}

func upsample440(g Grid, width, height int) Grid {
	out := NewGrid(width, height)
	for y := 0; 2*y < height; y++ {
		for x := 0; x < width; x++ {
			a := g.At(x, y)
			out.set(x, 2*y, a)
			if 2*y+1 < height {
				out.set(x, 2*y+1, half(a, g.clamped(x, y+1)))
			}
		}
	}
	return out
}

func upsample420(g Grid, width, height int) Grid {
	out := NewGrid(width, height)
	for y := 0; 2*y < height; y++ {
		for x := 0; 2*x < width; x++ {
			a := g.At(x, y)
			b := g.clamped(x+1, y)
			c := g.clamped(x, y+1)
			d := g.clamped(x+1, y+1)
			out.set(2*x, 2*y, a)
			if 2*x+1 < width {
				out.set(2*x+1, 2*y, half(a, b))
			}
			if 2*y+1 < height {
				out.set(2*x, 2*y+1, half(a, c))
				if 2*x+1 < width {
					out.set(2*x+1, 2*y+1, (a+b+c+d+2)>>2)
				}
			}
		}
	}
	return out
}

func upsample411(g Grid, width, height int) Grid {
	out := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; 4*x < width; x++ {
			a, b := g.At(x, y), g.clamped(x+1, y)
			for k := 0; k < 4 && 4*x+k < width; k++ {
				out.set(4*x+k, y, quarter(k, a, b))
			}
		}
	}
	return out
}

func upsample410(g Grid, width, height int) Grid {
	out := NewGrid(width, height)
	for y := 0; 4*y < height; y++ {
		for x := 0; 4*x < width; x++ {
			a, b := g.At(x, y), g.clamped(x+1, y)
			c, d := g.clamped(x, y+1), g.clamped(x+1, y+1)
			for j := 0; j < 4 && 4*y+j < height; j++ {
				left, right := quarter(j, a, c), quarter(j, b, d)
				for i := 0; i < 4 && 4*x+i < width; i++ {
					out.set(4*x+i, 4*y+j, quarter(i, left, right))
				}
			}
		}
	}
	return out
}

// resampleChroma reads one chroma plane and brings it to luma resolution,
// correcting the siting first when interpolating bilinearly.
func resampleChroma(p sample.Plane, f pixfmt.YUVFormat, size pixfmt.Size, s Settings) Grid {
	g := GridFromPlane(p, s.ChromaMath)
	if s.Interpolation == Bilinear && f.Subsampling != pixfmt.Subsampling444 {
		ox, oy := f.ChromaOffset.Eighths(f.Subsampling)
		if ox != 0 || oy != 0 {
			g = CorrectSiting(g, ox, oy)
		}
	}
	return Upsample(g, f.Subsampling, size.Width, size.Height, s.Interpolation)
}
