package pixfmt

// Subsampling is the chroma subsampling scheme of a YUV format.
type Subsampling int

const (
	SubsamplingUnknown Subsampling = iota
	Subsampling444
	Subsampling422
	Subsampling420
	Subsampling440
	Subsampling410
	Subsampling411
	Subsampling400
)

// AllSubsamplings lists every known scheme in detection order.
var AllSubsamplings = []Subsampling{
	Subsampling444,
	Subsampling422,
	Subsampling420,
	Subsampling440,
	Subsampling410,
	Subsampling411,
	Subsampling400,
}

type subsamplingInfo struct {
	short      string
	horizontal int
	vertical   int
	maxOffsetX int
	maxOffsetY int
}

var subsamplingTable = map[Subsampling]subsamplingInfo{
	Subsampling444: {"444", 1, 1, 1, 1},
	Subsampling422: {"422", 2, 1, 3, 1},
	Subsampling420: {"420", 2, 2, 3, 3},
	Subsampling440: {"440", 1, 2, 1, 3},
	Subsampling410: {"410", 4, 4, 7, 7},
	Subsampling411: {"411", 4, 1, 7, 1},
	Subsampling400: {"400", 1, 1, 0, 0},
}

// ShortName returns the compact name, e.g. "420".
func (s Subsampling) ShortName() string {
	if info, ok := subsamplingTable[s]; ok {
		return info.short
	}
	return ""
}

// String returns the colon notation, e.g. "4:2:0".
func (s Subsampling) String() string {
	n := s.ShortName()
	if n == "" {
		return "Unknown"
	}
	return n[0:1] + ":" + n[1:2] + ":" + n[2:3]
}

// Factors returns the horizontal and vertical subsampling factors.
// 4:0:0 reports 1x1; it has no chroma planes at all.
func (s Subsampling) Factors() (horizontal, vertical int) {
	if info, ok := subsamplingTable[s]; ok {
		return info.horizontal, info.vertical
	}
	return 1, 1
}

// HasChroma reports whether the scheme carries chroma planes.
func (s Subsampling) HasChroma() bool {
	return s != Subsampling400 && s != SubsamplingUnknown
}

// MaxChromaOffset returns the largest chroma offset per axis, in half luma samples.
func (s Subsampling) MaxChromaOffset() (x, y int) {
	info := subsamplingTable[s]
	return info.maxOffsetX, info.maxOffsetY
}

// DefaultChromaOffset returns the siting assumed when a name carries no Cx/Cy.
// 4:2:0 chroma sits half a luma sample below the top luma row.
func (s Subsampling) DefaultChromaOffset() ChromaOffset {
	if s == Subsampling420 {
		return ChromaOffset{X: 0, Y: 1}
	}
	return ChromaOffset{}
}

// ParseSubsampling accepts "420" or "4:2:0".
func ParseSubsampling(text string) Subsampling {
	if len(text) == 5 && text[1] == ':' && text[3] == ':' {
		text = text[0:1] + text[2:3] + text[4:5]
	}
	for s, info := range subsamplingTable {
		if info.short == text {
			return s
		}
	}
	return SubsamplingUnknown
}

// ChromaOffset is the chroma siting in half luma samples.
type ChromaOffset struct {
	X int
	Y int
}

// Eighths converts the offset into eighths of a chroma sample per axis,
// the unit of the siting interpolation filter.
func (o ChromaOffset) Eighths(s Subsampling) (x, y int) {
	maxX, maxY := s.MaxChromaOffset()
	return toEighths(o.X, maxX), toEighths(o.Y, maxY)
}

func toEighths(offset, max int) int {
	switch max {
	case 1:
		return offset * 4
	case 3:
		return offset * 2
	default:
		return offset
	}
}
