package guess

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/opd-ai/rawview/pixfmt"
)

var (
	subsamplingIndicator = regexp.MustCompile(`(?:_|\.|-)(444|422|420|440|410|411|400)(?:_|\.|-)`)
	v210Indicator        = regexp.MustCompile(`(?:_|\.|-)(v210|V210)(?:_|\.|-)`)
)

// Planar entries in the order they are tried.
var planarNames = []struct {
	prefix string
	order  pixfmt.PlaneOrder
}{
	{"yuv", pixfmt.PlaneOrderYUV},
	{"yuva", pixfmt.PlaneOrderYUVA},
	{"yuvj", pixfmt.PlaneOrderYUV},
	{"yvu", pixfmt.PlaneOrderYVU},
	{"yvua", pixfmt.PlaneOrderYVUA},
}

// fallbackSubsamplings are tried against the file size when the name holds
// nothing useful.
var fallbackSubsamplings = []pixfmt.Subsampling{
	pixfmt.Subsampling420,
	pixfmt.Subsampling444,
	pixfmt.Subsampling422,
}

// YUVRequest is the input of GuessYUV.
type YUVRequest struct {
	Path     string
	Size     pixfmt.Size
	FileSize int64
	// BitDepth is tried first when it is between 8 and 16.
	BitDepth int
	// Packed tries packed layouts before planar ones.
	Packed bool
}

// GuessYUV proposes a YUV format whose frame size divides the file size.
//
// The file name is inspected first, then the directory name, looking for
// FFmpeg style format names (yuv420p10le, uyvy422, gray10le, nv12) and
// subsampling indicators. When neither helps, common planar formats are
// tried by size alone. ok is false when nothing matched.
func GuessYUV(req YUVRequest) (f pixfmt.YUVFormat, ok bool) {
	log := newLogger("GuessYUV").
		WithField("path", req.Path).
		WithField("size", req.Size.String()).
		WithField("file_size", req.FileSize)
	log.Entry("guessing YUV format")
	defer func() {
		if ok {
			log.WithField("format", f.Name()).Debug("format guessed")
		}
		log.Exit()
	}()

	if !req.Size.Valid() || req.FileSize <= 0 {
		return pixfmt.YUVFormat{}, false
	}
	g := yuvGuesser{size: req.Size, fileSize: req.FileSize, bitDepth: req.BitDepth, packed: req.Packed}

	name := baseName(req.Path)
	if name == "" {
		return pixfmt.YUVFormat{}, false
	}
	if extension(req.Path) == "v210" {
		if f := pixfmt.V210(); g.fits(f) {
			return f, true
		}
	}
	for _, n := range []string{name, strings.ToLower(dirName(req.Path))} {
		if n == "" {
			continue
		}
		if f, ok := g.fromName(n); ok {
			return f, true
		}
	}
	return g.bySize()
}

type yuvGuesser struct {
	size     pixfmt.Size
	fileSize int64
	bitDepth int
	packed   bool
}

func (g yuvGuesser) fits(f pixfmt.YUVFormat) bool {
	return fits(f, g.size, g.fileSize)
}

func (g yuvGuesser) fromName(name string) (pixfmt.YUVFormat, bool) {
	if strings.Contains(name, "nv12") {
		if f := pixfmt.NewSemiPlanarYUV(pixfmt.Subsampling420, 8, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian); g.fits(f) {
			return f, true
		}
	}
	if strings.Contains(name, "nv21") {
		if f := pixfmt.NewSemiPlanarYUV(pixfmt.Subsampling420, 8, pixfmt.PlaneOrderYVU, pixfmt.LittleEndian); g.fits(f) {
			return f, true
		}
	}

	detected := pixfmt.SubsamplingUnknown
	if m := subsamplingIndicator.FindStringSubmatch(name); m != nil {
		detected = pixfmt.ParseSubsampling(m[1])
	}

	tests := []func(string, pixfmt.Subsampling) (pixfmt.YUVFormat, bool){g.planar, g.packedByName}
	if g.packed {
		tests[0], tests[1] = tests[1], tests[0]
	}
	for _, test := range tests {
		if f, ok := test(name, detected); ok {
			return f, true
		}
	}

	if strings.Contains(name, "ayuv64le") {
		if f := pixfmt.NewPackedYUV(pixfmt.PackingAYUV, 16, false, pixfmt.LittleEndian); g.fits(f) {
			return f, true
		}
	}
	for _, depth := range g.depthList() {
		if strings.Contains(name, fmt.Sprintf("gray%dle", depth)) {
			if f := pixfmt.NewPlanarYUV(pixfmt.Subsampling400, depth, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian); g.fits(f) {
				return f, true
			}
		}
	}

	depths := pixfmt.BitDepths
	if g.bitDepth != 0 {
		depths = []int{g.bitDepth}
	}
	for _, s := range pixfmt.AllSubsamplings {
		if !strings.Contains(name, s.ShortName()) {
			continue
		}
		for _, bd := range depths {
			f := pixfmt.NewPlanarYUV(s, bd, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian)
			if orders := pixfmt.PackingOrdersFor(s); g.packed && len(orders) > 0 {
				f = pixfmt.NewPackedYUV(orders[0], bd, false, pixfmt.LittleEndian)
			}
			if g.fits(f) {
				return f, true
			}
		}
	}
	return pixfmt.YUVFormat{}, false
}

func (g yuvGuesser) planar(name string, detected pixfmt.Subsampling) (pixfmt.YUVFormat, bool) {
	for _, entry := range planarNames {
		for _, s := range subsamplingList(detected, false) {
			for _, bd := range g.depthList() {
				for _, endian := range endiannessList(bd) {
					for _, il := range []string{"uvi", "interlaced", ""} {
						f := pixfmt.NewPlanarYUV(s, bd, entry.order, endian)
						f.UVInterleaved = il != ""
						depth := depthSuffix(bd, endian)
						if strings.Contains(name, entry.prefix+s.ShortName()+"p"+depth+il) && g.fits(f) {
							return f, true
						}
						if s == detected && strings.Contains(name, entry.prefix+"p"+depth+il) && g.fits(f) {
							return f, true
						}
					}
				}
			}
		}
	}
	return pixfmt.YUVFormat{}, false
}

func (g yuvGuesser) packedByName(name string, detected pixfmt.Subsampling) (pixfmt.YUVFormat, bool) {
	if v210Indicator.MatchString(name) {
		if f := pixfmt.V210(); g.fits(f) {
			return f, true
		}
	}
	for _, s := range subsamplingList(detected, true) {
		for _, packing := range pixfmt.PackingOrdersFor(s) {
			prefix := strings.ToLower(packing.String())
			for _, bd := range g.depthList() {
				for _, endian := range endiannessList(bd) {
					f := pixfmt.NewPackedYUV(packing, bd, false, endian)
					depth := depthSuffix(bd, endian)
					if strings.Contains(name, prefix+s.ShortName()+depth) && g.fits(f) {
						return f, true
					}
					if s == detected && strings.Contains(name, prefix+depth) && g.fits(f) {
						return f, true
					}
				}
			}
		}
	}
	return pixfmt.YUVFormat{}, false
}

func (g yuvGuesser) bySize() (pixfmt.YUVFormat, bool) {
	depths := pixfmt.BitDepths
	if g.bitDepth != 0 {
		depths = []int{g.bitDepth}
	}
	for _, s := range fallbackSubsamplings {
		for _, bd := range depths {
			if f := pixfmt.NewPlanarYUV(s, bd, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian); g.fits(f) {
				return f, true
			}
		}
	}
	return pixfmt.YUVFormat{}, false
}

// depthList puts a plausible forced depth in front of 10, 12, 14, 16 and 8.
func (g yuvGuesser) depthList() []int {
	var list []int
	if g.bitDepth >= 8 && g.bitDepth <= 16 {
		list = append(list, g.bitDepth)
	}
	for _, bd := range []int{10, 12, 14, 16, 8} {
		if !slices.Contains(list, bd) {
			list = append(list, bd)
		}
	}
	return list
}

func subsamplingList(forced pixfmt.Subsampling, packed bool) []pixfmt.Subsampling {
	candidates := []pixfmt.Subsampling{pixfmt.Subsampling420, pixfmt.Subsampling422, pixfmt.Subsampling444, pixfmt.Subsampling400}
	if packed {
		candidates = []pixfmt.Subsampling{pixfmt.Subsampling444, pixfmt.Subsampling422, pixfmt.Subsampling400}
	}
	var list []pixfmt.Subsampling
	if forced != pixfmt.SubsamplingUnknown {
		list = append(list, forced)
	}
	for _, s := range candidates {
		if s != forced {
			list = append(list, s)
		}
	}
	return list
}

func endiannessList(bits int) []pixfmt.Endianness {
	if bits > 8 {
		return []pixfmt.Endianness{pixfmt.LittleEndian, pixfmt.BigEndian}
	}
	return []pixfmt.Endianness{pixfmt.LittleEndian}
}

// depthSuffix is the FFmpeg depth and byte order suffix, empty for 8-bit.
func depthSuffix(bits int, endian pixfmt.Endianness) string {
	if bits <= 8 {
		return ""
	}
	if endian == pixfmt.BigEndian {
		return fmt.Sprintf("%dbe", bits)
	}
	return fmt.Sprintf("%dle", bits)
}
