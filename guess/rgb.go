package guess

import (
	"regexp"
	"strings"

	"github.com/opd-ai/rawview/pixfmt"
)

var layoutIndicator = regexp.MustCompile(`(?:_|\.|-)(packed|planar)(?:_|\.|-)`)

// rgbIndicator matches FFmpeg style RGB names such as rgb, bgra, rgb48le
// and argb64be between delimiters. rgbNames maps each alternative to its format.
var rgbIndicator, rgbNames = buildRGBIndicator()

func buildRGBIndicator() (*regexp.Regexp, map[string]pixfmt.RGBFormat) {
	depths := []struct {
		text string
		bits int
	}{{"", 8}, {"8", 8}, {"10", 10}, {"12", 12}, {"16", 16}, {"64", 16}, {"48", 16}}
	endians := []struct {
		text   string
		endian pixfmt.Endianness
	}{{"", pixfmt.LittleEndian}, {"le", pixfmt.LittleEndian}, {"be", pixfmt.BigEndian}}

	names := make(map[string]pixfmt.RGBFormat)
	var alternatives []string
	for _, order := range pixfmt.AllChannelOrders {
		for _, alpha := range []pixfmt.AlphaPosition{pixfmt.AlphaNone, pixfmt.AlphaFirst, pixfmt.AlphaLast} {
			for _, d := range depths {
				for _, e := range endians {
					name := strings.ToLower(order.String())
					switch alpha {
					case pixfmt.AlphaFirst:
						name = "a" + name
					case pixfmt.AlphaLast:
						name += "a"
					}
					name += d.text + e.text
					if _, dup := names[name]; !dup {
						alternatives = append(alternatives, name)
					}
					names[name] = pixfmt.NewRGB(d.bits, order, alpha, pixfmt.LayoutPacked, e.endian)
				}
			}
		}
	}
	re := regexp.MustCompile(`(?:_|\.|-)(` + strings.Join(alternatives, "|") + `)(?:_|\.|-)`)
	return re, names
}

// RGBRequest is the input of GuessRGB.
type RGBRequest struct {
	Path     string
	Size     pixfmt.Size
	FileSize int64
}

// GuessRGB proposes an RGB format for a file. Names in the file or directory
// name are tried first, then a file extension naming the channel order. ok
// is false when nothing fits, and f is then 8-bit packed RGB.
func GuessRGB(req RGBRequest) (f pixfmt.RGBFormat, ok bool) {
	log := newLogger("GuessRGB").
		WithField("path", req.Path).
		WithField("size", req.Size.String()).
		WithField("file_size", req.FileSize)
	log.Entry("guessing RGB format")
	defer log.Exit()

	fallback := pixfmt.DefaultRGB()
	name := baseName(req.Path)
	if name == "" || !req.Size.Valid() || req.FileSize <= 0 {
		return fallback, false
	}
	ext := extension(req.Path)

	if ext == "cmyk" {
		if f := pixfmt.NewRGB(8, pixfmt.OrderRGB, pixfmt.AlphaLast, pixfmt.LayoutPacked, pixfmt.LittleEndian); fits(f, req.Size, req.FileSize) {
			return f, true
		}
	}

	for _, n := range []string{name, strings.ToLower(dirName(req.Path))} {
		if n == "" {
			continue
		}
		for _, lookup := range []func() (pixfmt.RGBFormat, bool){
			func() (pixfmt.RGBFormat, bool) { return rgbFromIndicator(n) },
			func() (pixfmt.RGBFormat, bool) { return rgbFromExtension(ext) },
		} {
			f, found := lookup()
			if !found || !fits(f, req.Size, req.FileSize) {
				continue
			}
			if m := layoutIndicator.FindStringSubmatch(n); m != nil && m[1] == "planar" {
				f.Layout = pixfmt.LayoutPlanar
			}
			log.WithField("format", f.Name()).Debug("format guessed")
			return f, true
		}
	}
	return fallback, false
}

func rgbFromIndicator(name string) (pixfmt.RGBFormat, bool) {
	m := rgbIndicator.FindStringSubmatch(name)
	if m == nil {
		return pixfmt.RGBFormat{}, false
	}
	f, ok := rgbNames[m[1]]
	return f, ok
}

func rgbFromExtension(ext string) (pixfmt.RGBFormat, bool) {
	for _, order := range pixfmt.AllChannelOrders {
		if ext == strings.ToLower(order.String()) {
			return pixfmt.NewRGB(8, order, pixfmt.AlphaNone, pixfmt.LayoutPacked, pixfmt.LittleEndian), true
		}
	}
	return pixfmt.RGBFormat{}, false
}
