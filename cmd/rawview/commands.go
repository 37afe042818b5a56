package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/opd-ai/rawview/conversion"
	"github.com/opd-ai/rawview/difference"
	"github.com/opd-ai/rawview/guess"
	"github.com/opd-ai/rawview/internal/rawfile"
	"github.com/opd-ai/rawview/pixfmt"
	"github.com/opd-ai/rawview/raster"
)

var (
	labelColor = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
)

// source is an opened raw file with a resolved format and frame size.
type source struct {
	file    *rawfile.File
	format  pixfmt.Format
	size    pixfmt.Size
	guessed bool
}

// openSource opens path and resolves missing format or size from its name.
func openSource(path, formatName, sizeText string) (*source, error) {
	f, err := rawfile.Open(path)
	if err != nil {
		return nil, err
	}
	src := &source{file: f}

	if sizeText != "" {
		if src.size, err = parseSize(sizeText); err != nil {
			f.Close()
			return nil, err
		}
	}
	if formatName != "" {
		if src.format, err = pixfmt.Parse(formatName); err != nil {
			f.Close()
			return nil, err
		}
	}
	if src.format == nil || !src.size.Valid() {
		res, err := guess.Format(guess.Request{Path: f.NamePath(), FileSize: f.Size(), Size: src.size})
		if err != nil {
			f.Close()
			return nil, err
		}
		src.size = res.Size
		if src.format == nil {
			src.format = res.Format
			src.guessed = true
		}
	}
	return src, nil
}

func (s *source) frame(index int) ([]byte, error) {
	return s.file.FrameOf(s.format, s.size, index)
}

func (s *source) Close() error {
	return s.file.Close()
}

func printField(w io.Writer, label, format string, args ...interface{}) {
	labelColor.Fprintf(w, "%-13s", label+":")
	fmt.Fprintf(w, format+"\n", args...)
}

// runInfo prints the layout of a file and the digest of its selected frame.
func runInfo(config *CLIConfig, w io.Writer) error {
	src, err := openSource(config.files[0], config.format, config.size)
	if err != nil {
		return err
	}
	defer src.Close()

	bpf, err := src.format.BytesPerFrame(src.size)
	if err != nil {
		return err
	}
	name := src.format.Name()
	if src.guessed {
		name += " (guessed)"
	}
	printField(w, "File", "%s", src.file.Path())
	printField(w, "Format", "%s", name)
	printField(w, "Size", "%s", src.size)
	printField(w, "Frame bytes", "%d", bpf)
	printField(w, "Frames", "%d", src.file.Frames(bpf))
	if rest := src.file.Size() % int64(bpf); rest != 0 {
		warnColor.Fprintf(w, "⚠️  %d trailing bytes do not form a whole frame\n", rest)
	}

	buf, err := src.frame(config.frame)
	if err != nil {
		return err
	}
	r, err := conversion.Convert(buf, src.format, src.size, conversion.DefaultSettings())
	if err != nil {
		return err
	}
	printField(w, "Digest", "%s (frame %d)", r.Digest(), config.frame)
	return nil
}

// runConvert writes one frame as an image.
func runConvert(config *CLIConfig, settings conversion.Settings, w io.Writer) error {
	src, err := openSource(config.files[0], config.format, config.size)
	if err != nil {
		return err
	}
	defer src.Close()

	buf, err := src.frame(config.frame)
	if err != nil {
		return err
	}
	r, err := conversion.Convert(buf, src.format, src.size, settings)
	if err != nil {
		return err
	}
	if err := writeImage(config.output, r); err != nil {
		return err
	}
	okColor.Fprintf(w, "✅ Wrote %s", config.output)
	fmt.Fprintf(w, " (%s, %s, %s)\n", src.format.Name(), src.size, r.Digest())
	return nil
}

// runDiff compares the selected frame of two YUV files.
func runDiff(config *CLIConfig, settings conversion.Settings, w io.Writer) error {
	formatB, sizeB := config.formatB, config.sizeB
	if formatB == "" {
		formatB = config.format
	}
	if sizeB == "" {
		sizeB = config.size
	}

	a, err := openSource(config.files[0], config.format, config.size)
	if err != nil {
		return err
	}
	defer a.Close()
	b, err := openSource(config.files[1], formatB, sizeB)
	if err != nil {
		return err
	}
	defer b.Close()

	itemA, err := diffItem(a, config.frame)
	if err != nil {
		return fmt.Errorf("%s: %w", config.files[0], err)
	}
	itemB, err := diffItem(b, config.frame)
	if err != nil {
		return fmt.Errorf("%s: %w", config.files[1], err)
	}

	opts := difference.DefaultOptions()
	opts.Amplification = config.amplification
	opts.MarkOnly = config.mark
	opts.Settings = settings
	res, err := difference.Compute(itemA, itemB, opts)
	if err != nil {
		return err
	}

	for _, warning := range res.Warnings {
		warnColor.Fprintf(w, "⚠️  %s\n", warning)
	}
	printField(w, "Region", "%s", res.Size)
	for _, p := range res.Planes {
		printField(w, p.Component.String(), "MSE %.4f  PSNR %s", p.MSE, formatPSNR(p.PSNR))
	}
	printField(w, "Average MSE", "%.4f", res.AverageMSE)

	loc, found, err := res.FirstDifference()
	if err != nil {
		return err
	}
	if found {
		printField(w, "First diff", "%s", loc)
	} else {
		okColor.Fprintln(w, "✅ Frames are identical")
	}

	if config.output != "" {
		if err := writeImage(config.output, res.Raster); err != nil {
			return err
		}
		okColor.Fprintf(w, "✅ Wrote %s\n", config.output)
	}
	return nil
}

func diffItem(s *source, index int) (difference.Item, error) {
	f, ok := s.format.(pixfmt.YUVFormat)
	if !ok {
		return difference.Item{}, fmt.Errorf("%w: differences need a YUV format, have %s",
			pixfmt.ErrUnsupportedCombination, s.format.Name())
	}
	buf, err := s.frame(index)
	if err != nil {
		return difference.Item{}, err
	}
	return difference.Item{Buffer: buf, Format: f, Size: s.size}, nil
}

func formatPSNR(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f dB", v)
}

// writeImage encodes r as PNG or BMP depending on the file extension.
func writeImage(path string, r *raster.Raster) (err error) {
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return r.EncodePNG(out)
	}
	return r.EncodeBMP(out)
}
