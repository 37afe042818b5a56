package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const helpString = `Inspect, convert and compare raw YUV and RGB video frames

Usage:
  rawview info    [OPTION]... FILE
  rawview convert [OPTION]... -o OUTPUT FILE
  rawview diff    [OPTION]... FILE_A FILE_B

Format:
  -f, --format=NAME        Pixel format, e.g. "YUV 4:2:0 8-bit" or "RGB 8bit" (default: guessed)
  -s, --size=WxH           Frame size (default: guessed from the file name)
  -g, --format-b=NAME      Pixel format of FILE_B (default: same as -f)
  -S, --size-b=WxH         Frame size of FILE_B (default: same as -s)
  -n, --frame=NUM          Frame index to read (default: 0)

Conversion:
  -m, --matrix=NAME        Colour matrix: bt601, bt709, bt2020 with -full suffix (default: bt709)
  -c, --component=NAME     Display all, y, u, v, a, r, g or b (default: all)
  -i, --interpolation=NAME Chroma interpolation: bilinear or nearest (default: bilinear)
  -o, --output=FILE        Write the raster as .bmp or .png

Difference:
  -a, --amplification=NUM  Multiply differences before display (default: 1)
      --mark               Render a marker image instead of the difference

Miscellaneous:
      --log-level=LEVEL    debug, info, warn or error (default: warn)
      --log-json           Log as JSON
  -h, --help               Print this help message and exit`

// help prints the banner and usage text.
func help(w io.Writer) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(w, "rawview")
	fmt.Fprintln(w, helpString)
}
