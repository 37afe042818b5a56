package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
)

func init() {
	color.NoColor = true
}

func validConfig(command string, files ...string) *CLIConfig {
	return &CLIConfig{
		command:       command,
		matrix:        "bt709",
		component:     "all",
		interpolation: "bilinear",
		amplification: 1,
		logLevel:      "warn",
		files:         files,
	}
}

// writeFrames writes frames 16x16 YUV 4:2:0 8-bit frames whose samples all
// equal the frame index plus base.
func writeFrames(t *testing.T, dir, name string, frames int, base byte) string {
	t.Helper()
	data := make([]byte, 0, frames*384)
	for i := 0; i < frames; i++ {
		data = append(data, bytes.Repeat([]byte{base + byte(i)}, 384)...)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		text    string
		want    pixfmt.Size
		wantErr bool
	}{
		{"1920x1080", pixfmt.Size{Width: 1920, Height: 1080}, false},
		{"16X8", pixfmt.Size{Width: 16, Height: 8}, false},
		{"1920", pixfmt.Size{}, true},
		{"0x10", pixfmt.Size{}, true},
		{"axb", pixfmt.Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseSize(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, pixfmt.ErrSizeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCLIFlags(t *testing.T) {
	config, err := parseCLIFlags([]string{
		"diff", "-f", "YUV 4:2:0 8-bit", "-s", "16x16", "-g", "YUV 4:2:0 10-bit LE",
		"-a", "4", "--mark", "-n", "2", "a.yuv", "b.yuv",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "diff", config.command)
	assert.Equal(t, "YUV 4:2:0 8-bit", config.format)
	assert.Equal(t, "YUV 4:2:0 10-bit LE", config.formatB)
	assert.Equal(t, "16x16", config.size)
	assert.Equal(t, 4, config.amplification)
	assert.Equal(t, 2, config.frame)
	assert.True(t, config.mark)
	assert.Equal(t, []string{"a.yuv", "b.yuv"}, config.files)
	assert.Equal(t, "bt709", config.matrix)
	assert.Equal(t, "warn", config.logLevel)

	for _, args := range [][]string{nil, {"--help"}, {"help"}, {"info", "-h"}} {
		config, err := parseCLIFlags(args, io.Discard)
		require.NoError(t, err)
		assert.True(t, config.help, "args %v", args)
	}

	_, err = parseCLIFlags([]string{"info", "--nope"}, io.Discard)
	assert.Error(t, err)
}

func TestValidateCLIConfig(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*CLIConfig)
		command     string
		files       []string
		errContains string
	}{
		{name: "valid info", command: "info", files: []string{"a.yuv"}},
		{name: "valid diff", command: "diff", files: []string{"a.yuv", "b.yuv"}},
		{
			name:    "valid convert",
			command: "convert",
			files:   []string{"a.yuv"},
			modify:  func(c *CLIConfig) { c.output = "out.bmp" },
		},
		{name: "unknown command", command: "play", files: []string{"a.yuv"}, errContains: "unknown command"},
		{name: "info without file", command: "info", errContains: "exactly one file"},
		{name: "diff with one file", command: "diff", files: []string{"a.yuv"}, errContains: "two files"},
		{name: "convert without output", command: "convert", files: []string{"a.yuv"}, errContains: "output"},
		{
			name:        "negative frame",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.frame = -1 },
			errContains: "frame index",
		},
		{
			name:        "zero amplification",
			command:     "diff",
			files:       []string{"a.yuv", "b.yuv"},
			modify:      func(c *CLIConfig) { c.amplification = 0 },
			errContains: "amplification",
		},
		{
			name:        "bad size",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.size = "16" },
			errContains: "WxH",
		},
		{
			name:        "bad format",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.format = "YUV 5:5:5" },
			errContains: "YUV 5:5:5",
		},
		{
			name:        "bad matrix",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.matrix = "bt999" },
			errContains: "color matrix",
		},
		{
			name:        "bad component",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.component = "z" },
			errContains: "display component",
		},
		{
			name:        "bad log level",
			command:     "info",
			files:       []string{"a.yuv"},
			modify:      func(c *CLIConfig) { c.logLevel = "loud" },
			errContains: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig(tt.command, tt.files...)
			if tt.modify != nil {
				tt.modify(config)
			}
			err := validateCLIConfig(config)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRunInfo(t *testing.T) {
	dir := t.TempDir()
	path := writeFrames(t, dir, "clip_16x16.yuv", 2, 16)

	var out bytes.Buffer
	require.NoError(t, run(validConfig("info", path), &out))
	assert.Contains(t, out.String(), "YUV 4:2:0 8-bit (guessed)")
	assert.Contains(t, out.String(), "16x16")
	assert.Contains(t, out.String(), "384")
	assert.Contains(t, out.String(), "Digest:")

	config := validConfig("info", path)
	config.format = "YUV 4:4:4 8-bit"
	config.size = "10x10"
	out.Reset()
	require.NoError(t, run(config, &out))
	assert.NotContains(t, out.String(), "guessed")
	assert.Contains(t, out.String(), "trailing bytes")

	config.frame = 10
	assert.Error(t, run(config, io.Discard))
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	path := writeFrames(t, dir, "clip.yuv", 1, 128)

	config := validConfig("convert", path)
	config.format = "YUV 4:2:0 8-bit"
	config.size = "16x16"
	config.output = filepath.Join(dir, "frame.png")

	var out bytes.Buffer
	require.NoError(t, run(config, &out))
	assert.Contains(t, out.String(), "Wrote")

	fh, err := os.Open(config.output)
	require.NoError(t, err)
	defer fh.Close()
	img, err := png.Decode(fh)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	config.output = filepath.Join(dir, "frame.bmp")
	require.NoError(t, run(config, io.Discard))
	info, err := os.Stat(config.output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunDiff(t *testing.T) {
	dir := t.TempDir()
	a := writeFrames(t, dir, "a.yuv", 1, 100)
	same := writeFrames(t, dir, "same.yuv", 1, 100)
	other := writeFrames(t, dir, "other.yuv", 1, 101)

	config := validConfig("diff", a, same)
	config.format = "YUV 4:2:0 8-bit"
	config.size = "16x16"

	var out bytes.Buffer
	require.NoError(t, run(config, &out))
	assert.Contains(t, out.String(), "Frames are identical")
	assert.Contains(t, out.String(), "PSNR inf")

	config.files = []string{a, other}
	config.output = filepath.Join(dir, "diff.bmp")
	config.mark = true
	out.Reset()
	require.NoError(t, run(config, &out))
	assert.Contains(t, out.String(), "MSE 1.0000")
	assert.Contains(t, out.String(), "CTU 0, block (0,0), part 0")
	assert.FileExists(t, config.output)

	config.output = ""
	config.formatB = "RGB 8bit"
	assert.ErrorIs(t, run(config, io.Discard), pixfmt.ErrUnsupportedCombination)
}
