// Package main provides the rawview command, which inspects, converts and
// compares raw YUV and RGB frame sequences.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/opd-ai/rawview/conversion"
	"github.com/opd-ai/rawview/internal/logging"
	"github.com/opd-ai/rawview/pixfmt"
)

// Subcommands.
const (
	commandInfo    = "info"
	commandConvert = "convert"
	commandDiff    = "diff"
)

var errUsage = errors.New("usage")

// CLI configuration
type CLIConfig struct {
	command       string
	format        string
	formatB       string
	size          string
	sizeB         string
	frame         int
	matrix        string
	component     string
	interpolation string
	output        string
	amplification int
	mark          bool
	logLevel      string
	logJSON       bool
	help          bool
	files         []string
}

// parseCLIFlags parses the subcommand and its flags.
func parseCLIFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	config := &CLIConfig{}
	if len(args) == 0 {
		config.help = true
		return config, nil
	}
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		config.help = true
		return config, nil
	}
	config.command = args[0]

	flags := flag.NewFlagSet(config.command, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {}

	// Format
	flags.StringVarP(&config.format, "format", "f", "", "Pixel format name")
	flags.StringVarP(&config.size, "size", "s", "", "Frame size as WxH")
	flags.StringVarP(&config.formatB, "format-b", "g", "", "Pixel format name of the second file")
	flags.StringVarP(&config.sizeB, "size-b", "S", "", "Frame size of the second file")
	flags.IntVarP(&config.frame, "frame", "n", 0, "Frame index")

	// Conversion
	flags.StringVarP(&config.matrix, "matrix", "m", "bt709", "Colour matrix")
	flags.StringVarP(&config.component, "component", "c", "all", "Displayed component")
	flags.StringVarP(&config.interpolation, "interpolation", "i", "bilinear", "Chroma interpolation")
	flags.StringVarP(&config.output, "output", "o", "", "Output image file")

	// Difference
	flags.IntVarP(&config.amplification, "amplification", "a", 1, "Difference amplification")
	flags.BoolVar(&config.mark, "mark", false, "Render a difference marker image")

	// Logging
	flags.StringVar(&config.logLevel, "log-level", "warn", "Log level")
	flags.BoolVar(&config.logJSON, "log-json", false, "Log as JSON")

	flags.BoolVarP(&config.help, "help", "h", false, "Show help message")

	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	config.files = flags.Args()
	return config, nil
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	switch config.command {
	case commandInfo, commandConvert:
		if len(config.files) != 1 {
			return fmt.Errorf("%s expects exactly one file, got %d", config.command, len(config.files))
		}
	case commandDiff:
		if len(config.files) != 2 {
			return fmt.Errorf("diff expects two files, got %d", len(config.files))
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, config.command)
	}

	if config.command == commandConvert && config.output == "" {
		return fmt.Errorf("convert needs an output file")
	}
	if config.frame < 0 {
		return fmt.Errorf("frame index cannot be negative")
	}
	if config.amplification < 1 {
		return fmt.Errorf("amplification must be at least 1")
	}
	for _, s := range []string{config.size, config.sizeB} {
		if s == "" {
			continue
		}
		if _, err := parseSize(s); err != nil {
			return err
		}
	}
	for _, f := range []string{config.format, config.formatB} {
		if f == "" {
			continue
		}
		if _, err := pixfmt.Parse(f); err != nil {
			return err
		}
	}
	if _, err := logrus.ParseLevel(config.logLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := createSettings(config); err != nil {
		return err
	}
	return nil
}

// createSettings maps the conversion flags onto conversion settings.
func createSettings(config *CLIConfig) (conversion.Settings, error) {
	s := conversion.DefaultSettings()
	var err error
	if s.Matrix, err = conversion.LookupColorMatrix(config.matrix); err != nil {
		return s, err
	}
	if s.Display, err = conversion.ParseDisplayMode(strings.ToLower(config.component)); err != nil {
		return s, err
	}
	if s.Interpolation, err = conversion.ParseInterpolation(strings.ToLower(config.interpolation)); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// parseSize reads a WxH frame size.
func parseSize(text string) (pixfmt.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(text), "x")
	if !ok {
		return pixfmt.Size{}, fmt.Errorf("%w: frame size %q is not WxH", pixfmt.ErrSizeMismatch, text)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	size := pixfmt.Size{Width: width, Height: height}
	if errW != nil || errH != nil || !size.Valid() {
		return pixfmt.Size{}, fmt.Errorf("%w: frame size %q is not WxH", pixfmt.ErrSizeMismatch, text)
	}
	return size, nil
}

// run executes a validated configuration.
func run(config *CLIConfig, stdout io.Writer) error {
	settings, err := createSettings(config)
	if err != nil {
		return err
	}
	switch config.command {
	case commandInfo:
		return runInfo(config, stdout)
	case commandConvert:
		return runConvert(config, settings, stdout)
	default:
		return runDiff(config, settings, stdout)
	}
}

// main is the entry point for rawview.
func main() {
	cliConfig, err := parseCLIFlags(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Use --help for usage information.\n")
		os.Exit(2)
	}

	if cliConfig.help {
		help(os.Stdout)
		os.Exit(0)
	}

	if err := validateCLIConfig(cliConfig); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use --help for usage information.\n")
		os.Exit(2)
	}

	if err := logging.Setup(os.Stderr, cliConfig.logLevel, cliConfig.logJSON); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	if err := run(cliConfig, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s failed: %v\n", cliConfig.command, err)
		os.Exit(1)
	}
}
