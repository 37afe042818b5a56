package conversion

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawview/pixfmt"
)

// debugHook captures debug entries of the global logger until the test ends.
func debugHook(t *testing.T) *test.Hook {
	t.Helper()
	hook := test.NewGlobal()
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetOutput(io.Discard)
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetOutput(os.Stderr)
	})
	return hook
}

func TestEntryPoints_LogFramePreview(t *testing.T) {
	size := pixfmt.Size{Width: 4, Height: 2}
	f := pixfmt.NewPlanarYUV(pixfmt.Subsampling420, 8, pixfmt.PlaneOrderYUV, pixfmt.LittleEndian)
	buf := newFrame(t, f, size, pattern(8))

	tests := []struct {
		function string
		run      func() error
	}{
		{"ConvertYUV", func() error {
			_, err := ConvertYUV(buf, f, size, DefaultSettings())
			return err
		}},
		{"ToPlanar", func() error {
			_, _, err := ToPlanar(buf, f, size)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			hook := debugHook(t)
			require.NoError(t, tt.run())

			var found bool
			for _, e := range hook.AllEntries() {
				if e.Data["function"] != tt.function {
					continue
				}
				found = true
				assert.Equal(t, len(buf), e.Data["frame_size"])
				assert.NotEmpty(t, e.Data["frame_preview"])
			}
			assert.True(t, found, "no log entry from %s", tt.function)
		})
	}
}
