// Package logging provides the structured logrus helpers shared by rawview packages.
//
// A Helper is tagged with the package and function of its log site. Frame
// buffers are never logged whole: WithBuffer records their size and a short
// hex preview, and only while debug logging is enabled.
package logging

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// previewBytes is the number of leading buffer bytes shown by BufferFields.
const previewBytes = 8

// Helper carries the fields of one log site.
type Helper struct {
	function string
	fields   logrus.Fields
}

// New creates a helper tagged with package and function.
func New(pkg, function string) *Helper {
	return &Helper{
		function: function,
		fields: logrus.Fields{
			"package":  pkg,
			"function": function,
		},
	}
}

// WithField adds one field.
func (l *Helper) WithField(key string, value interface{}) *Helper {
	l.fields[key] = value
	return l
}

// WithFields adds several fields.
func (l *Helper) WithFields(fields logrus.Fields) *Helper {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithBuffer adds the size and preview of a raw buffer under name.
// It is a no-op unless debug logging is enabled.
func (l *Helper) WithBuffer(name string, data []byte) *Helper {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return l
	}
	return l.WithFields(BufferFields(name, data))
}

// WithError records err and the operation that produced it.
func (l *Helper) WithError(err error, operation string) *Helper {
	l.fields["error"] = err.Error()
	l.fields["operation"] = operation
	return l
}

func (l *Helper) entry() *logrus.Entry {
	return logrus.WithFields(l.fields)
}

// Entry logs the start of an operation at debug level.
func (l *Helper) Entry(message string) {
	l.entry().Debugf("enter %s: %s", l.function, message)
}

// Exit logs the end of an operation at debug level.
func (l *Helper) Exit() {
	l.entry().Debugf("exit %s", l.function)
}

func (l *Helper) Debug(message string) { l.entry().Debug(message) }
func (l *Helper) Info(message string) { l.entry().Info(message) }
func (l *Helper) Warn(message string) { l.entry().Warn(message) }
func (l *Helper) Error(message string) { l.entry().Error(message) }

// BufferFields summarizes a raw buffer as <name>_size and <name>_preview.
func BufferFields(name string, data []byte) logrus.Fields {
	preview := "empty"
	if len(data) > 0 {
		n := min(len(data), previewBytes)
		preview = hex.EncodeToString(data[:n])
		if len(data) > n {
			preview += "..."
		}
	}
	return logrus.Fields{
		name + "_size":    len(data),
		name + "_preview": preview,
	}
}

// Setup configures the global logrus logger.
func Setup(out io.Writer, level string, json bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(out)
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return nil
}
