package difference

import "github.com/opd-ai/rawview/internal/logging"

func newLogger(function string) *logging.Helper {
	return logging.New("difference", function)
}
