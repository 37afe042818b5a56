package pixfmt

import (
	"errors"
	"strings"
)

// Sentinel errors for pixel format operations.
// These errors enable reliable error classification using errors.Is().

// Descriptor errors.
var (
	// ErrInvalidDescriptor indicates a format whose fields violate the descriptor invariants.
	ErrInvalidDescriptor = errors.New("invalid pixel format descriptor")

	// ErrUnsupportedCombination indicates legal field values whose combination is not implemented.
	ErrUnsupportedCombination = errors.New("unsupported pixel format combination")

	// ErrInvalidName indicates a format name that does not follow the name grammar.
	ErrInvalidName = errors.New("invalid pixel format name")
)

// Frame and buffer errors.
var (
	// ErrSizeMismatch indicates a frame size not divisible by the subsampling factors.
	ErrSizeMismatch = errors.New("frame size does not match subsampling")

	// ErrBufferTooShort indicates fewer bytes than one frame of the format requires.
	ErrBufferTooShort = errors.New("buffer too short for frame")

	// ErrOutOfBounds indicates a sample position outside the frame.
	ErrOutOfBounds = errors.New("position out of frame bounds")
)

// Comparison errors.
var (
	// ErrFormatMismatch indicates two frames that cannot be compared sample by sample.
	ErrFormatMismatch = errors.New("pixel formats cannot be compared")
)

// ConversionError lists every precondition a conversion request violates.
//
// Each reason is a human readable sentence. Unwrap exposes the matching
// sentinel errors so callers can still use errors.Is().
type ConversionError struct {
	Reasons []string
	kinds   []error
}

func (e *ConversionError) add(kind error, reason string) {
	e.Reasons = append(e.Reasons, reason)
	for _, k := range e.kinds {
		if k == kind {
			return
		}
	}
	e.kinds = append(e.kinds, kind)
}

func (e *ConversionError) empty() bool {
	return len(e.Reasons) == 0
}

// Error concatenates all reasons.
func (e *ConversionError) Error() string {
	return strings.Join(e.Reasons, " ")
}

// Unwrap returns the sentinel errors behind the reasons.
func (e *ConversionError) Unwrap() []error {
	return e.kinds
}
