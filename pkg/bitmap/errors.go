package bitmap

import (
	"github.com/pkg/errors"
)

var (
	// ErrSizeOverflow is returned when the pixel data does not fit the 32-bit size fields.
	ErrSizeOverflow = errors.New("bitmap: image too large")
	// ErrUnsupportedFormat is returned when the pixel source cannot produce the declared format.
	ErrUnsupportedFormat = errors.New("bitmap: unsupported pixel format")
	// ErrOutOfRange is returned for non-positive dimensions and unusable resolutions.
	ErrOutOfRange = errors.New("bitmap: value out of range")
	// ErrIOFailure marks errors raised while reading or persisting files.
	// The encoder itself never returns it.
	ErrIOFailure = errors.New("bitmap: io failure")
)
