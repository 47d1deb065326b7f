package renderer

import (
	"errors"

	"github.com/df07/go-chunk-raytracer/pkg/log"
)

var (
	// ErrInvalidSettings is returned by Settings.Validate and New.
	ErrInvalidSettings = errors.New("renderer: invalid settings")
	// ErrUnsupportedFormat is returned when saving to an unknown file extension.
	ErrUnsupportedFormat = errors.New("renderer: unsupported image format")
	// ErrIncompleteRender is returned when the result stream ends before every worker reported done.
	ErrIncompleteRender = errors.New("renderer: result stream closed before all workers finished")
)

var logger = log.New("renderer")
