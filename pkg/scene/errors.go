package scene

import (
	"errors"

	"github.com/df07/go-chunk-raytracer/pkg/log"
)

var (
	// ErrUnknownScene is returned by Lookup for names that are not registered.
	ErrUnknownScene = errors.New("scene: unknown scene")
	// ErrUnknownMode is returned for render mode names that are not supported.
	ErrUnknownMode = errors.New("scene: unknown render mode")
)

var logger = log.New("scene")
