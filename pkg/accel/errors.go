package accel

import (
	"errors"

	"github.com/df07/go-chunk-raytracer/pkg/log"
)

var (
	// ErrUnknownAccel is returned for acceleration structure names that are not supported.
	ErrUnknownAccel = errors.New("accel: unknown acceleration structure")
)

var logger = log.New("accel")
