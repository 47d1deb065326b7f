package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Builder creates a scene from a configuration
type Builder func(cfg Config) (*Scene, error)

// defaultGridSize gives the sphere grid enough instances to need a BVH
const defaultGridSize = 24

var builtins = map[string]Builder{
	"default": NewDefaultScene,
	"spheregrid": func(cfg Config) (*Scene, error) {
		return NewSphereGridScene(cfg, defaultGridSize)
	},
}

// Names returns the names of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the builder of a built-in scene
func Lookup(name string) (Builder, error) {
	builder, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return builder, nil
}

// Build looks up a built-in scene and builds it
func Build(name string, cfg Config) (*Scene, error) {
	builder, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	s, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}

	logger.Debugf("built scene %q: %d instances, %d lights, %s", name, s.InstanceCount(), len(s.Lights()), cfg.Accel)
	return s, nil
}
