package accel

import (
	"fmt"
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Structure answers the geometric queries of a scene. Implementations are
// immutable after construction, apart from their counters, and safe for
// concurrent use.
type Structure interface {
	// Intersect returns the nearest hit along the ray
	Intersect(ray core.Ray) (core.Intersection, bool)
	// Visible reports whether nothing lies strictly between from and to
	Visible(from, to core.Vec3) bool
	// BoundingBox returns the box of everything indexed, after transform
	BoundingBox(transform core.Transform) core.AABB
	// Counters returns the instance intersection tests run so far
	Counters() *Counters
}

// Kind selects an acceleration structure
type Kind string

const (
	KindBVH        Kind = "bvh"
	KindBruteForce Kind = "brute-force"
)

// Kinds lists every supported kind in display order
func Kinds() []Kind {
	return []Kind{KindBVH, KindBruteForce}
}

// ParseKind converts a user supplied name into a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bvh":
		return KindBVH, nil
	case "brute-force", "bruteforce", "brute_force":
		return KindBruteForce, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAccel, name)
	}
}

// New builds the structure of the given kind over the instances
func New(kind Kind, instances []*Instance) (Structure, error) {
	switch kind {
	case KindBVH:
		bvh := NewBVH(instances)
		stats := bvh.Stats()
		logger.Debugf("built BVH over %d instances: %d nodes, %d leaves, depth %d",
			stats.Instances, stats.Nodes, stats.Leaves, stats.MaxDepth)
		return bvh, nil
	case KindBruteForce:
		logger.Debugf("using brute force over %d instances", len(instances))
		return NewBruteForce(instances), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccel, string(kind))
	}
}
