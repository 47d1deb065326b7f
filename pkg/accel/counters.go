package accel

import (
	"sync/atomic"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
)

// Counters tallies the instance intersection tests a structure runs. It is
// safe for concurrent use; a nil *Counters counts nothing.
type Counters struct {
	objectTests   atomic.Uint64
	objectHits    atomic.Uint64
	triangleTests atomic.Uint64
	triangleHits  atomic.Uint64
}

// IntersectionCounts is a snapshot of Counters. Triangle tests are included
// in the object totals.
type IntersectionCounts struct {
	ObjectTests   uint64 `json:"objectTests"`
	ObjectHits    uint64 `json:"objectHits"`
	TriangleTests uint64 `json:"triangleTests"`
	TriangleHits  uint64 `json:"triangleHits"`
}

// Snapshot returns the current totals
func (c *Counters) Snapshot() IntersectionCounts {
	if c == nil {
		return IntersectionCounts{}
	}
	return IntersectionCounts{
		ObjectTests:   c.objectTests.Load(),
		ObjectHits:    c.objectHits.Load(),
		TriangleTests: c.triangleTests.Load(),
		TriangleHits:  c.triangleHits.Load(),
	}
}

// intersect tests one instance and records the outcome
func (c *Counters) intersect(instance *Instance, ray core.Ray) (core.Intersection, bool) {
	hit, ok := instance.Intersect(ray)
	if c == nil {
		return hit, ok
	}

	c.objectTests.Add(1)
	if ok {
		c.objectHits.Add(1)
	}
	if instance.triangle {
		c.triangleTests.Add(1)
		if ok {
			c.triangleHits.Add(1)
		}
	}
	return hit, ok
}

// Sub returns the tests counted since an earlier snapshot
func (c IntersectionCounts) Sub(earlier IntersectionCounts) IntersectionCounts {
	return IntersectionCounts{
		ObjectTests:   c.ObjectTests - earlier.ObjectTests,
		ObjectHits:    c.ObjectHits - earlier.ObjectHits,
		TriangleTests: c.TriangleTests - earlier.TriangleTests,
		TriangleHits:  c.TriangleHits - earlier.TriangleHits,
	}
}

// ObjectHitRatio is the fraction of object tests that hit, 0 without tests
func (c IntersectionCounts) ObjectHitRatio() float64 {
	return ratio(c.ObjectHits, c.ObjectTests)
}

// TriangleHitRatio is the fraction of triangle tests that hit, 0 without tests
func (c IntersectionCounts) TriangleHitRatio() float64 {
	return ratio(c.TriangleHits, c.TriangleTests)
}

func ratio(hits, tests uint64) float64 {
	if tests == 0 {
		return 0
	}
	return float64(hits) / float64(tests)
}

func isTriangle(object core.Object) bool {
	switch object.(type) {
	case *geometry.Triangle, *geometry.TriangleMesh:
		return true
	default:
		return false
	}
}
