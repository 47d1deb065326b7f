package accel

import (
	"math/rand"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

func TestCounters_CountObjectAndTriangleTests(t *testing.T) {
	gray := material.NewGray(0.5)
	instances := []*Instance{
		NewInstance(geometry.NewSphere(gray), core.Identity()),
		NewInstance(geometry.NewSphere(gray), core.Identity().Translate(core.NewVec3(5, 0, 0))),
		NewInstance(geometry.NewTriangle(
			core.NewVec3(-1, -1, 3), core.NewVec3(1, -1, 3), core.NewVec3(0, 1, 3), gray), core.Identity()),
	}

	brute := NewBruteForce(instances)
	// Passes through the first sphere and the triangle behind it
	if _, ok := brute.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))); !ok {
		t.Fatal("Expected a hit")
	}

	want := IntersectionCounts{ObjectTests: 3, ObjectHits: 2, TriangleTests: 1, TriangleHits: 1}
	if got := brute.Counters().Snapshot(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	// Segment between the spheres touches nothing
	if !brute.Visible(core.NewVec3(2.5, -3, 0), core.NewVec3(2.5, 3, 0)) {
		t.Fatal("Expected the segment to be visible")
	}
	if got := brute.Counters().Snapshot(); got.ObjectTests != 6 || got.ObjectHits != 2 {
		t.Errorf("Expected visibility tests to be counted, got %+v", got)
	}
}

func TestCounters_BVHTestsFewerObjects(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	instances := randomScene(random, 250)
	bvh := NewBVH(instances)
	brute := NewBruteForce(instances)

	for i := 0; i < 500; i++ {
		ray := core.NewRay(randomPoint(random, 30), randomPoint(random, 1))
		bvh.Intersect(ray)
		brute.Intersect(ray)
	}

	bvhCounts, bruteCounts := bvh.Counters().Snapshot(), brute.Counters().Snapshot()
	if bruteCounts.ObjectTests != 500*250 {
		t.Errorf("Expected brute force to test every instance, got %d tests", bruteCounts.ObjectTests)
	}
	if bvhCounts.ObjectTests >= bruteCounts.ObjectTests {
		t.Errorf("Expected the BVH to test fewer objects: %d vs %d", bvhCounts.ObjectTests, bruteCounts.ObjectTests)
	}
	if bvhCounts.ObjectHits > bvhCounts.ObjectTests || bvhCounts.TriangleTests > bvhCounts.ObjectTests {
		t.Errorf("Inconsistent counts %+v", bvhCounts)
	}
	if r := bvhCounts.ObjectHitRatio(); r < 0 || r > 1 {
		t.Errorf("Expected a hit ratio in [0, 1], got %g", r)
	}
}

func TestIntersectionCounts(t *testing.T) {
	var empty IntersectionCounts
	if empty.ObjectHitRatio() != 0 || empty.TriangleHitRatio() != 0 {
		t.Error("Expected zero ratios without tests")
	}

	var nilCounters *Counters
	if nilCounters.Snapshot() != empty {
		t.Error("Expected a nil counter to report nothing")
	}
	sphere := NewInstance(geometry.NewSphere(material.NewGray(0.5)), core.Identity())
	if _, ok := nilCounters.intersect(sphere, core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))); !ok {
		t.Error("Expected a nil counter to pass the hit through")
	}

	later := IntersectionCounts{ObjectTests: 10, ObjectHits: 4, TriangleTests: 6, TriangleHits: 3}
	earlier := IntersectionCounts{ObjectTests: 2, ObjectHits: 1, TriangleTests: 2, TriangleHits: 1}
	delta := later.Sub(earlier)
	if delta != (IntersectionCounts{ObjectTests: 8, ObjectHits: 3, TriangleTests: 4, TriangleHits: 2}) {
		t.Errorf("Unexpected difference %+v", delta)
	}
	if delta.ObjectHitRatio() != 3.0/8.0 || delta.TriangleHitRatio() != 0.5 {
		t.Errorf("Unexpected ratios %g and %g", delta.ObjectHitRatio(), delta.TriangleHitRatio())
	}
}
