package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
	"github.com/df07/go-chunk-raytracer/pkg/lights"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

func testConfig(kind accel.Kind) Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 40, 30
	cfg.Accel = kind
	cfg.LightTechnique = core.Grid
	cfg.Indirect = 0
	return cfg
}

func seededSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func testCamera() *Camera {
	return NewCamera(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 60, 40, 30)
}

func TestScene_UnitSphere(t *testing.T) {
	for _, kind := range accel.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sphere := accel.NewInstance(geometry.NewSphere(material.NewGray(0.5)), core.Identity())
			s, err := New(testConfig(kind), []*accel.Instance{sphere}, nil, testCamera())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)))
			if !ok {
				t.Fatal("Expected a hit")
			}
			if math.Abs(hit.T-2) > 1e-9 {
				t.Errorf("Expected t=2, got %f", hit.T)
			}
			if hit.Point.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
				t.Errorf("Expected point (0,0,-1), got %v", hit.Point)
			}
			if hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
				t.Errorf("Expected normal (0,0,-1), got %v", hit.Normal)
			}

			if s.Visible(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 3)) {
				t.Error("Expected the sphere to block the segment through it")
			}
			if !s.Visible(core.NewVec3(0, 0, -3), core.NewVec3(0, 3, -3)) {
				t.Error("Expected a segment beside the sphere to be visible")
			}
		})
	}
}

func TestScene_Empty(t *testing.T) {
	for _, kind := range accel.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			s, err := New(testConfig(kind), nil, nil, testCamera())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			if _, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))); ok {
				t.Error("Expected no hit in an empty scene")
			}
			if !s.Visible(core.NewVec3(-5, 0, 0), core.NewVec3(5, 0, 0)) {
				t.Error("Expected everything to be visible in an empty scene")
			}
			if color := s.PixelColor(20, 15, nil); color != (core.Vec3{}) {
				t.Errorf("Expected a black pixel, got %v", color)
			}
		})
	}
}

func TestScene_New_UnknownAccel(t *testing.T) {
	cfg := testConfig(accel.Kind("grid"))
	if _, err := New(cfg, nil, nil, testCamera()); !errors.Is(err, accel.ErrUnknownAccel) {
		t.Errorf("Expected ErrUnknownAccel, got %v", err)
	}
}

func TestScene_Radiance_PointLight(t *testing.T) {
	floor := accel.NewInstance(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), false, material.NewGray(1)), core.Identity())
	blocker := accel.NewInstance(geometry.NewSphere(material.NewGray(1)), core.Identity().ScaleAll(0.2).Translate(core.NewVec3(0, 1, 0)))
	light := lights.NewPointLight(core.NewVec3(0, 2, 0), 100, core.NewVec3(1, 1, 1))

	hit := core.Intersection{
		T:        1,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: material.NewGray(1),
	}
	outgoing := core.NewVec3(0, 1, 0)

	tests := []struct {
		name      string
		instances []*accel.Instance
		light     lights.Light
		want      float64
	}{
		{
			name:      "lit from above",
			instances: []*accel.Instance{floor},
			light:     light,
			want:      (1 / (2 * math.Pi)) * (100 / (4 * math.Pi)) / 4,
		},
		{
			name:      "occluded",
			instances: []*accel.Instance{floor, blocker},
			light:     light,
			want:      0,
		},
		{
			name:      "light below the surface",
			instances: []*accel.Instance{floor},
			light:     lights.NewPointLight(core.NewVec3(0, -2, 0), 100, core.NewVec3(1, 1, 1)),
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(testConfig(accel.KindBVH), tt.instances, []lights.Light{tt.light}, testCamera())
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			radiance := s.Radiance(hit, outgoing, nil)
			if math.Abs(radiance.X-tt.want) > 1e-6*math.Max(1, tt.want) {
				t.Errorf("Expected radiance %g, got %g", tt.want, radiance.X)
			}
			if radiance.X != radiance.Y || radiance.Y != radiance.Z {
				t.Errorf("Expected gray radiance, got %v", radiance)
			}
		})
	}
}

func TestScene_Radiance_Indirect(t *testing.T) {
	floor := accel.NewInstance(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), false, material.NewGray(1)), core.Identity())
	wall := accel.NewInstance(geometry.NewQuad(core.NewVec3(1, -2, -2), core.NewVec3(0, 4, 0), core.NewVec3(0, 0, 4), true, material.NewGray(1)), core.Identity())
	// Sits on the line from the light to the origin, so the floor point only
	// sees light bounced off the wall
	blocker := accel.NewInstance(geometry.NewSphere(material.NewGray(1)), core.Identity().ScaleAll(0.2).Translate(core.NewVec3(0.25, 1.5, 0)))
	light := lights.NewPointLight(core.NewVec3(0.5, 3, 0), 100, core.NewVec3(1, 1, 1))

	hit := core.Intersection{
		T:        1,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: material.NewGray(1),
	}
	outgoing := core.NewVec3(0, 1, 0)

	radiance := func(indirect int, instances ...*accel.Instance) float64 {
		cfg := testConfig(accel.KindBVH)
		cfg.Indirect = indirect
		s, err := New(cfg, instances, []lights.Light{light}, testCamera())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		return s.Radiance(hit, outgoing, seededSampler(5)).X
	}

	if direct := radiance(0, floor, wall, blocker); direct != 0 {
		t.Fatalf("Expected the blocker to shadow the floor point, got %g", direct)
	}

	lit := radiance(64, floor, wall, blocker)
	if !(lit > 0) {
		t.Errorf("Expected light bounced off the wall to reach the floor, got %g", lit)
	}
	if bare := radiance(64, floor, blocker); !(lit > bare) {
		t.Errorf("Expected the wall to brighten the floor: with %g, without %g", lit, bare)
	}
}

func TestScene_Modes(t *testing.T) {
	sphere := accel.NewInstance(geometry.NewSphere(material.NewGray(0.5)), core.Identity())

	cfg := testConfig(accel.KindBVH)
	cfg.Mode = ModeNormals
	s, err := New(cfg, []*accel.Instance{sphere}, nil, testCamera())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Centre pixel hits the sphere head on: normal (0,0,-1) maps to (0.5,0.5,0)
	color := s.PixelColor(20, 15, nil)
	if color.Subtract(core.NewVec3(0.5, 0.5, 0)).Length() > 0.05 {
		t.Errorf("Expected the normal color (0.5,0.5,0), got %v", color)
	}

	cfg.Mode = ModeDistance
	s, err = New(cfg, []*accel.Instance{sphere}, nil, testCamera())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	color = s.PixelColor(20, 15, nil)
	if math.Abs(color.X-0.5) > 0.05 {
		t.Errorf("Expected gray 1/2 for a hit at distance 2, got %v", color)
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range []Mode{ModeRadiance, ModeNormals, ModeDistance} {
		parsed, err := ParseMode(string(mode))
		if err != nil || parsed != mode {
			t.Errorf("ParseMode(%q) = %q, %v", mode, parsed, err)
		}
	}
	if _, err := ParseMode("albedo"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("cornell"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := Build("cornell", DefaultConfig()); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene from Build, got %v", err)
	}

	names := Names()
	if len(names) != 2 || names[0] != "default" || names[1] != "spheregrid" {
		t.Errorf("Unexpected scene names %v", names)
	}
}

func TestBuiltinScenes_StructuresAgree(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			bvhConfig, bruteConfig := testConfig(accel.KindBVH), testConfig(accel.KindBruteForce)
			bvhConfig.Indirect, bruteConfig.Indirect = 2, 2

			bvhScene, err := Build(name, bvhConfig)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			bruteScene, err := Build(name, bruteConfig)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			lit := 0
			for y := 0; y < 30; y += 3 {
				for x := 0; x < 40; x += 3 {
					seed := int64(y*40 + x)
					a := bvhScene.PixelColor(x, y, seededSampler(seed))
					b := bruteScene.PixelColor(x, y, seededSampler(seed))
					if a.Subtract(b).Length() > 1e-9 {
						t.Fatalf("pixel (%d,%d): BVH %v, brute force %v", x, y, a, b)
					}
					if !a.IsFinite() || a.X < 0 || a.X > 1 {
						t.Fatalf("pixel (%d,%d): color out of range %v", x, y, a)
					}
					if a.LengthSquared() > 0 {
						lit++
					}
				}
			}
			if lit == 0 {
				t.Error("Expected some lit pixels")
			}
		})
	}
}
