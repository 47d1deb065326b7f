package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/lights"
)

// shadowEpsilon offsets shadow ray end points off their surfaces
const shadowEpsilon = 1e-6

// Mode selects what a pixel shows
type Mode string

const (
	ModeRadiance Mode = "radiance" // Direct plus one bounce of indirect lighting
	ModeNormals  Mode = "normals"  // Surface normal mapped to RGB
	ModeDistance Mode = "distance" // Inverse distance to the camera
)

// ParseMode converts a user supplied name into a Mode
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeRadiance:
		return ModeRadiance, nil
	case ModeNormals:
		return ModeNormals, nil
	case ModeDistance:
		return ModeDistance, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Config is read once when a scene is built
type Config struct {
	Width          int            // Image width in pixels
	Height         int            // Image height in pixels
	Accel          accel.Kind     // Acceleration structure
	AASamples      int            // Camera rays per pixel side
	LightSamples   int            // Area light samples per side
	LightTechnique core.Technique // How area lights are sampled
	Indirect       int            // Hemisphere samples per hit, 0 for direct light only
	Mode           Mode           // What pixels show
}

// DefaultConfig returns an 800x600 BVH configuration with one camera and light
// sample and four indirect samples
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		Accel:          accel.KindBVH,
		AASamples:      1,
		LightSamples:   1,
		LightTechnique: core.Stratified,
		Indirect:       4,
		Mode:           ModeRadiance,
	}
}

// Scene owns the acceleration structure, the lights and the camera. It is
// immutable after New and safe to share between render goroutines.
type Scene struct {
	config    Config
	structure accel.Structure
	lights    []lights.Light
	camera    *Camera
	instances int
}

// New builds the acceleration structure selected by cfg over instances
func New(cfg Config, instances []*accel.Instance, sceneLights []lights.Light, camera *Camera) (*Scene, error) {
	structure, err := accel.New(cfg.Accel, instances)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeRadiance
	}

	return &Scene{
		config:    cfg,
		structure: structure,
		lights:    append([]lights.Light(nil), sceneLights...),
		camera:    camera,
		instances: len(instances),
	}, nil
}

// Config returns the configuration the scene was built with
func (s *Scene) Config() Config {
	return s.config
}

// Camera returns the scene camera
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Structure returns the acceleration structure
func (s *Scene) Structure() accel.Structure {
	return s.structure
}

// Counters returns the intersection tests run against the scene so far
func (s *Scene) Counters() *accel.Counters {
	return s.structure.Counters()
}

// Lights returns the scene lights
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// InstanceCount returns the number of placed objects
func (s *Scene) InstanceCount() int {
	return s.instances
}

// Intersect returns the nearest hit along the ray
func (s *Scene) Intersect(ray core.Ray) (core.Intersection, bool) {
	return s.structure.Intersect(ray)
}

// Visible reports whether nothing lies between from and to
func (s *Scene) Visible(from, to core.Vec3) bool {
	return s.structure.Visible(from, to)
}

// Radiance returns the light leaving the intersection along outgoing: the
// direct light of every source plus one bounce of indirect light
func (s *Scene) Radiance(hit core.Intersection, outgoing core.Vec3, sampler core.Sampler) core.Vec3 {
	return s.direct(hit, outgoing, sampler).Add(s.indirect(hit, outgoing, sampler))
}

func (s *Scene) direct(hit core.Intersection, outgoing core.Vec3, sampler core.Sampler) core.Vec3 {
	total := core.Vec3{}
	for _, light := range s.lights {
		samples := light.Samples(s.config.LightTechnique, s.config.LightSamples, sampler)
		if len(samples) == 0 {
			continue
		}

		sum := core.Vec3{}
		for _, sample := range samples {
			sum = sum.Add(s.transfer(hit, outgoing, light, sample))
		}
		total = total.Add(sum.Multiply(1 / float64(len(samples))))
	}
	return total
}

// indirect gathers the direct light of the surfaces seen along cosine
// weighted directions around the normal
func (s *Scene) indirect(hit core.Intersection, outgoing core.Vec3, sampler core.Sampler) core.Vec3 {
	n := s.config.Indirect
	if n <= 0 {
		return core.Vec3{}
	}

	origin := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))
	sum := core.Vec3{}
	for i := 0; i < n; i++ {
		incoming := core.SampleHemisphere(hit.Normal, sampler)
		bounce, ok := s.Intersect(core.NewRay(origin, incoming))
		if !ok {
			continue
		}

		// The cosine cancels against the pdf cos/pi
		received := s.direct(bounce, incoming.Negate(), sampler)
		brdf := hit.Material.BRDF(incoming, outgoing)
		sum = sum.Add(brdf.MultiplyVec(received).Multiply(math.Pi))
	}
	return sum.Multiply(1 / float64(n))
}

// transfer is the radiance carried from one light sample to the hit point
func (s *Scene) transfer(hit core.Intersection, outgoing core.Vec3, light lights.Light, sample lights.Sample) core.Vec3 {
	lightNormal := sample.Normal
	if !sample.HasNormal {
		lightNormal = hit.Point.Subtract(sample.Point).Normalize()
	}

	from := sample.Point.Add(lightNormal.Multiply(shadowEpsilon))
	to := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))

	diff := from.Subtract(to)
	r := diff.Length()
	if r == 0 {
		return core.Vec3{}
	}
	incoming := diff.Multiply(1 / r)

	cosIn := math.Max(0, hit.Normal.Dot(incoming))
	cosOut := math.Max(0, lightNormal.Dot(incoming.Negate()))
	if cosIn == 0 || cosOut == 0 {
		return core.Vec3{}
	}

	if !s.Visible(from, to) {
		return core.Vec3{}
	}

	factor := cosIn * cosOut / (r * r)
	brdf := hit.Material.BRDF(incoming, outgoing)
	return brdf.MultiplyVec(light.Radiance(sample.Point)).Multiply(factor)
}

// PixelColor traces the camera rays of pixel (x, y) and returns the averaged
// linear color. Misses are black.
func (s *Scene) PixelColor(x, y int, sampler core.Sampler) core.Vec3 {
	rays := s.camera.Rays(x, y, s.config.AASamples)

	sum := core.Vec3{}
	for _, ray := range rays {
		sum = sum.Add(s.rayColor(ray, sampler))
	}
	return sum.Multiply(1 / float64(len(rays)))
}

func (s *Scene) rayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := s.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}

	switch s.config.Mode {
	case ModeNormals:
		return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	case ModeDistance:
		distance := hit.Point.Subtract(ray.Origin).Length()
		gray := math.Min(1, 1/distance)
		return core.NewVec3(gray, gray, gray)
	default:
		return s.Radiance(hit, ray.Direction.Negate(), sampler).Clamp(0, 1)
	}
}
