package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RandomSampler wraps a standard Go random generator. It is not safe for
// concurrent use; every goroutine needs its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// ErrUnknownTechnique is returned for sampling technique names that are not supported
var ErrUnknownTechnique = errors.New("core: unknown sampling technique")

// Technique selects how points on a rectangle are sampled
type Technique int

const (
	// Grid places one sample in the centre of every cell
	Grid Technique = iota
	// Random ignores the cells and samples the whole rectangle uniformly
	Random
	// Stratified jitters one sample inside every cell
	Stratified
)

// String returns the technique name
func (t Technique) String() string {
	switch t {
	case Grid:
		return "grid"
	case Random:
		return "random"
	case Stratified:
		return "stratified"
	default:
		return fmt.Sprintf("technique(%d)", int(t))
	}
}

// ParseTechnique converts a user supplied name into a Technique
func ParseTechnique(name string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grid":
		return Grid, nil
	case "random":
		return Random, nil
	case "stratified":
		return Stratified, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTechnique, name)
	}
}

// SampleRect returns n×n sample positions in the unit square. Cells are
// visited row by row. Grid never touches the sampler.
func SampleRect(technique Technique, n int, sampler Sampler) [][2]float64 {
	if n <= 0 {
		return nil
	}

	cell := 1.0 / float64(n)
	samples := make([][2]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch technique {
			case Random:
				u, v := sampler.Get2D()
				samples = append(samples, [2]float64{u, v})
			case Stratified:
				du, dv := sampler.Get2D()
				samples = append(samples, [2]float64{cell * (float64(i) + du), cell * (float64(j) + dv)})
			default:
				samples = append(samples, [2]float64{cell * (float64(i) + 0.5), cell * (float64(j) + 0.5)})
			}
		}
	}
	return samples
}

// SampleHemisphere returns a cosine weighted direction in the hemisphere
// around the unit normal. The pdf of the result is cos(theta)/pi.
func SampleHemisphere(normal Vec3, sampler Sampler) Vec3 {
	u, v := sampler.Get2D()
	a := 2.0 * math.Pi * u
	r := math.Sqrt(v)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	z := math.Sqrt(1.0 - v)

	// Orthonormal basis around the normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}
