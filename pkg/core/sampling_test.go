package core

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// countingSampler returns a fixed value and counts calls
type countingSampler struct {
	value float64
	calls int
}

func (c *countingSampler) Get1D() float64 {
	c.calls++
	return c.value
}

func (c *countingSampler) Get2D() (float64, float64) {
	c.calls++
	return c.value, c.value
}

func TestSampleRect_Grid(t *testing.T) {
	sampler := &countingSampler{value: 0.9}
	samples := SampleRect(Grid, 2, sampler)

	expected := [][2]float64{{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.25}, {0.75, 0.75}}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(samples))
	}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, expected[i], samples[i])
		}
	}
	if sampler.calls != 0 {
		t.Errorf("Grid sampling should not use the sampler, got %d calls", sampler.calls)
	}
}

func TestSampleRect_StratifiedStaysInCells(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(9)))
	const n = 4

	for round := 0; round < 50; round++ {
		samples := SampleRect(Stratified, n, sampler)
		if len(samples) != n*n {
			t.Fatalf("Expected %d samples, got %d", n*n, len(samples))
		}
		for k, sample := range samples {
			i, j := k/n, k%n
			if sample[0] < float64(i)/n || sample[0] >= float64(i+1)/n {
				t.Fatalf("Sample %d u=%f outside cell %d", k, sample[0], i)
			}
			if sample[1] < float64(j)/n || sample[1] >= float64(j+1)/n {
				t.Fatalf("Sample %d v=%f outside cell %d", k, sample[1], j)
			}
		}
	}
}

func TestSampleRect_RandomInUnitSquare(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(2)))
	samples := SampleRect(Random, 3, sampler)
	if len(samples) != 9 {
		t.Fatalf("Expected 9 samples, got %d", len(samples))
	}
	for _, sample := range samples {
		if sample[0] < 0 || sample[0] >= 1 || sample[1] < 0 || sample[1] >= 1 {
			t.Errorf("Sample %v outside the unit square", sample)
		}
	}

	if got := SampleRect(Random, 0, sampler); got != nil {
		t.Errorf("Expected no samples for n=0, got %v", got)
	}
}

func TestParseTechnique(t *testing.T) {
	for _, technique := range []Technique{Grid, Random, Stratified} {
		parsed, err := ParseTechnique(technique.String())
		if err != nil || parsed != technique {
			t.Errorf("ParseTechnique(%q) = %v, %v", technique.String(), parsed, err)
		}
	}

	if _, err := ParseTechnique("halton"); !errors.Is(err, ErrUnknownTechnique) {
		t.Errorf("Expected ErrUnknownTechnique, got %v", err)
	}
}

func TestSampleHemisphere(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
		const n = 20000
		sumCos := 0.0
		for i := 0; i < n; i++ {
			dir := SampleHemisphere(normal, sampler)
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("normal %v: expected a unit direction, got length %g", normal, dir.Length())
			}
			cos := dir.Dot(normal)
			if cos <= 0 {
				t.Fatalf("normal %v: direction %v leaves the hemisphere", normal, dir)
			}
			sumCos += cos
		}

		// A cosine weighted hemisphere has E[cos] = 2/3
		if mean := sumCos / n; math.Abs(mean-2.0/3.0) > 0.02 {
			t.Errorf("normal %v: expected mean cosine 2/3, got %g", normal, mean)
		}
	}
}
