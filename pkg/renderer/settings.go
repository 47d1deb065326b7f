package renderer

import (
	"fmt"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
)

// Settings is the render configuration. It is read once before the scene
// and the worker pool are built.
type Settings struct {
	ScreenWidth    int            // Image width in pixels
	ScreenHeight   int            // Image height in pixels
	ChunkWidth     int            // Chunk width in pixels
	ChunkHeight    int            // Chunk height in pixels
	Threads        int            // Number of worker goroutines
	Accel          accel.Kind     // Acceleration structure
	Gamma          float64        // Output gamma
	AASamples      int            // Camera rays per pixel side
	LightSamples   int            // Area light samples per side
	LightTechnique core.Technique // Area light sampling technique
	Indirect       int            // Indirect hemisphere samples per hit
	Mode           scene.Mode     // What pixels show
}

// DefaultSettings returns 800x600 in 80x60 chunks on 4 threads with a BVH
func DefaultSettings() Settings {
	return Settings{
		ScreenWidth:    800,
		ScreenHeight:   600,
		ChunkWidth:     80,
		ChunkHeight:    60,
		Threads:        4,
		Accel:          accel.KindBVH,
		Gamma:          2.2,
		AASamples:      1,
		LightSamples:   1,
		LightTechnique: core.Stratified,
		Indirect:       4,
		Mode:           scene.ModeRadiance,
	}
}

// Validate reports the first setting that cannot be rendered with
func (s Settings) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"screen width", s.ScreenWidth},
		{"screen height", s.ScreenHeight},
		{"chunk width", s.ChunkWidth},
		{"chunk height", s.ChunkHeight},
		{"threads", s.Threads},
		{"anti-aliasing samples", s.AASamples},
		{"light samples", s.LightSamples},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSettings, p.name, p.value)
		}
	}

	if s.Indirect < 0 {
		return fmt.Errorf("%w: indirect samples must not be negative, got %d", ErrInvalidSettings, s.Indirect)
	}
	if !(s.Gamma > 0) {
		return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidSettings, s.Gamma)
	}
	if _, err := accel.ParseKind(string(s.Accel)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if _, err := scene.ParseMode(string(s.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return nil
}

// SceneConfig returns the part of the settings a scene is built from
func (s Settings) SceneConfig() scene.Config {
	return scene.Config{
		Width:          s.ScreenWidth,
		Height:         s.ScreenHeight,
		Accel:          s.Accel,
		AASamples:      s.AASamples,
		LightSamples:   s.LightSamples,
		LightTechnique: s.LightTechnique,
		Indirect:       s.Indirect,
		Mode:           s.Mode,
	}
}
