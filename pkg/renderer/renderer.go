package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/pool"
)

// Scene is anything that can shade a pixel. It is shared read-only by all
// workers for the duration of a render.
type Scene interface {
	PixelColor(x, y int, sampler core.Sampler) core.Vec3
}

// PixelColor is one shaded pixel
type PixelColor struct {
	X, Y  int
	Color core.Vec3
}

// ChunkResult is one message on the render stream. Done messages carry no
// pixels and report that the sending worker has left its loop.
type ChunkResult struct {
	Chunk   Chunk
	Pixels  []PixelColor
	Done    bool
	Worker  int
	Elapsed time.Duration
}

// Renderer splits the image into chunks and renders them on a worker pool
type Renderer struct {
	settings Settings
	chunks   []Chunk
}

// New validates the settings and precomputes the chunk grid
func New(settings Settings) (*Renderer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		settings: settings,
		chunks:   NewChunkGrid(settings.ScreenWidth, settings.ScreenHeight, settings.ChunkWidth, settings.ChunkHeight),
	}, nil
}

// Settings returns the settings the renderer was built with
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Chunks returns the chunk grid
func (r *Renderer) Chunks() []Chunk {
	return r.chunks
}

// Stream starts rendering and returns the result channel. One job is
// submitted per chunk followed by one finish job per worker. The channel is
// closed after every worker has sent its Done message and the pool has been
// joined.
func (r *Renderer) Stream(scene Scene) <-chan ChunkResult {
	workers := pool.New(r.settings.Threads)

	// Sized for every message so workers never block on a slow consumer
	out := make(chan ChunkResult, len(r.chunks)+workers.Size())

	for _, chunk := range r.chunks {
		chunk := chunk
		workers.Execute(func(worker int) {
			out <- renderChunk(scene, chunk, worker)
		})
	}

	for i := 0; i < workers.Size(); i++ {
		workers.Finish(func(worker int) {
			out <- ChunkResult{Done: true, Worker: worker}
		})
	}

	go func() {
		workers.Close()
		close(out)
	}()

	return out
}

// Render consumes the stream into a framebuffer. It returns once as many Done
// messages as there are workers have been received.
func (r *Renderer) Render(scene Scene) (*Framebuffer, Stats, error) {
	start := time.Now()
	fb := NewFramebuffer(r.settings.ScreenWidth, r.settings.ScreenHeight, r.settings.Gamma)
	stats := NewStats(r.settings.Threads)
	counters := countersOf(scene)
	before := counters.Snapshot()

	logger.Infof("rendering %dx%d in %d chunks on %d workers",
		r.settings.ScreenWidth, r.settings.ScreenHeight, len(r.chunks), r.settings.Threads)

	results := r.Stream(scene)
	done := 0
	for done < r.settings.Threads {
		result, ok := <-results
		if !ok {
			return nil, Stats{}, fmt.Errorf("%w: %d of %d done", ErrIncompleteRender, done, r.settings.Threads)
		}

		if result.Done {
			done++
			logger.Debugf("worker %d done", result.Worker)
			continue
		}

		for _, pixel := range result.Pixels {
			fb.Set(pixel.X, pixel.Y, pixel.Color)
		}
		stats.Record(result)
		logger.Debugf("chunk %d (%d,%d) rendered by worker %d in %s",
			result.Chunk.ID, result.Chunk.Row, result.Chunk.Col, result.Worker, result.Elapsed)
	}

	stats.WallTime = time.Since(start)
	stats.Intersections = counters.Snapshot().Sub(before)
	logger.Infof("rendered %d pixels in %s", stats.Pixels, stats.WallTime)

	return fb, stats, nil
}

// countedScene is a scene that tallies its intersection tests
type countedScene interface {
	Counters() *accel.Counters
}

func countersOf(scene Scene) *accel.Counters {
	if counted, ok := scene.(countedScene); ok {
		return counted.Counters()
	}
	return nil
}

func renderChunk(scene Scene, chunk Chunk, worker int) ChunkResult {
	start := time.Now()
	sampler := chunk.Sampler()
	bounds := chunk.Bounds

	pixels := make([]PixelColor, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, PixelColor{X: x, Y: y, Color: scene.PixelColor(x, y, sampler)})
		}
	}

	return ChunkResult{
		Chunk:   chunk,
		Pixels:  pixels,
		Worker:  worker,
		Elapsed: time.Since(start),
	}
}
