package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Chunk is a rectangular region of the image rendered as one job
type Chunk struct {
	ID     int             // Unique chunk identifier in row-major order
	Row    int             // Chunk row
	Col    int             // Chunk column
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// Sampler returns a random sampler seeded from the chunk id, so results do
// not depend on which worker renders the chunk
func (c Chunk) Sampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(int64(c.ID + 42)))) // +42 to avoid seed 0
}

// NewChunkGrid creates a grid of chunks covering the entire image. Edge
// chunks are clipped to the image.
func NewChunkGrid(width, height, chunkWidth, chunkHeight int) []Chunk {
	if width <= 0 || height <= 0 || chunkWidth <= 0 || chunkHeight <= 0 {
		return nil
	}

	// Ceiling division
	cols := (width + chunkWidth - 1) / chunkWidth
	rows := (height + chunkHeight - 1) / chunkHeight

	chunks := make([]Chunk, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x0 := col * chunkWidth
			y0 := row * chunkHeight
			x1 := min(x0+chunkWidth, width) // Don't exceed image bounds
			y1 := min(y0+chunkHeight, height)

			chunks = append(chunks, Chunk{
				ID:     len(chunks),
				Row:    row,
				Col:    col,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return chunks
}
