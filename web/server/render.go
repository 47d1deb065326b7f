package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/renderer"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// ChunkUpdate represents a single chunk sent via SSE
type ChunkUpdate struct {
	ID          int    `json:"id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Worker      int    `json:"worker"`
	ElapsedMs   int64  `json:"elapsedMs"`
	ChunkNumber int    `json:"chunkNumber"` // 1-based arrival order
	TotalChunks int    `json:"totalChunks"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this chunk
}

// WorkerStats mirrors renderer.WorkerStats for JSON
type WorkerStats struct {
	Chunks int   `json:"chunks"`
	Pixels int   `json:"pixels"`
	BusyMs int64 `json:"busyMs"`
}

// CompleteUpdate is sent once every worker has finished
type CompleteUpdate struct {
	Scene     string        `json:"scene"`
	Instances int           `json:"instances"`
	Chunks    int           `json:"chunks"`
	Pixels    int           `json:"pixels"`
	ElapsedMs int64         `json:"elapsedMs"`
	Workers   []WorkerStats `json:"workers"`

	Intersections accel.IntersectionCounts `json:"intersections"`
}

// handleRender renders a scene and streams every finished chunk via SSE
func (s *Server) handleRender(c echo.Context) error {
	w := c.Response()
	r := c.Request()
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	sceneName, settings, err := s.parseSettings(c.QueryParams())
	if err != nil {
		return s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
	}

	sc, err := scene.Build(sceneName, settings.SceneConfig())
	if err != nil {
		return s.sendSSEEvent(w, "error", err.Error())
	}

	rend, err := renderer.New(settings)
	if err != nil {
		return s.sendSSEEvent(w, "error", err.Error())
	}

	logger.Infof("rendering %q at %dx%d for %s", sceneName, settings.ScreenWidth, settings.ScreenHeight, r.RemoteAddr)

	ctx := r.Context()
	start := time.Now()
	fb := renderer.NewFramebuffer(settings.ScreenWidth, settings.ScreenHeight, settings.Gamma)
	stats := renderer.NewStats(settings.Threads)
	total := len(rend.Chunks())

	// The stream is buffered for every message, so abandoning it on
	// disconnect does not block the workers.
	done := 0
	for result := range rend.Stream(sc) {
		select {
		case <-ctx.Done():
			logger.Infof("client %s disconnected", r.RemoteAddr)
			return nil
		default:
		}

		if result.Done {
			done++
			continue
		}

		for _, pixel := range result.Pixels {
			fb.Set(pixel.X, pixel.Y, pixel.Color)
		}
		stats.Record(result)

		if err := s.sendChunk(w, fb, result, stats.Chunks, total); err != nil {
			logger.Warningf("sending chunk %d: %v", result.Chunk.ID, err)
			return nil
		}
	}

	if done != settings.Threads {
		return s.sendSSEEvent(w, "error", fmt.Sprintf("render ended with %d of %d workers done", done, settings.Threads))
	}

	complete := CompleteUpdate{
		Scene:     sceneName,
		Instances: sc.InstanceCount(),
		Chunks:    stats.Chunks,
		Pixels:    stats.Pixels,
		ElapsedMs: time.Since(start).Milliseconds(),

		Intersections: sc.Counters().Snapshot(),
	}
	for _, ws := range stats.Workers {
		complete.Workers = append(complete.Workers, WorkerStats{Chunks: ws.Chunks, Pixels: ws.Pixels, BusyMs: ws.Busy.Milliseconds()})
	}

	data, err := json.Marshal(complete)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "complete", string(data))
}

func (s *Server) sendChunk(w *echo.Response, fb *renderer.Framebuffer, result renderer.ChunkResult, number, total int) error {
	bounds := result.Chunk.Bounds
	imageData, err := imageToBase64PNG(fb.Image().SubImage(bounds))
	if err != nil {
		return err
	}

	update := ChunkUpdate{
		ID:          result.Chunk.ID,
		Row:         result.Chunk.Row,
		Col:         result.Chunk.Col,
		X:           bounds.Min.X,
		Y:           bounds.Min.Y,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Worker:      result.Worker,
		ElapsedMs:   result.Elapsed.Milliseconds(),
		ChunkNumber: number,
		TotalChunks: total,
		ImageData:   imageData,
	}

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "chunk", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w *echo.Response) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
}

// sendSSEEvent writes one SSE event and flushes it
func (s *Server) sendSSEEvent(w *echo.Response, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
