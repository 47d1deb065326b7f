package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WorkerStats contains what a single worker rendered
type WorkerStats struct {
	Chunks int           // Chunks rendered
	Pixels int           // Pixels rendered
	Busy   time.Duration // Time spent inside chunk jobs
}

// Stats contains statistics about a finished render
type Stats struct {
	Chunks        int
	Pixels        int
	Workers       []WorkerStats
	WallTime      time.Duration
	Intersections accel.IntersectionCounts // Tests run during this render
}

// NewStats creates empty statistics for the given number of workers
func NewStats(workers int) Stats {
	return Stats{Workers: make([]WorkerStats, workers)}
}

// Record adds a rendered chunk. Done messages are ignored.
func (s *Stats) Record(result ChunkResult) {
	if result.Done {
		return
	}
	s.Chunks++
	s.Pixels += len(result.Pixels)
	if result.Worker >= 0 && result.Worker < len(s.Workers) {
		w := &s.Workers[result.Worker]
		w.Chunks++
		w.Pixels += len(result.Pixels)
		w.Busy += result.Elapsed
	}
}

// Table renders the per-worker statistics as a text table
func (s Stats) Table() string {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Chunks", "Pixels", "% of frame", "Busy time"})
	for id, w := range s.Workers {
		percent := 0.0
		if s.Pixels > 0 {
			percent = 100 * float64(w.Pixels) / float64(s.Pixels)
		}
		table.Append([]string{
			fmt.Sprintf("%d", id),
			p.Sprintf("%d", w.Chunks),
			p.Sprintf("%d", w.Pixels),
			fmt.Sprintf("%02.1f %%", percent),
			w.Busy.String(),
		})
	}
	table.SetFooter([]string{"", p.Sprintf("%d", s.Chunks), p.Sprintf("%d", s.Pixels), "TOTAL", s.WallTime.String()})
	table.Render()

	hits := s.Intersections
	p.Fprintf(&buf, "object hits: %d of %d tests (%s)\n",
		hits.ObjectHits, hits.ObjectTests, fmt.Sprintf("%.1f %%", 100*hits.ObjectHitRatio()))
	p.Fprintf(&buf, "triangle hits: %d of %d tests (%s)\n",
		hits.TriangleHits, hits.TriangleTests, fmt.Sprintf("%.1f %%", 100*hits.TriangleHitRatio()))

	return buf.String()
}
