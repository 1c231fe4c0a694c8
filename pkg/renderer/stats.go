package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	BlackPixels int           // Pixels whose primary ray contributed nothing
	TotalTiles  int           // Number of tiles rendered
	Duration    time.Duration // Wall time of the whole render
}

// addPixel records a single traced pixel
func (s *RenderStats) addPixel(color core.Color) {
	s.TotalPixels++
	if color == core.Black() {
		s.BlackPixels++
	}
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.BlackPixels += other.BlackPixels
	s.TotalTiles += other.TotalTiles
}

// PixelsPerSecond returns the render throughput, or 0 before the render finishes
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}
