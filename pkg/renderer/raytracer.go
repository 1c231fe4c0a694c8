package renderer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig contains configuration for tiled rendering
type RenderConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	MaxBounces int // Recursion budget for reflected and refracted rays
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
		MaxBounces: scene.MaxBounces,
	}
}

// Raytracer renders a world through a camera, splitting the image into tiles
// that are traced in parallel
type Raytracer struct {
	world  *scene.World
	camera *Camera
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger uses NewDefaultLogger.
func NewRaytracer(world *scene.World, camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.MaxBounces < 0 {
		config.MaxBounces = 0
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		logger: logger,
	}
}

// Render traces the whole image on the calling goroutine
func (rt *Raytracer) Render() (*Canvas, RenderStats) {
	start := time.Now()
	canvas := NewCanvas(rt.camera.HSize, rt.camera.VSize)

	stats := NewTileRenderer(rt.world, rt.camera, rt.config.MaxBounces).RenderTileBounds(canvas.Bounds(), canvas)
	stats.Duration = time.Since(start)
	return canvas, stats
}

// RenderParallel traces the image tile by tile on a worker pool. Tiles cover
// disjoint pixels, so workers share the canvas without locking. Cancelling
// ctx stops new tiles from starting and returns the context's error.
func (rt *Raytracer) RenderParallel(ctx context.Context) (*Canvas, RenderStats, error) {
	tracer := otel.Tracer("go-whitted-raytracer/renderer")
	ctx, span := tracer.Start(ctx, "Raytracer.RenderParallel")
	defer span.End()

	start := time.Now()
	width, height := rt.camera.HSize, rt.camera.VSize
	canvas := NewCanvas(width, height)

	tiles := NewTileGrid(width, height, rt.config.TileSize)
	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, Canvas: canvas}
	}

	pool := NewWorkerPool(NewTileRenderer(rt.world, rt.camera, rt.config.MaxBounces), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d in %d tiles with %d workers\n", width, height, len(tiles), pool.GetNumWorkers())

	results, err := pool.Run(ctx, tasks)
	if err != nil {
		span.RecordError(err)
		return nil, RenderStats{}, xerrors.Errorf("while rendering tiles: %w", err)
	}

	var stats RenderStats
	for _, result := range results {
		stats.Merge(result.Stats)
	}
	stats.Duration = time.Since(start)
	recordRender(ctx, stats.Duration)

	rt.logger.Printf("Rendered %d pixels in %v (%.0f pixels/s)\n", stats.TotalPixels, stats.Duration, stats.PixelsPerSecond())
	return canvas, stats, nil
}

// RenderRegion traces only the w x h region at (x, y) and returns row-major
// RGBA8 bytes, clipped to the image
func (rt *Raytracer) RenderRegion(x, y, w, h int) []byte {
	return rt.camera.renderRegion(rt.world, x, y, w, h, rt.config.MaxBounces)
}
