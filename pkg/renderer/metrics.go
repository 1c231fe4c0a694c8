package renderer

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	pixelsRendered = stats.Int64("raytracer/pixels_rendered", "Pixels traced", stats.UnitDimensionless)
	tilesRendered  = stats.Int64("raytracer/tiles_rendered", "Tiles traced", stats.UnitDimensionless)
	renderLatency  = stats.Float64("raytracer/render_latency", "Wall time of a full render", stats.UnitMilliseconds)

	pixelsRenderedView = &view.View{
		Name:        "raytracer/pixels_rendered",
		Description: "Total number of pixels traced",
		Measure:     pixelsRendered,
		Aggregation: view.Sum(),
	}
	tilesRenderedView = &view.View{
		Name:        "raytracer/tiles_rendered",
		Description: "Counter of tiles that have been traced",
		Measure:     tilesRendered,
		Aggregation: view.Count(),
	}
	renderLatencyView = &view.View{
		Name:        "raytracer/render_latency",
		Description: "Distribution of full render wall times",
		Measure:     renderLatency,
		Aggregation: view.Distribution(10, 50, 100, 500, 1000, 5000, 10000, 60000),
	}
)

// RegisterMetrics registers the renderer's views with opencensus. Callers
// that never register pay only for the measurement calls.
func RegisterMetrics() error {
	return view.Register(pixelsRenderedView, tilesRenderedView, renderLatencyView)
}

// UnregisterMetrics removes the views added by RegisterMetrics
func UnregisterMetrics() {
	view.Unregister(pixelsRenderedView, tilesRenderedView, renderLatencyView)
}

func recordTile(ctx context.Context, tileStats RenderStats) {
	stats.Record(ctx, tilesRendered.M(1), pixelsRendered.M(int64(tileStats.TotalPixels)))
}

func recordRender(ctx context.Context, elapsed time.Duration) {
	stats.Record(ctx, renderLatency.M(float64(elapsed)/float64(time.Millisecond)))
}
