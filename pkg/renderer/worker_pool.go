package renderer

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	Canvas *Canvas // Shared canvas; each task writes only its own tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  RenderStats
}

// WorkerPool renders tiles concurrently, at most numWorkers at a time
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(renderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{renderer: renderer, numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and returns the per-tile results in task order.
// Cancelling ctx stops dispatching new tiles; tiles already started finish.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask) ([]TileResult, error) {
	tracer := otel.Tracer("go-whitted-raytracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "WorkerPool.Run")
	defer span.End()

	// Each task writes only its own slot
	results := make([]TileResult, len(tasks))

	// Use errgroup and semaphore to limit concurrency.
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(wp.numWorkers))

	for i, task := range tasks {
		// Acquire hands out free slots even after ctx is done
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			// Let in-flight tiles finish before reporting; workers never fail
			_ = eg.Wait()
			span.RecordError(err)
			return nil, xerrors.Errorf("while acquiring worker slot for tile %d: %w", task.Tile.ID, err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			results[i] = wp.renderTile(ctx, tracer, task)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		return nil, xerrors.Errorf("while waiting for tile workers: %w", err)
	}

	return results, nil
}

func (wp *WorkerPool) renderTile(ctx context.Context, tracer trace.Tracer, task TileTask) TileResult {
	ctx, span := tracer.Start(ctx, "WorkerPool.renderTile")
	defer span.End()

	stats := wp.renderer.RenderTileBounds(task.Tile.Bounds, task.Canvas)
	recordTile(ctx, stats)
	return TileResult{TileID: task.Tile.ID, Stats: stats}
}
