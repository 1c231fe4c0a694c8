package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Tile is a rectangular block of pixels rendered as one unit of work
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height, 1)
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileRenderer traces the pixels of individual tiles
type TileRenderer struct {
	world      *scene.World
	camera     *Camera
	maxBounces int
}

// NewTileRenderer creates a new tile renderer for a world seen through camera
func NewTileRenderer(world *scene.World, camera *Camera, maxBounces int) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		maxBounces: maxBounces,
	}
}

// RenderTileBounds traces every pixel within bounds into canvas. Concurrent
// calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, canvas *Canvas) RenderStats {
	bounds = bounds.Intersect(canvas.Bounds())
	stats := RenderStats{TotalTiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			color := tr.world.ColorAt(ray, tr.maxBounces)
			canvas.WritePixel(x, y, color)
			stats.addPixel(color)
		}
	}

	return stats
}
