package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Camera maps pixels of an HSize x VSize image to primary rays. The image
// plane sits one unit in front of the eye, at z = -1 in camera space.
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64 // Angle in radians

	HalfWidth  float64
	HalfHeight float64
	PixelSize  float64

	transform core.Matrix
	inverse   core.Matrix
}

// NewCamera creates a camera at the origin looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)

	// Fit the field of view to the narrower axis
	var halfWidth, halfHeight float64
	if aspect >= 1 {
		halfWidth = halfView
		halfHeight = halfView / aspect
	} else {
		halfWidth = halfView * aspect
		halfHeight = halfView
	}

	return &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		HalfWidth:   halfWidth,
		HalfHeight:  halfHeight,
		PixelSize:   halfWidth * 2 / float64(hsize),
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}
}

// NewCameraFromConfig creates a camera sized and placed by a scene camera config
func NewCameraFromConfig(config scene.CameraConfig) *Camera {
	c := NewCamera(config.Width, config.Height, config.FieldOfView)
	c.SetTransform(config.ViewTransform())
	return c
}

// SetTransform sets the world-to-camera transform and caches its inverse
func (c *Camera) SetTransform(m core.Matrix) {
	c.transform = m
	c.inverse = m.Inverse()
}

// Transform returns the world-to-camera transform
func (c *Camera) Transform() core.Matrix {
	return c.transform
}

// RayForPixel returns the world-space ray through the center of pixel (x, y)
func (c *Camera) RayForPixel(x, y int) core.Ray {
	// Offset from the edge of the canvas to the pixel's center
	xOffset := (float64(x) + 0.5) * c.PixelSize
	yOffset := (float64(y) + 0.5) * c.PixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.HalfWidth - xOffset
	worldY := c.HalfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}

// Render traces every pixel in row-major order with the default bounce budget
func (c *Camera) Render(world *scene.World) *Canvas {
	canvas := NewCanvas(c.HSize, c.VSize)
	for y := 0; y < c.VSize; y++ {
		for x := 0; x < c.HSize; x++ {
			canvas.WritePixel(x, y, world.ColorAt(c.RayForPixel(x, y), scene.MaxBounces))
		}
	}
	return canvas
}

// RenderRegion traces the w x h region at (x, y) and returns it as row-major
// RGBA8 bytes. The region is clipped to the image; a region entirely outside
// yields an empty buffer.
func (c *Camera) RenderRegion(world *scene.World, x, y, w, h int) []byte {
	return c.renderRegion(world, x, y, w, h, scene.MaxBounces)
}

// renderRegion allocates only the clipped region's bytes
func (c *Camera) renderRegion(world *scene.World, x, y, w, h, maxBounces int) []byte {
	region := clipRegion(x, y, w, h, c.HSize, c.VSize)
	buf := make([]byte, 0, region.Dx()*region.Dy()*4)

	for py := region.Min.Y; py < region.Max.Y; py++ {
		for px := region.Min.X; px < region.Max.X; px++ {
			color := world.ColorAt(c.RayForPixel(px, py), maxBounces)
			buf = appendRGBA8(buf, color)
		}
	}
	return buf
}
