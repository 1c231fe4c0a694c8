package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Canvas is a row-major framebuffer of linear colors
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// PixelAt returns the color at (x, y), or black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return core.Black()
	}
	return c.pixels[y*c.Width+x]
}

// WritePixel sets the color at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) WritePixel(x, y int, color core.Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.pixels[y*c.Width+x] = color
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// RegionRGBA8 encodes the w x h region at (x, y) as row-major RGBA8 bytes,
// clipped to the canvas
func (c *Canvas) RegionRGBA8(x, y, w, h int) []byte {
	region := clipRegion(x, y, w, h, c.Width, c.Height)
	buf := make([]byte, 0, region.Dx()*region.Dy()*4)
	for py := region.Min.Y; py < region.Max.Y; py++ {
		for px := region.Min.X; px < region.Max.X; px++ {
			buf = appendRGBA8(buf, c.pixels[py*c.Width+px])
		}
	}
	return buf
}

// ToRGBA converts the canvas to an 8-bit image for encoders such as image/png
func (c *Canvas) ToRGBA() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.pixels[y*c.Width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: channelByte(p.R),
				G: channelByte(p.G),
				B: channelByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// channelByte maps a linear channel to round(clamp(v, 0, 1) * 255)
func channelByte(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

func appendRGBA8(buf []byte, c core.Color) []byte {
	return append(buf, channelByte(c.R), channelByte(c.G), channelByte(c.B), 255)
}

// clipRegion intersects the requested region with a width x height image
func clipRegion(x, y, w, h, width, height int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, width, height))
}
