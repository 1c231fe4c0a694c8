package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(160, 120, math.Pi/2)

	if c.HSize != 160 || c.VSize != 120 || c.FieldOfView != math.Pi/2 {
		t.Errorf("Unexpected camera dimensions %+v", c)
	}
	if !c.Transform().ApproxEqual(core.Identity()) {
		t.Errorf("Expected identity transform, got\n%v", c.Transform())
	}
}

func TestCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name  string
		hsize int
		vsize int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.hsize, tt.vsize, math.Pi/2)
			if math.Abs(c.PixelSize-0.01) > 1e-9 {
				t.Errorf("Expected pixel size 0.01, got %f", c.PixelSize)
			}
		})
	}
}

func TestCamera_RayForPixel(t *testing.T) {
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name      string
		transform core.Matrix
		x, y      int
		origin    core.Tuple
		direction core.Tuple
	}{
		{
			name:      "through the center of the canvas",
			transform: core.Identity(),
			x:         100, y: 50,
			origin:    core.Point(0, 0, 0),
			direction: core.Vector(0, 0, -1),
		},
		{
			name:      "through a corner of the canvas",
			transform: core.Identity(),
			x:         0, y: 0,
			origin:    core.Point(0, 0, 0),
			direction: core.Vector(0.66519, 0.33259, -0.66851),
		},
		{
			name:      "when the camera is transformed",
			transform: core.RotationY(math.Pi / 4).Multiply(core.Translation(0, -2, 5)),
			x:         100, y: 50,
			origin:    core.Point(0, 2, -5),
			direction: core.Vector(s2, 0, -s2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(201, 101, math.Pi/2)
			c.SetTransform(tt.transform)

			r := c.RayForPixel(tt.x, tt.y)
			if !r.Origin.ApproxEqual(tt.origin) {
				t.Errorf("Expected origin %v, got %v", tt.origin, r.Origin)
			}
			if !r.Direction.ApproxEqual(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, r.Direction)
			}
		})
	}
}

// referenceCamera is the 11x11 camera looking at the default world from z=-5
func referenceCamera() *Camera {
	c := NewCamera(11, 11, math.Pi/2)
	c.SetTransform(core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0)))
	return c
}

func TestCamera_Render(t *testing.T) {
	image := referenceCamera().Render(scene.NewDefaultWorld())

	if image.Width != 11 || image.Height != 11 {
		t.Fatalf("Expected an 11x11 canvas, got %dx%d", image.Width, image.Height)
	}

	got := image.PixelAt(5, 5)
	want := core.NewColor(0.38066, 0.47583, 0.2855)
	if math.Abs(got.R-want.R) > 1e-4 || math.Abs(got.G-want.G) > 1e-4 || math.Abs(got.B-want.B) > 1e-4 {
		t.Errorf("Expected center pixel %v, got %v", want, got)
	}
}

func TestCamera_RenderRegion(t *testing.T) {
	c := referenceCamera()
	w := scene.NewDefaultWorld()
	full := c.Render(w)

	t.Run("matches the full render", func(t *testing.T) {
		buf := c.RenderRegion(w, 4, 4, 3, 2)
		if len(buf) != 3*2*4 {
			t.Fatalf("Expected %d bytes, got %d", 3*2*4, len(buf))
		}
		for i := 0; i < 6; i++ {
			x, y := 4+i%3, 4+i/3
			p := full.PixelAt(x, y)
			want := []byte{channelByte(p.R), channelByte(p.G), channelByte(p.B), 255}
			got := buf[i*4 : i*4+4]
			for j := range want {
				if got[j] != want[j] {
					t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
					break
				}
			}
		}
	})

	t.Run("clipped to the image", func(t *testing.T) {
		if got := len(c.RenderRegion(w, 9, 9, 5, 5)); got != 2*2*4 {
			t.Errorf("Expected a 2x2 clipped region, got %d bytes", got)
		}
		if got := len(c.RenderRegion(w, 20, 20, 5, 5)); got != 0 {
			t.Errorf("Expected an empty region outside the image, got %d bytes", got)
		}
	})
}

func TestNewCameraFromConfig(t *testing.T) {
	config := scene.CameraConfig{
		Width:       11,
		Height:      11,
		FieldOfView: math.Pi / 2,
		From:        core.Point(0, 0, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	c := NewCameraFromConfig(config)

	if !c.Transform().ApproxEqual(referenceCamera().Transform()) {
		t.Errorf("Expected the view transform of the config, got\n%v", c.Transform())
	}
	if r := c.RayForPixel(5, 5); !r.Direction.ApproxEqual(core.Vector(0, 0, 1)) {
		t.Errorf("Expected the center ray to look down +z, got %v", r.Direction)
	}
}
