package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDefaultMaterial(t *testing.T) {
	want := Material{
		Color:           core.White(),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: 1.0,
	}
	if diff := cmp.Diff(want, DefaultMaterial(), cmpopts.IgnoreUnexported(Pattern{})); diff != "" {
		t.Errorf("Unexpected default material (-want +got):\n%s", diff)
	}
}

func TestNewGlass(t *testing.T) {
	glass := NewGlass()
	if glass.Transparency != 1.0 || glass.RefractiveIndex != 1.5 {
		t.Errorf("Expected transparency 1.0 and refractive index 1.5, got %v and %v",
			glass.Transparency, glass.RefractiveIndex)
	}
}

func TestMaterial_SurfaceColor(t *testing.T) {
	m := DefaultMaterial()
	m.Color = core.NewColor(0.2, 0.4, 0.6)
	if got := m.SurfaceColor(core.Identity(), core.Point(5, 5, 5)); got != m.Color {
		t.Errorf("Without a pattern expected %v, got %v", m.Color, got)
	}

	striped := m.WithPattern(NewStripePattern(core.White(), core.Black()))
	if m.Pattern != nil {
		t.Errorf("WithPattern mutated the receiver")
	}
	if got := striped.SurfaceColor(core.Identity(), core.Point(1.5, 0, 0)); got != core.Black() {
		t.Errorf("Expected black stripe, got %v", got)
	}
}
