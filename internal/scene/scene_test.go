package scene

import (
	"testing"

	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/dkirby/nfftracer/internal/shape"
	"github.com/dkirby/nfftracer/internal/surface"
)

func TestAddPrimitiveAssignsStableIDs(t *testing.T) {
	s := New()
	a := s.AddPrimitive(shape.Sphere{Radius: 1}, surface.Phong{})
	b := s.AddPrimitive(shape.Sphere{Center: geom.Point{X: 2}, Radius: 1}, surface.Phong{})
	if a != 0 || b != 1 {
		t.Errorf("got ids %d, %d; want 0, 1", a, b)
	}
	if len(s.Primitives()) != 2 {
		t.Errorf("len(Primitives()) = %d, want 2", len(s.Primitives()))
	}
	if s.Primitives()[0].ID != a || s.Primitives()[1].ID != b {
		t.Errorf("stored IDs do not match returned IDs")
	}
}

func TestAddLight(t *testing.T) {
	s := New()
	s.AddLight(Light{Position: geom.Point{X: 1, Y: 2, Z: 3}})
	if len(s.Lights()) != 1 {
		t.Fatalf("len(Lights()) = %d, want 1", len(s.Lights()))
	}
	if s.Lights()[0].Position.X != 1 {
		t.Errorf("light position mismatch: %+v", s.Lights()[0])
	}
}
