package shape

import (
	"math"
	"testing"

	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/google/go-cmp/cmp"
)

func TestSphereIntersectFrontFace(t *testing.T) {
	s := Sphere{Center: geom.Point{X: 0, Y: 0, Z: 5}, Radius: 1}
	hit, ok := s.Intersect(geom.Point{}, geom.Vector{DZ: 1}, 0)
	if !ok {
		t.Fatalf("expected hit")
	}
	if diff := cmp.Diff(4.0, hit.Dist, approxOpts); diff != "" {
		t.Errorf("Dist mismatch (-want +got):\n%s", diff)
	}
	wantNormal := geom.Vector{DZ: -1}
	if diff := cmp.Diff(wantNormal, hit.Normal, approxOpts); diff != "" {
		t.Errorf("Normal mismatch (-want +got):\n%s", diff)
	}
}

func TestSphereIntersectBehindNear(t *testing.T) {
	// Sphere entirely behind src relative to ray direction: both roots < near.
	s := Sphere{Center: geom.Point{X: 0, Y: 0, Z: -5}, Radius: 1}
	_, ok := s.Intersect(geom.Point{}, geom.Vector{DZ: 1}, 0)
	if ok {
		t.Errorf("expected miss for sphere behind ray origin")
	}
}

func TestSphereIntersectFromInside(t *testing.T) {
	s := Sphere{Center: geom.Point{}, Radius: 2}
	hit, ok := s.Intersect(geom.Point{}, geom.Vector{DX: 1}, 0)
	if !ok {
		t.Fatalf("expected hit when ray originates inside the sphere")
	}
	if diff := cmp.Diff(2.0, hit.Dist, approxOpts); diff != "" {
		t.Errorf("Dist mismatch (-want +got):\n%s", diff)
	}
}

func TestSphereIntersectMiss(t *testing.T) {
	s := Sphere{Center: geom.Point{X: 10, Y: 10, Z: 10}, Radius: 1}
	_, ok := s.Intersect(geom.Point{}, geom.Vector{DZ: 1}, 0)
	if ok {
		t.Errorf("expected miss")
	}
}

func TestSphereNormalIsUnitLength(t *testing.T) {
	s := Sphere{Center: geom.Point{X: 1, Y: 2, Z: 3}, Radius: 4}
	hit, ok := s.Intersect(geom.Point{}, s.Center.Sub(geom.Point{}).Normalize(), 0)
	if !ok {
		t.Fatalf("expected hit")
	}
	if diff := cmp.Diff(1.0, hit.Normal.Magnitude(), approxOpts); diff != "" {
		t.Errorf("normal magnitude mismatch (-want +got):\n%s", diff)
	}
}

func TestSphereBoundingBox(t *testing.T) {
	s := Sphere{Center: geom.Point{X: 1, Y: 2, Z: 3}, Radius: 2}
	b := s.BoundingBox()
	want := BoundingBox{
		Corner: geom.Point{X: -1, Y: 0, Z: 1},
		Extent: geom.Vector{DX: 4, DY: 4, DZ: 4},
	}
	if diff := cmp.Diff(want, b, approxOpts); diff != "" {
		t.Errorf("BoundingBox() mismatch (-want +got):\n%s", diff)
	}
}

func TestSphereIntersectTangent(t *testing.T) {
	// Grazing ray: discriminant near zero, both roots coincide.
	s := Sphere{Center: geom.Point{X: 0, Y: 1, Z: 5}, Radius: 1}
	hit, ok := s.Intersect(geom.Point{}, geom.Vector{DZ: 1}, 0)
	if !ok {
		t.Fatalf("expected tangent hit")
	}
	if math.Abs(hit.Dist-5) > 1e-4 {
		t.Errorf("Dist = %v, want approximately 5", hit.Dist)
	}
}
