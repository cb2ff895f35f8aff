package shape

import (
	"testing"

	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-5, 0.0)

func unitBox() BoundingBox {
	return BoundingBox{
		Corner: geom.Point{X: -1, Y: -1, Z: -1},
		Extent: geom.Vector{DX: 2, DY: 2, DZ: 2},
	}
}

func TestBoundingBoxIntersectOriginInside(t *testing.T) {
	b := unitBox()
	dirs := []geom.Vector{
		{DX: 1}, {DY: 1}, {DZ: 1}, {DX: -1}, {DX: 1, DY: 1, DZ: 1},
	}
	for _, d := range dirs {
		if !b.Intersect(geom.Point{}, d.Normalize(), 0) {
			t.Errorf("expected hit for ray from inside the box in direction %v", d)
		}
	}
}

func TestBoundingBoxIntersectParallelMiss(t *testing.T) {
	b := unitBox()
	// Ray starts outside the box, parallel to the x axis, at a y,z outside
	// the slab.
	src := geom.Point{X: -5, Y: 5, Z: 5}
	ray := geom.Vector{DX: 1}
	if b.Intersect(src, ray, 0) {
		t.Errorf("expected miss for axis-parallel ray outside the slab")
	}
}

func TestBoundingBoxIntersectHit(t *testing.T) {
	b := unitBox()
	src := geom.Point{X: -5, Y: 0, Z: 0}
	ray := geom.Vector{DX: 1}
	if !b.Intersect(src, ray, 0) {
		t.Errorf("expected hit")
	}
}

func TestSurfaceAreaAndFaceArea(t *testing.T) {
	b := BoundingBox{Extent: geom.Vector{DX: 2, DY: 3, DZ: 4}}
	wantSA := 2 * (2*3 + 3*4 + 2*4)
	if diff := cmp.Diff(float64(wantSA), b.SurfaceArea(), approxOpts); diff != "" {
		t.Errorf("SurfaceArea() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(3.0*4.0, b.FaceArea(geom.AxisX), approxOpts); diff != "" {
		t.Errorf("FaceArea(X) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(2.0*4.0, b.FaceArea(geom.AxisY), approxOpts); diff != "" {
		t.Errorf("FaceArea(Y) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(2.0*3.0, b.FaceArea(geom.AxisZ), approxOpts); diff != "" {
		t.Errorf("FaceArea(Z) mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandToFit(t *testing.T) {
	a := BoundingBox{Corner: geom.Point{X: 0, Y: 0, Z: 0}, Extent: geom.Vector{DX: 1, DY: 1, DZ: 1}}
	b := BoundingBox{Corner: geom.Point{X: 2, Y: -1, Z: 0}, Extent: geom.Vector{DX: 1, DY: 1, DZ: 1}}
	got := a.ExpandToFit(b)
	want := BoundingBox{
		Corner: geom.Point{X: 0, Y: -1, Z: 0},
		Extent: geom.Vector{DX: 3, DY: 2, DZ: 1},
	}
	if diff := cmp.Diff(want, got, approxOpts); diff != "" {
		t.Errorf("ExpandToFit() mismatch (-want +got):\n%s", diff)
	}
}
