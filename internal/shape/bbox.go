package shape

import (
	"math"

	"github.com/dkirby/nfftracer/internal/geom"
)

// BoundingBox is an axis-aligned box given by its minimum corner and a
// (non-negative) extent vector.
type BoundingBox struct {
	Corner geom.Point
	Extent geom.Vector
}

// ZeroBox is the degenerate empty box used as the kd-tree root bbox when a
// scene has no primitives.
var ZeroBox = BoundingBox{}

// MaxCorner returns the box's far corner.
func (b BoundingBox) MaxCorner() geom.Point {
	return b.Corner.Add(b.Extent)
}

// SurfaceArea returns 2(dx*dy + dy*dz + dx*dz), the total surface area of
// the box's six faces.
func (b BoundingBox) SurfaceArea() float64 {
	dx, dy, dz := b.Extent.DX, b.Extent.DY, b.Extent.DZ
	return 2 * (dx*dy + dy*dz + dx*dz)
}

// FaceArea returns the area of one face perpendicular to axis.
func (b BoundingBox) FaceArea(axis geom.Axis) float64 {
	switch axis {
	case geom.AxisX:
		return b.Extent.DY * b.Extent.DZ
	case geom.AxisY:
		return b.Extent.DX * b.Extent.DZ
	default:
		return b.Extent.DX * b.Extent.DY
	}
}

// ExpandToFit returns the smallest box containing both b and other.
func (b BoundingBox) ExpandToFit(other BoundingBox) BoundingBox {
	bMax := b.MaxCorner()
	oMax := other.MaxCorner()

	minCorner := geom.Point{
		X: math.Min(b.Corner.X, other.Corner.X),
		Y: math.Min(b.Corner.Y, other.Corner.Y),
		Z: math.Min(b.Corner.Z, other.Corner.Z),
	}
	maxCorner := geom.Point{
		X: math.Max(bMax.X, oMax.X),
		Y: math.Max(bMax.Y, oMax.Y),
		Z: math.Max(bMax.Z, oMax.Z),
	}
	return BoundingBox{
		Corner: minCorner,
		Extent: maxCorner.Sub(minCorner),
	}
}

// Intersect implements the slab method: for each axis with a non-zero ray
// component, it computes the entry and exit parameters and accumulates the
// largest near and smallest far values seen; axes with a zero ray component
// require src to already lie within that slab. A ray originating inside the
// box reports a hit.
func (b BoundingBox) Intersect(src geom.Point, ray geom.Vector, near float64) bool {
	largestNear := math.Inf(-1)
	smallestFar := math.Inf(1)

	minCorner := b.Corner
	maxCorner := b.MaxCorner()

	if ray.DX != 0 {
		t0 := (minCorner.X - src.X) / ray.DX
		t1 := (maxCorner.X - src.X) / ray.DX
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > largestNear {
			largestNear = t0
		}
		if t1 < smallestFar {
			smallestFar = t1
		}
	} else if src.X < minCorner.X || src.X > maxCorner.X {
		return false
	}

	if ray.DY != 0 {
		t0 := (minCorner.Y - src.Y) / ray.DY
		t1 := (maxCorner.Y - src.Y) / ray.DY
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > largestNear {
			largestNear = t0
		}
		if t1 < smallestFar {
			smallestFar = t1
		}
	} else if src.Y < minCorner.Y || src.Y > maxCorner.Y {
		return false
	}

	if ray.DZ != 0 {
		t0 := (minCorner.Z - src.Z) / ray.DZ
		t1 := (maxCorner.Z - src.Z) / ray.DZ
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > largestNear {
			largestNear = t0
		}
		if t1 < smallestFar {
			smallestFar = t1
		}
	} else if src.Z < minCorner.Z || src.Z > maxCorner.Z {
		return false
	}

	return smallestFar >= largestNear && smallestFar >= near
}
