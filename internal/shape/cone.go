package shape

import (
	"math"

	"github.com/dkirby/nfftracer/internal/geom"
)

// Cone is a generalized frustum between Base (radius BaseRadius) and Apex
// (radius ApexRadius). A cylinder is the degenerate case BaseRadius ==
// ApexRadius; a true cone is the degenerate case ApexRadius == 0. End caps
// are not modeled.
type Cone struct {
	Base, Apex             geom.Point
	BaseRadius, ApexRadius float64
}

func (c Cone) BoundingBox() BoundingBox {
	// The box surrounds the central line of the cone, extended along each
	// axis by the radius projected perpendicular to that axis: for axis a,
	// the extra amount is radius * sqrt(1 - n.a^2) where n is the normalized
	// base-to-apex direction.
	n := c.Apex.Sub(c.Base).Normalize()
	perp := func(na float64) float64 { return math.Sqrt(math.Max(0, 1-na*na)) }

	baseExtra := geom.Vector{
		DX: c.BaseRadius * perp(n.DX),
		DY: c.BaseRadius * perp(n.DY),
		DZ: c.BaseRadius * perp(n.DZ),
	}
	apexExtra := geom.Vector{
		DX: c.ApexRadius * perp(n.DX),
		DY: c.ApexRadius * perp(n.DY),
		DZ: c.ApexRadius * perp(n.DZ),
	}

	corner, extent := axisExtent(c.Base.X, c.Apex.X, baseExtra.DX, apexExtra.DX)
	cornerY, extentY := axisExtent(c.Base.Y, c.Apex.Y, baseExtra.DY, apexExtra.DY)
	cornerZ, extentZ := axisExtent(c.Base.Z, c.Apex.Z, baseExtra.DZ, apexExtra.DZ)

	return BoundingBox{
		Corner: geom.Point{X: corner, Y: cornerY, Z: cornerZ},
		Extent: geom.Vector{DX: extent, DY: extentY, DZ: extentZ},
	}
}

func axisExtent(base, apex, baseExtra, apexExtra float64) (corner, extent float64) {
	lo := math.Min(base-baseExtra, apex-apexExtra)
	hi := math.Max(base+baseExtra, apex+apexExtra)
	return lo, hi - lo
}

// Intersect expresses the ray in a (u, v, w) basis aligned with the cone's
// axis (w = normalized(apex - base)), then solves the quadratic for the
// generalized frustum r(w) = B - (B-A)*w/L.
func (c Cone) Intersect(src geom.Point, ray geom.Vector, near float64) (Hit, bool) {
	baseToApex := c.Apex.Sub(c.Base)
	w := baseToApex.Normalize()

	// Pick the world axis least aligned with w to build an orthonormal
	// basis, so the cross product below is never near-degenerate.
	var aux geom.Vector
	switch {
	case math.Abs(w.DX) < math.Abs(w.DY) && math.Abs(w.DX) < math.Abs(w.DZ):
		aux = geom.Vector{DX: 1}
	case math.Abs(w.DY) < math.Abs(w.DZ):
		aux = geom.Vector{DY: 1}
	default:
		aux = geom.Vector{DZ: 1}
	}

	u := w.Cross(aux)
	v := w.Cross(u)

	baseToSrc := src.Sub(c.Base)
	srcUVW := geom.Vector{
		DX: baseToSrc.Dot(u),
		DY: baseToSrc.Dot(v),
		DZ: baseToSrc.Dot(w),
	}
	rayUVW := geom.Vector{
		DX: ray.Dot(u),
		DY: ray.Dot(v),
		DZ: ray.Dot(w),
	}

	l := baseToApex.Magnitude()
	dr := c.BaseRadius - c.ApexRadius
	dr2overl2 := (dr * dr) / (l * l)

	a := rayUVW.DX*rayUVW.DX + rayUVW.DY*rayUVW.DY - dr2overl2*rayUVW.DZ*rayUVW.DZ
	b := 2*srcUVW.DX*rayUVW.DX + 2*srcUVW.DY*rayUVW.DY -
		2*dr2overl2*srcUVW.DZ*rayUVW.DZ +
		2*c.BaseRadius*(dr/l)*rayUVW.DZ
	cc := srcUVW.DX*srcUVW.DX + srcUVW.DY*srcUVW.DY - c.BaseRadius*c.BaseRadius -
		dr2overl2*srcUVW.DZ*srcUVW.DZ +
		2*c.BaseRadius*(dr/l)*srcUVW.DZ

	disc := b*b - 4*a*cc
	if disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}

	w1 := r1*rayUVW.DZ + srcUVW.DZ
	w2 := r2*rayUVW.DZ + srcUVW.DZ

	var result float64
	switch {
	case r1 < r2 && r1 >= near && w1 >= 0 && w1 <= l:
		result = r1
	case r2 >= near && w2 >= 0 && w2 <= l:
		result = r2
	default:
		return Hit{}, false
	}
	if result < near {
		return Hit{}, false
	}

	normalUVW := geom.Vector{
		DX: (result*rayUVW.DX + srcUVW.DX) * l,
		DY: (result*rayUVW.DY + srcUVW.DY) * l,
		DZ: dr,
	}
	normal := geom.Vector{
		DX: normalUVW.DX*u.DX + normalUVW.DY*v.DX + normalUVW.DZ*w.DX,
		DY: normalUVW.DX*u.DY + normalUVW.DY*v.DY + normalUVW.DZ*w.DY,
		DZ: normalUVW.DX*u.DZ + normalUVW.DY*v.DZ + normalUVW.DZ*w.DZ,
	}

	return Hit{Normal: normal.Normalize(), Dist: result}, true
}
