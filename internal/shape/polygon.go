package shape

import (
	"math"

	"github.com/dkirby/nfftracer/internal/geom"
)

const parallelEpsilon = 1e-6

// Polygon is a planar, possibly non-convex polygon of three or more vertices,
// each carrying its own shading normal.
type Polygon struct {
	Vertices []geom.PointNormal
}

func (p Polygon) BoundingBox() BoundingBox {
	min := p.Vertices[0].Point
	max := min
	for _, vtx := range p.Vertices[1:] {
		pt := vtx.Point
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
		if pt.Z < min.Z {
			min.Z = pt.Z
		}
		if pt.Z > max.Z {
			max.Z = pt.Z
		}
	}
	return BoundingBox{Corner: min, Extent: max.Sub(min)}
}

// Intersect ray-plane tests against the polygon's plane, then projects onto
// the axis-aligned plane perpendicular to the dominant component of the
// geometric normal and counts edge crossings along a 2D trace ray: an odd
// count means the hit point is inside, which also handles non-convex
// polygons correctly. The shading normal is interpolated from the nearest
// forward and reverse edges crossed during that trace.
func (p Polygon) Intersect(src geom.Point, ray geom.Vector, near float64) (Hit, bool) {
	v0 := p.Vertices[0].Point
	v1 := p.Vertices[1].Point
	v2 := p.Vertices[2].Point

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	g := edge1.Cross(edge2)

	den := ray.Dot(g)
	if math.Abs(den) < parallelEpsilon {
		return Hit{}, false
	}

	toV0 := v0.Sub(src)
	t := toV0.Dot(g) / den
	if t < near {
		return Hit{}, false
	}

	inPlane := src.Add(ray.Scale(t))

	n := len(p.Vertices)
	var traceMajor func(geom.Point) (major, minor float64)
	switch {
	case math.Abs(g.DZ) > math.Abs(g.DX) && math.Abs(g.DZ) > math.Abs(g.DY):
		// Major plane x-y; trace along x.
		traceMajor = func(pt geom.Point) (float64, float64) { return pt.X, pt.Y }
	case math.Abs(g.DY) > math.Abs(g.DX):
		// Major plane x-z; trace along x.
		traceMajor = func(pt geom.Point) (float64, float64) { return pt.X, pt.Z }
	default:
		// Major plane y-z; trace along y.
		traceMajor = func(pt geom.Point) (float64, float64) { return pt.Y, pt.Z }
	}

	inMajor, inMinor := traceMajor(inPlane)

	var (
		crossings    int
		haveForward  bool
		forwardDist  float64
		forwardIndex int
		forwardScale float64
		haveReverse  bool
		reverseDist  float64
		reverseIndex int
		reverseScale float64
	)

	for i := 0; i < n; i++ {
		point := p.Vertices[i].Point
		nextPoint := p.Vertices[(i+1)%n].Point

		pointMajor, pointMinor := traceMajor(point)
		nextMajor, nextMinor := traceMajor(nextPoint)
		edgeMajor := pointMajor - nextMajor
		edgeMinor := pointMinor - nextMinor

		if math.Abs(edgeMinor) < parallelEpsilon {
			continue
		}

		scale := (inMinor - nextMinor) / edgeMinor
		if scale < 0 || scale > 1 {
			continue
		}

		toEdgeDist := scale*edgeMajor + nextMajor - inMajor
		if toEdgeDist >= 0 {
			crossings++
			if !haveForward || toEdgeDist < forwardDist {
				haveForward = true
				forwardDist = toEdgeDist
				forwardIndex = i
				forwardScale = scale
			}
		} else {
			if !haveReverse || toEdgeDist > reverseDist {
				haveReverse = true
				reverseDist = toEdgeDist
				reverseIndex = i
				reverseScale = scale
			}
		}
	}

	if crossings%2 == 0 {
		return Hit{}, false
	}
	if !haveForward || !haveReverse {
		return Hit{}, false
	}

	fna := p.Vertices[forwardIndex].Normal
	fnb := p.Vertices[(forwardIndex+1)%n].Normal
	forwardNormal := geom.Interpolate(fna, fnb, forwardScale)

	rna := p.Vertices[reverseIndex].Normal
	rnb := p.Vertices[(reverseIndex+1)%n].Normal
	reverseNormal := geom.Interpolate(rna, rnb, reverseScale)

	// reverseDist is negative, forwardDist is positive.
	scale := reverseDist / (reverseDist - forwardDist)
	normal := geom.Interpolate(forwardNormal, reverseNormal, scale)

	return Hit{Normal: normal, Dist: t}, true
}
