package shape

import (
	"math"

	"github.com/dkirby/nfftracer/internal/geom"
)

// Sphere is centered at Center with the given Radius (> 0).
type Sphere struct {
	Center geom.Point
	Radius float64
}

func (s Sphere) BoundingBox() BoundingBox {
	r := s.Radius
	return BoundingBox{
		Corner: geom.Point{X: s.Center.X - r, Y: s.Center.Y - r, Z: s.Center.Z - r},
		Extent: geom.Vector{DX: 2 * r, DY: 2 * r, DZ: 2 * r},
	}
}

// Intersect solves |src + t*ray - center|^2 = r^2 for the smallest t >= near.
func (s Sphere) Intersect(src geom.Point, ray geom.Vector, near float64) (Hit, bool) {
	sc := src.Sub(s.Center)

	a := ray.Dot(ray)
	b := 2 * ray.Dot(sc)
	c := sc.Dot(sc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)

	t := (-b - sq) / (2 * a)
	if t < near {
		t = (-b + sq) / (2 * a)
	}
	if t < near {
		return Hit{}, false
	}

	hitPoint := src.Add(ray.Scale(t))
	normal := hitPoint.Sub(s.Center).Normalize()
	return Hit{Normal: normal, Dist: t}, true
}
