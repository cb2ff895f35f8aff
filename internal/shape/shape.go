// Package shape implements the primitive intersection kernels (sphere, cone,
// polygon) and the axis-aligned bounding box used both for per-primitive
// culling and the kd-tree's SAH cost model.
package shape

import "github.com/dkirby/nfftracer/internal/geom"

// Hit is the result of a successful ray/shape intersection: the shading
// normal at the hit point and its distance along the ray.
type Hit struct {
	Normal geom.Vector
	Dist   float64
}

// Shape is the capability every intersectable primitive implements.
type Shape interface {
	// Intersect returns the nearest hit at distance >= near, or false if the
	// ray misses.
	Intersect(src geom.Point, ray geom.Vector, near float64) (Hit, bool)
	BoundingBox() BoundingBox
}
