// Package kdtree implements a surface-area-heuristic (SAH) kd-tree over a
// scene's primitives: SAH-driven split selection at each node, axis cycling
// as the fallback, bounded leaves, and early-exit near/far traversal.
package kdtree

import (
	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/dkirby/nfftracer/internal/scene"
	"github.com/dkirby/nfftracer/internal/shape"
)

// leafThreshold is the primitive count below which a node always becomes a
// leaf rather than being considered for a further split.
const leafThreshold = 4

// Hit is the result of a kd-tree traversal: the shading normal and distance
// returned by the primitive's own Intersect, plus the stable ID of the
// primitive that was hit.
type Hit struct {
	Normal      geom.Vector
	Dist        float64
	PrimitiveID int
}

// Tree is a read-only spatial index built once over a scene's primitives. It
// borrows the primitive slice it was built from and must not outlive it.
type Tree struct {
	root *node
}

type node struct {
	bbox shape.BoundingBox

	// leaf is non-nil for leaf nodes; interior nodes instead have both
	// under and over set.
	leaf []scene.Primitive

	axis  geom.Axis
	plane float64
	under *node
	over  *node
}

// Build constructs a kd-tree over primitives. An empty primitive list yields
// a single empty leaf over the zero bounding box.
func Build(primitives []scene.Primitive) *Tree {
	if len(primitives) == 0 {
		return &Tree{root: &node{bbox: shape.ZeroBox, leaf: []scene.Primitive{}}}
	}

	boxes := make([]shape.BoundingBox, len(primitives))
	boxes[0] = primitives[0].Shape.BoundingBox()
	total := boxes[0]
	for i := 1; i < len(primitives); i++ {
		boxes[i] = primitives[i].Shape.BoundingBox()
		total = total.ExpandToFit(boxes[i])
	}

	return &Tree{root: build(primitives, boxes, geom.AxisX, total)}
}

func appraise(count int, bbox shape.BoundingBox) float64 {
	return bbox.SurfaceArea() * float64(count)
}

// splitCost departs from a textbook SAH: it weights the pair's combined,
// shared-face-discounted area by the total primitive count rather than
// summing per-side count*area terms, so that a split is only favored when it
// meaningfully reduces the aggregate traced area.
func splitCost(total int, underBox, overBox shape.BoundingBox, axis geom.Axis) float64 {
	return float64(total) * (underBox.SurfaceArea() + overBox.SurfaceArea() -
		underBox.FaceArea(axis) - overBox.FaceArea(axis))
}

func appraiseSplit(boxes []shape.BoundingBox, axis geom.Axis, plane float64) (underBox, overBox shape.BoundingBox, underCount, overCount int, ok bool) {
	haveUnder, haveOver := false, false
	for _, b := range boxes {
		if b.Corner.Component(axis) < plane {
			underCount++
			if haveUnder {
				underBox = underBox.ExpandToFit(b)
			} else {
				underBox = b
				haveUnder = true
			}
		}
		if b.MaxCorner().Component(axis) >= plane {
			overCount++
			if haveOver {
				overBox = overBox.ExpandToFit(b)
			} else {
				overBox = b
				haveOver = true
			}
		}
	}
	return underBox, overBox, underCount, overCount, haveUnder && haveOver
}

func splitPrimitives(prims []scene.Primitive, boxes []shape.BoundingBox, axis geom.Axis, plane float64) (underPrims, overPrims []scene.Primitive, underBoxes, overBoxes []shape.BoundingBox) {
	for i, b := range boxes {
		if b.Corner.Component(axis) < plane {
			underPrims = append(underPrims, prims[i])
			underBoxes = append(underBoxes, b)
		}
		if b.MaxCorner().Component(axis) >= plane {
			overPrims = append(overPrims, prims[i])
			overBoxes = append(overBoxes, b)
		}
	}
	return
}

func build(prims []scene.Primitive, boxes []shape.BoundingBox, axis geom.Axis, bbox shape.BoundingBox) *node {
	if len(prims) < leafThreshold {
		return &node{bbox: bbox, leaf: prims}
	}

	noSplitCost := appraise(len(prims), bbox)
	bestCost := noSplitCost
	var bestPlane float64
	var bestUnderBox, bestOverBox shape.BoundingBox
	haveSplit := false

	for _, b := range boxes {
		for _, plane := range [2]float64{b.Corner.Component(axis), b.MaxCorner().Component(axis)} {
			underBox, overBox, _, _, ok := appraiseSplit(boxes, axis, plane)
			if !ok {
				continue
			}
			cost := splitCost(len(prims), underBox, overBox, axis)
			if cost < bestCost {
				bestCost = cost
				bestPlane = plane
				bestUnderBox = underBox
				bestOverBox = overBox
				haveSplit = true
			}
		}
	}

	if !haveSplit {
		return &node{bbox: bbox, leaf: prims}
	}

	underPrims, overPrims, underBoxes, overBoxes := splitPrimitives(prims, boxes, axis, bestPlane)
	nextAxis := axis.Next()

	return &node{
		bbox:  bbox,
		axis:  axis,
		plane: bestPlane,
		under: build(underPrims, underBoxes, nextAxis, bestUnderBox),
		over:  build(overPrims, overBoxes, nextAxis, bestOverBox),
	}
}

// Intersect finds the nearest primitive hit along ray from src, ignoring the
// primitive whose ID equals ignore (pass a negative value to ignore none).
func (t *Tree) Intersect(src geom.Point, ray geom.Vector, near float64, ignore int) (Hit, bool) {
	return t.root.intersect(src, ray, near, ignore)
}

func (n *node) intersect(src geom.Point, ray geom.Vector, near float64, ignore int) (Hit, bool) {
	if !n.bbox.Intersect(src, ray, near) {
		return Hit{}, false
	}
	if n.leaf != nil {
		return intersectLeaf(n.leaf, src, ray, near, ignore)
	}

	var nearSide, farSide *node
	srcOnUnder := src.Component(n.axis) < n.plane
	if srcOnUnder {
		nearSide, farSide = n.under, n.over
	} else {
		nearSide, farSide = n.over, n.under
	}

	nearHit, nearOK := nearSide.intersect(src, ray, near, ignore)

	checkFar := true
	if nearOK {
		endpoint := src.Add(ray.Scale(nearHit.Dist))
		if srcOnUnder {
			checkFar = endpoint.Component(n.axis) > n.plane
		} else {
			checkFar = endpoint.Component(n.axis) < n.plane
		}
	}

	if !checkFar {
		return nearHit, true
	}

	farHit, farOK := farSide.intersect(src, ray, near, ignore)
	switch {
	case nearOK && farOK:
		if farHit.Dist < nearHit.Dist {
			return farHit, true
		}
		return nearHit, true
	case nearOK:
		return nearHit, true
	case farOK:
		return farHit, true
	default:
		return Hit{}, false
	}
}

func intersectLeaf(prims []scene.Primitive, src geom.Point, ray geom.Vector, near float64, ignore int) (Hit, bool) {
	var best Hit
	found := false
	for _, p := range prims {
		if p.ID == ignore {
			continue
		}
		h, ok := p.Shape.Intersect(src, ray, near)
		if !ok {
			continue
		}
		if !found || h.Dist < best.Dist {
			best = Hit{Normal: h.Normal, Dist: h.Dist, PrimitiveID: p.ID}
			found = true
		}
	}
	return best, found
}
