// Package scene holds the in-memory description the parser builds: the
// background color, the point lights, and the (shape, surface) primitives a
// kd-tree is built over. The scene is immutable once rendering starts.
package scene

import (
	"github.com/dkirby/nfftracer/internal/color"
	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/dkirby/nfftracer/internal/shape"
	"github.com/dkirby/nfftracer/internal/surface"
)

// Light is a point light with no falloff.
type Light struct {
	Position geom.Point
	Color    color.Color
}

// Primitive pairs a shape with its (possibly shared) surface, tagged with a
// stable integer ID. The ID, not the shape's address, is what the tracer
// compares against an ignore handle to prevent a secondary ray from
// re-intersecting the surface it was cast from.
type Primitive struct {
	ID      int
	Shape   shape.Shape
	Surface surface.Surface
}

// Scene owns the primitive list and lights built by the parser. Background
// is returned by the tracer whenever a ray escapes the scene entirely.
type Scene struct {
	Background color.Color
	lights     []Light
	primitives []Primitive
}

// New returns an empty scene with a black background.
func New() *Scene {
	return &Scene{Background: color.Black}
}

// AddPrimitive appends a (shape, surface) pair and returns its stable ID.
func (s *Scene) AddPrimitive(sh shape.Shape, surf surface.Surface) int {
	id := len(s.primitives)
	s.primitives = append(s.primitives, Primitive{ID: id, Shape: sh, Surface: surf})
	return id
}

// AddLight appends a point light.
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Primitives returns the scene's primitives in insertion order. The kd-tree
// package builds its acceleration structure over this slice.
func (s *Scene) Primitives() []Primitive {
	return s.primitives
}

// Lights returns the scene's point lights.
func (s *Scene) Lights() []Light {
	return s.lights
}
