// Package geom implements the point/vector math shared by every shape and
// shading kernel: dot and cross products, normalization, and the reflect and
// refract operations the renderer uses for mirror and glass surfaces.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in world space.
type Point struct {
	X, Y, Z float64
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}

// Vector is a displacement or direction in world space.
type Vector struct {
	DX, DY, DZ float64
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%.4f, %.4f, %.4f)", v.DX, v.DY, v.DZ)
}

// Axis names one of the three coordinate axes, used to tag kd-tree split
// planes and bounding-box faces.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Next returns the following axis in the X -> Y -> Z -> X cycle used by the
// kd-tree build.
func (a Axis) Next() Axis {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisZ
	default:
		return AxisX
	}
}

// Component returns the point's coordinate along the given axis.
func (p Point) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.DX, p.Y + v.DY, p.Z + v.DZ}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.DX + other.DX, v.DY + other.DY, v.DZ + other.DZ}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.DX - other.DX, v.DY - other.DY, v.DZ - other.DZ}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.DX * s, v.DY * s, v.DZ * s}
}

func (v Vector) Neg() Vector {
	return Vector{-v.DX, -v.DY, -v.DZ}
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.DX*v.DX + v.DY*v.DY + v.DZ*v.DZ)
}

// Normalize returns v scaled to unit length.
func (v Vector) Normalize() Vector {
	return v.Scale(1.0 / v.Magnitude())
}

// Dot returns the dot product of v and other.
func (v Vector) Dot(other Vector) float64 {
	return v.DX*other.DX + v.DY*other.DY + v.DZ*other.DZ
}

// Cross returns the cross product v x other.
func (v Vector) Cross(other Vector) Vector {
	return Vector{
		DX: v.DY*other.DZ - v.DZ*other.DY,
		DY: v.DZ*other.DX - v.DX*other.DZ,
		DZ: v.DX*other.DY - v.DY*other.DX,
	}
}

// Reflect reflects v about the unit normal n: r = v - 2(v.n)n.
//
// v is the incoming direction and n points against v for front faces.
func (v Vector) Reflect(n Vector) Vector {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Refract computes the direction of v after entering a surface with relative
// index n (transmitted index over incident index). If the result would
// require a negative value under the square root (total internal
// reflection), it returns Reflect(v, normal) instead.
func (v Vector) Refract(normal Vector, n float64) Vector {
	d := v.Dot(normal)
	a := 1 - (1-d*d)/(n*n)
	if a < 0 {
		return v.Reflect(normal)
	}
	return v.Scale(1 / n).Sub(normal.Scale(math.Sqrt(a) + d/n))
}

// Interpolate blends two vectors with weight s on a and (1-s) on b, then
// renormalizes. Used to blend shading normals across a polygon edge.
func Interpolate(a, b Vector, s float64) Vector {
	return a.Scale(s).Add(b.Scale(1 - s)).Normalize()
}

// PointNormal pairs a polygon vertex with its (unit) shading normal.
type PointNormal struct {
	Point  Point
	Normal Vector
}
