// Package render implements the camera model, primary ray generation, and
// the recursive shading engine: direct illumination with shadow rays,
// mirror reflection, and Snell refraction with total internal reflection,
// terminated by depth and contribution thresholds.
package render

import (
	"math"

	"github.com/dkirby/nfftracer/internal/color"
	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/dkirby/nfftracer/internal/kdtree"
	"github.com/dkirby/nfftracer/internal/scene"
)

const (
	// MaxDepth bounds the recursion depth of reflected and refracted rays.
	MaxDepth = 5
	// MinContribution is the threshold below which a secondary ray's
	// contribution to the final pixel color is judged negligible and the
	// ray is not cast at all.
	MinContribution = 0.003
	// refractionNear is the near distance for refracted rays: hits closer
	// than this to the surface the ray was cast from are ignored, so the ray
	// does not immediately re-hit that surface ("refraction acne"); a
	// refracted ray is allowed to re-enter the same primitive, so it cannot
	// simply be added to the ignore set.
	refractionNear = 1e-4
)

// View describes the camera: eye position, look-at target, up hint, vertical
// field of view in degrees, near-clip distance, and output resolution.
type View struct {
	From, At      geom.Point
	Up            geom.Vector
	Angle         float64
	Hither        float64
	Width, Height int
}

func (v View) aspectRatio() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Target is a row-major linear-RGB pixel buffer.
type Target struct {
	Width, Height int
	pixels        []color.Color
}

// NewTarget allocates a black target of the given dimensions.
func NewTarget(width, height int) *Target {
	return &Target{Width: width, Height: height, pixels: make([]color.Color, width*height)}
}

func (t *Target) Set(x, y int, c color.Color) {
	t.pixels[y*t.Width+x] = c
}

func (t *Target) At(x, y int) color.Color {
	return t.pixels[y*t.Width+x]
}

type cameraBasis struct {
	forward, right, up geom.Vector
}

func buildCameraBasis(v View) cameraBasis {
	upLen := math.Tan(math.Pi * v.Angle / 360.0)
	rightLen := upLen * v.aspectRatio()

	forward := v.At.Sub(v.From).Normalize()
	right := forward.Cross(v.Up).Normalize().Scale(rightLen)
	up := right.Cross(forward).Normalize().Scale(upLen)

	return cameraBasis{forward: forward, right: right, up: up}
}

// Render walks every pixel of the view, firing one primary ray per pixel
// center and tracing it recursively against tree, and returns the filled
// target.
func Render(v View, sc *scene.Scene, tree *kdtree.Tree) *Target {
	basis := buildCameraBasis(v)
	target := NewTarget(v.Width, v.Height)

	for j := 0; j < v.Height; j++ {
		sy := 1.0 - float64(2*j+1)/float64(v.Height)
		for i := 0; i < v.Width; i++ {
			sx := -1.0 + float64(2*i+1)/float64(v.Width)

			dir := basis.forward.Add(basis.up.Scale(sy)).Add(basis.right.Scale(sx)).Normalize()
			c := subTrace(tree, sc, v.From, dir, v.Hither, -1, 1.0, 0)
			target.Set(i, j, c)
		}
	}
	return target
}

// subTrace is the recursive shading kernel. ignore identifies a primitive ID
// to skip during the nearest-hit query (pass a negative value to ignore
// none); contribution tracks how much this ray's result can still affect
// the final pixel, and depth bounds recursion.
func subTrace(tree *kdtree.Tree, sc *scene.Scene, src geom.Point, ray geom.Vector, near float64, ignore int, contribution float64, depth int) color.Color {
	hit, ok := tree.Intersect(src, ray, near, ignore)
	if !ok {
		return sc.Background
	}

	prim := sc.Primitives()[hit.PrimitiveID]
	surfacePos := src.Add(ray.Scale(hit.Dist))
	backFace := hit.Normal.Dot(ray) > 0

	total := color.Black

	if !backFace {
		for _, light := range sc.Lights() {
			toLight := light.Position.Sub(surfacePos)
			lightDist := toLight.Magnitude()
			lightDir := toLight.Normalize()

			blockHit, blocked := tree.Intersect(surfacePos, lightDir, 0, hit.PrimitiveID)
			if blocked && blockHit.Dist <= lightDist {
				continue
			}

			total = total.Add(prim.Surface.Shade(hit.Normal, ray, lightDir, light.Color))
		}

		if depth < MaxDepth && contribution*prim.Surface.Reflectance() > MinContribution {
			reflected := ray.Reflect(hit.Normal)
			reflColor := subTrace(tree, sc, surfacePos, reflected, 0, hit.PrimitiveID,
				contribution*prim.Surface.Reflectance(), depth+1)
			total = total.Add(reflColor.Scale(prim.Surface.Reflectance()))
		}
	}

	if depth < MaxDepth {
		transmittance := prim.Surface.Transmittance()
		if backFace {
			if transmittance > MinContribution {
				transmittance = 1.0
			} else {
				transmittance = 0.0
			}
		}

		if contribution*transmittance > MinContribution {
			normal := hit.Normal
			relativeIndex := prim.Surface.RefractionIndex()
			if backFace {
				normal = normal.Neg()
				relativeIndex = 1.0 / relativeIndex
			}
			refracted := ray.Refract(normal, relativeIndex)
			refrColor := subTrace(tree, sc, surfacePos, refracted, refractionNear, -1,
				contribution*transmittance, depth+1)
			total = total.Add(refrColor.Scale(transmittance))
		}
	}

	return total.Clamp()
}
