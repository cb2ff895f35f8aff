// Package surface implements the shading models: Phong and Blinn-Phong
// behind a single polymorphic Surface capability, plus the material
// properties (reflectance, transmittance, refraction index) the tracer
// consults for secondary rays.
package surface

import (
	"math"

	"github.com/dkirby/nfftracer/internal/color"
	"github.com/dkirby/nfftracer/internal/geom"
)

// Surface is the capability every shaded material implements.
type Surface interface {
	// Shade computes the visible color at a point with shading normal N,
	// incoming view direction V (from the viewer toward the surface), unit
	// direction L from the surface toward a light, and that light's color.
	Shade(n, v, l geom.Vector, lightColor color.Color) color.Color
	Reflectance() float64
	Transmittance() float64
	RefractionIndex() float64
}

func clampPositive(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// Phong is the classic reflection-vector shading model. Phong back-face
// culls: a surface facing away from the viewer shades black.
type Phong struct {
	Color             color.Color
	Diffuse, Specular float64
	Shine             float64
	ReflectanceK      float64
	TransmittanceK    float64
	RefractionIndexK  float64
}

func (p Phong) Shade(n, v, l geom.Vector, lightColor color.Color) color.Color {
	if n.Dot(v) > 0 {
		return color.Black
	}
	r := v.Reflect(n)
	specular := p.Specular * math.Pow(clampPositive(r.Dot(l)), p.Shine)
	diffuse := p.Diffuse * clampPositive(n.Dot(l))
	return lightColor.Mul(color.Color{
		R: specular + diffuse*p.Color.R,
		G: specular + diffuse*p.Color.G,
		B: specular + diffuse*p.Color.B,
	})
}

func (p Phong) Reflectance() float64     { return p.ReflectanceK }
func (p Phong) Transmittance() float64   { return p.TransmittanceK }
func (p Phong) RefractionIndex() float64 { return p.RefractionIndexK }

// BlinnPhong uses the halfway-vector variant. Unlike Phong it does not
// back-face-cull at shade time; the renderer decides visibility separately.
type BlinnPhong struct {
	Color             color.Color
	Diffuse, Specular float64
	Shine             float64
	ReflectanceK      float64
	TransmittanceK    float64
	RefractionIndexK  float64
}

func (bp BlinnPhong) Shade(n, v, l geom.Vector, lightColor color.Color) color.Color {
	h := l.Sub(v).Normalize()
	specular := bp.Specular * math.Pow(clampPositive(n.Dot(h)), bp.Shine)
	diffuse := bp.Diffuse * clampPositive(n.Dot(l))
	return lightColor.Mul(color.Color{
		R: specular + diffuse*bp.Color.R,
		G: specular + diffuse*bp.Color.G,
		B: specular + diffuse*bp.Color.B,
	})
}

func (bp BlinnPhong) Reflectance() float64     { return bp.ReflectanceK }
func (bp BlinnPhong) Transmittance() float64   { return bp.TransmittanceK }
func (bp BlinnPhong) RefractionIndex() float64 { return bp.RefractionIndexK }
