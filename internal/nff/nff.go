// Package nff parses the Neutral File Format scene description: a
// line-oriented text grammar for a camera view, background color, point
// lights, material fills, and primitives (spheres, cones, polygons).
package nff

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dkirby/nfftracer/internal/color"
	"github.com/dkirby/nfftracer/internal/geom"
	"github.com/dkirby/nfftracer/internal/render"
	"github.com/dkirby/nfftracer/internal/scene"
	"github.com/dkirby/nfftracer/internal/shape"
	"github.com/dkirby/nfftracer/internal/surface"
)

// ParseError reports a malformed command and which one it was.
type ParseError struct {
	Command string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing command %s: %s", e.Command, e.Message)
}

type parser struct {
	sc       *bufio.Scanner
	usePhong bool
	logger   *slog.Logger
	scene    *scene.Scene
	surface  surface.Surface
}

func defaultSurface(usePhong bool) surface.Surface {
	if usePhong {
		return surface.Phong{Color: color.White, Diffuse: 1, Specular: 0, Shine: 1}
	}
	return surface.BlinnPhong{Color: color.White, Diffuse: 1, Specular: 0, Shine: 1}
}

// Parse reads an NFF scene from r and returns the populated scene and view.
// usePhong selects which shading model subsequent fill commands construct.
// Unrecognized commands are logged to logger (if non-nil) and ignored.
func Parse(r io.Reader, usePhong bool, logger *slog.Logger) (*scene.Scene, render.View, error) {
	p := &parser{
		sc:       bufio.NewScanner(r),
		usePhong: usePhong,
		logger:   logger,
		scene:    scene.New(),
	}
	p.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	p.surface = defaultSurface(usePhong)

	var view *render.View

	for p.sc.Scan() {
		line := strings.TrimSpace(p.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		var err error
		switch {
		case cmd == "v" && len(args) == 0:
			var v render.View
			v, err = p.parseView()
			if err == nil {
				view = &v
			}
		case cmd == "b" && len(args) == 3:
			var bg color.Color
			bg, err = parseColor3(args)
			if err == nil {
				p.scene.Background = bg
			}
		case cmd == "pp" && len(args) == 1:
			var poly shape.Polygon
			poly, err = p.parsePolygonPatch(args[0])
			if err == nil {
				p.scene.AddPrimitive(poly, p.surface)
			}
		case cmd == "p" && len(args) == 1:
			var poly shape.Polygon
			poly, err = p.parsePolygon(args[0])
			if err == nil {
				p.scene.AddPrimitive(poly, p.surface)
			}
		case cmd == "f" && len(args) == 8:
			var surf surface.Surface
			surf, err = parseFill(p.usePhong, args)
			if err == nil {
				p.surface = surf
			}
		case cmd == "l" && len(args) == 3:
			var light scene.Light
			light, err = parseWhiteLight(args)
			if err == nil {
				p.scene.AddLight(light)
			}
		case cmd == "l" && len(args) == 6:
			var light scene.Light
			light, err = parseColoredLight(args)
			if err == nil {
				p.scene.AddLight(light)
			}
		case cmd == "s" && len(args) == 4:
			var sph shape.Sphere
			sph, err = parseSphere(args)
			if err == nil {
				p.scene.AddPrimitive(sph, p.surface)
			}
		case cmd == "c" && len(args) == 0:
			var cone shape.Cone
			cone, err = p.parseCone()
			if err == nil {
				p.scene.AddPrimitive(cone, p.surface)
			}
		case cmd == "c" && len(args) == 8:
			var cone shape.Cone
			cone, err = parseConeOneLine(args)
			if err == nil {
				p.scene.AddPrimitive(cone, p.surface)
			}
		default:
			if p.logger != nil {
				p.logger.Warn("unrecognized NFF command", "line", line)
			}
			continue
		}
		if err != nil {
			return nil, render.View{}, err
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, render.View{}, err
	}

	if view == nil {
		return nil, render.View{}, &ParseError{Command: "v", Message: "missing view"}
	}
	return p.scene, *view, nil
}

func parseFloats(fields []string, count int) ([]float64, error) {
	if len(fields) != count {
		return nil, fmt.Errorf("expected %d values, got %d", count, len(fields))
	}
	values := make([]float64, count)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (p *parser) nextLine() (string, bool) {
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

func (p *parser) parseView() (render.View, error) {
	var from, at geom.Point
	var up geom.Vector
	var angle, hither float64
	var width, height int
	var haveFrom, haveAt, haveUp, haveAngle, haveHither, haveRes bool

	for {
		line, ok := p.nextLine()
		if !ok {
			return render.View{}, &ParseError{Command: "v", Message: "missing parameters"}
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "from":
			var vals []float64
			vals, err = parseFloats(fields[1:], 3)
			if err == nil {
				from = geom.Point{X: vals[0], Y: vals[1], Z: vals[2]}
				haveFrom = true
			}
		case "at":
			var vals []float64
			vals, err = parseFloats(fields[1:], 3)
			if err == nil {
				at = geom.Point{X: vals[0], Y: vals[1], Z: vals[2]}
				haveAt = true
			}
		case "up":
			var vals []float64
			vals, err = parseFloats(fields[1:], 3)
			if err == nil {
				up = geom.Vector{DX: vals[0], DY: vals[1], DZ: vals[2]}
				haveUp = true
			}
		case "angle":
			var vals []float64
			vals, err = parseFloats(fields[1:], 1)
			if err == nil {
				angle = vals[0]
				haveAngle = true
			}
		case "hither":
			var vals []float64
			vals, err = parseFloats(fields[1:], 1)
			if err == nil {
				hither = vals[0]
				haveHither = true
			}
		case "resolution":
			var vals []float64
			vals, err = parseFloats(fields[1:], 2)
			if err == nil {
				width = int(vals[0])
				height = int(vals[1])
				haveRes = true
			}
		}
		if err != nil {
			return render.View{}, &ParseError{Command: "v", Message: err.Error()}
		}

		if haveFrom && haveAt && haveUp && haveAngle && haveHither && haveRes {
			return render.View{
				From: from, At: at, Up: up,
				Angle: angle, Hither: hither,
				Width: width, Height: height,
			}, nil
		}
	}
}

func (p *parser) parsePolygonPatch(countArg string) (shape.Polygon, error) {
	n, err := strconv.Atoi(countArg)
	if err != nil || n < 3 {
		return shape.Polygon{}, &ParseError{Command: "pp", Message: "insufficient vertex count"}
	}

	vertices := make([]geom.PointNormal, 0, n)
	for i := 0; i < n; i++ {
		line, ok := p.nextLine()
		if !ok {
			return shape.Polygon{}, &ParseError{Command: "pp", Message: "missing parameters"}
		}
		vals, err := parseFloats(strings.Fields(line), 6)
		if err != nil {
			return shape.Polygon{}, &ParseError{Command: "pp", Message: err.Error()}
		}
		point := geom.Point{X: vals[0], Y: vals[1], Z: vals[2]}
		normal := geom.Vector{DX: vals[3], DY: vals[4], DZ: vals[5]}.Normalize()
		vertices = append(vertices, geom.PointNormal{Point: point, Normal: normal})
	}
	return shape.Polygon{Vertices: vertices}, nil
}

func (p *parser) parsePolygon(countArg string) (shape.Polygon, error) {
	n, err := strconv.Atoi(countArg)
	if err != nil || n < 3 {
		return shape.Polygon{}, &ParseError{Command: "p", Message: "insufficient vertex count"}
	}

	points := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		line, ok := p.nextLine()
		if !ok {
			return shape.Polygon{}, &ParseError{Command: "p", Message: "missing parameters"}
		}
		vals, err := parseFloats(strings.Fields(line), 3)
		if err != nil {
			return shape.Polygon{}, &ParseError{Command: "p", Message: err.Error()}
		}
		points = append(points, geom.Point{X: vals[0], Y: vals[1], Z: vals[2]})
	}

	v1 := points[1].Sub(points[0])
	v2 := points[2].Sub(points[0])
	normal := v1.Cross(v2).Normalize()

	vertices := make([]geom.PointNormal, len(points))
	for i, pt := range points {
		vertices[i] = geom.PointNormal{Point: pt, Normal: normal}
	}
	return shape.Polygon{Vertices: vertices}, nil
}

func (p *parser) parseCone() (shape.Cone, error) {
	baseLine, ok := p.nextLine()
	if !ok {
		return shape.Cone{}, &ParseError{Command: "c", Message: "missing base line"}
	}
	baseVals, err := parseFloats(strings.Fields(baseLine), 4)
	if err != nil {
		return shape.Cone{}, &ParseError{Command: "c", Message: err.Error()}
	}

	apexLine, ok := p.nextLine()
	if !ok {
		return shape.Cone{}, &ParseError{Command: "c", Message: "missing apex line"}
	}
	apexVals, err := parseFloats(strings.Fields(apexLine), 4)
	if err != nil {
		return shape.Cone{}, &ParseError{Command: "c", Message: err.Error()}
	}

	return shape.Cone{
		Base:       geom.Point{X: baseVals[0], Y: baseVals[1], Z: baseVals[2]},
		Apex:       geom.Point{X: apexVals[0], Y: apexVals[1], Z: apexVals[2]},
		BaseRadius: baseVals[3],
		ApexRadius: apexVals[3],
	}, nil
}

func parseConeOneLine(args []string) (shape.Cone, error) {
	vals, err := parseFloats(args, 8)
	if err != nil {
		return shape.Cone{}, &ParseError{Command: "c", Message: err.Error()}
	}
	return shape.Cone{
		Base:       geom.Point{X: vals[0], Y: vals[1], Z: vals[2]},
		Apex:       geom.Point{X: vals[4], Y: vals[5], Z: vals[6]},
		BaseRadius: vals[3],
		ApexRadius: vals[7],
	}, nil
}

func parseFill(usePhong bool, args []string) (surface.Surface, error) {
	vals, err := parseFloats(args, 8)
	if err != nil {
		return nil, &ParseError{Command: "f", Message: err.Error()}
	}
	r, g, b, kd, ks, shine, transmittance, refractionIndex :=
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7]
	c := color.Color{R: r, G: g, B: b}

	if usePhong {
		return surface.Phong{
			Color: c, Diffuse: kd, Specular: ks, Shine: shine,
			ReflectanceK: ks, TransmittanceK: transmittance, RefractionIndexK: refractionIndex,
		}, nil
	}
	return surface.BlinnPhong{
		Color: c, Diffuse: kd, Specular: ks, Shine: shine,
		ReflectanceK: ks, TransmittanceK: transmittance, RefractionIndexK: refractionIndex,
	}, nil
}

func parseWhiteLight(args []string) (scene.Light, error) {
	vals, err := parseFloats(args, 3)
	if err != nil {
		return scene.Light{}, &ParseError{Command: "l", Message: err.Error()}
	}
	return scene.Light{
		Position: geom.Point{X: vals[0], Y: vals[1], Z: vals[2]},
		Color:    color.White,
	}, nil
}

func parseColoredLight(args []string) (scene.Light, error) {
	vals, err := parseFloats(args, 6)
	if err != nil {
		return scene.Light{}, &ParseError{Command: "l", Message: err.Error()}
	}
	return scene.Light{
		Position: geom.Point{X: vals[0], Y: vals[1], Z: vals[2]},
		Color:    color.Color{R: vals[3], G: vals[4], B: vals[5]},
	}, nil
}

func parseSphere(args []string) (shape.Sphere, error) {
	vals, err := parseFloats(args, 4)
	if err != nil {
		return shape.Sphere{}, &ParseError{Command: "s", Message: err.Error()}
	}
	return shape.Sphere{
		Center: geom.Point{X: vals[0], Y: vals[1], Z: vals[2]},
		Radius: vals[3],
	}, nil
}

func parseColor3(args []string) (color.Color, error) {
	vals, err := parseFloats(args, 3)
	if err != nil {
		return color.Color{}, &ParseError{Command: "b", Message: err.Error()}
	}
	return color.Color{R: vals[0], G: vals[1], B: vals[2]}, nil
}
