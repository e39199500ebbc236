// Package debugdraw renders a top-down wireframe of scene sectors for
// debugging. It only reads sector geometry and never changes the scene.
package debugdraw

import (
	"image/color"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

// View maps scene XY coordinates to screen pixels, looking down the Z axis.
type View struct {
	Center geom.Vector // scene point at the middle of the screen
	Scale  float64     // pixels per world unit
	Width  int
	Height int
}

// Project returns the screen position of p. Screen Y grows downwards.
func (v View) Project(p geom.Vector) (x, y float32) {
	x = float32(float64(v.Width)/2 + (p.X-v.Center.X)*v.Scale)
	y = float32(float64(v.Height)/2 - (p.Y-v.Center.Y)*v.Scale)
	return x, y
}

// Unproject returns the scene point (at z = 0) under screen position (x, y).
func (v View) Unproject(x, y float32) geom.Vector {
	if v.Scale == 0 {
		return v.Center
	}
	return geom.NewVector(
		v.Center.X+(float64(x)-float64(v.Width)/2)/v.Scale,
		v.Center.Y-(float64(y)-float64(v.Height)/2)/v.Scale,
		0,
	)
}

// Fit returns a View of the given size that shows every sector of s with
// some padding. An empty scene gets a unit scale around the origin.
func Fit(s *set.Set, width, height int) View {
	v := View{Scale: 1, Width: width, Height: height}

	first := true
	var minX, minY, maxX, maxY float64
	for _, sec := range s.Sectors() {
		for _, p := range sec.OrigVertices() {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	if first {
		return v
	}

	v.Center = geom.NewVector((minX+maxX)/2, (minY+maxY)/2, 0)
	spanX, spanY := max(maxX-minX, geom.Epsilon), max(maxY-minY, geom.Epsilon)
	const padding = 0.9
	v.Scale = padding * min(float64(width)/spanX, float64(height)/spanY)
	return v
}

// Segment is one screen-space line of the wireframe.
type Segment struct {
	X0, Y0, X1, Y1 float32
	Color          color.RGBA
}

// Segments returns the outline of every sector of s. Hidden sectors are
// included only when withHidden is set. While a shrink is applied, walk
// boxes get both their original outline (dimmed) and the shrunk one.
func Segments(v View, s *set.Set, withHidden bool) []Segment {
	var out []Segment
	for _, sec := range s.Sectors() {
		if !sec.Visible() && !withHidden {
			continue
		}
		clr := ColorFor(sec.Type(), sec.Visible())
		if sec.IsShrunk() {
			out = appendOutline(out, v, sec.OrigVertices(), dim(clr))
		}
		out = appendOutline(out, v, sec.Vertices(), clr)
	}
	return out
}

func appendOutline(out []Segment, v View, vs []geom.Vector, clr color.RGBA) []Segment {
	for i := range vs {
		x0, y0 := v.Project(vs[i])
		x1, y1 := v.Project(vs[(i+1)%len(vs)])
		out = append(out, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: clr})
	}
	return out
}

// ColorFor returns the wireframe color of a sector type.
func ColorFor(t sector.Type, visible bool) color.RGBA {
	var c color.RGBA
	switch {
	case t == sector.TypeFunnel:
		c = color.RGBA{R: 0x40, G: 0xc0, B: 0xc0, A: 0xff}
	case t.IsWalk():
		c = color.RGBA{R: 0x40, G: 0xe0, B: 0x40, A: 0xff}
	case t == sector.TypeCamera:
		c = color.RGBA{R: 0x40, G: 0x80, B: 0xff, A: 0xff}
	case t == sector.TypeSpecial:
		c = color.RGBA{R: 0xe0, G: 0x40, B: 0xe0, A: 0xff}
	case t == sector.TypeHot:
		c = color.RGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}
	default:
		c = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	if !visible {
		c = dim(c)
	}
	return c
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: c.A}
}
