package debugdraw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/set"
)

// Marker is an actor drawn on top of the wireframe.
type Marker struct {
	Pos    geom.Vector
	Facing geom.Vector
	Label  string
}

// Overlay draws sector wireframes and actor markers.
type Overlay struct {
	View       View
	ShowNames  bool
	ShowHidden bool
	LineWidth  float32
}

var (
	markerColor = color.RGBA{R: 0xff, G: 0xff, B: 0x40, A: 0xff}
	labelColor  = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
)

// Draw renders s and the markers onto dst.
func (o *Overlay) Draw(dst *ebiten.Image, s *set.Set, markers ...Marker) {
	width := o.LineWidth
	if width <= 0 {
		width = 1
	}

	for _, seg := range Segments(o.View, s, o.ShowHidden) {
		vector.StrokeLine(dst, seg.X0, seg.Y0, seg.X1, seg.Y1, width, seg.Color, true)
	}

	if o.ShowNames {
		for _, sec := range s.Sectors() {
			if !sec.Visible() && !o.ShowHidden {
				continue
			}
			x, y := o.View.Project(sec.Polygon().Centroid())
			text.Draw(dst, sec.Name(), basicfont.Face7x13, int(x), int(y), labelColor)
		}
	}

	for _, m := range markers {
		x, y := o.View.Project(m.Pos)
		vector.StrokeCircle(dst, x, y, 4, width, markerColor, true)
		if !m.Facing.IsZero() {
			fx, fy := o.View.Project(m.Pos.Add(m.Facing.Unit().Scale(12 / max(o.View.Scale, geom.Epsilon))))
			vector.StrokeLine(dst, x, y, fx, fy, width, markerColor, true)
		}
		if m.Label != "" {
			text.Draw(dst, m.Label, basicfont.Face7x13, int(x)+6, int(y)-6, markerColor)
		}
	}
}
