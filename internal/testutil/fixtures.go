package testutil

import (
	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

// Rect returns a visible sector definition for the axis-aligned rectangle
// [x0, x0+w] x [y0, y0+h] at z = 0, wound counter-clockwise.
func Rect(id int, name string, typ sector.Type, x0, y0, w, h float64) sector.Def {
	return sector.Def{
		ID:      id,
		Name:    name,
		Type:    typ,
		Visible: true,
		Height:  sector.DefaultHeight,
		Vertices: []geom.Vector{
			geom.NewVector(x0, y0, 0),
			geom.NewVector(x0+w, y0, 0),
			geom.NewVector(x0+w, y0+h, 0),
			geom.NewVector(x0, y0+h, 0),
		},
	}
}

// UnitSquare returns a 1x1 Rect with its lower-left corner at (x0, y0).
func UnitSquare(id int, name string, typ sector.Type, x0, y0 float64) sector.Def {
	return Rect(id, name, typ, x0, y0, 1, 1)
}

// TwoBoxScene returns two adjacent unit-square walk boxes sharing the edge x = 1.
func TwoBoxScene() []sector.Def {
	return []sector.Def{
		UnitSquare(1000, "walk_left", sector.TypeWalk, 0, 0),
		UnitSquare(1001, "walk_right", sector.TypeWalk, 1, 0),
	}
}

// Actor is a minimal actor with a position and a facing ("puck") vector.
type Actor struct {
	Position geom.Vector
	Facing   geom.Vector
}

func (a *Actor) Pos() geom.Vector        { return a.Position }
func (a *Actor) PuckVector() geom.Vector { return a.Facing }
