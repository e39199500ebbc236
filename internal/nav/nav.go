// Package nav implements the navigation queries actor movement and the
// script bridge run against the current scene.
package nav

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

// Actor is the part of a scene actor the navigation queries need.
type Actor interface {
	Pos() geom.Vector
	// PuckVector returns the direction the actor faces.
	PuckVector() geom.Vector
}

// Navigator answers navigation queries for one scene. A Navigator with a
// nil Set (no scene loaded) answers every query with "not found".
type Navigator struct {
	set *set.Set
}

// New creates a Navigator over s.
func New(s *set.Set) *Navigator {
	return &Navigator{set: s}
}

// Set returns the scene the Navigator queries.
func (n *Navigator) Set() *set.Set {
	if n == nil {
		return nil
	}
	return n.set
}

func (n *Navigator) loaded() bool {
	return n != nil && n.set != nil
}

// ActorCurrentSector returns the first visible sector matching mask that
// contains pos.
func (n *Navigator) ActorCurrentSector(pos geom.Vector, mask sector.Type) *sector.Sector {
	if !n.loaded() {
		return nil
	}
	return n.set.FindPointSector(pos, mask)
}

// ActorInSectorByName returns the first sector, in load order, whose name
// contains name and which contains pos. The name is a literal substring,
// never a glob. Visibility is not checked: scripts ask about disabled
// trigger boxes too.
func (n *Navigator) ActorInSectorByName(pos geom.Vector, name string) *sector.Sector {
	if !n.loaded() {
		return nil
	}
	for _, sec := range n.set.Sectors() {
		if strings.Contains(sec.Name(), name) && sec.IsPointInSector(pos) {
			return sec
		}
	}
	return nil
}

// OppositeEdgePoint finds where the actor, walking backwards out of the
// sector matching name, leaves it, and returns the point at the same
// fraction along the edge two edges back. On a rectangle that is the
// mirrored point on the facing edge.
//
// The two-edge step is only meaningful for four-vertex sectors; other
// vertex counts are logged and still get the same modulo arithmetic.
// Sectors with fewer than three vertices yield no point.
func (n *Navigator) OppositeEdgePoint(a Actor, name string) (geom.Vector, bool) {
	if !n.loaded() || a == nil {
		return geom.Vector{}, false
	}
	sec := n.set.FindSectorByName(name)
	if sec == nil {
		return geom.Vector{}, false
	}

	poly := sec.Polygon()
	count := poly.Len()
	if count < 3 {
		slog.Debug("opposite edge: sector has too few vertices",
			"set", n.set.Name(), "sector", sec.Name(), "vertices", count)
		return geom.Vector{}, false
	}
	if count != 4 {
		slog.Warn("opposite edge on a non-rectangular sector",
			"set", n.set.Name(), "sector", sec.Name(), "vertices", count)
	}

	info, ok := sec.ExitInfo(a.Pos(), a.PuckVector().Invert())
	if !ok {
		slog.Debug("opposite edge: no exit along facing, using nearest edge",
			"set", n.set.Name(), "sector", sec.Name(), "edge", info.EdgeVertex)
	}

	var frac float64
	if edgeLen := info.EdgeDir.Magnitude(); edgeLen > geom.Epsilon {
		frac = info.ExitPoint.Sub(poly.Vertex(info.EdgeVertex + 1)).Magnitude() / edgeLen
	}

	edge := info.EdgeVertex - 2
	if edge < 0 {
		edge += count
	}
	from, to := poly.Edge(edge)
	return from.Add(to.Sub(from).Scale(frac)), true
}

// ShrinkAndFindNearest shrinks the walk boxes by margin, finds the point
// of the closest walk box to pos and restores the previous shrink state.
// ok is false when the scene has no usable walk box or another shrink
// transaction is open.
func (n *Navigator) ShrinkAndFindNearest(pos geom.Vector, margin float64) (geom.Vector, bool) {
	if !n.loaded() {
		return geom.Vector{}, false
	}

	var (
		nearest geom.Vector
		found   bool
	)
	err := n.set.WithShrink(margin, func() error {
		_, nearest, found = n.set.FindClosestSector(pos)
		return nil
	})
	if err != nil {
		if errors.Is(err, set.ErrShrinkActive) {
			slog.Warn("shrink and find nearest inside a shrink transaction",
				"set", n.set.Name(), "margin", margin)
		}
		return geom.Vector{}, false
	}
	if !found {
		return geom.Vector{}, false
	}
	return nearest, true
}

// Resolve returns the sector ref points at, or nil.
func (n *Navigator) Resolve(ref SectorRef) *sector.Sector {
	if !n.loaded() {
		return nil
	}
	switch ref.Kind {
	case RefID:
		return n.set.FindSectorByID(ref.ID)
	case RefName:
		return n.set.FindSectorByName(ref.Name)
	default:
		return nil
	}
}

// SetSectorVisible activates or deactivates the sector ref points at.
// Unresolved references are ignored; the result tells whether a sector
// was changed.
func (n *Navigator) SetSectorVisible(ref SectorRef, visible bool) bool {
	sec := n.Resolve(ref)
	if sec == nil {
		slog.Debug("set sector visible: no such sector", "ref", ref.String(), "visible", visible)
		return false
	}
	sec.SetVisible(visible)
	return true
}
