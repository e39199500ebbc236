package sector

import (
	"log/slog"
	"math"

	"github.com/udisondev/grimset/internal/geom"
)

// heightMargin is added to the sector height in the plane-distance check.
const heightMargin = 0.01

// Def is the load-time description of a sector, as produced by a scene loader.
type Def struct {
	ID       int
	Name     string
	Type     Type
	Visible  bool
	Height   float64
	Vertices []geom.Vector
}

// State is the part of a sector that survives a save/load cycle.
type State struct {
	ID      int
	Visible bool
}

// Sector is one typed polygonal region of a scene. Its id, name, type and
// original geometry never change after load; visibility and the shrink
// state are the only mutable parts.
type Sector struct {
	id      int
	name    string
	typ     Type
	height  float64
	visible bool

	poly   geom.Polygon
	shrunk *geom.Polygon
	margin float64
}

// New creates a Sector from its definition. Malformed geometry is kept
// as-is and only reported; queries on it degrade instead of failing.
func New(def Def) *Sector {
	s := &Sector{
		id:      def.ID,
		name:    def.Name,
		typ:     def.Type,
		height:  def.Height,
		visible: def.Visible,
		poly:    geom.NewPolygon(def.Vertices...),
	}
	if s.poly.IsDegenerate() {
		slog.Debug("degenerate sector geometry",
			"id", def.ID, "name", def.Name, "vertices", len(def.Vertices), "area", s.poly.Area())
	}
	return s
}

// ID returns the sector id, unique within its scene.
func (s *Sector) ID() int { return s.id }

// Name returns the sector name used by script lookups.
func (s *Sector) Name() string { return s.name }

// Type returns the sector classification.
func (s *Sector) Type() Type { return s.typ }

// Height returns the sector's vertical extent above and below its plane.
func (s *Sector) Height() float64 { return s.height }

// Visible reports whether the sector is active.
func (s *Sector) Visible() bool { return s.visible }

// SetVisible activates or deactivates the sector.
func (s *Sector) SetVisible(visible bool) { s.visible = visible }

// Polygon returns the polygon queries currently run against: the shrunk
// one while a shrink is applied, the original otherwise.
func (s *Sector) Polygon() geom.Polygon {
	if s.shrunk != nil {
		return *s.shrunk
	}
	return s.poly
}

// OrigPolygon returns the polygon as loaded, ignoring any shrink.
func (s *Sector) OrigPolygon() geom.Polygon { return s.poly }

// Vertices returns the active boundary vertices.
func (s *Sector) Vertices() []geom.Vector { return s.Polygon().Vertices() }

// OrigVertices returns the boundary vertices as loaded.
func (s *Sector) OrigVertices() []geom.Vector { return s.poly.Vertices() }

// NumVertices returns the vertex count (the same shrunk or not).
func (s *Sector) NumVertices() int { return s.poly.Len() }

// Normal returns the unit normal of the sector plane.
func (s *Sector) Normal() geom.Vector { return s.poly.Normal() }

// IsPointInSector reports whether p lies in the active polygon. For
// sectors with a finite height, p must also be within that height of the
// sector plane.
func (s *Sector) IsPointInSector(p geom.Vector) bool {
	poly := s.Polygon()
	if s.height > 0 && s.height < NoHeightLimit {
		if math.Abs(poly.DistanceToPlane(p)) > s.height+heightMargin {
			return false
		}
	}
	return poly.Contains(p)
}

// NearestPoint returns the point of the active polygon closest to p.
func (s *Sector) NearestPoint(p geom.Vector) geom.Vector {
	return s.Polygon().NearestPoint(p)
}

// ExitInfo returns where a ray from p along dir leaves the active polygon.
func (s *Sector) ExitInfo(p, dir geom.Vector) (geom.ExitInfo, bool) {
	return s.Polygon().ExitInfo(p, dir)
}

// Shrink replaces the active polygon by the original moved inward by
// margin. Only walk sectors shrink; for others it is a no-op returning
// false. A margin <= 0 unshrinks. Shrinking the same margin twice is a
// no-op, a different margin replaces the previous shrink.
func (s *Sector) Shrink(margin float64) bool {
	if !s.typ.IsWalk() {
		return false
	}
	if margin <= 0 {
		s.Unshrink()
		return false
	}
	if s.shrunk != nil && s.margin == margin {
		return true
	}

	shrunk, collapsed := s.poly.Shrink(margin)
	if collapsed {
		slog.Warn("sector collapsed by shrink",
			"id", s.id, "name", s.name, "margin", margin)
	}
	s.shrunk = &shrunk
	s.margin = margin
	return true
}

// Unshrink restores the original polygon.
func (s *Sector) Unshrink() {
	s.shrunk = nil
	s.margin = 0
}

// IsShrunk reports whether a shrink is applied.
func (s *Sector) IsShrunk() bool { return s.shrunk != nil }

// ShrinkMargin returns the applied shrink margin (0 when not shrunk).
func (s *Sector) ShrinkMargin() float64 { return s.margin }

// State returns the persistent part of the sector.
func (s *Sector) State() State {
	return State{ID: s.id, Visible: s.visible}
}

// ApplyState restores visibility from a saved state with a matching id.
func (s *Sector) ApplyState(st State) bool {
	if st.ID != s.id {
		return false
	}
	s.visible = st.Visible
	return true
}
