// Package walk moves actors over the walk boxes of a scene.
package walk

import (
	"log/slog"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

// Walker steps actors over the visible walk boxes of one scene.
type Walker struct {
	set *set.Set
}

// NewWalker creates a Walker over s.
func NewWalker(s *set.Set) *Walker {
	return &Walker{set: s}
}

// Step returns where an actor at from ends up when it tries to move by
// delta. A target inside a walk box is accepted as is. Otherwise the actor
// slides along the edge it would cross; if even the slid position is off
// the walk boxes, it stops at the nearest point of its current box. An
// actor that is not on any walk box is put on the closest one.
func (w *Walker) Step(from, delta geom.Vector) geom.Vector {
	if w.set == nil || delta.IsZero() {
		return from
	}

	target := from.Add(delta)
	if w.set.FindPointSector(target, sector.TypeWalk) != nil {
		return target
	}

	current := w.set.FindPointSector(from, sector.TypeWalk)
	if current == nil {
		_, closest, ok := w.set.FindClosestSector(target)
		if !ok {
			return from
		}
		slog.Debug("actor off walk boxes, snapping", "set", w.set.Name(), "from", from, "to", closest)
		return closest
	}

	info, ok := current.ExitInfo(from, delta)
	if !ok {
		return current.NearestPoint(target)
	}

	// Остаток шага проецируем на направление ребра выхода.
	edge := info.EdgeDir.Unit()
	slid := info.ExitPoint.Add(edge.Scale(target.Sub(info.ExitPoint).Dot(edge)))
	if w.set.FindPointSector(slid, sector.TypeWalk) != nil {
		return slid
	}
	return current.NearestPoint(slid)
}
