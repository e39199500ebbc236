package geom

import "math"

// ExitInfo describes where a movement ray leaves a polygon.
type ExitInfo struct {
	ExitPoint     Vector  // point on the exit edge
	EdgeVertex    int     // index of the first vertex of the exit edge
	EdgeDir       Vector  // exit edge, from vertex EdgeVertex to the next one
	AngleWithEdge float64 // angle between the movement direction and EdgeDir, radians
}

// ExitInfo finds the edge through which the ray from (from, projected on
// the plane) along dir leaves the polygon, and the point where it does.
//
// Only edges the ray is moving out of are considered, so an edge parallel
// or anti-parallel to dir is never picked. When no edge qualifies (zero or
// vertical direction, degenerate polygon) the nearest edge to the start is
// returned with ok == false.
func (p Polygon) ExitInfo(from, dir Vector) (info ExitInfo, ok bool) {
	if len(p.vertices) == 0 {
		return ExitInfo{ExitPoint: from}, false
	}

	start := p.Project(from)
	d := dir.Sub(p.normal.Scale(dir.Dot(p.normal)))
	dLen := d.Magnitude()

	best, bestT := -1, math.Inf(1)
	if dLen > Epsilon && !p.IsDegenerate() {
		for i := range p.vertices {
			a, b := p.Edge(i)
			e := b.Sub(a)
			outward := e.Cross(p.normal)
			denom := d.Dot(outward)
			if denom <= Epsilon*e.Magnitude()*dLen {
				continue
			}
			if t := a.Sub(start).Dot(outward) / denom; t < bestT {
				best, bestT = i, t
			}
		}
	}

	if best < 0 {
		point, edge, _ := p.closestOnBoundary(start)
		a, b := p.Edge(edge)
		return ExitInfo{
			ExitPoint:     point,
			EdgeVertex:    edge,
			EdgeDir:       b.Sub(a),
			AngleWithEdge: d.Angle(b.Sub(a)),
		}, false
	}

	a, b := p.Edge(best)
	return ExitInfo{
		ExitPoint:     start.Add(d.Scale(bestT)),
		EdgeVertex:    best,
		EdgeDir:       b.Sub(a),
		AngleWithEdge: d.Angle(b.Sub(a)),
	}, true
}
