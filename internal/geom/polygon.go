package geom

import "math"

// Polygon is a planar, convex polygon in 3D space. Edge i connects vertex i
// and vertex (i+1) mod N. The normal follows the vertex winding (right-hand
// rule), so containment works for either winding order.
// Polygon is immutable; every operation is a pure function of its vertices.
type Polygon struct {
	vertices []Vector
	normal   Vector
	area     float64
}

// NewPolygon creates a Polygon from the given vertices (copied).
// Degenerate input (fewer than 3 vertices, zero area) is accepted: such a
// polygon uses the +Z axis as its normal and behaves as a point or segment.
func NewPolygon(vertices ...Vector) Polygon {
	p := Polygon{vertices: append([]Vector(nil), vertices...)}

	newell := newellNormal(p.vertices)
	p.area = newell.Magnitude() / 2
	if p.area < Epsilon {
		p.normal = VecZ
	} else {
		p.normal = newell.Unit()
	}
	return p
}

// newellNormal returns the (unnormalized) Newell normal; its length is
// twice the polygon area.
func newellNormal(vs []Vector) Vector {
	var n Vector
	for i, cur := range vs {
		next := vs[(i+1)%len(vs)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p.vertices) }

// IsEmpty reports whether the polygon has no vertices at all.
func (p Polygon) IsEmpty() bool { return len(p.vertices) == 0 }

// IsDegenerate reports whether the polygon has less than three vertices
// or (near) zero area.
func (p Polygon) IsDegenerate() bool {
	return len(p.vertices) < 3 || p.area < Epsilon
}

// Area returns the polygon area.
func (p Polygon) Area() float64 { return p.area }

// Normal returns the unit normal of the polygon plane.
func (p Polygon) Normal() Vector { return p.normal }

// Vertices returns a copy of the vertex list.
func (p Polygon) Vertices() []Vector {
	return append([]Vector(nil), p.vertices...)
}

// Vertex returns vertex i, wrapped modulo the vertex count (negative i allowed).
func (p Polygon) Vertex(i int) Vector {
	n := len(p.vertices)
	return p.vertices[((i%n)+n)%n]
}

// Edge returns the endpoints of edge i (wrapped modulo the vertex count).
func (p Polygon) Edge(i int) (Vector, Vector) {
	return p.Vertex(i), p.Vertex(i + 1)
}

// Centroid returns the average of the vertices.
func (p Polygon) Centroid() Vector {
	var c Vector
	if len(p.vertices) == 0 {
		return c
	}
	for _, v := range p.vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.vertices)))
}

// DistanceToPlane returns the signed distance of pt from the polygon plane.
func (p Polygon) DistanceToPlane(pt Vector) float64 {
	if len(p.vertices) == 0 {
		return 0
	}
	return pt.Sub(p.vertices[0]).Dot(p.normal)
}

// Project returns pt projected onto the polygon plane along the normal.
func (p Polygon) Project(pt Vector) Vector {
	if len(p.vertices) == 0 {
		return pt
	}
	return pt.Sub(p.normal.Scale(p.DistanceToPlane(pt)))
}

// Contains projects pt onto the polygon plane and reports whether the
// projection lies inside the polygon. Points on the boundary are inside,
// so two sectors sharing an edge both contain the points of that edge.
func (p Polygon) Contains(pt Vector) bool {
	if len(p.vertices) == 0 {
		return false
	}

	q := p.Project(pt)
	if p.IsDegenerate() {
		_, _, dist := p.closestOnBoundary(q)
		return dist <= Epsilon
	}

	for i := range p.vertices {
		a, b := p.Edge(i)
		e := b.Sub(a)
		side := e.Cross(q.Sub(a)).Dot(p.normal)
		if side < -Epsilon*e.Magnitude() {
			return false
		}
	}
	return true
}

// NearestPoint returns the projection of pt when it falls inside the
// polygon, otherwise the closest point on the closest edge segment.
// An empty polygon returns pt unchanged.
func (p Polygon) NearestPoint(pt Vector) Vector {
	if len(p.vertices) == 0 {
		return pt
	}
	if !p.IsDegenerate() {
		if q := p.Project(pt); p.Contains(q) {
			return q
		}
	}
	closest, _, _ := p.closestOnBoundary(pt)
	return closest
}

// closestOnBoundary returns the boundary point closest to pt, its edge
// index and the distance. The first edge wins ties.
func (p Polygon) closestOnBoundary(pt Vector) (Vector, int, float64) {
	best, bestEdge, bestDist := p.vertices[0], 0, math.Inf(1)
	for i := range p.vertices {
		a, b := p.Edge(i)
		c, _ := ClosestPointOnSegment(pt, a, b)
		if d := c.Distance(pt); d < bestDist {
			best, bestEdge, bestDist = c, i, d
		}
	}
	return best, bestEdge, bestDist
}
