package geom

import "math"

// Shrink returns the polygon with every edge moved inward by margin along
// its in-plane inward normal. The result is always computed from p itself,
// so shrinking never compounds.
//
// When the offset polygon would invert (margin larger than the polygon
// allows) or p is already degenerate, the polygon collapses to a point at
// its centroid, keeping the vertex count and plane, and collapsed is true.
// A margin <= 0 returns p unchanged.
func (p Polygon) Shrink(margin float64) (shrunk Polygon, collapsed bool) {
	n := len(p.vertices)
	if n == 0 || margin <= 0 {
		return p, false
	}
	if p.IsDegenerate() {
		return p.collapse(), true
	}

	inward := make([]Vector, n)
	for i := range n {
		a, b := p.Edge(i)
		inward[i] = p.normal.Cross(b.Sub(a)).Unit()
	}

	out := make([]Vector, n)
	for i := range n {
		prev := (i + n - 1) % n
		pa, pb := p.Edge(prev)
		ca, cb := p.Edge(i)
		prevDir, curDir := pb.Sub(pa), cb.Sub(ca)
		prevPt := pa.Add(inward[prev].Scale(margin))
		curPt := ca.Add(inward[i].Scale(margin))

		denom := prevDir.Cross(curDir).Dot(p.normal)
		if math.Abs(denom) <= Epsilon*prevDir.Magnitude()*curDir.Magnitude() {
			// Соседние рёбра коллинеарны: просто сдвигаем вершину.
			shift := inward[i]
			if shift.IsZero() {
				shift = inward[prev]
			}
			out[i] = p.vertices[i].Add(shift.Scale(margin))
			continue
		}
		s := curPt.Sub(prevPt).Cross(curDir).Dot(p.normal) / denom
		out[i] = prevPt.Add(prevDir.Scale(s))
	}

	// The offset polygon is valid only if no edge flipped direction and
	// some area is left.
	for i := range n {
		a, b := p.Edge(i)
		e := b.Sub(a)
		if e.Magnitude() <= Epsilon {
			continue
		}
		ne := out[(i+1)%n].Sub(out[i])
		if ne.Dot(e) <= Epsilon*e.Magnitude() {
			return p.collapse(), true
		}
	}
	if newellNormal(out).Dot(p.normal)/2 < Epsilon {
		return p.collapse(), true
	}

	return Polygon{vertices: out, normal: p.normal, area: newellNormal(out).Magnitude() / 2}, false
}

// collapse returns a point polygon at the centroid, in the same plane and
// with the same vertex count.
func (p Polygon) collapse() Polygon {
	c := p.Centroid()
	vs := make([]Vector, len(p.vertices))
	for i := range vs {
		vs[i] = c
	}
	return Polygon{vertices: vs, normal: p.normal}
}
