// Package geom holds the planar-polygon primitives behind scene sectors:
// a value-type 3D Vector and a convex Polygon with containment,
// nearest-point, exit-edge and inward-offset (shrink) operations.
package geom

import "math"

// Epsilon is the absolute tolerance used by the containment and
// degeneracy checks. Scene coordinates are in world units (about a meter).
const Epsilon = 1e-6

// VecZ is the world up axis. Walk boxes lie (mostly) in the XY plane.
var VecZ = NewVector(0, 0, 1)

// Vector represents a 3D point or direction. Methods never modify the
// receiver; they return modified copies so calls can be chained.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// NewVector creates a new Vector with the specified x, y and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling Vector with other added to it.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector with other subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale returns a copy of the Vector with every component multiplied by s.
func (vec Vector) Scale(s float64) Vector {
	vec.X *= s
	vec.Y *= s
	vec.Z *= s
	return vec
}

// Invert returns the Vector pointing the opposite way.
func (vec Vector) Invert() Vector {
	return Vector{X: -vec.X, Y: -vec.Y, Z: -vec.Z}
}

// Dot returns the dot product of the calling Vector and other.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns the cross product of the calling Vector and other.
func (vec Vector) Cross(other Vector) Vector {
	return Vector{
		X: vec.Y*other.Z - vec.Z*other.Y,
		Y: vec.Z*other.X - vec.X*other.Z,
		Z: vec.X*other.Y - vec.Y*other.X,
	}
}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the Vector; cheaper than Magnitude.
func (vec Vector) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

func (vec Vector) Distance(other Vector) float64 {
	return vec.Sub(other).Magnitude()
}

func (vec Vector) DistanceSquared(other Vector) float64 {
	return vec.Sub(other).MagnitudeSquared()
}

// Unit returns a copy of the Vector normalized to unit length.
// A (near) zero Vector is returned unchanged.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < 1e-12 {
		return vec
	}
	return vec.Scale(1 / l)
}

// Lerp returns the point at fraction t of the way from the calling Vector to other.
func (vec Vector) Lerp(other Vector, t float64) Vector {
	return vec.Add(other.Sub(vec).Scale(t))
}

// IsZero reports whether every component is within Epsilon of zero.
func (vec Vector) IsZero() bool {
	return math.Abs(vec.X) < Epsilon && math.Abs(vec.Y) < Epsilon && math.Abs(vec.Z) < Epsilon
}

// Equals reports whether two Vectors are equal within tolerance tol.
func (vec Vector) Equals(other Vector, tol float64) bool {
	return math.Abs(vec.X-other.X) <= tol &&
		math.Abs(vec.Y-other.Y) <= tol &&
		math.Abs(vec.Z-other.Z) <= tol
}

// Angle returns the angle between two Vectors in radians (0 when either is zero).
func (vec Vector) Angle(other Vector) float64 {
	d := vec.Magnitude() * other.Magnitude()
	if d < 1e-12 {
		return 0
	}
	c := vec.Dot(other) / d
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// ClosestPointOnSegment returns the point of segment a-b closest to p,
// and the segment parameter (0 at a, 1 at b) of that point.
func ClosestPointOnSegment(p, a, b Vector) (Vector, float64) {
	ab := b.Sub(a)
	l2 := ab.MagnitudeSquared()
	if l2 < 1e-12 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t)), t
}
