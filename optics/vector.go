package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Normalize gives up on vectors shorter than this
	degenerateLength = 1e-12
	// Directions with a squared length at or below this are treated as zero
	degenerateDirection = 1e-9
)

// V is a shorthand constructor for r2.Vec
func V(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}

// Normalize returns v scaled to unit length.
//
// Vectors too short to carry a direction come back as the zero vector rather than NaN, so callers
// must treat a zero result as "do not propagate".
func Normalize(v r2.Vec) r2.Vec {
	l := r2.Norm(v)
	if l < degenerateLength {
		return r2.Vec{}
	}
	return r2.Scale(1/l, v)
}

// Perp rotates v by 90 degrees counter-clockwise
func Perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

func isDegenerate(v r2.Vec) bool {
	return r2.Norm2(v) <= degenerateDirection
}

func isFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// rotate turns v counter-clockwise by angle radians about the origin
func rotate(v r2.Vec, angle float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// BoundingBox returns the axis-aligned box enclosing every vertex
func BoundingBox(vertices []r2.Vec) r2.Box {
	if len(vertices) == 0 {
		return r2.Box{}
	}
	box := r2.Box{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
	}
	return box
}

// Overlaps reports whether two boxes share any point. Boxes that only touch count as overlapping.
func Overlaps(a, b r2.Box) bool {
	return !(a.Max.X < b.Min.X || a.Min.X > b.Max.X || a.Max.Y < b.Min.Y || a.Min.Y > b.Max.Y)
}

// PointInPolygon is the even-odd test, casting a horizontal ray towards +X.
//
// Vertices lying exactly on the scanline are resolved by the asymmetric "strictly greater"
// comparison so a shared vertex is counted once.
func PointInPolygon(p r2.Vec, polygon []r2.Vec) bool {
	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// distanceToSegment is the distance from p to the closest point of segment ab
func distanceToSegment(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	ap := r2.Sub(p, a)
	t := r2.Dot(ap, ab) / l2
	switch {
	case t <= 0:
		return r2.Norm(ap)
	case t >= 1:
		return r2.Norm(r2.Sub(p, b))
	}
	// Perpendicular distance avoids rebuilding the foot point from very long segments
	return math.Abs(r2.Cross(ab, ap)) / math.Sqrt(l2)
}
