package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Ray and edge are considered parallel below this cross product
	parallelEpsilon = 1e-12
	// Hits closer than this are the edge the ray just left
	hitEpsilon = 1e-6
	// A direction component below this does not move the ray along that axis
	axisEpsilon = 1e-12
)

// raySegment intersects the ray p + t*v with the segment a + u*(b-a).
//
// ok is false when the two are parallel or the crossing falls outside the segment.
func raySegment(p, v, a, b r2.Vec) (t, u float64, ok bool) {
	s := r2.Sub(b, a)
	rxs := r2.Cross(v, s)
	if math.Abs(rxs) < parallelEpsilon {
		return 0, 0, false
	}
	ap := r2.Sub(a, p)
	t = r2.Cross(ap, s) / rxs
	u = r2.Cross(ap, v) / rxs
	if u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

// edgeHit is the nearest crossing of a ray with the scene
type edgeHit struct {
	T     float64
	Point r2.Vec
	Edge  Edge
}

// nearestHit returns the crossing with the smallest t above hitEpsilon
func nearestHit(p, v r2.Vec, edges []Edge) (edgeHit, bool) {
	best := edgeHit{T: math.Inf(1)}
	found := false
	for _, e := range edges {
		t, _, ok := raySegment(p, v, e.A, e.B)
		if !ok || t <= hitEpsilon {
			continue
		}
		if t < best.T {
			best.T = t
			best.Edge = e
			found = true
		}
	}
	if found {
		best.Point = r2.Add(p, r2.Scale(best.T, v))
	}
	return best, found
}

// canvasExit returns where the ray leaves the canvas grown by overscan on every side.
//
// ok is false when the direction has no usable component along either axis.
func canvasExit(p, v r2.Vec, width, height, overscan float64) (r2.Vec, bool) {
	tMin := math.Inf(1)
	if v.X > axisEpsilon {
		tMin = math.Min(tMin, (width+overscan-p.X)/v.X)
	} else if v.X < -axisEpsilon {
		tMin = math.Min(tMin, (-overscan-p.X)/v.X)
	}
	if v.Y > axisEpsilon {
		tMin = math.Min(tMin, (height+overscan-p.Y)/v.Y)
	} else if v.Y < -axisEpsilon {
		tMin = math.Min(tMin, (-overscan-p.Y)/v.Y)
	}
	if math.IsInf(tMin, 1) {
		return r2.Vec{}, false
	}
	// Already outside and heading away
	if tMin < 0 {
		tMin = 0
	}
	return r2.Add(p, r2.Scale(tMin, v)), true
}
