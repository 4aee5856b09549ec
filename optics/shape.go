package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ShapeKind only affects how a prism is drawn
type ShapeKind int

const (
	Square ShapeKind = iota
	Triangle
)

func (k ShapeKind) String() string {
	switch k {
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// Polygon is a convex prism. Its vertices are fixed at construction.
type Polygon struct {
	// Index of this polygon within its scene
	ID   int
	Kind ShapeKind
	// Marker is the placement marker that produced this polygon, or 0 for generated prisms
	Marker int

	vertices []r2.Vec
	box      r2.Box
	centroid r2.Vec
}

// NewPolygon copies vertices in winding order and precomputes the bounding box and centroid
func NewPolygon(kind ShapeKind, vertices []r2.Vec) Polygon {
	vs := make([]r2.Vec, len(vertices))
	copy(vs, vertices)
	var sum r2.Vec
	for _, v := range vs {
		sum = r2.Add(sum, v)
	}
	var centroid r2.Vec
	if len(vs) > 0 {
		centroid = r2.Scale(1/float64(len(vs)), sum)
	}
	return Polygon{
		Kind:     kind,
		vertices: vs,
		box:      BoundingBox(vs),
		centroid: centroid,
	}
}

// Vertices returns a copy of the polygon's vertices
func (p Polygon) Vertices() []r2.Vec {
	vs := make([]r2.Vec, len(p.vertices))
	copy(vs, p.vertices)
	return vs
}

func (p Polygon) Box() r2.Box {
	return p.box
}

func (p Polygon) Centroid() r2.Vec {
	return p.centroid
}

// Contains is the even-odd point-in-polygon test
func (p Polygon) Contains(pt r2.Vec) bool {
	return PointInPolygon(pt, p.vertices)
}

// Edges derives the polygon's closed edge loop
func (p Polygon) Edges() []Edge {
	n := len(p.vertices)
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{A: p.vertices[i], B: p.vertices[(i+1)%n], Polygon: p.ID})
	}
	return edges
}

// OutwardNormal returns the unit normal of e that points away from the polygon's centroid.
//
// Winding is not assumed to be consistent, so the side is picked geometrically.
func (p Polygon) OutwardNormal(e Edge) r2.Vec {
	mid := r2.Scale(0.5, r2.Add(e.A, e.B))
	toCenter := r2.Sub(p.centroid, mid)
	n := Normalize(Perp(r2.Sub(e.B, e.A)))
	if r2.Dot(n, toCenter) > 0 {
		n = r2.Scale(-1, n)
	}
	return n
}

// Edge is one side of a polygon. Edges are always derived from their polygon.
type Edge struct {
	A, B    r2.Vec
	Polygon int
}

// MakeSquare returns an axis-aligned square of edge length size rotated by angle radians about center
func MakeSquare(center r2.Vec, size, angle float64) []r2.Vec {
	h := size / 2
	corners := []r2.Vec{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	return place(corners, center, angle)
}

// MakeTriangle returns an equilateral triangle of edge length size rotated by angle radians about its centroid
func MakeTriangle(center r2.Vec, size, angle float64) []r2.Vec {
	h := size * math.Sqrt(3) / 2
	corners := []r2.Vec{{X: 0, Y: -h * 2 / 3}, {X: size / 2, Y: h / 3}, {X: -size / 2, Y: h / 3}}
	return place(corners, center, angle)
}

func place(corners []r2.Vec, center r2.Vec, angle float64) []r2.Vec {
	out := make([]r2.Vec, len(corners))
	for i, c := range corners {
		out[i] = r2.Add(center, rotate(c, angle))
	}
	return out
}
